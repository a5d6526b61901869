package loss

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// crossEntropyEps keeps the logarithms finite for predictions at 0 or 1.
const crossEntropyEps = 1e-10

// CrossEntropy computes the binary cross-entropy summed over all elements:
//
//	loss = -Σᵢⱼ targetᵢⱼ·ln(predᵢⱼ+ε) + (1-targetᵢⱼ)·ln(1-predᵢⱼ+ε)
//
// Predictions are expected to lie in [0, 1], typically produced by a final
// Sigmoid layer; targets are 0/1 indicators or probabilities.
type CrossEntropy struct{}

// NewCrossEntropy creates a cross-entropy output layer.
func NewCrossEntropy() *CrossEntropy { return &CrossEntropy{} }

// Forward computes the scalar loss.
func (*CrossEntropy) Forward(prediction, target mat.Matrix) float64 {
	rows, cols := prediction.Dims()
	sum := 0.0
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			p := prediction.At(i, j)
			t := target.At(i, j)
			sum -= t*math.Log(p+crossEntropyEps) + (1-t)*math.Log(1-p+crossEntropyEps)
		}
	}
	return sum
}

// Backward computes the element-wise gradient
// (1-t)/(1-p+ε) - t/(p+ε).
func (*CrossEntropy) Backward(prediction, target mat.Matrix, errorGrad *mat.Dense) {
	rows, cols := prediction.Dims()
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			p := prediction.At(i, j)
			t := target.At(i, j)
			errorGrad.Set(i, j, (1-t)/(1-p+crossEntropyEps)-t/(p+crossEntropyEps))
		}
	}
}

// Type returns the persisted type name.
func (*CrossEntropy) Type() string { return TypeCrossEntropy }
