package loss

import "gonum.org/v1/gonum/mat"

// MeanSquaredError computes the squared error summed over features and
// averaged over the batch:
//
//	loss = Σᵢⱼ (predictionᵢⱼ - targetᵢⱼ)² / batch
//
// Commonly used for regression targets.
type MeanSquaredError struct{}

// NewMeanSquaredError creates an MSE output layer.
func NewMeanSquaredError() *MeanSquaredError { return &MeanSquaredError{} }

// Forward computes the scalar loss.
func (*MeanSquaredError) Forward(prediction, target mat.Matrix) float64 {
	rows, cols := prediction.Dims()
	sum := 0.0
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			d := prediction.At(i, j) - target.At(i, j)
			sum += d * d
		}
	}
	return sum / float64(cols)
}

// Backward computes errorGrad = 2 * (prediction - target) / batch.
func (*MeanSquaredError) Backward(prediction, target mat.Matrix, errorGrad *mat.Dense) {
	rows, cols := prediction.Dims()
	scale := 2 / float64(cols)
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			errorGrad.Set(i, j, scale*(prediction.At(i, j)-target.At(i, j)))
		}
	}
}

// Type returns the persisted type name.
func (*MeanSquaredError) Type() string { return TypeMeanSquaredError }
