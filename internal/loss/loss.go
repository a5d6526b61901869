package loss

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Loss is the output-layer contract: it reduces a prediction batch and a
// matching target batch to a scalar objective, and produces the error
// gradient that seeds the network's backward pass. Batches are column-major
// (features × batch).
type Loss interface {
	// Forward computes the scalar loss for the batch.
	Forward(prediction, target mat.Matrix) float64

	// Backward computes the gradient of the loss with respect to the
	// prediction into errorGrad, which is pre-sized to match prediction.
	Backward(prediction, target mat.Matrix, errorGrad *mat.Dense)

	// Type names the loss for persisted network state.
	Type() string
}

// Loss type names used in persisted network state.
const (
	TypeMeanSquaredError = "mean_squared_error"
	TypeCrossEntropy     = "cross_entropy"
)

// Decode builds a loss from its persisted type name.
func Decode(typ string) (Loss, error) {
	switch typ {
	case TypeMeanSquaredError:
		return NewMeanSquaredError(), nil
	case TypeCrossEntropy:
		return NewCrossEntropy(), nil
	default:
		return nil, fmt.Errorf("loss: unknown loss type %q", typ)
	}
}
