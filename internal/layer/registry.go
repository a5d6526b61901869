package layer

import "fmt"

// Layer type names used in persisted network state.
const (
	TypeLinear       = "linear"
	TypeLinearNoBias = "linear_no_bias"
	TypeReLU         = "relu"
	TypeSigmoid      = "sigmoid"
	TypeTanh         = "tanh"
	TypeDropout      = "dropout"
	TypeIdentity     = "identity"
)

// Spec is the serializable configuration of a single layer. Weights are not
// part of a Spec; they live in the network's parameter buffer and are
// persisted with it.
type Spec struct {
	Type  string  `json:"type"`
	Size  int     `json:"size,omitempty"`
	Ratio float64 `json:"ratio,omitempty"`
}

// Encode captures the configuration of a layer as a Spec.
func Encode(l Layer) (Spec, error) {
	switch v := l.(type) {
	case *Linear:
		return Spec{Type: TypeLinear, Size: v.outSize}, nil
	case *LinearNoBias:
		return Spec{Type: TypeLinearNoBias, Size: v.outSize}, nil
	case *ReLU:
		return Spec{Type: TypeReLU}, nil
	case *Sigmoid:
		return Spec{Type: TypeSigmoid}, nil
	case *Tanh:
		return Spec{Type: TypeTanh}, nil
	case *Dropout:
		return Spec{Type: TypeDropout, Ratio: v.ratio}, nil
	case *Identity:
		return Spec{Type: TypeIdentity}, nil
	default:
		return Spec{}, fmt.Errorf("layer: cannot encode layer of type %T", l)
	}
}

// Decode builds a fresh layer from a Spec. The layer carries no weights
// until the owning network binds it to its parameter buffer.
func Decode(s Spec) (Layer, error) {
	switch s.Type {
	case TypeLinear:
		return NewLinear(s.Size), nil
	case TypeLinearNoBias:
		return NewLinearNoBias(s.Size), nil
	case TypeReLU:
		return NewReLU(), nil
	case TypeSigmoid:
		return NewSigmoid(), nil
	case TypeTanh:
		return NewTanh(), nil
	case TypeDropout:
		return NewDropout(s.Ratio), nil
	case TypeIdentity:
		return NewIdentity(), nil
	default:
		return nil, fmt.Errorf("layer: unknown layer type %q", s.Type)
	}
}
