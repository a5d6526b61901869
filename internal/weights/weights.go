package weights

import (
	"fmt"
	"math/rand"
)

// Initializer is the initialization-rule contract: it fills one layer's
// view of a freshly allocated flat weight buffer with starting values.
type Initializer interface {
	// Fill writes initial values over the given weight view.
	Fill(weights []float64)

	// Type names the rule for persisted network state.
	Type() string
}

// Initialize applies rule to a flat parameter buffer, one layer at a time,
// walking the per-layer weight sizes in sequence order. The buffer length
// must equal the sum of weightSizes.
func Initialize(rule Initializer, weightSizes []int, parameters []float64) {
	offset := 0
	for _, size := range weightSizes {
		rule.Fill(parameters[offset : offset+size])
		offset += size
	}
	if offset != len(parameters) {
		panic(fmt.Sprintf("weights: layer weight sizes total %d but parameter buffer holds %d",
			offset, len(parameters)))
	}
}

// Initializer type names used in persisted network state.
const (
	TypeRandom   = "random"
	TypeGaussian = "gaussian"
	TypeConst    = "const"
)

// Random initializes weights uniformly in [Low, High).
type Random struct {
	Low  float64
	High float64
}

// NewRandom creates a uniform initializer over [low, high).
func NewRandom(low, high float64) *Random {
	return &Random{Low: low, High: high}
}

// Fill writes uniform values over the view.
func (r *Random) Fill(weights []float64) {
	for i := range weights {
		weights[i] = r.Low + rand.Float64()*(r.High-r.Low)
	}
}

// Type returns the persisted type name.
func (*Random) Type() string { return TypeRandom }

// Const initializes every weight to a fixed value.
type Const struct {
	Value float64
}

// NewConst creates a constant initializer.
func NewConst(value float64) *Const {
	return &Const{Value: value}
}

// Fill writes the constant over the view.
func (c *Const) Fill(weights []float64) {
	for i := range weights {
		weights[i] = c.Value
	}
}

// Type returns the persisted type name.
func (*Const) Type() string { return TypeConst }

// Spec is the serializable configuration of an initialization rule.
type Spec struct {
	Type   string  `json:"type"`
	Low    float64 `json:"low,omitempty"`
	High   float64 `json:"high,omitempty"`
	Mean   float64 `json:"mean,omitempty"`
	StdDev float64 `json:"stdDev,omitempty"`
	Value  float64 `json:"value,omitempty"`
}

// Encode captures an initializer's configuration as a Spec.
func Encode(rule Initializer) (Spec, error) {
	switch v := rule.(type) {
	case *Random:
		return Spec{Type: TypeRandom, Low: v.Low, High: v.High}, nil
	case *Gaussian:
		return Spec{Type: TypeGaussian, Mean: v.Mean, StdDev: v.StdDev}, nil
	case *Const:
		return Spec{Type: TypeConst, Value: v.Value}, nil
	default:
		return Spec{}, fmt.Errorf("weights: cannot encode initializer of type %T", rule)
	}
}

// Decode builds an initializer from a Spec.
func Decode(s Spec) (Initializer, error) {
	switch s.Type {
	case TypeRandom:
		return NewRandom(s.Low, s.High), nil
	case TypeGaussian:
		return NewGaussian(s.Mean, s.StdDev), nil
	case TypeConst:
		return NewConst(s.Value), nil
	default:
		return nil, fmt.Errorf("weights: unknown initializer type %q", s.Type)
	}
}
