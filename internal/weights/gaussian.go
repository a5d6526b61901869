package weights

import "gonum.org/v1/gonum/stat/distuv"

// Gaussian initializes weights from N(Mean, StdDev²).
type Gaussian struct {
	Mean   float64
	StdDev float64
}

// NewGaussian creates a normal-distribution initializer.
func NewGaussian(mean, stdDev float64) *Gaussian {
	return &Gaussian{Mean: mean, StdDev: stdDev}
}

// Fill writes normal samples over the view.
func (g *Gaussian) Fill(weights []float64) {
	dist := distuv.Normal{Mu: g.Mean, Sigma: g.StdDev}
	for i := range weights {
		weights[i] = dist.Rand()
	}
}

// Type returns the persisted type name.
func (*Gaussian) Type() string { return TypeGaussian }
