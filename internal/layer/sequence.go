package layer

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Sequence is an ordered composition of layers forming the full forward
// computation of a network.
//
// The sequence owns the per-layer dimension bookkeeping and the cached
// intermediate activations a backward pass needs. It does not own any
// weights: SetWeights distributes non-owning views of a single flat
// parameter buffer across the layers, in order, each view sized to that
// layer's own weight count.
type Sequence struct {
	layers    []Layer
	inputDims []int
	layerDims [][]int

	// outputs[i] caches the output batch of layer i from the most recent
	// Forward call; the final layer writes into the caller's matrix
	// instead. deltas[i] caches the gradient with respect to layer i's
	// input from the most recent Backward call.
	outputs []*mat.Dense
	deltas  []*mat.Dense

	training bool
}

// NewSequence creates a Sequence from the given layers.
func NewSequence(layers ...Layer) *Sequence {
	return &Sequence{layers: layers}
}

// Add appends a layer to the sequence. Dimensions and weights must be
// re-propagated before the next numeric operation; the network container
// handles that.
func (s *Sequence) Add(l Layer) {
	s.layers = append(s.layers, l)
}

// Len returns the number of layers.
func (s *Sequence) Len() int { return len(s.layers) }

// Layers returns the ordered layer slice. Mutating it bypasses the
// container's bookkeeping; callers normally use Add.
func (s *Sequence) Layers() []Layer { return s.layers }

// InputDimensions returns the input shape the sequence's cached output
// dimensions were derived from, or nil if dimensions have never been
// propagated.
func (s *Sequence) InputDimensions() []int { return s.inputDims }

// SetInputDimensions stores a new input shape. ComputeOutputDimensions must
// run afterwards for per-layer shapes to match.
func (s *Sequence) SetInputDimensions(dims []int) {
	s.inputDims = append(s.inputDims[:0:0], dims...)
}

// ComputeOutputDimensions propagates the stored input shape through every
// layer in order, caching each layer's output shape. This recursively
// determines every layer's weight count for layers whose parameter count
// depends on shape.
func (s *Sequence) ComputeOutputDimensions() {
	dims := s.inputDims
	s.layerDims = s.layerDims[:0]
	for _, l := range s.layers {
		dims = l.ComputeOutputDimensions(dims)
		s.layerDims = append(s.layerDims, append([]int(nil), dims...))
	}
}

// OutputSize returns the flat output size of the final layer, or 0 if
// dimensions have not been propagated.
func (s *Sequence) OutputSize() int {
	if len(s.layerDims) == 0 {
		return 0
	}
	return product(s.layerDims[len(s.layerDims)-1])
}

// OutputSizeOf returns the flat output size of layer i. Only valid after
// ComputeOutputDimensions.
func (s *Sequence) OutputSizeOf(i int) int {
	return product(s.layerDims[i])
}

// WeightSize returns the aggregate weight count of all layers. Only valid
// after ComputeOutputDimensions.
func (s *Sequence) WeightSize() int {
	total := 0
	for _, l := range s.layers {
		total += l.WeightSize()
	}
	return total
}

// WeightSizes returns the per-layer weight counts in sequence order.
func (s *Sequence) WeightSizes() []int {
	sizes := make([]int, len(s.layers))
	for i, l := range s.layers {
		sizes[i] = l.WeightSize()
	}
	return sizes
}

// SetWeights rebinds every layer's weight view to its slice of the given
// flat parameter buffer, in sequence order. It must run again whenever the
// buffer's backing storage could have moved.
func (s *Sequence) SetWeights(parameters []float64) {
	offset := 0
	for _, l := range s.layers {
		size := l.WeightSize()
		l.SetWeights(parameters[offset : offset+size : offset+size])
		offset += size
	}
	if offset != len(parameters) {
		panic(fmt.Sprintf("layer: sequence weight size %d does not match parameter buffer size %d",
			offset, len(parameters)))
	}
}

// SetTraining switches every layer uniformly between training and
// inference behavior.
func (s *Sequence) SetTraining(training bool) {
	s.training = training
	for _, l := range s.layers {
		l.SetTraining(training)
	}
}

// Training reports the current mode.
func (s *Sequence) Training() bool { return s.training }

// Loss sums the auxiliary loss contributions of all layers.
func (s *Sequence) Loss() float64 {
	total := 0.0
	for _, l := range s.layers {
		total += l.Loss()
	}
	return total
}

// Forward runs layers [begin, end] on the input batch, writing the output
// of layer end into output (pre-sized by the caller to layer end's output
// size). Intermediate activations are cached for a subsequent Backward or
// Gradient call; when the range stops short of the final layer, layer
// end's output is cached as well so a later range starting at end+1 finds
// its input. An out-of-order range (end < begin) is a no-op.
func (s *Sequence) Forward(input mat.Matrix, output *mat.Dense, begin, end int) {
	if end < begin {
		return
	}
	_, batch := input.Dims()
	if len(s.outputs) != len(s.layers) {
		s.outputs = make([]*mat.Dense, len(s.layers))
	}

	cur := input
	for i := begin; i <= end; i++ {
		var dst *mat.Dense
		if i == end {
			dst = output
		} else {
			s.outputs[i] = ensureDense(s.outputs[i], s.OutputSizeOf(i), batch)
			dst = s.outputs[i]
		}
		s.layers[i].Forward(cur, dst)
		cur = dst
	}

	if end < len(s.layers)-1 {
		s.outputs[end] = ensureDense(s.outputs[end], s.OutputSizeOf(end), batch)
		s.outputs[end].Copy(output)
	}
}

// Backward propagates the error gradient through every layer, back to
// front, using the activations cached by the matching Forward call. input
// is the original input batch, output the final layer output, and
// errorGrad the gradient with respect to that output. The gradient with
// respect to the network input lands in delta (pre-sized to match input).
// Per-layer input gradients are cached for a subsequent Gradient call.
func (s *Sequence) Backward(input, output, errorGrad mat.Matrix, delta *mat.Dense) {
	n := len(s.layers)
	_, batch := errorGrad.Dims()
	if len(s.deltas) != n {
		s.deltas = make([]*mat.Dense, n)
	}

	curGrad := errorGrad
	for i := n - 1; i >= 0; i-- {
		var dst *mat.Dense
		if i == 0 {
			dst = delta
		} else {
			s.deltas[i] = ensureDense(s.deltas[i], s.OutputSizeOf(i-1), batch)
			dst = s.deltas[i]
		}
		s.layers[i].Backward(s.layerInput(i, input), s.layerOutput(i, output), curGrad, dst)
		curGrad = dst
	}
}

// Gradient computes every layer's weight gradient into gradient, a buffer
// laid out exactly like the parameter buffer. It relies on the activations
// cached by Forward and the per-layer deltas cached by Backward.
func (s *Sequence) Gradient(input, errorGrad mat.Matrix, gradient []float64) {
	offset := 0
	n := len(s.layers)
	for i := 0; i < n; i++ {
		size := s.layers[i].WeightSize()
		var outGrad mat.Matrix
		if i == n-1 {
			outGrad = errorGrad
		} else {
			outGrad = s.deltas[i+1]
		}
		s.layers[i].Gradient(s.layerInput(i, input), outGrad, gradient[offset:offset+size])
		offset += size
	}
}

// layerInput returns the input batch layer i consumed during the most
// recent Forward call.
func (s *Sequence) layerInput(i int, input mat.Matrix) mat.Matrix {
	if i == 0 {
		return input
	}
	return s.outputs[i-1]
}

// layerOutput returns the output batch layer i produced during the most
// recent Forward call.
func (s *Sequence) layerOutput(i int, output mat.Matrix) mat.Matrix {
	if i == len(s.layers)-1 {
		return output
	}
	return s.outputs[i]
}

// ensureDense reuses m when its shape already matches, otherwise allocates.
func ensureDense(m *mat.Dense, rows, cols int) *mat.Dense {
	if m != nil {
		if r, c := m.Dims(); r == rows && c == cols {
			return m
		}
	}
	return mat.NewDense(rows, cols, nil)
}
