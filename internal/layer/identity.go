package layer

// Identity is a parameterless passthrough layer. It fronts the network so
// the first hidden layer sees a layer boundary with the dataset's feature
// width on both sides.
type Identity struct {
	size      int
	outputBuf []float64
	gradBuf   []float64
}

// NewIdentity creates an identity layer of the given width.
func NewIdentity(size int) *Identity {
	return &Identity{
		size:      size,
		outputBuf: make([]float64, size),
		gradBuf:   make([]float64, size),
	}
}

// Forward copies the input through unchanged.
func (l *Identity) Forward(x []float64) []float64 {
	copy(l.outputBuf, x)
	return l.outputBuf[:l.size]
}

// Backward passes the gradient through unchanged.
func (l *Identity) Backward(grad []float64) []float64 {
	copy(l.gradBuf, grad)
	return l.gradBuf[:l.size]
}

// Params returns no parameters.
func (l *Identity) Params() []float64 { return nil }

// SetParams is a no-op.
func (l *Identity) SetParams(params []float64) {}

// Gradients returns no gradients.
func (l *Identity) Gradients() []float64 { return nil }

// InSize returns the layer width.
func (l *Identity) InSize() int { return l.size }

// OutSize returns the layer width.
func (l *Identity) OutSize() int { return l.size }
