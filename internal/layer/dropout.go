package layer

import "math/rand"

// Dropout implements inverted dropout regularization.
// During training each input is zeroed with probability p and survivors are
// rescaled by 1/(1-p). During inference inputs pass through unchanged.
type Dropout struct {
	p        float64
	training bool
	size     int

	rng *rand.Rand

	outputBuf []float64
	maskBuf   []float64
	gradInBuf []float64
}

// NewDropout creates a dropout layer. p is the probability of dropping an
// activation; randomness comes from the supplied rng.
func NewDropout(p float64, size int, rng *rand.Rand) *Dropout {
	return &Dropout{
		p:         p,
		training:  true,
		size:      size,
		rng:       rng,
		outputBuf: make([]float64, size),
		maskBuf:   make([]float64, size),
		gradInBuf: make([]float64, size),
	}
}

// SetTraining sets whether the layer is in training or inference mode.
func (d *Dropout) SetTraining(training bool) {
	d.training = training
}

// IsTraining returns whether the layer is in training mode.
func (d *Dropout) IsTraining() bool {
	return d.training
}

// Forward applies the dropout mask in training mode. With p == 0 or in
// inference mode the input passes through exactly and no random draws are
// consumed, so a zero rate is bit-for-bit identical to dropout disabled.
func (d *Dropout) Forward(x []float64) []float64 {
	if !d.training || d.p == 0 {
		copy(d.outputBuf, x)
		return d.outputBuf[:d.size]
	}

	scale := 1.0 / (1.0 - d.p)
	for i := 0; i < d.size; i++ {
		if d.rng.Float64() < d.p {
			d.maskBuf[i] = 0
			d.outputBuf[i] = 0
		} else {
			d.maskBuf[i] = 1
			d.outputBuf[i] = x[i] * scale
		}
	}
	return d.outputBuf[:d.size]
}

// Backward routes the gradient through the mask recorded by the last
// Forward, applying the same survivor scaling.
func (d *Dropout) Backward(grad []float64) []float64 {
	if !d.training || d.p == 0 {
		copy(d.gradInBuf, grad)
		return d.gradInBuf[:d.size]
	}

	scale := 1.0 / (1.0 - d.p)
	for i := 0; i < d.size; i++ {
		if d.maskBuf[i] > 0 {
			d.gradInBuf[i] = grad[i] * scale
		} else {
			d.gradInBuf[i] = 0
		}
	}
	return d.gradInBuf[:d.size]
}

// Params returns no parameters.
func (d *Dropout) Params() []float64 { return nil }

// SetParams is a no-op.
func (d *Dropout) SetParams(params []float64) {}

// Gradients returns no gradients.
func (d *Dropout) Gradients() []float64 { return nil }

// InSize returns the layer width.
func (d *Dropout) InSize() int { return d.size }

// OutSize returns the layer width.
func (d *Dropout) OutSize() int { return d.size }

// Rate returns the dropout probability.
func (d *Dropout) Rate() float64 { return d.p }
