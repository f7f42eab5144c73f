// Package layer provides neural network layer implementations.
package layer

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/perceptor-ml/perceptor/internal/activations"
)

// Layer is a neural network layer.
//
// Backward computes gradients into the layer's buffers and returns the error
// propagated to the previous layer; it never touches the parameters. A
// separate Optimizer consumes Params/Gradients and writes the update back
// through SetParams.
type Layer interface {
	Forward(x []float64) []float64
	Backward(grad []float64) []float64
	Params() []float64
	SetParams([]float64)
	Gradients() []float64
	InSize() int
	OutSize() int
}

// Dense is a fully connected layer computing y = act(Wx + b).
// Weights are stored as a row-major contiguous slice with pre-allocated
// buffers so the training hot path does not allocate.
type Dense struct {
	// Weight for output i, input j lives at weights[i*in + j].
	weights []float64
	biases  []float64
	act     activations.Activation
	outSize int
	inSize  int

	// Caches from the last Forward, consumed by Backward.
	inputBuf  []float64
	outputBuf []float64

	// Gradient buffers filled by Backward.
	gradWBuf  []float64
	gradBBuf  []float64
	gradInBuf []float64
	dzBuf     []float64
}

// NewDense creates a dense layer with Xavier/Glorot initialized parameters.
// All randomness is drawn from rng so construction is reproducible for a
// fixed seed.
func NewDense(in, out int, act activations.Activation, rng *rand.Rand) *Dense {
	weights := make([]float64, out*in)
	biases := make([]float64, out)

	// Xavier/Glorot: uniform in [-scale, scale), scale = sqrt(2/(in+out))
	scale := math.Sqrt(2.0 / (float64(in) + float64(out)))
	for i := range weights {
		weights[i] = rng.Float64()*2*scale - scale
	}
	for i := range biases {
		biases[i] = rng.Float64()*2*scale - scale
	}

	return &Dense{
		weights:   weights,
		biases:    biases,
		act:       act,
		outSize:   out,
		inSize:    in,
		inputBuf:  make([]float64, in),
		outputBuf: make([]float64, out),
		gradWBuf:  make([]float64, out*in),
		gradBBuf:  make([]float64, out),
		gradInBuf: make([]float64, in),
		dzBuf:     make([]float64, out),
	}
}

// Forward computes act(Wx + b), caching the input and the post-activation
// output for the backward pass.
func (d *Dense) Forward(x []float64) []float64 {
	copy(d.inputBuf, x)

	input := d.inputBuf
	output := d.outputBuf
	inSize := d.inSize

	for o := 0; o < d.outSize; o++ {
		wBase := o * inSize
		sum := d.biases[o] + floats.Dot(d.weights[wBase:wBase+inSize], input)
		output[o] = d.act.Activate(sum)
	}

	return output[:d.outSize]
}

// Backward computes gradients for weights, biases, and input from the
// gradient of the loss w.r.t. this layer's output.
//
// The activation derivative is evaluated at the cached output, then the
// scaled error is distributed: dL/dW[o,i] = dz[o]*input[i], dL/db[o] = dz[o],
// and the propagated error dL/dx[i] = sum_o dz[o]*W[o,i].
func (d *Dense) Backward(grad []float64) []float64 {
	outSize := d.outSize
	inSize := d.inSize
	weights := d.weights
	input := d.inputBuf
	dz := d.dzBuf
	gradW := d.gradWBuf
	gradIn := d.gradInBuf

	for o := 0; o < outSize; o++ {
		dz[o] = grad[o] * d.act.Derivative(d.outputBuf[o])
		d.gradBBuf[o] = dz[o]
	}

	for o := 0; o < outSize; o++ {
		dzo := dz[o]
		wBase := o * inSize
		for i := 0; i < inSize; i++ {
			gradW[wBase+i] = dzo * input[i]
		}
	}

	for i := 0; i < inSize; i++ {
		sum := 0.0
		for o := 0; o < outSize; o++ {
			sum += dz[o] * weights[o*inSize+i]
		}
		gradIn[i] = sum
	}

	return gradIn[:inSize]
}

// Params returns all dense layer parameters flattened (weights then biases).
func (d *Dense) Params() []float64 {
	params := make([]float64, 0, len(d.weights)+len(d.biases))
	params = append(params, d.weights...)
	params = append(params, d.biases...)
	return params
}

// SetParams updates weights and biases from a flattened slice (in-place).
func (d *Dense) SetParams(params []float64) {
	copy(d.weights, params[:len(d.weights)])
	copy(d.biases, params[len(d.weights):])
}

// Gradients returns all dense layer gradients flattened.
func (d *Dense) Gradients() []float64 {
	gradients := make([]float64, 0, len(d.gradWBuf)+len(d.gradBBuf))
	gradients = append(gradients, d.gradWBuf...)
	gradients = append(gradients, d.gradBBuf...)
	return gradients
}

// SetWeight sets a single weight at (row, col).
func (d *Dense) SetWeight(row, col int, val float64) {
	d.weights[row*d.inSize+col] = val
}

// SetBias sets a single bias.
func (d *Dense) SetBias(idx int, val float64) {
	d.biases[idx] = val
}

// GetWeight gets a single weight at (row, col).
func (d *Dense) GetWeight(row, col int) float64 {
	return d.weights[row*d.inSize+col]
}

// GetBias gets a single bias.
func (d *Dense) GetBias(idx int) float64 {
	return d.biases[idx]
}

// InSize returns the input size of the layer.
func (d *Dense) InSize() int {
	return d.inSize
}

// OutSize returns the output size of the layer.
func (d *Dense) OutSize() int {
	return d.outSize
}

// Activation returns the activation function used by this layer.
func (d *Dense) Activation() activations.Activation {
	return d.act
}
