// Package net provides the core network type: an ordered, exclusively-owned
// list of layers with forward, backward, and optimizer-step plumbing.
package net

import (
	"fmt"

	"github.com/perceptor-ml/perceptor/internal/layer"
	"github.com/perceptor-ml/perceptor/internal/loss"
	"github.com/perceptor-ml/perceptor/internal/opt"
)

// DimensionMismatchError reports an input whose feature count disagrees with
// the network. Expected == 0 means no network has been built yet.
type DimensionMismatchError struct {
	Expected int
	Got      int
}

func (e *DimensionMismatchError) Error() string {
	if e.Expected == 0 {
		return fmt.Sprintf("net: no trained network to accept %d features", e.Got)
	}
	return fmt.Sprintf("net: input has %d features, network expects %d", e.Got, e.Expected)
}

// Network is a collection of layers that can be forwarded and backwarded.
//
// A Network is not safe for concurrent use: layers reuse internal buffers,
// and training mutates weights in place. One training run at a time per
// Network.
type Network struct {
	layers []layer.Layer
	loss   loss.Loss
	opt    opt.Optimizer

	// Pre-allocated loss-gradient buffer for the training loop.
	lossGradBuf []float64
}

// New creates a new neural network with the given layers.
func New(layers []layer.Layer, loss loss.Loss, optimizer opt.Optimizer) *Network {
	return &Network{
		layers: layers,
		loss:   loss,
		opt:    optimizer,
	}
}

// InSize returns the feature count the network accepts.
func (n *Network) InSize() int {
	return n.layers[0].InSize()
}

// OutSize returns the width of the output layer.
func (n *Network) OutSize() int {
	return n.layers[len(n.layers)-1].OutSize()
}

// Forward performs a forward pass through all layers. The input length is
// validated once here; layer dimensions chain by construction.
func (n *Network) Forward(x []float64) ([]float64, error) {
	if len(x) != n.InSize() {
		return nil, &DimensionMismatchError{Expected: n.InSize(), Got: len(x)}
	}
	return n.forward(x), nil
}

func (n *Network) forward(x []float64) []float64 {
	curr := x
	for i := range n.layers {
		curr = n.layers[i].Forward(curr)
	}
	return curr
}

// Backward performs a backward pass through all layers, filling each layer's
// gradient buffers and returning the error propagated past the input layer.
func (n *Network) Backward(grad []float64) []float64 {
	curr := grad
	for i := len(n.layers) - 1; i >= 0; i-- {
		curr = n.layers[i].Backward(curr)
	}
	return curr
}

// Step hands each layer's (params, gradients) pair to the optimizer and
// writes the updated parameters back. Parameterless layers are skipped.
func (n *Network) Step() {
	for i, l := range n.layers {
		gradients := l.Gradients()
		if len(gradients) == 0 {
			continue
		}
		params := l.Params()
		n.opt.Step(i, params, gradients)
		l.SetParams(params)
	}
}

// Train performs a single-sample training step: forward, loss, backward,
// optimizer step. The caller is responsible for validating dimensions before
// the loop; Train itself stays off the error path.
func (n *Network) Train(x, y []float64) float64 {
	yPred := n.forward(x)

	l := n.loss.Forward(yPred, y)

	if cap(n.lossGradBuf) < len(yPred) {
		n.lossGradBuf = make([]float64, len(yPred))
	}
	grad := n.lossGradBuf[:len(yPred)]

	if inPlace, ok := n.loss.(loss.BackwardInPlacer); ok {
		inPlace.BackwardInPlace(yPred, y, grad)
	} else {
		grad = n.loss.Backward(yPred, y)
	}

	_ = n.Backward(grad)
	n.Step()

	return l
}

// SetTraining toggles training mode on every dropout layer. Inference
// callers disable it so dropout becomes a passthrough.
func (n *Network) SetTraining(training bool) {
	for _, l := range n.layers {
		if d, ok := l.(*layer.Dropout); ok {
			d.SetTraining(training)
		}
	}
}

// Layers returns the network's layers slice.
func (n *Network) Layers() []layer.Layer {
	return n.layers
}
