// Package activations provides the closed set of activation functions
// supported by dense layers.
package activations

import (
	"fmt"
	"math"
	"strings"
)

// Activation is an activation function with derivative.
//
// Derivative is expressed in terms of the activation output y rather than
// the pre-activation input, which is what the backward pass has cached:
// sigmoid y(1-y), tanh 1-y², ReLU 1 for y>0, linear 1.
type Activation interface {
	// Activate computes f(x)
	Activate(x float64) float64

	// Derivative computes f'(x) given y = f(x)
	Derivative(y float64) float64
}

// Linear is the identity activation.
type Linear struct{}

// Activate returns x unchanged
func (l Linear) Activate(x float64) float64 {
	return x
}

// Derivative returns 1
func (l Linear) Derivative(y float64) float64 {
	return 1
}

// Sigmoid activation function.
type Sigmoid struct{}

// Activate computes 1 / (1 + exp(-x))
func (s Sigmoid) Activate(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Derivative computes y * (1 - y)
func (s Sigmoid) Derivative(y float64) float64 {
	return y * (1 - y)
}

// ReLU activation function.
type ReLU struct{}

// Activate computes max(0, x)
func (r ReLU) Activate(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

// Derivative returns 1 if y > 0, else 0
func (r ReLU) Derivative(y float64) float64 {
	if y > 0 {
		return 1
	}
	return 0
}

// Tanh activation function.
type Tanh struct{}

// Activate computes tanh(x)
func (t Tanh) Activate(x float64) float64 {
	return math.Tanh(x)
}

// Derivative computes 1 - y^2
func (t Tanh) Derivative(y float64) float64 {
	return 1 - y*y
}

// Name returns the canonical tag for a known activation.
func Name(a Activation) string {
	switch a.(type) {
	case Linear:
		return "linear"
	case Sigmoid:
		return "sigmoid"
	case ReLU:
		return "relu"
	case Tanh:
		return "tanh"
	default:
		return fmt.Sprintf("%T", a)
	}
}

// Parse resolves an activation tag. The set is closed: an unrecognized tag
// is an error, never a silent identity.
func Parse(name string) (Activation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "linear":
		return Linear{}, nil
	case "sigmoid":
		return Sigmoid{}, nil
	case "relu":
		return ReLU{}, nil
	case "tanh":
		return Tanh{}, nil
	default:
		return nil, fmt.Errorf("activations: unknown activation %q (want linear, sigmoid, relu or tanh)", name)
	}
}
