// Package opt provides optimization algorithms.
package opt

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Optimizer applies gradients to a parameter group, updating params in
// place. id identifies the group (the layer index within a network) so
// stateful optimizers can keep per-group moment buffers; callers must pass
// equally-shaped slices for the same id on every step.
type Optimizer interface {
	Step(id int, params, gradients []float64)
}

// SGD is stochastic gradient descent with optional momentum.
//
// Without momentum: param -= lr * grad.
// With momentum: velocity = momentum*velocity + grad; param -= lr * velocity.
type SGD struct {
	LearningRate float64
	Momentum     float64

	velocities map[int][]float64
}

// Step updates params in place.
func (s *SGD) Step(id int, params, gradients []float64) {
	if s.Momentum == 0 {
		floats.AddScaled(params, -s.LearningRate, gradients)
		return
	}

	if s.velocities == nil {
		s.velocities = make(map[int][]float64)
	}
	v, ok := s.velocities[id]
	if !ok {
		v = make([]float64, len(params))
		s.velocities[id] = v
	}

	floats.Scale(s.Momentum, v)
	floats.Add(v, gradients)
	floats.AddScaled(params, -s.LearningRate, v)
}

// Adam optimizer with bias-corrected first and second moment estimates.
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
type Adam struct {
	LearningRate float64
	Beta1        float64
	Beta2        float64
	Epsilon      float64

	steps map[int]int
	m     map[int][]float64
	v     map[int][]float64
}

// NewAdam creates an Adam optimizer with the usual defaults
// (beta1=0.9, beta2=0.999, eps=1e-8).
func NewAdam(learningRate float64) *Adam {
	return &Adam{
		LearningRate: learningRate,
		Beta1:        0.9,
		Beta2:        0.999,
		Epsilon:      1e-8,
	}
}

// Step updates params in place using the Adam update rule.
func (a *Adam) Step(id int, params, gradients []float64) {
	if a.m == nil {
		a.steps = make(map[int]int)
		a.m = make(map[int][]float64)
		a.v = make(map[int][]float64)
	}
	m, ok := a.m[id]
	if !ok {
		m = make([]float64, len(params))
		a.m[id] = m
		a.v[id] = make([]float64, len(params))
	}
	v := a.v[id]

	a.steps[id]++
	t := float64(a.steps[id])
	correction1 := 1 - math.Pow(a.Beta1, t)
	correction2 := 1 - math.Pow(a.Beta2, t)

	for i := range params {
		g := gradients[i]
		m[i] = a.Beta1*m[i] + (1-a.Beta1)*g
		v[i] = a.Beta2*v[i] + (1-a.Beta2)*g*g

		mHat := m[i] / correction1
		vHat := v[i] / correction2
		params[i] -= a.LearningRate * mHat / (math.Sqrt(vHat) + a.Epsilon)
	}
}
