// Package perceptor re-exports the public surface of the engine: dataset
// types, configuration, and the train/predict/evaluate API.
package perceptor

import (
	"github.com/perceptor-ml/perceptor/internal/activations"
	"github.com/perceptor-ml/perceptor/internal/dataset"
	"github.com/perceptor-ml/perceptor/internal/engine"
	"github.com/perceptor-ml/perceptor/internal/metrics"
)

// Re-export common types for easier access
type (
	Engine      = engine.Engine
	Config      = engine.Config
	TrainResult = engine.TrainResult
	Prediction  = engine.Prediction
	Summary     = metrics.Summary

	Task    = dataset.Task
	Sample  = dataset.Sample
	Dataset = dataset.Dataset

	Activation = activations.Activation

	InvalidHyperparameterError = engine.InvalidHyperparameterError
)

// Tasks
const (
	Classification = dataset.Classification
	Regression     = dataset.Regression
)

// ErrEmptyDataset is returned by Train and Evaluate on a dataset with no
// samples.
var ErrEmptyDataset = engine.ErrEmptyDataset

// New creates an engine for the given task.
func New(task Task) *Engine {
	return engine.New(task)
}

// DefaultConfig returns the documented training defaults.
func DefaultConfig() Config {
	return engine.DefaultConfig()
}

// Activations
var (
	Linear  = activations.Linear{}
	Sigmoid = activations.Sigmoid{}
	ReLU    = activations.ReLU{}
	Tanh    = activations.Tanh{}
)

// ParseActivation resolves an activation tag from the closed set
// {linear, sigmoid, relu, tanh}.
func ParseActivation(name string) (Activation, error) {
	return activations.Parse(name)
}

// Target wraps a label or scalar for use as a Sample target.
func Target(v float64) *float64 {
	return &v
}
