package engine

import (
	"fmt"

	"github.com/perceptor-ml/perceptor/internal/activations"
)

// Config holds the recognized training options.
type Config struct {
	// LearningRate must lie in (0, 1].
	LearningRate float64
	// Epochs is the training budget; must be positive.
	Epochs int
	// BatchSize partitions each epoch into contiguous batches; must be
	// positive. The last batch may be short.
	BatchSize int
	// Activation names the hidden-layer activation: linear, sigmoid,
	// relu, or tanh.
	Activation string
	// DropoutRate is the probability of zeroing a hidden activation
	// during training; must lie in [0, 1).
	DropoutRate float64
	// HiddenLayers lists the hidden-layer widths in order; every width
	// must be positive.
	HiddenLayers []int
	// Seed fixes the run's random stream (weight init, shuffling,
	// dropout). Zero picks a time-based seed, making the run
	// non-reproducible.
	Seed int64
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		LearningRate: 0.001,
		Epochs:       100,
		BatchSize:    32,
		Activation:   "relu",
		DropoutRate:  0.2,
		HiddenLayers: []int{64, 32},
	}
}

// Validate checks every hyperparameter up front, before any network is
// built or any loop starts.
func (c Config) Validate() error {
	if c.Epochs <= 0 {
		return &InvalidHyperparameterError{Name: "epochs", Value: c.Epochs, Reason: "must be positive"}
	}
	if c.BatchSize <= 0 {
		return &InvalidHyperparameterError{Name: "batch_size", Value: c.BatchSize, Reason: "must be positive"}
	}
	if c.LearningRate <= 0 || c.LearningRate > 1 {
		return &InvalidHyperparameterError{Name: "learning_rate", Value: c.LearningRate, Reason: "must lie in (0, 1]"}
	}
	if c.DropoutRate < 0 || c.DropoutRate >= 1 {
		return &InvalidHyperparameterError{Name: "dropout_rate", Value: c.DropoutRate, Reason: "must lie in [0, 1)"}
	}
	for i, width := range c.HiddenLayers {
		if width <= 0 {
			return &InvalidHyperparameterError{
				Name:   "hidden_layers",
				Value:  width,
				Reason: fmt.Sprintf("layer %d width must be positive", i),
			}
		}
	}
	if _, err := activations.Parse(c.Activation); err != nil {
		return &InvalidHyperparameterError{Name: "activation", Value: c.Activation, Reason: err.Error()}
	}
	return nil
}
