package engine

import (
	"errors"
	"fmt"
)

// ErrEmptyDataset is returned when a training or evaluation call receives a
// dataset with no samples.
var ErrEmptyDataset = errors.New("engine: dataset has no samples")

// InvalidHyperparameterError reports a configuration value outside its
// allowed range. It is surfaced before training touches the network.
type InvalidHyperparameterError struct {
	Name   string
	Value  any
	Reason string
}

func (e *InvalidHyperparameterError) Error() string {
	return fmt.Sprintf("engine: invalid hyperparameter %s=%v: %s", e.Name, e.Value, e.Reason)
}
