// Package dataset defines the sample collection the engine consumes: an
// ordered list of named-feature samples with optional targets, plus the
// task type that decides how targets are interpreted.
package dataset

import "sort"

// Task indicates how targets are interpreted.
type Task int

const (
	// Classification treats targets as discrete class labels.
	Classification Task = iota
	// Regression treats targets as continuous scalars.
	Regression
)

// String returns the task name.
func (t Task) String() string {
	switch t {
	case Classification:
		return "classification"
	case Regression:
		return "regression"
	default:
		return "unknown"
	}
}

// Sample is one observation: a named-feature mapping and an optional target.
// Target is nil for unlabeled samples (prediction input).
type Sample struct {
	Features map[string]float64
	Target   *float64
}

// Labeled reports whether the sample carries a target.
func (s Sample) Labeled() bool {
	return s.Target != nil
}

// Dataset is an ordered collection of samples.
//
// FeatureOrder fixes the position of each feature in the vectors handed to
// the network. When empty, the order is derived deterministically from the
// first sample's feature names, sorted.
type Dataset struct {
	Task         Task
	FeatureOrder []string
	Samples      []Sample
}

// Len returns the number of samples.
func (d *Dataset) Len() int {
	return len(d.Samples)
}

// ResolveOrder returns the effective feature order. The result is stable
// across calls for the same dataset.
func (d *Dataset) ResolveOrder() []string {
	if len(d.FeatureOrder) > 0 {
		return d.FeatureOrder
	}
	if len(d.Samples) == 0 {
		return nil
	}
	names := make([]string, 0, len(d.Samples[0].Features))
	for name := range d.Samples[0].Features {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Vector lays out a sample's features in the given order. Features absent
// from the sample contribute 0.
func Vector(s Sample, order []string) []float64 {
	vec := make([]float64, len(order))
	for i, name := range order {
		vec[i] = s.Features[name]
	}
	return vec
}

// Classes returns the distinct observed target values in ascending order.
// The position of a label in the result is its class index.
func (d *Dataset) Classes() []float64 {
	seen := make(map[float64]bool)
	var classes []float64
	for _, s := range d.Samples {
		if s.Target == nil {
			continue
		}
		if !seen[*s.Target] {
			seen[*s.Target] = true
			classes = append(classes, *s.Target)
		}
	}
	sort.Float64s(classes)
	return classes
}
