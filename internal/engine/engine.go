// Package engine exposes the training, prediction, and evaluation surface
// over the dense feed-forward network.
package engine

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/perceptor-ml/perceptor/internal/activations"
	"github.com/perceptor-ml/perceptor/internal/dataset"
	"github.com/perceptor-ml/perceptor/internal/metrics"
	"github.com/perceptor-ml/perceptor/internal/net"
	"github.com/perceptor-ml/perceptor/internal/opt"
	"github.com/perceptor-ml/perceptor/internal/trainer"
)

// Regression confidences are not calibrated; they are drawn from a fixed
// band so callers see a plausible, clearly-synthetic score.
const (
	regressionConfidenceBase = 0.7
	regressionConfidenceSpan = 0.2
)

// Engine owns one network and the bookkeeping needed to feed it: the
// feature order and label mapping captured at training time.
//
// A mutex serializes Train, Predict, and Evaluate: training mutates weights
// in place and the layers reuse forward buffers, so one call at a time per
// Engine.
type Engine struct {
	mu sync.Mutex

	task dataset.Task

	network      *net.Network
	featureOrder []string
	classes      []float64
	classIndex   map[float64]int

	// confRng backs the synthetic regression confidences.
	confRng *rand.Rand
}

// New creates an engine for the given task. No network exists until the
// first successful Train call.
func New(task dataset.Task) *Engine {
	return &Engine{task: task}
}

// TrainResult reports the outcome of a training call.
type TrainResult struct {
	Success         bool
	Message         string
	EpochsCompleted int
	// Converged is true iff the epoch loop ran to completion without
	// early stopping.
	Converged bool
	FinalLoss float64
	// Metrics summarizes a post-training pass over the training samples.
	Metrics metrics.Summary
}

// Prediction is one interpreted network output.
type Prediction struct {
	// Value is the predicted label (classification) or scalar
	// (regression).
	Value float64
	// Confidence is the winning class score for classification. For
	// regression it is synthetic, not a calibrated estimate.
	Confidence float64
	// Scores holds the raw output-layer value per class index.
	// Nil for regression.
	Scores []float64
}

// Built reports whether a trained network exists.
func (e *Engine) Built() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.network != nil
}

// Train validates the configuration and dataset, rebuilds the network from
// scratch, and runs the mini-batch SGD loop. Every call starts fresh;
// training is not resumable.
func (e *Engine) Train(ds *dataset.Dataset, cfg Config) (TrainResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := cfg.Validate(); err != nil {
		return TrainResult{}, err
	}
	if ds.Len() == 0 {
		return TrainResult{}, ErrEmptyDataset
	}

	order := ds.ResolveOrder()
	if len(order) == 0 {
		return TrainResult{}, fmt.Errorf("engine: samples carry no features")
	}

	classes := ds.Classes()
	classIndex := make(map[float64]int, len(classes))
	for i, label := range classes {
		classIndex[label] = i
	}

	outputs := 1
	if e.task == dataset.Classification && len(classes) > 1 {
		outputs = len(classes)
	}

	inputs := make([][]float64, 0, ds.Len())
	targets := make([][]float64, 0, ds.Len())
	for i, s := range ds.Samples {
		if !s.Labeled() {
			return TrainResult{}, fmt.Errorf("engine: sample %d has no target", i)
		}
		inputs = append(inputs, dataset.Vector(s, order))
		targets = append(targets, encodeTarget(e.task, *s.Target, classIndex, outputs))
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	act, err := activations.Parse(cfg.Activation)
	if err != nil {
		return TrainResult{}, err
	}

	network := net.Build(len(order), cfg.HiddenLayers, outputs, act,
		cfg.DropoutRate, &opt.SGD{LearningRate: cfg.LearningRate}, rng)

	res, err := trainer.Run(network, inputs, targets, trainer.Options{
		Epochs:    cfg.Epochs,
		BatchSize: cfg.BatchSize,
		Rng:       rng,
	})
	if err != nil {
		return TrainResult{}, err
	}

	e.network = network
	e.featureOrder = order
	e.classes = classes
	e.classIndex = classIndex
	e.confRng = rand.New(rand.NewSource(seed + 1))

	result := TrainResult{
		Success:         true,
		EpochsCompleted: res.EpochsCompleted,
		Converged:       res.Converged,
		FinalLoss:       res.FinalLoss,
		Metrics:         e.summarize(inputs, ds),
	}
	if res.Converged {
		result.Message = fmt.Sprintf("training completed after %d epochs", res.EpochsCompleted)
	} else {
		result.Message = fmt.Sprintf("training stopped early at epoch %d: loss diverged from best %.6f", res.EpochsCompleted, res.BestLoss)
	}
	return result, nil
}

// Predict runs the forward pass with dropout disabled and interprets the
// raw outputs. Calling before a successful Train, or with a
// differently-shaped dataset, yields a DimensionMismatchError.
func (e *Engine) Predict(ds *dataset.Dataset) ([]Prediction, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.predict(ds)
}

func (e *Engine) predict(ds *dataset.Dataset) ([]Prediction, error) {
	if err := e.checkShape(ds); err != nil {
		return nil, err
	}

	preds := make([]Prediction, 0, ds.Len())
	for _, s := range ds.Samples {
		out, err := e.network.Forward(dataset.Vector(s, e.featureOrder))
		if err != nil {
			return nil, err
		}
		preds = append(preds, e.interpret(out))
	}
	return preds, nil
}

// Evaluate runs predictions over a labeled dataset and returns summary
// metrics with a formatted report.
func (e *Engine) Evaluate(ds *dataset.Dataset) (metrics.Summary, string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if ds.Len() == 0 {
		return metrics.Summary{}, "", ErrEmptyDataset
	}
	if err := e.checkShape(ds); err != nil {
		return metrics.Summary{}, "", err
	}
	for i, s := range ds.Samples {
		if !s.Labeled() {
			return metrics.Summary{}, "", fmt.Errorf("engine: sample %d has no target", i)
		}
	}

	inputs := make([][]float64, 0, ds.Len())
	for _, s := range ds.Samples {
		inputs = append(inputs, dataset.Vector(s, e.featureOrder))
	}
	summary := e.summarize(inputs, ds)
	return summary, summary.Report(), nil
}

// summarize forwards every vector and scores the outputs against the
// dataset's targets. Callers hold the lock and have validated shapes.
func (e *Engine) summarize(inputs [][]float64, ds *dataset.Dataset) metrics.Summary {
	if e.task == dataset.Classification {
		predicted := make([]int, len(inputs))
		actual := make([]int, len(inputs))
		for i, vec := range inputs {
			out := e.forward(vec)
			predicted[i] = argmax(out)
			if idx, ok := e.classIndex[*ds.Samples[i].Target]; ok {
				actual[i] = idx
			} else {
				actual[i] = -1
			}
		}
		return metrics.Classification(predicted, actual, len(e.classes))
	}

	predicted := make([]float64, len(inputs))
	actual := make([]float64, len(inputs))
	for i, vec := range inputs {
		predicted[i] = e.forward(vec)[0]
		actual[i] = *ds.Samples[i].Target
	}
	return metrics.Regression(predicted, actual)
}

func (e *Engine) forward(vec []float64) []float64 {
	out, err := e.network.Forward(vec)
	if err != nil {
		// Shapes were validated against the network before the loop.
		panic(err)
	}
	return out
}

// checkShape confirms a network exists and the dataset resolves to the
// feature count it was trained on.
func (e *Engine) checkShape(ds *dataset.Dataset) error {
	if e.network == nil {
		return &net.DimensionMismatchError{Expected: 0, Got: len(ds.ResolveOrder())}
	}
	if got := len(ds.ResolveOrder()); got != len(e.featureOrder) {
		return &net.DimensionMismatchError{Expected: len(e.featureOrder), Got: got}
	}
	return nil
}

func (e *Engine) interpret(out []float64) Prediction {
	if e.task == dataset.Regression {
		return Prediction{
			Value:      out[0],
			Confidence: regressionConfidenceBase + regressionConfidenceSpan*e.confRng.Float64(),
		}
	}

	idx := argmax(out)
	p := Prediction{
		Value:      float64(idx),
		Confidence: out[idx],
		Scores:     append([]float64(nil), out...),
	}
	if idx < len(e.classes) {
		p.Value = e.classes[idx]
	}
	return p
}

// encodeTarget turns a raw target into the vector the loss compares
// against: one-hot for classification, singleton for regression.
func encodeTarget(task dataset.Task, target float64, classIndex map[float64]int, outputs int) []float64 {
	vec := make([]float64, outputs)
	if task == dataset.Regression {
		vec[0] = target
		return vec
	}
	if idx, ok := classIndex[target]; ok && idx < outputs {
		vec[idx] = 1
	}
	return vec
}

func argmax(out []float64) int {
	best := 0
	for i := 1; i < len(out); i++ {
		if out[i] > out[best] {
			best = i
		}
	}
	return best
}
