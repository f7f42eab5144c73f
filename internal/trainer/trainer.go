// Package trainer drives mini-batch stochastic gradient descent over a
// prepared sample set, with per-epoch reshuffling and a divergence-based
// early stop.
package trainer

import (
	"errors"
	"log"
	"math"
	"math/rand"

	"github.com/perceptor-ml/perceptor/internal/net"
)

// Early stopping: only consulted after the grace window, and only fires when
// the epoch loss exceeds the best loss so far by the divergence factor.
const (
	divergenceGrace  = 20
	divergenceFactor = 1.1
)

// Options captures the knobs required by the training loop. Dimensions and
// hyperparameters are validated by the caller before the loop starts.
type Options struct {
	Epochs    int
	BatchSize int
	// Rng drives the per-epoch reshuffle. The same generator feeds the
	// network's dropout layers, so a run is fully determined by its seed.
	Rng *rand.Rand
	// LogEvery emits a progress line every n epochs; 0 disables logging.
	LogEvery int
}

// Result reports how a training run ended.
type Result struct {
	// EpochsCompleted counts epochs that ran, including the one that
	// triggered an early stop.
	EpochsCompleted int
	// Converged is true iff the loop ran its full epoch budget without
	// early stopping.
	Converged bool
	// FinalLoss is the mean sample loss of the last completed epoch.
	FinalLoss float64
	// BestLoss is the lowest epoch loss observed.
	BestLoss float64
}

// Run trains the network over the given samples. Inside each batch every
// sample is processed individually: forward pass, loss, backward pass, and
// an immediate parameter update. This is per-sample SGD within a nominal
// batch, not averaged batch-gradient descent.
func Run(network *net.Network, inputs, targets [][]float64, o Options) (Result, error) {
	n := len(inputs)
	if n == 0 {
		return Result{}, errors.New("trainer: no samples")
	}
	if len(targets) != n {
		return Result{}, errors.New("trainer: inputs and targets differ in length")
	}

	network.SetTraining(true)
	defer network.SetTraining(false)

	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	var res Result
	best := math.Inf(1)

	for epoch := 0; epoch < o.Epochs; epoch++ {
		o.Rng.Shuffle(n, func(i, j int) {
			perm[i], perm[j] = perm[j], perm[i]
		})

		var sum float64
		for start := 0; start < n; start += o.BatchSize {
			end := start + o.BatchSize
			if end > n {
				end = n
			}
			for _, idx := range perm[start:end] {
				sum += network.Train(inputs[idx], targets[idx])
			}
		}

		epochLoss := sum / float64(n)
		res.FinalLoss = epochLoss
		res.EpochsCompleted = epoch + 1

		if o.LogEvery > 0 && (epoch+1)%o.LogEvery == 0 {
			log.Printf("trainer: epoch=%d loss=%.6f best=%.6f", epoch+1, epochLoss, math.Min(best, epochLoss))
		}

		if shouldStop(epoch, epochLoss, best) {
			res.BestLoss = best
			return res, nil
		}
		if epochLoss < best {
			best = epochLoss
		}
	}

	res.Converged = true
	res.BestLoss = best
	return res, nil
}

// shouldStop reports whether the divergence heuristic fires: the grace
// window has passed and the epoch loss sits more than divergenceFactor
// above the best loss so far.
func shouldStop(epoch int, epochLoss, best float64) bool {
	return epoch > divergenceGrace && epochLoss > divergenceFactor*best
}
