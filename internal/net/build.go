package net

import (
	"math/rand"

	"github.com/perceptor-ml/perceptor/internal/activations"
	"github.com/perceptor-ml/perceptor/internal/layer"
	"github.com/perceptor-ml/perceptor/internal/loss"
	"github.com/perceptor-ml/perceptor/internal/opt"
)

// Build assembles a fresh dense network: an identity input layer, one Dense
// per hidden width using the configured activation (each followed by a
// dropout layer), and a sigmoid output layer of the given size. Every
// parameter is freshly initialized from rng; there is no pretrained-weight
// loading path.
//
// Dropout covers hidden layers only. The output layer is exempt.
func Build(inputs int, hidden []int, outputs int, act activations.Activation, dropoutRate float64, optimizer opt.Optimizer, rng *rand.Rand) *Network {
	layers := make([]layer.Layer, 0, 2+2*len(hidden))
	layers = append(layers, layer.NewIdentity(inputs))

	prev := inputs
	for _, width := range hidden {
		layers = append(layers, layer.NewDense(prev, width, act, rng))
		layers = append(layers, layer.NewDropout(dropoutRate, width, rng))
		prev = width
	}

	layers = append(layers, layer.NewDense(prev, outputs, activations.Sigmoid{}, rng))

	return New(layers, loss.MSE{}, optimizer)
}
