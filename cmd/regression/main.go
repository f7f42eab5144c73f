package main

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/perceptor-ml/perceptor/perceptor"
)

// Regression demo: learn z = (x + y) / 2 from noisy samples and predict a
// few held-out points.
func main() {
	rng := rand.New(rand.NewSource(42))

	train := &perceptor.Dataset{
		Task:         perceptor.Regression,
		FeatureOrder: []string{"x", "y"},
	}
	for i := 0; i < 200; i++ {
		x := rng.Float64()
		y := rng.Float64()
		noise := (rng.Float64() - 0.5) * 0.05
		train.Samples = append(train.Samples, perceptor.Sample{
			Features: map[string]float64{"x": x, "y": y},
			Target:   perceptor.Target((x+y)/2 + noise),
		})
	}

	cfg := perceptor.DefaultConfig()
	cfg.HiddenLayers = []int{16, 8}
	cfg.Activation = "tanh"
	cfg.LearningRate = 0.05
	cfg.Epochs = 200
	cfg.DropoutRate = 0
	cfg.Seed = 42

	eng := perceptor.New(perceptor.Regression)
	result, err := eng.Train(train, cfg)
	if err != nil {
		log.Fatalf("train: %v", err)
	}
	fmt.Printf("%s (final loss %.6f)\n", result.Message, result.FinalLoss)

	test := &perceptor.Dataset{
		Task:         perceptor.Regression,
		FeatureOrder: []string{"x", "y"},
	}
	cases := [][2]float64{{0, 0}, {0.5, 0.5}, {1, 0}, {0, 1}, {0.75, 0.25}}
	for _, c := range cases {
		test.Samples = append(test.Samples, perceptor.Sample{
			Features: map[string]float64{"x": c[0], "y": c[1]},
		})
	}

	preds, err := eng.Predict(test)
	if err != nil {
		log.Fatalf("predict: %v", err)
	}
	for i, p := range preds {
		expected := (cases[i][0] + cases[i][1]) / 2
		fmt.Printf("x=%.2f y=%.2f: predicted=%.4f expected=%.4f\n",
			cases[i][0], cases[i][1], p.Value, expected)
	}

	_, report, err := eng.Evaluate(train)
	if err != nil {
		log.Fatalf("evaluate: %v", err)
	}
	fmt.Println(report)
}
