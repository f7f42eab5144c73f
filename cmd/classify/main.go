package main

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/perceptor-ml/perceptor/perceptor"
)

// Classification demo: three Gaussian-ish blobs in the plane, one class per
// blob.
func main() {
	rng := rand.New(rand.NewSource(7))

	centers := [][2]float64{{0.2, 0.2}, {0.8, 0.2}, {0.5, 0.8}}

	train := &perceptor.Dataset{
		Task:         perceptor.Classification,
		FeatureOrder: []string{"x", "y"},
	}
	for label, c := range centers {
		for i := 0; i < 60; i++ {
			train.Samples = append(train.Samples, perceptor.Sample{
				Features: map[string]float64{
					"x": c[0] + (rng.Float64()-0.5)*0.2,
					"y": c[1] + (rng.Float64()-0.5)*0.2,
				},
				Target: perceptor.Target(float64(label)),
			})
		}
	}

	cfg := perceptor.DefaultConfig()
	cfg.HiddenLayers = []int{16}
	cfg.LearningRate = 0.1
	cfg.Epochs = 150
	cfg.DropoutRate = 0.1
	cfg.Seed = 7

	eng := perceptor.New(perceptor.Classification)
	result, err := eng.Train(train, cfg)
	if err != nil {
		log.Fatalf("train: %v", err)
	}
	fmt.Println(result.Message)

	summary, report, err := eng.Evaluate(train)
	if err != nil {
		log.Fatalf("evaluate: %v", err)
	}
	fmt.Println(report)

	test := &perceptor.Dataset{
		Task:         perceptor.Classification,
		FeatureOrder: []string{"x", "y"},
	}
	for _, c := range centers {
		test.Samples = append(test.Samples, perceptor.Sample{
			Features: map[string]float64{"x": c[0], "y": c[1]},
		})
	}
	preds, err := eng.Predict(test)
	if err != nil {
		log.Fatalf("predict: %v", err)
	}
	for i, p := range preds {
		fmt.Printf("center %d: predicted class %.0f (confidence %.3f)\n", i, p.Value, p.Confidence)
	}

	fmt.Printf("training accuracy: %.3f\n", summary.Accuracy)
}
