// Package metrics computes evaluation summaries for classification and
// regression outputs.
package metrics

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/perceptor-ml/perceptor/internal/dataset"
)

// Summary holds the evaluation metrics for one dataset pass. Classification
// fills Accuracy/Precision/Recall/F1; regression fills MSE/MAE/R2.
type Summary struct {
	Task dataset.Task

	Accuracy  float64
	Precision float64
	Recall    float64
	F1        float64

	MSE float64
	MAE float64
	R2  float64

	Samples int
}

// Classification builds a summary from predicted and actual class indices.
// Precision, recall, and F1 are macro-averaged over numClasses; an actual
// index outside [0, numClasses) counts against accuracy and recall of no
// class.
func Classification(predicted, actual []int, numClasses int) Summary {
	s := Summary{Task: dataset.Classification, Samples: len(predicted)}
	if len(predicted) == 0 || numClasses <= 0 {
		return s
	}

	correct := 0
	tp := make([]int, numClasses)
	fp := make([]int, numClasses)
	fn := make([]int, numClasses)

	for i := range predicted {
		p, a := predicted[i], actual[i]
		if p == a {
			correct++
			tp[p]++
			continue
		}
		if p >= 0 && p < numClasses {
			fp[p]++
		}
		if a >= 0 && a < numClasses {
			fn[a]++
		}
	}

	s.Accuracy = float64(correct) / float64(len(predicted))

	var precSum, recSum float64
	for c := 0; c < numClasses; c++ {
		if tp[c]+fp[c] > 0 {
			precSum += float64(tp[c]) / float64(tp[c]+fp[c])
		}
		if tp[c]+fn[c] > 0 {
			recSum += float64(tp[c]) / float64(tp[c]+fn[c])
		}
	}
	s.Precision = precSum / float64(numClasses)
	s.Recall = recSum / float64(numClasses)
	if s.Precision+s.Recall > 0 {
		s.F1 = 2 * s.Precision * s.Recall / (s.Precision + s.Recall)
	}

	return s
}

// Regression builds a summary from predicted and actual scalars.
func Regression(predicted, actual []float64) Summary {
	s := Summary{Task: dataset.Regression, Samples: len(predicted)}
	n := len(predicted)
	if n == 0 {
		return s
	}

	residuals := make([]float64, n)
	absResiduals := make([]float64, n)
	squared := make([]float64, n)
	for i := range predicted {
		r := predicted[i] - actual[i]
		residuals[i] = r
		if r < 0 {
			absResiduals[i] = -r
		} else {
			absResiduals[i] = r
		}
		squared[i] = r * r
	}

	s.MSE = stat.Mean(squared, nil)
	s.MAE = stat.Mean(absResiduals, nil)

	mean := stat.Mean(actual, nil)
	var ssTot float64
	for _, a := range actual {
		d := a - mean
		ssTot += d * d
	}
	ssRes := floats.Sum(squared)
	if ssTot > 0 {
		s.R2 = 1 - ssRes/ssTot
	}

	return s
}

// Report renders the summary as a fixed-width text block.
func (s Summary) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Evaluation: %s (%d samples)\n", s.Task, s.Samples)
	b.WriteString("=================================================\n")
	if s.Task == dataset.Classification {
		fmt.Fprintf(&b, "%-12s %.4f\n", "accuracy", s.Accuracy)
		fmt.Fprintf(&b, "%-12s %.4f\n", "precision", s.Precision)
		fmt.Fprintf(&b, "%-12s %.4f\n", "recall", s.Recall)
		fmt.Fprintf(&b, "%-12s %.4f\n", "f1", s.F1)
	} else {
		fmt.Fprintf(&b, "%-12s %.6f\n", "mse", s.MSE)
		fmt.Fprintf(&b, "%-12s %.6f\n", "mae", s.MAE)
		fmt.Fprintf(&b, "%-12s %.4f\n", "r2", s.R2)
	}
	b.WriteString("=================================================")
	return b.String()
}
