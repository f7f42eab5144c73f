package metrics

import (
	"math"
	"strings"
	"testing"
)

func TestClassificationPerfect(t *testing.T) {
	s := Classification([]int{0, 1, 2, 0}, []int{0, 1, 2, 0}, 3)

	if s.Accuracy != 1 {
		t.Errorf("Accuracy = %v, want 1", s.Accuracy)
	}
	if s.Precision != 1 || s.Recall != 1 || s.F1 != 1 {
		t.Errorf("P/R/F1 = %v/%v/%v, want 1/1/1", s.Precision, s.Recall, s.F1)
	}
	if s.Samples != 4 {
		t.Errorf("Samples = %d, want 4", s.Samples)
	}
}

// TestClassificationKnownConfusion works a small binary confusion matrix by
// hand: class 0 has tp=2 fp=1 fn=0, class 1 has tp=1 fp=0 fn=1.
func TestClassificationKnownConfusion(t *testing.T) {
	predicted := []int{0, 0, 0, 1}
	actual := []int{0, 0, 1, 1}

	s := Classification(predicted, actual, 2)

	if math.Abs(s.Accuracy-0.75) > 1e-12 {
		t.Errorf("Accuracy = %v, want 0.75", s.Accuracy)
	}
	// macro precision: (2/3 + 1/1) / 2
	wantPrec := (2.0/3.0 + 1.0) / 2.0
	if math.Abs(s.Precision-wantPrec) > 1e-12 {
		t.Errorf("Precision = %v, want %v", s.Precision, wantPrec)
	}
	// macro recall: (2/2 + 1/2) / 2
	wantRec := 0.75
	if math.Abs(s.Recall-wantRec) > 1e-12 {
		t.Errorf("Recall = %v, want %v", s.Recall, wantRec)
	}
	wantF1 := 2 * wantPrec * wantRec / (wantPrec + wantRec)
	if math.Abs(s.F1-wantF1) > 1e-12 {
		t.Errorf("F1 = %v, want %v", s.F1, wantF1)
	}
}

// TestClassificationUnseenActual: an actual index of -1 marks a label the
// model never saw; it can only hurt accuracy.
func TestClassificationUnseenActual(t *testing.T) {
	s := Classification([]int{0, 1}, []int{0, -1}, 2)
	if math.Abs(s.Accuracy-0.5) > 1e-12 {
		t.Errorf("Accuracy = %v, want 0.5", s.Accuracy)
	}
}

func TestClassificationEmpty(t *testing.T) {
	s := Classification(nil, nil, 3)
	if s.Accuracy != 0 || s.Samples != 0 {
		t.Errorf("empty summary = %+v", s)
	}
}

func TestRegressionMetrics(t *testing.T) {
	predicted := []float64{1, 2, 3}
	actual := []float64{1, 2, 5}

	s := Regression(predicted, actual)

	// residuals 0, 0, -2
	if math.Abs(s.MSE-4.0/3.0) > 1e-12 {
		t.Errorf("MSE = %v, want %v", s.MSE, 4.0/3.0)
	}
	if math.Abs(s.MAE-2.0/3.0) > 1e-12 {
		t.Errorf("MAE = %v, want %v", s.MAE, 2.0/3.0)
	}
	// mean(actual) = 8/3, ssTot = (1-8/3)^2 + (2-8/3)^2 + (5-8/3)^2
	mean := 8.0 / 3.0
	ssTot := (1-mean)*(1-mean) + (2-mean)*(2-mean) + (5-mean)*(5-mean)
	wantR2 := 1 - 4.0/ssTot
	if math.Abs(s.R2-wantR2) > 1e-12 {
		t.Errorf("R2 = %v, want %v", s.R2, wantR2)
	}
}

func TestRegressionPerfectR2(t *testing.T) {
	s := Regression([]float64{1, 2, 3}, []float64{1, 2, 3})
	if s.MSE != 0 || s.MAE != 0 || s.R2 != 1 {
		t.Errorf("perfect fit summary = %+v", s)
	}
}

func TestRegressionConstantActuals(t *testing.T) {
	// ssTot is zero; R2 stays at its zero value rather than dividing by zero
	s := Regression([]float64{1, 2}, []float64{2, 2})
	if math.IsNaN(s.R2) || math.IsInf(s.R2, 0) {
		t.Errorf("R2 = %v, want finite", s.R2)
	}
}

func TestReportClassification(t *testing.T) {
	s := Classification([]int{0, 1}, []int{0, 1}, 2)
	report := s.Report()

	for _, want := range []string{"classification", "accuracy", "precision", "recall", "f1"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}

func TestReportRegression(t *testing.T) {
	s := Regression([]float64{1}, []float64{1.5})
	report := s.Report()

	for _, want := range []string{"regression", "mse", "mae", "r2"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
	if strings.Contains(report, "accuracy") {
		t.Error("regression report should not mention accuracy")
	}
}
