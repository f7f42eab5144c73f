package layer

import (
	"math"
	"math/rand"
	"testing"

	"github.com/perceptor-ml/perceptor/internal/activations"
)

func newRng() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func TestDenseForward(t *testing.T) {
	// 2 inputs -> 2 outputs with identity weights for predictable output
	d := NewDense(2, 2, activations.Tanh{}, newRng())

	d.SetWeight(0, 0, 1.0)
	d.SetWeight(0, 1, 0.0)
	d.SetWeight(1, 0, 0.0)
	d.SetWeight(1, 1, 1.0)
	d.SetBias(0, 0.0)
	d.SetBias(1, 0.0)

	output := d.Forward([]float64{1.0, 2.0})

	expected0 := math.Tanh(1.0)
	expected1 := math.Tanh(2.0)
	if math.Abs(output[0]-expected0) > 1e-9 {
		t.Errorf("output[0] = %v, want %v", output[0], expected0)
	}
	if math.Abs(output[1]-expected1) > 1e-9 {
		t.Errorf("output[1] = %v, want %v", output[1], expected1)
	}
}

func TestDenseForwardOutputLength(t *testing.T) {
	for _, dims := range [][2]int{{1, 1}, {3, 5}, {8, 2}} {
		d := NewDense(dims[0], dims[1], activations.ReLU{}, newRng())
		out := d.Forward(make([]float64, dims[0]))
		if len(out) != dims[1] {
			t.Errorf("Forward output length = %d, want %d", len(out), dims[1])
		}
	}
}

// TestDenseBackwardGradients verifies the gradient formulas on a layer with
// linear activation, where dz equals the incoming gradient.
func TestDenseBackwardGradients(t *testing.T) {
	d := NewDense(2, 1, activations.Linear{}, newRng())
	d.SetWeight(0, 0, 0.5)
	d.SetWeight(0, 1, -0.25)
	d.SetBias(0, 0.0)

	input := []float64{2.0, 4.0}
	d.Forward(input)

	grad := []float64{3.0}
	inputGrad := d.Backward(grad)

	// dL/dW[0,i] = grad[0] * input[i]
	wantGradW := []float64{6.0, 12.0}
	// dL/dx[i] = grad[0] * W[0,i]
	wantGradIn := []float64{1.5, -0.75}

	gradients := d.Gradients()
	for i, want := range wantGradW {
		if math.Abs(gradients[i]-want) > 1e-12 {
			t.Errorf("gradW[%d] = %v, want %v", i, gradients[i], want)
		}
	}
	// bias gradient follows the weight gradients in the flattened slice
	if math.Abs(gradients[2]-3.0) > 1e-12 {
		t.Errorf("gradB[0] = %v, want 3", gradients[2])
	}
	for i, want := range wantGradIn {
		if math.Abs(inputGrad[i]-want) > 1e-12 {
			t.Errorf("inputGrad[%d] = %v, want %v", i, inputGrad[i], want)
		}
	}
}

// TestDenseBackwardUsesOutputDerivative checks that the activation
// derivative is evaluated at the cached post-activation output.
func TestDenseBackwardUsesOutputDerivative(t *testing.T) {
	d := NewDense(1, 1, activations.Sigmoid{}, newRng())
	d.SetWeight(0, 0, 1.0)
	d.SetBias(0, 0.0)

	out := d.Forward([]float64{0.0})
	// sigmoid(0) = 0.5, derivative = 0.5 * (1 - 0.5) = 0.25
	if math.Abs(out[0]-0.5) > 1e-12 {
		t.Fatalf("forward output = %v, want 0.5", out[0])
	}

	d.Backward([]float64{1.0})
	gradients := d.Gradients()
	// gradB = grad * derivative(out) = 1 * 0.25
	if math.Abs(gradients[1]-0.25) > 1e-12 {
		t.Errorf("gradB = %v, want 0.25", gradients[1])
	}
}

// TestDenseBackwardDoesNotUpdateParams confirms the split between gradient
// computation and optimizer application.
func TestDenseBackwardDoesNotUpdateParams(t *testing.T) {
	d := NewDense(3, 2, activations.ReLU{}, newRng())

	before := d.Params()
	d.Forward([]float64{1, 2, 3})
	d.Backward([]float64{1, 1})
	after := d.Params()

	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("params[%d] changed from %v to %v during Backward", i, before[i], after[i])
		}
	}
}

func TestDenseParamsAndSetParams(t *testing.T) {
	d := NewDense(3, 2, activations.Tanh{}, newRng())

	initial := d.Params()
	wantLen := 3*2 + 2
	if len(initial) != wantLen {
		t.Fatalf("params length = %d, want %d", len(initial), wantLen)
	}

	next := make([]float64, len(initial))
	for i := range next {
		next[i] = float64(i) * 0.1
	}
	d.SetParams(next)

	after := d.Params()
	for i := range after {
		if math.Abs(after[i]-next[i]) > 1e-12 {
			t.Errorf("params[%d] = %v, want %v", i, after[i], next[i])
		}
	}
}

// TestDenseInitScale checks that Xavier-initialized parameters stay inside
// the [-scale, scale) band.
func TestDenseInitScale(t *testing.T) {
	in, out := 6, 4
	d := NewDense(in, out, activations.ReLU{}, newRng())
	scale := math.Sqrt(2.0 / float64(in+out))

	for i, p := range d.Params() {
		if p < -scale || p >= scale {
			t.Errorf("params[%d] = %v outside [-%v, %v)", i, p, scale, scale)
		}
	}
}

// TestDenseInitDeterministic confirms two layers built from identical seeds
// share identical parameters.
func TestDenseInitDeterministic(t *testing.T) {
	a := NewDense(4, 3, activations.Tanh{}, rand.New(rand.NewSource(99)))
	b := NewDense(4, 3, activations.Tanh{}, rand.New(rand.NewSource(99)))

	pa, pb := a.Params(), b.Params()
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("params[%d] differ: %v vs %v", i, pa[i], pb[i])
		}
	}
}

func TestDenseInSizeAndOutSize(t *testing.T) {
	d := NewDense(10, 5, activations.Tanh{}, newRng())
	if d.InSize() != 10 {
		t.Errorf("InSize() = %d, want 10", d.InSize())
	}
	if d.OutSize() != 5 {
		t.Errorf("OutSize() = %d, want 5", d.OutSize())
	}
}

func TestIdentityPassthrough(t *testing.T) {
	l := NewIdentity(3)

	in := []float64{1.5, -2, 0.25}
	out := l.Forward(in)
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("Forward[%d] = %v, want %v", i, out[i], in[i])
		}
	}

	grad := []float64{0.1, 0.2, 0.3}
	back := l.Backward(grad)
	for i := range grad {
		if back[i] != grad[i] {
			t.Errorf("Backward[%d] = %v, want %v", i, back[i], grad[i])
		}
	}

	if len(l.Params()) != 0 || len(l.Gradients()) != 0 {
		t.Error("identity layer should have no parameters")
	}
}
