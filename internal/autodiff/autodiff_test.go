package autodiff_test

import (
	"testing"

	"github.com/born-ml/neuralstyle/internal/autodiff"
	"github.com/born-ml/neuralstyle/internal/backend/cpu"
	"github.com/born-ml/neuralstyle/internal/tensor"
)

func ones(t *testing.T, shape tensor.Shape) *tensor.Tensor {
	t.Helper()
	out, err := tensor.Ones(shape)
	if err != nil {
		t.Fatalf("ones: %v", err)
	}
	return out
}

func TestBackendName(t *testing.T) {
	backend := autodiff.New(cpu.New())
	if backend.Name() != "Autodiff(CPU)" {
		t.Errorf("Name() = %s, want Autodiff(CPU)", backend.Name())
	}
}

func TestTapeRecordingControl(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()

	if tape.IsRecording() {
		t.Error("tape should not record initially")
	}

	tape.StartRecording()
	x, _ := tensor.FromFloat32([]float32{1, 2}, tensor.Shape{2})
	y, _ := tensor.FromFloat32([]float32{3, 4}, tensor.Shape{2})
	backend.Add(x, y)
	if tape.NumOps() != 1 {
		t.Errorf("NumOps = %d, want 1", tape.NumOps())
	}

	tape.StopRecording()
	backend.Add(x, y)
	if tape.NumOps() != 1 {
		t.Errorf("ops recorded while stopped: NumOps = %d", tape.NumOps())
	}

	tape.Clear()
	if tape.NumOps() != 0 {
		t.Errorf("Clear left %d ops", tape.NumOps())
	}
}

func TestRecordingPreventsInplace(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	// x is unique; the raw CPU backend would add in place. Through the
	// autodiff wrapper it must not, because x is a recorded input.
	x, _ := tensor.FromFloat32([]float32{1, 2}, tensor.Shape{2})
	y, _ := tensor.FromFloat32([]float32{10, 10}, tensor.Shape{2})

	result := backend.Add(x, y)

	if result == x {
		t.Fatal("operand was reused as the result")
	}
	if x.AsFloat32()[0] != 1 {
		t.Errorf("recorded input was modified: %v", x.AsFloat32())
	}
}

func TestGradientOfSquare(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	// y = x * x, dy/dx = 2x
	x, _ := tensor.FromFloat32([]float32{2, 3}, tensor.Shape{2})
	_ = backend.Mul(x, x)

	grads := backend.Tape().Backward(ones(t, tensor.Shape{2}), backend)

	xGrad, ok := grads[x]
	if !ok {
		t.Fatal("no gradient for x")
	}
	for i, exp := range []float32{4, 6} {
		if xGrad.AsFloat32()[i] != exp {
			t.Errorf("xGrad[%d] = %v, want %v", i, xGrad.AsFloat32()[i], exp)
		}
	}
}

func TestGradientThroughMean(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x, _ := tensor.FromFloat32([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	loss := backend.Mean(x)

	if !loss.Shape().Equal(tensor.Shape{1}) {
		t.Fatalf("mean shape %v, want [1]", loss.Shape())
	}

	grads := backend.Tape().Backward(ones(t, tensor.Shape{1}), backend)
	xGrad := grads[x]
	if xGrad == nil {
		t.Fatal("no gradient for x")
	}
	for i, v := range xGrad.AsFloat32() {
		if v != 0.25 {
			t.Errorf("xGrad[%d] = %v, want 0.25", i, v)
		}
	}
}

func TestGradientOfMSEAgainstConstant(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()

	// loss = mean((x - c)^2) with frozen c: dloss/dx = 2(x-c)/n.
	x, _ := tensor.FromFloat32([]float32{3, 5}, tensor.Shape{2})
	c, _ := tensor.FromFloat32([]float32{1, 1}, tensor.Shape{2})
	tape.MarkConstant(c)
	tape.StartRecording()

	d := backend.Sub(x, c)
	sq := backend.Mul(d, d)
	_ = backend.Mean(sq)

	grads := tape.Backward(ones(t, tensor.Shape{1}), backend)

	if _, ok := grads[c]; ok {
		t.Error("constant received a gradient")
	}

	xGrad := grads[x]
	if xGrad == nil {
		t.Fatal("no gradient for x")
	}
	// 2*(3-1)/2 = 2, 2*(5-1)/2 = 4
	for i, exp := range []float32{2, 4} {
		if xGrad.AsFloat32()[i] != exp {
			t.Errorf("xGrad[%d] = %v, want %v", i, xGrad.AsFloat32()[i], exp)
		}
	}
}

func TestGradientThroughReLU(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x, _ := tensor.FromFloat32([]float32{-1, 2, -3, 4}, tensor.Shape{4})
	_ = backend.ReLU(x)

	grads := backend.Tape().Backward(ones(t, tensor.Shape{4}), backend)
	xGrad := grads[x]
	if xGrad == nil {
		t.Fatal("no gradient for x")
	}
	for i, exp := range []float32{0, 1, 0, 1} {
		if xGrad.AsFloat32()[i] != exp {
			t.Errorf("xGrad[%d] = %v, want %v", i, xGrad.AsFloat32()[i], exp)
		}
	}
}

func TestGradientThroughConvWithFrozenKernel(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()

	input, _ := tensor.FromFloat32([]float32{1, 2, 3, 4}, tensor.Shape{1, 1, 2, 2})
	kernel, _ := tensor.FromFloat32([]float32{1, 1, 1, 1}, tensor.Shape{1, 1, 2, 2})
	tape.MarkConstant(kernel)
	tape.StartRecording()

	out := backend.Conv2D(input, kernel, 1, 0)
	if !out.Shape().Equal(tensor.Shape{1, 1, 1, 1}) {
		t.Fatalf("conv output shape %v", out.Shape())
	}

	grads := tape.Backward(ones(t, tensor.Shape{1, 1, 1, 1}), backend)

	if _, ok := grads[kernel]; ok {
		t.Error("frozen kernel received a gradient")
	}

	inputGrad := grads[input]
	if inputGrad == nil {
		t.Fatal("no gradient for input")
	}
	// All kernel weights are 1, so every input position gets the full grad.
	for i, v := range inputGrad.AsFloat32() {
		if v != 1 {
			t.Errorf("inputGrad[%d] = %v, want 1", i, v)
		}
	}
}

func TestGradientThroughMaxPool(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	input, _ := tensor.FromFloat32([]float32{1, 2, 3, 4}, tensor.Shape{1, 1, 2, 2})
	_ = backend.MaxPool2D(input, 2, 2)

	grads := backend.Tape().Backward(ones(t, tensor.Shape{1, 1, 1, 1}), backend)
	inputGrad := grads[input]
	if inputGrad == nil {
		t.Fatal("no gradient for input")
	}
	for i, exp := range []float32{0, 0, 0, 1} {
		if inputGrad.AsFloat32()[i] != exp {
			t.Errorf("inputGrad[%d] = %v, want %v", i, inputGrad.AsFloat32()[i], exp)
		}
	}
}

func TestGradientThroughGramChain(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	// act -> reshape (C, H*W) -> G = V @ V^T -> mean. The activation
	// receives gradient through both matmul operands.
	act, _ := tensor.FromFloat32([]float32{
		1, 2,
		3, 4,
		5, 6,
		7, 8,
	}, tensor.Shape{1, 2, 2, 2})

	v := backend.Reshape(act, tensor.Shape{2, 4})
	vT := backend.Transpose(v, 1, 0)
	g := backend.MatMul(v, vT)
	_ = backend.Mean(g)

	grads := backend.Tape().Backward(ones(t, tensor.Shape{1}), backend)

	actGrad := grads[act]
	if actGrad == nil {
		t.Fatal("no gradient for the activation")
	}
	if !actGrad.Shape().Equal(act.Shape()) {
		t.Fatalf("gradient shape %v, want %v", actGrad.Shape(), act.Shape())
	}

	// dL/dV = (dL/dG + dL/dG^T) @ V with dL/dG = ones/4, so every row
	// of the V gradient is the column mean of V halved... checked
	// directly: dL/dV[i,j] = (V[0,j] + V[1,j]) / 2.
	vData := []float32{1, 2, 3, 4, 5, 6, 7, 8}
	gradData := actGrad.AsFloat32()
	for i := 0; i < 2; i++ {
		for j := 0; j < 4; j++ {
			want := (vData[j] + vData[4+j]) / 2
			if got := gradData[i*4+j]; got != want {
				t.Errorf("actGrad[%d,%d] = %v, want %v", i, j, got, want)
			}
		}
	}
}

func TestGradientAccumulatesOverReuse(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	// y = x + x: dy/dx = 2.
	x, _ := tensor.FromFloat32([]float32{1, 1}, tensor.Shape{2})
	_ = backend.Add(x, x)

	grads := backend.Tape().Backward(ones(t, tensor.Shape{2}), backend)
	xGrad := grads[x]
	if xGrad == nil {
		t.Fatal("no gradient for x")
	}
	for i, v := range xGrad.AsFloat32() {
		if v != 2 {
			t.Errorf("xGrad[%d] = %v, want 2", i, v)
		}
	}
}

func TestDeadBranchSkipped(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x, _ := tensor.FromFloat32([]float32{1, 2}, tensor.Shape{2})
	y, _ := tensor.FromFloat32([]float32{3, 4}, tensor.Shape{2})

	// A side computation whose output never feeds the loss.
	_ = backend.Mul(x, y)

	// The actual loss path.
	z := backend.Add(x, y)
	_ = backend.Mean(z)

	grads := backend.Tape().Backward(ones(t, tensor.Shape{1}), backend)

	// x's gradient comes only from the Add path: 1/2 per element.
	xGrad := grads[x]
	if xGrad == nil {
		t.Fatal("no gradient for x")
	}
	for i, v := range xGrad.AsFloat32() {
		if v != 0.5 {
			t.Errorf("xGrad[%d] = %v, want 0.5", i, v)
		}
	}
}
