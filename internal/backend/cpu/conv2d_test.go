package cpu

import (
	"testing"

	"github.com/born-ml/neuralstyle/internal/tensor"
)

func TestConv2DBasicForward(t *testing.T) {
	backend := New()

	// Single channel 3x3 image:
	// 1 2 3
	// 4 5 6
	// 7 8 9
	input, _ := tensor.FromFloat32([]float32{1, 2, 3, 4, 5, 6, 7, 8, 9}, tensor.Shape{1, 1, 3, 3})

	// Diagonal 2x2 kernel:
	// 1 0
	// 0 1
	kernel, _ := tensor.FromFloat32([]float32{1, 0, 0, 1}, tensor.Shape{1, 1, 2, 2})

	output := backend.Conv2D(input, kernel, 1, 0)

	expectedShape := tensor.Shape{1, 1, 2, 2}
	if !output.Shape().Equal(expectedShape) {
		t.Fatalf("expected shape %v, got %v", expectedShape, output.Shape())
	}

	// Each output is the diagonal sum of its patch:
	// [1,2;4,5] -> 6, [2,3;5,6] -> 8, [4,5;7,8] -> 12, [5,6;8,9] -> 14
	expected := []float32{6, 8, 12, 14}
	outputData := output.AsFloat32()
	for i, exp := range expected {
		if outputData[i] != exp {
			t.Errorf("output[%d]: expected %.1f, got %.1f", i, exp, outputData[i])
		}
	}
}

func TestConv2DWithPadding(t *testing.T) {
	backend := New()

	// All-ones input and sum kernel with the stride-1 pad-1 layout used
	// throughout VGG: output counts the valid elements under each window.
	input, _ := tensor.Full(tensor.Shape{1, 1, 3, 3}, 1)
	kernel, _ := tensor.Full(tensor.Shape{1, 1, 3, 3}, 1)

	output := backend.Conv2D(input, kernel, 1, 1)

	expectedShape := tensor.Shape{1, 1, 3, 3}
	if !output.Shape().Equal(expectedShape) {
		t.Fatalf("expected shape %v, got %v", expectedShape, output.Shape())
	}

	expected := []float32{
		4, 6, 4,
		6, 9, 6,
		4, 6, 4,
	}
	outputData := output.AsFloat32()
	for i, exp := range expected {
		if outputData[i] != exp {
			t.Errorf("output[%d]: expected %.1f, got %.1f", i, exp, outputData[i])
		}
	}
}

func TestConv2DPreservesSpatialSize(t *testing.T) {
	backend := New()

	// 3x3 kernel, stride 1, padding 1 keeps H and W unchanged.
	input, _ := tensor.New(tensor.Shape{1, 3, 8, 5}, tensor.Float32)
	kernel, _ := tensor.New(tensor.Shape{16, 3, 3, 3}, tensor.Float32)

	output := backend.Conv2D(input, kernel, 1, 1)

	expectedShape := tensor.Shape{1, 16, 8, 5}
	if !output.Shape().Equal(expectedShape) {
		t.Errorf("expected shape %v, got %v", expectedShape, output.Shape())
	}
}

func TestConv2DMultiChannel(t *testing.T) {
	backend := New()

	// Two input channels, each all ones; one output channel whose kernel
	// weighs channel 0 by 1 and channel 1 by 2. Every output element is
	// 1*4 + 2*4 = 12 for a 2x2 kernel.
	input, _ := tensor.Full(tensor.Shape{1, 2, 3, 3}, 1)
	kernel, _ := tensor.FromFloat32([]float32{
		1, 1, 1, 1, // channel 0
		2, 2, 2, 2, // channel 1
	}, tensor.Shape{1, 2, 2, 2})

	output := backend.Conv2D(input, kernel, 1, 0)

	outputData := output.AsFloat32()
	for i, v := range outputData {
		if v != 12 {
			t.Errorf("output[%d]: expected 12, got %.1f", i, v)
		}
	}
}

func TestConv2DInputBackward(t *testing.T) {
	backend := New()

	// 2x2 input, 2x2 kernel, stride 1, no padding: one output position.
	// The input gradient is outputGrad scaled by each kernel weight.
	input, _ := tensor.FromFloat32([]float32{1, 2, 3, 4}, tensor.Shape{1, 1, 2, 2})
	kernel, _ := tensor.FromFloat32([]float32{10, 20, 30, 40}, tensor.Shape{1, 1, 2, 2})
	grad, _ := tensor.FromFloat32([]float32{2}, tensor.Shape{1, 1, 1, 1})

	inputGrad := backend.Conv2DInputBackward(input, kernel, grad, 1, 0)

	if !inputGrad.Shape().Equal(input.Shape()) {
		t.Fatalf("input grad shape %v != input shape %v", inputGrad.Shape(), input.Shape())
	}

	expected := []float32{20, 40, 60, 80}
	gradData := inputGrad.AsFloat32()
	for i, exp := range expected {
		if gradData[i] != exp {
			t.Errorf("inputGrad[%d]: expected %.1f, got %.1f", i, exp, gradData[i])
		}
	}
}

func TestConv2DKernelBackward(t *testing.T) {
	backend := New()

	// Same single-output setup: the kernel gradient is outputGrad scaled
	// by each input value.
	input, _ := tensor.FromFloat32([]float32{1, 2, 3, 4}, tensor.Shape{1, 1, 2, 2})
	kernel, _ := tensor.FromFloat32([]float32{10, 20, 30, 40}, tensor.Shape{1, 1, 2, 2})
	grad, _ := tensor.FromFloat32([]float32{3}, tensor.Shape{1, 1, 1, 1})

	kernelGrad := backend.Conv2DKernelBackward(input, kernel, grad, 1, 0)

	if !kernelGrad.Shape().Equal(kernel.Shape()) {
		t.Fatalf("kernel grad shape %v != kernel shape %v", kernelGrad.Shape(), kernel.Shape())
	}

	expected := []float32{3, 6, 9, 12}
	gradData := kernelGrad.AsFloat32()
	for i, exp := range expected {
		if gradData[i] != exp {
			t.Errorf("kernelGrad[%d]: expected %.1f, got %.1f", i, exp, gradData[i])
		}
	}
}

func TestConv2DParallelMatchesSequential(t *testing.T) {
	par := New()
	seq := NewSequential()

	input, _ := tensor.New(tensor.Shape{1, 3, 16, 16}, tensor.Float32)
	data := input.AsFloat32()
	for i := range data {
		data[i] = float32(i%17) * 0.25
	}
	kernel, _ := tensor.New(tensor.Shape{4, 3, 3, 3}, tensor.Float32)
	kdata := kernel.AsFloat32()
	for i := range kdata {
		kdata[i] = float32(i%5) * 0.1
	}

	a := par.Conv2D(input, kernel, 1, 1)
	b := seq.Conv2D(input, kernel, 1, 1)

	aData := a.AsFloat32()
	bData := b.AsFloat32()
	for i := range aData {
		if aData[i] != bData[i] {
			t.Fatalf("parallel and sequential outputs differ at %d: %v vs %v", i, aData[i], bData[i])
		}
	}
}
