package cpu

import (
	"testing"

	"github.com/born-ml/neuralstyle/internal/tensor"
)

func TestMaxPool2DForward(t *testing.T) {
	backend := New()

	// 4x4 input, 2x2 pool, stride 2:
	//  1  2  3  4        6  8
	//  5  6  7  8   ->  14 16
	//  9 10 11 12
	// 13 14 15 16
	data := make([]float32, 16)
	for i := range data {
		data[i] = float32(i + 1)
	}
	input, _ := tensor.FromFloat32(data, tensor.Shape{1, 1, 4, 4})

	output := backend.MaxPool2D(input, 2, 2)

	expectedShape := tensor.Shape{1, 1, 2, 2}
	if !output.Shape().Equal(expectedShape) {
		t.Fatalf("expected shape %v, got %v", expectedShape, output.Shape())
	}

	expected := []float32{6, 8, 14, 16}
	outputData := output.AsFloat32()
	for i, exp := range expected {
		if outputData[i] != exp {
			t.Errorf("output[%d]: expected %.1f, got %.1f", i, exp, outputData[i])
		}
	}
}

func TestMaxPool2DNegativeValues(t *testing.T) {
	backend := New()

	// All negative: the max must still be found, not a zero default.
	input, _ := tensor.FromFloat32([]float32{-4, -3, -2, -1}, tensor.Shape{1, 1, 2, 2})

	output := backend.MaxPool2D(input, 2, 2)

	if got := output.AsFloat32()[0]; got != -1 {
		t.Errorf("expected -1, got %.1f", got)
	}
}

func TestMaxPool2DBackwardRouting(t *testing.T) {
	backend := New()

	// Forward picks positions 5, 7, 13, 15 (values 6, 8, 14, 16).
	data := make([]float32, 16)
	for i := range data {
		data[i] = float32(i + 1)
	}
	input, _ := tensor.FromFloat32(data, tensor.Shape{1, 1, 4, 4})
	grad, _ := tensor.FromFloat32([]float32{10, 20, 30, 40}, tensor.Shape{1, 1, 2, 2})

	maxIndices := []int{5, 7, 13, 15}
	inputGrad := backend.MaxPool2DBackward(input, grad, maxIndices, 2, 2)

	gradData := inputGrad.AsFloat32()
	want := map[int]float32{5: 10, 7: 20, 13: 30, 15: 40}
	for i, v := range gradData {
		if exp, ok := want[i]; ok {
			if v != exp {
				t.Errorf("inputGrad[%d]: expected %.1f, got %.1f", i, exp, v)
			}
		} else if v != 0 {
			t.Errorf("inputGrad[%d]: expected 0, got %.1f", i, v)
		}
	}
}
