package nn

import (
	"testing"

	"github.com/born-ml/neuralstyle/internal/backend/cpu"
	"github.com/born-ml/neuralstyle/internal/tensor"
)

// TestMaxPool2D_Forward tests 2x2 pooling with known values.
func TestMaxPool2D_Forward(t *testing.T) {
	backend := cpu.New()
	pool := NewMaxPool2D(2, 2, backend)

	input, _ := tensor.FromFloat32([]float32{
		1, 2, 5, 6,
		3, 4, 7, 8,
		9, 10, 13, 14,
		11, 12, 15, 16,
	}, tensor.Shape{1, 1, 4, 4})

	output := pool.Forward(input)

	if !output.Shape().Equal(tensor.Shape{1, 1, 2, 2}) {
		t.Fatalf("Output shape: expected [1 1 2 2], got %v", output.Shape())
	}

	expected := []float32{4, 8, 12, 16}
	for i, exp := range expected {
		if got := output.AsFloat32()[i]; got != exp {
			t.Errorf("output[%d] = %v, want %v", i, got, exp)
		}
	}
}

// TestMaxPool2D_HalvesOddSize tests that a 2x2/2 pool floors odd sizes.
func TestMaxPool2D_HalvesOddSize(t *testing.T) {
	backend := cpu.New()
	pool := NewMaxPool2D(2, 2, backend)

	input, _ := tensor.Zeros(tensor.Shape{1, 2, 5, 7})
	output := pool.Forward(input)

	if !output.Shape().Equal(tensor.Shape{1, 2, 2, 3}) {
		t.Errorf("Output shape: expected [1 2 2 3], got %v", output.Shape())
	}
}

// TestMaxPool2D_NoParameters tests that pooling exposes no parameters.
func TestMaxPool2D_NoParameters(t *testing.T) {
	pool := NewMaxPool2D(2, 2, cpu.New())
	if len(pool.Parameters()) != 0 {
		t.Errorf("Expected no parameters, got %d", len(pool.Parameters()))
	}
}

// TestMaxPool2D_InvalidKernel tests constructor validation.
func TestMaxPool2D_InvalidKernel(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for zero kernel size")
		}
	}()
	NewMaxPool2D(0, 2, cpu.New())
}
