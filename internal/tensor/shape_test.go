package tensor

import (
	"testing"
)

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{Shape{2, 3}, 6},
		{Shape{1, 3, 224, 224}, 150528},
		{Shape{1}, 1},
		{Shape{}, 1},
	}
	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.want {
			t.Errorf("NumElements(%v) = %d, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestShapeValidate(t *testing.T) {
	if err := (Shape{2, 3}).Validate(); err != nil {
		t.Errorf("Validate(2,3) failed: %v", err)
	}
	if err := (Shape{2, 0}).Validate(); err == nil {
		t.Error("Validate should reject zero dimension")
	}
	if err := (Shape{-1, 3}).Validate(); err == nil {
		t.Error("Validate should reject negative dimension")
	}
}

func TestShapeEqual(t *testing.T) {
	if !(Shape{2, 3}).Equal(Shape{2, 3}) {
		t.Error("equal shapes reported unequal")
	}
	if (Shape{2, 3}).Equal(Shape{3, 2}) {
		t.Error("unequal shapes reported equal")
	}
	if (Shape{2, 3}).Equal(Shape{2, 3, 1}) {
		t.Error("shapes of different rank reported equal")
	}
}

func TestComputeStrides(t *testing.T) {
	strides := Shape{2, 3, 4}.ComputeStrides()
	want := []int{12, 4, 1}
	for i := range want {
		if strides[i] != want[i] {
			t.Errorf("stride %d = %d, want %d", i, strides[i], want[i])
		}
	}
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		a, b, want Shape
	}{
		{Shape{1, 3, 4, 4}, Shape{1, 3, 1, 1}, Shape{1, 3, 4, 4}},
		{Shape{3, 1}, Shape{1, 4}, Shape{3, 4}},
		{Shape{5}, Shape{5}, Shape{5}},
		{Shape{2, 3}, Shape{3}, Shape{2, 3}},
		{Shape{1}, Shape{2, 3}, Shape{2, 3}},
	}
	for _, tt := range tests {
		got, err := BroadcastShapes(tt.a, tt.b)
		if err != nil {
			t.Errorf("BroadcastShapes(%v, %v) failed: %v", tt.a, tt.b, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("BroadcastShapes(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestBroadcastShapesIncompatible(t *testing.T) {
	if _, err := BroadcastShapes(Shape{2, 3}, Shape{2, 4}); err == nil {
		t.Error("BroadcastShapes should reject incompatible dims")
	}
	if _, err := BroadcastShapes(Shape{3, 2}, Shape{2, 2, 4}); err == nil {
		t.Error("BroadcastShapes should reject incompatible ranks")
	}
}
