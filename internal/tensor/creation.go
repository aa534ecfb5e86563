package tensor

import "fmt"

// FromFloat32 creates a Float32 tensor holding a copy of data.
func FromFloat32(data []float32, shape Shape) (*Tensor, error) {
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}
	t, err := New(shape, Float32)
	if err != nil {
		return nil, err
	}
	copy(t.AsFloat32(), data)
	return t, nil
}

// Zeros creates a Float32 tensor filled with zeros.
func Zeros(shape Shape) (*Tensor, error) {
	return New(shape, Float32)
}

// Full creates a Float32 tensor filled with value.
func Full(shape Shape, value float32) (*Tensor, error) {
	t, err := New(shape, Float32)
	if err != nil {
		return nil, err
	}
	data := t.AsFloat32()
	for i := range data {
		data[i] = value
	}
	return t, nil
}

// Ones creates a Float32 tensor filled with ones.
func Ones(shape Shape) (*Tensor, error) {
	return Full(shape, 1)
}
