package cpu

import (
	"fmt"

	"github.com/born-ml/neuralstyle/internal/tensor"
)

// Transpose permutes the tensor's dimensions. With no axes given, all
// dimensions are reversed. The common 2-D case takes a tiled fast path;
// higher ranks go through generic stride arithmetic.
func (cpu *CPUBackend) Transpose(t *tensor.Tensor, axes ...int) *tensor.Tensor {
	shape := t.Shape()
	ndim := len(shape)

	if t.DType() != tensor.Float32 {
		panic(fmt.Sprintf("transpose: unsupported dtype %s", t.DType()))
	}

	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		panic(fmt.Sprintf("transpose: axes length %d != ndim %d", len(axes), ndim))
	}
	seen := make([]bool, ndim)
	for _, ax := range axes {
		if ax < 0 || ax >= ndim {
			panic(fmt.Sprintf("transpose: invalid axis %d for %dD tensor", ax, ndim))
		}
		if seen[ax] {
			panic(fmt.Sprintf("transpose: duplicate axis %d", ax))
		}
		seen[ax] = true
	}

	newShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		newShape[i] = shape[ax]
	}

	result, err := tensor.New(newShape, tensor.Float32)
	if err != nil {
		panic(fmt.Sprintf("transpose: %v", err))
	}

	if ndim == 2 && axes[0] == 1 && axes[1] == 0 {
		transpose2DFloat32(result.AsFloat32(), t.AsFloat32(), shape[0], shape[1])
	} else {
		transposeFloat32(result.AsFloat32(), t.AsFloat32(), shape, newShape, axes)
	}
	return result
}

// transpose2DFloat32 transposes an (rows, cols) matrix in cache-sized
// tiles to keep both read and write streams local.
func transpose2DFloat32(dst, src []float32, rows, cols int) {
	const tile = 32
	for rs := 0; rs < rows; rs += tile {
		rEnd := min(rs+tile, rows)
		for cs := 0; cs < cols; cs += tile {
			cEnd := min(cs+tile, cols)
			for r := rs; r < rEnd; r++ {
				for c := cs; c < cEnd; c++ {
					dst[c*rows+r] = src[r*cols+c]
				}
			}
		}
	}
}

// transposeFloat32 handles arbitrary permutations by decomposing each
// source index into coordinates and re-composing them under the
// permuted strides.
func transposeFloat32(dst, src []float32, srcShape, dstShape tensor.Shape, axes []int) {
	ndim := len(srcShape)
	srcStrides := srcShape.ComputeStrides()
	dstStrides := dstShape.ComputeStrides()

	coords := make([]int, ndim)
	for i := range src {
		idx := i
		for dim := 0; dim < ndim; dim++ {
			coords[dim] = idx / srcStrides[dim]
			idx %= srcStrides[dim]
		}

		dstIdx := 0
		for dstDim, srcDim := range axes {
			dstIdx += coords[srcDim] * dstStrides[dstDim]
		}
		dst[dstIdx] = src[i]
	}
}
