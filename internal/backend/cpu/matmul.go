package cpu

import (
	"fmt"

	"github.com/born-ml/neuralstyle/internal/parallel"
	"github.com/born-ml/neuralstyle/internal/tensor"
)

// MatMul multiplies two 2-D matrices: (M,K) @ (K,N) -> (M,N).
// Rows of the result are computed on separate goroutines; each row's
// accumulation runs left to right, so the result does not depend on the
// schedule.
func (cpu *CPUBackend) MatMul(a, b *tensor.Tensor) *tensor.Tensor {
	aShape := a.Shape()
	bShape := b.Shape()

	if len(aShape) != 2 || len(bShape) != 2 {
		panic(fmt.Sprintf("matmul: only 2D tensors supported, got %dD and %dD", len(aShape), len(bShape)))
	}
	if a.DType() != tensor.Float32 || b.DType() != tensor.Float32 {
		panic(fmt.Sprintf("matmul: unsupported dtype %s", a.DType()))
	}

	m, k := aShape[0], aShape[1]
	kAlt, n := bShape[0], bShape[1]
	if k != kAlt {
		panic(fmt.Sprintf("matmul: shape mismatch [%d,%d] @ [%d,%d]", m, k, kAlt, n))
	}

	result, err := tensor.New(tensor.Shape{m, n}, tensor.Float32)
	if err != nil {
		panic(fmt.Sprintf("matmul: %v", err))
	}

	matmulFloat32(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), m, k, n, cpu.workers)
	return result
}

// matmulFloat32 computes C[i,j] = sum_k A[i,k] * B[k,j].
func matmulFloat32(c, a, b []float32, m, k, n int, workers parallel.Config) {
	parallel.For(m, func(i int) {
		aRow := a[i*k : (i+1)*k]
		cRow := c[i*n : (i+1)*n]
		for j := 0; j < n; j++ {
			sum := float32(0)
			for kk := 0; kk < k; kk++ {
				sum += aRow[kk] * b[kk*n+j]
			}
			cRow[j] = sum
		}
	}, workers)
}
