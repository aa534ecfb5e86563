package autodiff

import (
	"github.com/born-ml/neuralstyle/internal/autodiff/ops"
	"github.com/born-ml/neuralstyle/internal/tensor"
)

// GradientTape records operations during the forward pass and computes
// gradients by walking them in reverse.
//
// Tensors registered as constants (pretrained weights, reference
// activations) never receive gradient entries; operations that know an
// input is constant can skip computing its gradient altogether.
type GradientTape struct {
	operations []ops.Operation
	constants  map[*tensor.Tensor]struct{}
	recording  bool
}

// NewGradientTape creates an empty tape.
func NewGradientTape() *GradientTape {
	return &GradientTape{
		operations: make([]ops.Operation, 0, 64),
		constants:  make(map[*tensor.Tensor]struct{}),
	}
}

// StartRecording enables operation recording.
func (t *GradientTape) StartRecording() {
	t.recording = true
}

// StopRecording disables operation recording.
func (t *GradientTape) StopRecording() {
	t.recording = false
}

// IsRecording reports whether operations are currently recorded.
func (t *GradientTape) IsRecording() bool {
	return t.recording
}

// Record appends an operation when recording is on.
func (t *GradientTape) Record(op ops.Operation) {
	if t.recording {
		t.operations = append(t.operations, op)
	}
}

// MarkConstant registers a tensor as non-differentiable. Constants keep
// their registration across Clear, so frozen weights are marked once.
func (t *GradientTape) MarkConstant(tensors ...*tensor.Tensor) {
	for _, tn := range tensors {
		t.constants[tn] = struct{}{}
	}
}

// IsConstant reports whether a tensor was marked constant.
func (t *GradientTape) IsConstant(tn *tensor.Tensor) bool {
	_, ok := t.constants[tn]
	return ok
}

// Clear drops all recorded operations. The recording flag and constant
// registrations are preserved; call this between optimization steps.
func (t *GradientTape) Clear() {
	t.operations = t.operations[:0]
}

// NumOps returns the number of recorded operations.
func (t *GradientTape) NumOps() int {
	return len(t.operations)
}

// Backward walks the tape in reverse and returns the gradient of the
// final output w.r.t. every non-constant tensor that influenced it.
//
// outputGrad seeds the walk; for a loss produced by Mean it is a
// single-element tensor holding 1. The backend must be one whose
// operations never modify their operands in place; the autodiff
// backend itself satisfies this.
func (t *GradientTape) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) map[*tensor.Tensor]*tensor.Tensor {
	grads := make(map[*tensor.Tensor]*tensor.Tensor)
	if len(t.operations) == 0 {
		return grads
	}

	// Gradient computations must not be recorded.
	wasRecording := t.recording
	t.recording = false
	defer func() { t.recording = wasRecording }()

	lastOp := t.operations[len(t.operations)-1]
	grads[lastOp.Output()] = outputGrad

	for i := len(t.operations) - 1; i >= 0; i-- {
		op := t.operations[i]

		opOutputGrad, ok := grads[op.Output()]
		if !ok {
			// Dead branch: nothing downstream consumed this output.
			continue
		}

		inputGrads := op.Backward(opOutputGrad, backend)
		t.accumulate(op.Inputs(), inputGrads, grads, backend)
	}

	return grads
}

// accumulate folds input gradients into the gradient map, adding where
// a tensor already has one. Constants and nil gradients are skipped.
func (t *GradientTape) accumulate(
	inputs []*tensor.Tensor,
	inputGrads []*tensor.Tensor,
	grads map[*tensor.Tensor]*tensor.Tensor,
	backend tensor.Backend,
) {
	for i, input := range inputs {
		if i >= len(inputGrads) || inputGrads[i] == nil {
			continue
		}
		if t.IsConstant(input) {
			continue
		}
		if existing, ok := grads[input]; ok {
			grads[input] = backend.Add(existing, inputGrads[i])
		} else {
			grads[input] = inputGrads[i]
		}
	}
}
