package optim

import (
	"fmt"
	"math"

	"github.com/born-ml/neuralstyle/internal/nn"
	"github.com/born-ml/neuralstyle/internal/tensor"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Adam keeps exponential moving averages of the gradient (first moment)
// and the squared gradient (second moment), with bias correction for the
// zero initialization.
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²
//	m_hat = m_t / (1 - beta1^t)
//	v_hat = v_t / (1 - beta2^t)
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
type Adam struct {
	params []*nn.Parameter
	lr     float32
	beta1  float32
	beta2  float32
	eps    float32
	t      int // timestep for bias correction
	m      map[*nn.Parameter]*tensor.Tensor
	v      map[*nn.Parameter]*tensor.Tensor
}

// AdamConfig holds the Adam hyperparameters.
//
// Zero values fall back to the standard defaults: LR 0.001,
// Betas [0.9, 0.999], Eps 1e-8.
type AdamConfig struct {
	LR    float32
	Betas [2]float32
	Eps   float32
}

// NewAdam creates an Adam optimizer over the given parameters.
func NewAdam(params []*nn.Parameter, config AdamConfig) *Adam {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	return &Adam{
		params: params,
		lr:     config.LR,
		beta1:  config.Betas[0],
		beta2:  config.Betas[1],
		eps:    config.Eps,
		m:      make(map[*nn.Parameter]*tensor.Tensor),
		v:      make(map[*nn.Parameter]*tensor.Tensor),
	}
}

// Step performs one Adam update on every parameter with a gradient.
func (a *Adam) Step(grads map[*tensor.Tensor]*tensor.Tensor) {
	a.t++

	biasCorrection1 := float32(1.0 - math.Pow(float64(a.beta1), float64(a.t)))
	biasCorrection2 := float32(1.0 - math.Pow(float64(a.beta2), float64(a.t)))

	for _, param := range a.params {
		grad := getGradient(param, grads)
		if grad == nil {
			continue
		}
		if !grad.Shape().Equal(param.Tensor().Shape()) {
			panic(fmt.Sprintf("adam: gradient shape %v does not match parameter %s shape %v",
				grad.Shape(), param.Name(), param.Tensor().Shape()))
		}

		m, ok := a.m[param]
		if !ok {
			m = mustZeros(param.Tensor().Shape())
			a.m[param] = m
		}
		v, ok := a.v[param]
		if !ok {
			v = mustZeros(param.Tensor().Shape())
			a.v[param] = v
		}

		a.updateParameter(param, grad, m, v, biasCorrection1, biasCorrection2)
	}
}

// updateParameter applies the Adam rule element-wise, in place.
func (a *Adam) updateParameter(
	param *nn.Parameter,
	grad, m, v *tensor.Tensor,
	biasCorrection1, biasCorrection2 float32,
) {
	gradData := grad.AsFloat32()
	mData := m.AsFloat32()
	vData := v.AsFloat32()
	paramData := param.Tensor().AsFloat32()

	for i := range paramData {
		g := gradData[i]

		mData[i] = a.beta1*mData[i] + (1.0-a.beta1)*g
		vData[i] = a.beta2*vData[i] + (1.0-a.beta2)*g*g

		mHat := mData[i] / biasCorrection1
		vHat := vData[i] / biasCorrection2

		paramData[i] -= a.lr * mHat / (float32(math.Sqrt(float64(vHat))) + a.eps)
	}
}

// ZeroGrad clears the gradients attached to all parameters.
func (a *Adam) ZeroGrad() {
	for _, param := range a.params {
		param.ZeroGrad()
	}
}

// GetLR returns the current learning rate.
func (a *Adam) GetLR() float32 {
	return a.lr
}

// GetTimestep returns the number of steps taken so far.
func (a *Adam) GetTimestep() int {
	return a.t
}

func mustZeros(shape tensor.Shape) *tensor.Tensor {
	t, err := tensor.Zeros(shape)
	if err != nil {
		panic(fmt.Sprintf("adam: %v", err))
	}
	return t
}
