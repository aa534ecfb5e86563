package vgg

import "fmt"

// layerOp distinguishes feature table rows.
type layerOp int

const (
	opConv layerOp = iota
	opPool
)

// layerSpec is one row of the VGG19 feature stack. index is the layer's
// position inside the torchvision features Sequential, so convolution
// weights are stored under "features.{index}.weight". Every convolution
// is followed by a ReLU at index+1; ReLUs carry no weights and are not
// listed.
type layerSpec struct {
	index int
	op    layerOp
	name  string
	in    int // conv only
	out   int // conv only
}

// featureTable lists the VGG19 feature layers in execution order.
var featureTable = []layerSpec{
	{index: 0, op: opConv, name: "conv1_1", in: 3, out: 64},
	{index: 2, op: opConv, name: "conv1_2", in: 64, out: 64},
	{index: 4, op: opPool, name: "pool1"},
	{index: 5, op: opConv, name: "conv2_1", in: 64, out: 128},
	{index: 7, op: opConv, name: "conv2_2", in: 128, out: 128},
	{index: 9, op: opPool, name: "pool2"},
	{index: 10, op: opConv, name: "conv3_1", in: 128, out: 256},
	{index: 12, op: opConv, name: "conv3_2", in: 256, out: 256},
	{index: 14, op: opConv, name: "conv3_3", in: 256, out: 256},
	{index: 16, op: opConv, name: "conv3_4", in: 256, out: 256},
	{index: 18, op: opPool, name: "pool3"},
	{index: 19, op: opConv, name: "conv4_1", in: 256, out: 512},
	{index: 21, op: opConv, name: "conv4_2", in: 512, out: 512},
	{index: 23, op: opConv, name: "conv4_3", in: 512, out: 512},
	{index: 25, op: opConv, name: "conv4_4", in: 512, out: 512},
	{index: 27, op: opPool, name: "pool4"},
	{index: 28, op: opConv, name: "conv5_1", in: 512, out: 512},
	{index: 30, op: opConv, name: "conv5_2", in: 512, out: 512},
	{index: 32, op: opConv, name: "conv5_3", in: 512, out: 512},
	{index: 34, op: opConv, name: "conv5_4", in: 512, out: 512},
	{index: 36, op: opPool, name: "pool5"},
}

// Fixed hyperparameters of the VGG19 feature stack.
const (
	kernelSize = 3
	convStride = 1
	convPad    = 1
	poolSize   = 2
	poolStride = 2
)

// LayerNames returns every capturable layer name in forward order.
// Loss terms iterate layers in this order so runs are reproducible
// regardless of how a configuration map happens to be traversed.
func LayerNames() []string {
	names := make([]string, len(featureTable))
	for i, spec := range featureTable {
		names[i] = spec.name
	}
	return names
}

// KnownLayer reports whether name refers to a feature stack layer.
func KnownLayer(name string) bool {
	for _, spec := range featureTable {
		if spec.name == name {
			return true
		}
	}
	return false
}

// weightKey and biasKey name tensors the way torchvision exports them.
func weightKey(index int) string {
	return fmt.Sprintf("features.%d.weight", index)
}

func biasKey(index int) string {
	return fmt.Sprintf("features.%d.bias", index)
}
