package vgg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeatureTable_MatchesTorchvisionLayout(t *testing.T) {
	wantConv := []int{0, 2, 5, 7, 10, 12, 14, 16, 19, 21, 23, 25, 28, 30, 32, 34}
	wantPool := []int{4, 9, 18, 27, 36}

	var gotConv, gotPool []int
	for _, spec := range featureTable {
		switch spec.op {
		case opConv:
			gotConv = append(gotConv, spec.index)
		case opPool:
			gotPool = append(gotPool, spec.index)
		}
	}
	assert.Equal(t, wantConv, gotConv)
	assert.Equal(t, wantPool, gotPool)
}

func TestFeatureTable_ChannelProgression(t *testing.T) {
	prev := 3
	for _, spec := range featureTable {
		if spec.op != opConv {
			continue
		}
		assert.Equal(t, prev, spec.in, "%s input channels", spec.name)
		assert.NotZero(t, spec.out, "%s output channels", spec.name)
		prev = spec.out
	}
	assert.Equal(t, 512, prev, "deepest block width")
}

func TestLayerNames_ForwardOrder(t *testing.T) {
	names := LayerNames()
	assert.Len(t, names, len(featureTable))
	assert.Equal(t, "conv1_1", names[0])
	assert.Equal(t, "pool5", names[len(names)-1])

	// Forward order follows the torchvision indices.
	byName := make(map[string]int, len(featureTable))
	for _, spec := range featureTable {
		byName[spec.name] = spec.index
	}
	for i := 1; i < len(names); i++ {
		assert.Less(t, byName[names[i-1]], byName[names[i]])
	}
}

func TestKnownLayer(t *testing.T) {
	// Every layer the default configuration touches must exist.
	for _, name := range []string{"conv1_1", "conv2_1", "conv3_1", "conv4_1", "conv4_2", "conv5_1"} {
		assert.True(t, KnownLayer(name), name)
	}
	assert.False(t, KnownLayer("conv6_1"))
	assert.False(t, KnownLayer("relu1_1"))
	assert.False(t, KnownLayer(""))
}

func TestWeightKeys(t *testing.T) {
	assert.Equal(t, "features.0.weight", weightKey(0))
	assert.Equal(t, "features.21.bias", biasKey(21))
}
