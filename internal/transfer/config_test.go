package transfer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, float32(1), config.ContentWeight)
	assert.Equal(t, float32(1e6), config.StyleWeight)
	assert.Equal(t, "conv4_2", config.ContentLayer)
	assert.Equal(t, float32(0.003), config.LearningRate)
	assert.Equal(t, 2001, config.Steps)
	assert.Equal(t, 200, config.ShowEvery)

	assert.Equal(t, map[string]float32{
		"conv1_1": 1.0,
		"conv2_1": 0.8,
		"conv3_1": 0.5,
		"conv4_1": 0.3,
		"conv5_1": 0.1,
	}, config.StyleWeights)

	require.NoError(t, config.validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:    "zero steps",
			mutate:  func(c *Config) { c.Steps = 0 },
			wantErr: "steps must be positive",
		},
		{
			name:    "negative learning rate",
			mutate:  func(c *Config) { c.LearningRate = -0.1 },
			wantErr: "learning rate must be positive",
		},
		{
			name:    "negative show every",
			mutate:  func(c *Config) { c.ShowEvery = -1 },
			wantErr: "show every must not be negative",
		},
		{
			name:    "negative content weight",
			mutate:  func(c *Config) { c.ContentWeight = -1 },
			wantErr: "content weight must not be negative",
		},
		{
			name:    "negative style weight",
			mutate:  func(c *Config) { c.StyleWeight = -1 },
			wantErr: "style weight must not be negative",
		},
		{
			name:    "unknown content layer",
			mutate:  func(c *Config) { c.ContentLayer = "relu4_2" },
			wantErr: `unknown content layer "relu4_2"`,
		},
		{
			name:    "no style layers",
			mutate:  func(c *Config) { c.StyleWeights = nil },
			wantErr: "at least one style layer",
		},
		{
			name:    "unknown style layer",
			mutate:  func(c *Config) { c.StyleWeights = map[string]float32{"conv6_1": 1} },
			wantErr: `unknown style layer "conv6_1"`,
		},
		{
			name:    "negative style layer weight",
			mutate:  func(c *Config) { c.StyleWeights = map[string]float32{"conv1_1": -0.5} },
			wantErr: "negative weight",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(&config)

			err := config.validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_ZeroStyleWeightIsValid(t *testing.T) {
	config := DefaultConfig()
	config.StyleWeight = 0
	require.NoError(t, config.validate())
}

func TestConfig_PoolingLayersAreValidTargets(t *testing.T) {
	config := DefaultConfig()
	config.ContentLayer = "pool3"
	require.NoError(t, config.validate())
}
