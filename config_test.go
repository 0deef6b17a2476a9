package sweep_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setanarut/sweep"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := sweep.LoadConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, sweep.DefaultConfig(), cfg)
}

func TestLoadConfigPartial(t *testing.T) {
	cfg, err := sweep.LoadConfig(strings.NewReader(`
time_scale: 1.5
broadphase:
  enabled: false
  max_depth: 3
`))
	require.NoError(t, err)
	assert.Equal(t, 1.5, cfg.TimeScale)
	assert.Equal(t, sweep.DefaultMaxIterations, cfg.MaxIterations)
	assert.False(t, cfg.Broadphase.Enabled)
	assert.Equal(t, 3, cfg.Broadphase.MaxDepth)
	assert.Equal(t, sweep.DefaultQuadtreeMaxItems, cfg.Broadphase.MaxItems)
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"time scale", "time_scale: 0"},
		{"iterations", "max_iterations: -3"},
		{"padding", "broadphase:\n  padding: -1"},
		{"max items", "broadphase:\n  max_items: 0"},
		{"index", "broadphase:\n  index: grid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sweep.LoadConfig(strings.NewReader(tt.yaml))
			assert.ErrorIs(t, err, sweep.ErrInvalidConfig)
		})
	}

	_, err := sweep.LoadConfig(strings.NewReader("time_scale: [1"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, sweep.ErrInvalidConfig)
}

func TestNewSceneSanitizesConfig(t *testing.T) {
	scene := sweep.NewScene(sweep.Config{})
	cfg := scene.Config()
	assert.Equal(t, 1.0, cfg.TimeScale)
	assert.Equal(t, sweep.DefaultMaxIterations, cfg.MaxIterations)
	assert.Equal(t, 1.0, scene.TimeScale())
	assert.Equal(t, sweep.IndexQuadtree, cfg.Broadphase.Index)
	assert.NoError(t, cfg.Validate())
}
