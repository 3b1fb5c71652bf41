package optim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/brownian/internal/config"
	"github.com/san-kum/brownian/internal/experiment"
)

func TestGridSearch(t *testing.T) {
	base := config.DefaultConfig()
	base.Steps = 200
	base.Seed = 1

	grid := NewGridSearch([]string{"gamma", "k"}, [][]float64{{0.5, 1, 2}, {1, 4}})
	samples, best, err := grid.Search(context.Background(), base, experiment.NewRegistry(), "stability", 1)
	require.NoError(t, err)
	require.Len(t, samples, 6)

	// Last parameter varies fastest.
	assert.Equal(t, map[string]float64{"gamma": 0.5, "k": 1}, samples[0].Params)
	assert.Equal(t, map[string]float64{"gamma": 0.5, "k": 4}, samples[1].Params)
	assert.Equal(t, map[string]float64{"gamma": 2, "k": 4}, samples[5].Params)

	assert.Equal(t, 1.0, best.Value)
	assert.Equal(t, 1.0, base.Gamma, "base config must not change")
	assert.Equal(t, 1.0, base.Stiffness, "base config must not change")
}

func TestGridSearchClosestToTarget(t *testing.T) {
	base := config.DefaultConfig()
	base.Steps = 500
	base.Seed = 2

	grid := NewGridSearch([]string{"temperature"}, [][]float64{{0.1, 10, 1000}})
	samples, best, err := grid.Search(context.Background(), base, experiment.NewRegistry(), "kinetic_temperature", 10)
	require.NoError(t, err)
	require.Len(t, samples, 3)

	assert.Equal(t, 10.0, best.Params["temperature"])
	assert.Less(t, samples[0].Value, samples[2].Value)
}

func TestGridSearchErrors(t *testing.T) {
	base := config.DefaultConfig()
	base.Steps = 10
	r := experiment.NewRegistry()

	tests := []struct {
		name   string
		params []string
		ranges [][]float64
		metric string
	}{
		{"unknown parameter", []string{"charge"}, [][]float64{{1}}, "stability"},
		{"invalid value", []string{"mass"}, [][]float64{{0}}, "stability"},
		{"unknown metric", []string{"gamma"}, [][]float64{{1}}, "entropy"},
		{"mismatched ranges", []string{"gamma", "k"}, [][]float64{{1}}, "stability"},
		{"empty range", []string{"gamma"}, [][]float64{{}}, "stability"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := NewGridSearch(tt.params, tt.ranges).Search(context.Background(), base, r, tt.metric, 0)
			assert.Error(t, err)
		})
	}
}

func TestGridSearchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	grid := NewGridSearch([]string{"gamma"}, [][]float64{{1, 2}})
	_, _, err := grid.Search(ctx, config.DefaultConfig(), experiment.NewRegistry(), "stability", 1)
	assert.ErrorIs(t, err, context.Canceled)
}
