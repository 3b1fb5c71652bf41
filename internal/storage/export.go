package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/brownian/internal/dynamo"
)

type ExportData struct {
	RunMetadata
	Times      []float64 `json:"times"`
	Positions  []float64 `json:"positions"`
	Velocities []float64 `json:"velocities"`
}

// ExportJSON writes the run metadata and trajectory as one JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, states []dynamo.State, times []float64) error {
	data := ExportData{
		RunMetadata: *meta,
		Times:       times,
		Positions:   make([]float64, len(states)),
		Velocities:  make([]float64, len(states)),
	}
	for i, s := range states {
		data.Positions[i] = s.X
		data.Velocities[i] = s.V
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
