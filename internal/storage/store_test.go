package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/brownian/internal/dynamo"
)

func testResult() *dynamo.Result {
	return &dynamo.Result{
		States:     []dynamo.State{{X: 0, V: 0}, {X: 0.1, V: -1.5}, {X: 0.25, V: 1e-07}},
		Times:      []float64{0, 0.01, 0.02},
		Final:      dynamo.State{X: 0.25, V: 1e-07},
		Metrics:    map[string]float64{"stability": 1},
		StepsTaken: 2,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	meta := RunMetadata{Force: "harmonic", Seed: 42, Dt: 0.01, Steps: 2, Mass: 1, Gamma: 1, Temperature: 10}
	runID, err := st.Save(meta, testResult())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(runID, "harmonic_") {
		t.Errorf("unexpected run id %q", runID)
	}

	loaded, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.ID != runID || loaded.Seed != 42 || loaded.Force != "harmonic" {
		t.Errorf("metadata mismatch: %+v", loaded)
	}
	if loaded.Metrics["stability"] != 1 {
		t.Errorf("expected metrics to be saved, got %v", loaded.Metrics)
	}
	if loaded.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		t.Fatalf("load states: %v", err)
	}
	want := testResult()
	if len(states) != len(want.States) {
		t.Fatalf("expected %d states, got %d", len(want.States), len(states))
	}
	for i := range states {
		if states[i] != want.States[i] {
			t.Errorf("state %d: got %v, want %v", i, states[i], want.States[i])
		}
		if times[i] != want.Times[i] {
			t.Errorf("time %d: got %v, want %v", i, times[i], want.Times[i])
		}
	}
}

func TestStoreUniqueIDs(t *testing.T) {
	st := New(t.TempDir())
	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		id, err := st.Save(RunMetadata{Force: "none"}, testResult())
		if err != nil {
			t.Fatal(err)
		}
		if seen[id] {
			t.Fatalf("duplicate run id %s", id)
		}
		seen[id] = true
	}
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list empty: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	first, err := st.Save(RunMetadata{Force: "none"}, testResult())
	if err != nil {
		t.Fatal(err)
	}
	second, err := st.Save(RunMetadata{Force: "harmonic"}, testResult())
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "not-a-run"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != first || runs[1].ID != second {
		t.Errorf("expected runs in save order, got %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "missing"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestStoreLoadMissing(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); err == nil {
		t.Error("expected error for missing run")
	}
	if _, _, err := st.LoadStates("nope"); err == nil {
		t.Error("expected error for missing states")
	}
}

func TestExportJSON(t *testing.T) {
	res := testResult()
	meta := &RunMetadata{ID: "harmonic_1_abcdef12", Force: "harmonic", Dt: 0.01}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, res.States, res.Times); err != nil {
		t.Fatalf("export: %v", err)
	}

	var out ExportData
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.ID != meta.ID || out.Force != "harmonic" {
		t.Errorf("metadata not embedded: %+v", out.RunMetadata)
	}
	if len(out.Positions) != 3 || out.Positions[1] != 0.1 || out.Velocities[1] != -1.5 {
		t.Errorf("unexpected trajectory: %v %v", out.Positions, out.Velocities)
	}
}
