package dynamo

import (
	"context"
	"errors"
	"math"
	"testing"
)

// decay is dv = -v dt with unit noise scale.
type decay struct{}

func (d *decay) Drift(s State) float64 { return -s.V }
func (d *decay) NoiseScale() float64   { return 1 }

type testIntegrator struct{}

func (t *testIntegrator) Step(sys System, s State, dt float64, noise NoiseSource) State {
	return State{
		X: s.X + dt*s.V,
		V: s.V + dt*sys.Drift(s) + math.Sqrt(dt)*sys.NoiseScale()*noise.Normal(),
	}
}

type fixedNoise float64

func (f fixedNoise) Normal() float64 { return float64(f) }

type countMetric struct {
	n int
}

func (c *countMetric) Name() string               { return "count" }
func (c *countMetric) Observe(s State, t float64) { c.n++ }
func (c *countMetric) Value() float64             { return float64(c.n) }
func (c *countMetric) Reset()                     { c.n = 0 }

func TestSimulatorRun(t *testing.T) {
	sim := New(&decay{}, &testIntegrator{})
	sim.AddMetric(&countMetric{})

	cfg := Config{Dt: 0.1, Steps: 10, Record: true}
	result, err := sim.Run(context.Background(), State{X: 0, V: 1}, fixedNoise(0), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.States) != 11 {
		t.Errorf("expected 11 states, got %d", len(result.States))
	}
	if len(result.Times) != 11 {
		t.Errorf("expected 11 times, got %d", len(result.Times))
	}
	if result.StepsTaken != 10 {
		t.Errorf("expected 10 steps, got %d", result.StepsTaken)
	}
	if result.Metrics["count"] != 10 {
		t.Errorf("expected metric to observe 10 states, got %v", result.Metrics["count"])
	}
	if math.Abs(result.Times[10]-1.0) > 1e-12 {
		t.Errorf("expected final time 1.0, got %v", result.Times[10])
	}

	expected := math.Pow(0.9, 10)
	if math.Abs(result.Final.V-expected) > 1e-12 {
		t.Errorf("expected final velocity %.6f, got %.6f", expected, result.Final.V)
	}
	if result.Final != result.States[10] {
		t.Errorf("final %v differs from last recorded %v", result.Final, result.States[10])
	}
}

func TestSimulatorNoRecord(t *testing.T) {
	sim := New(&decay{}, &testIntegrator{})
	result, err := sim.Run(context.Background(), State{}, fixedNoise(1), Config{Dt: 0.01, Steps: 100})
	if err != nil {
		t.Fatal(err)
	}
	if result.States != nil {
		t.Errorf("expected no recorded states, got %d", len(result.States))
	}
	if result.StepsTaken != 100 {
		t.Errorf("expected 100 steps, got %d", result.StepsTaken)
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	sim := New(&decay{}, &testIntegrator{})

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, Steps: 10}},
		{"negative dt", Config{Dt: -0.1, Steps: 10}},
		{"nan dt", Config{Dt: math.NaN(), Steps: 10}},
		{"zero steps", Config{Dt: 0.1, Steps: 0}},
		{"negative steps", Config{Dt: 0.1, Steps: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sim.Run(context.Background(), State{}, fixedNoise(0), tt.cfg)
			if !errors.Is(err, ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", err)
			}
		})
	}
}

func TestSimulatorContextCancel(t *testing.T) {
	sim := New(&decay{}, &testIntegrator{})

	ctx, cancel := context.WithCancel(context.Background())
	sim.AddObserver(ObserverFunc(func(step int, s State, t float64) error {
		if step == 5 {
			cancel()
		}
		return nil
	}))

	result, err := sim.Run(ctx, State{}, fixedNoise(0), DefaultConfig())
	if !errors.Is(err, ErrContextCanceled) {
		t.Fatalf("expected ErrContextCanceled, got %v", err)
	}
	if result.StepsTaken != 5 {
		t.Errorf("expected 5 steps before cancel, got %d", result.StepsTaken)
	}
}

func TestSimulatorInvalidState(t *testing.T) {
	sim := New(&decay{}, &testIntegrator{})

	cfg := DefaultConfig()
	result, err := sim.Run(context.Background(), State{}, fixedNoise(math.Inf(1)), cfg)
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}

	var simErr *SimulationError
	if !errors.As(err, &simErr) {
		t.Fatalf("expected SimulationError, got %T", err)
	}
	if simErr.Step != 1 {
		t.Errorf("expected failure at step 1, got %d", simErr.Step)
	}
	if !result.Final.IsValid() {
		t.Errorf("final state should be the last valid one, got %v", result.Final)
	}

	cfg.ValidateState = false
	result, err = sim.Run(context.Background(), State{}, fixedNoise(math.Inf(1)), cfg)
	if err != nil {
		t.Fatalf("expected no error without validation, got %v", err)
	}
	if result.StepsTaken != cfg.Steps {
		t.Errorf("expected %d steps, got %d", cfg.Steps, result.StepsTaken)
	}
}

func TestSimulatorObserverError(t *testing.T) {
	sim := New(&decay{}, &testIntegrator{})
	stop := errors.New("stop")
	sim.AddObserver(ObserverFunc(func(step int, s State, t float64) error {
		if step == 3 {
			return stop
		}
		return nil
	}))

	result, err := sim.Run(context.Background(), State{}, fixedNoise(0), DefaultConfig())
	if !errors.Is(err, stop) {
		t.Fatalf("expected observer error, got %v", err)
	}
	if result.StepsTaken != 3 {
		t.Errorf("expected 3 steps, got %d", result.StepsTaken)
	}
}

func TestStateIsValid(t *testing.T) {
	tests := []struct {
		s    State
		want bool
	}{
		{State{X: 1, V: -1}, true},
		{State{X: math.NaN()}, false},
		{State{V: math.Inf(-1)}, false},
	}
	for _, tt := range tests {
		if got := tt.s.IsValid(); got != tt.want {
			t.Errorf("%v.IsValid() = %v, want %v", tt.s, got, tt.want)
		}
	}
}
