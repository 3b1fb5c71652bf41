package dynamo

import (
	"context"
	"fmt"
	"math"
)

type Simulator struct {
	sys        System
	integrator Integrator
	metrics    []Metric
	observers  []Observer
}

func New(sys System, integrator Integrator) *Simulator {
	return &Simulator{
		sys:        sys,
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) System() System { return s.sys }

// Run advances x0 exactly cfg.Steps times. Observers and metrics see the
// state after every step. The run stops early only on context
// cancellation, an observer error, or a non-finite state when
// cfg.ValidateState is set.
func (s *Simulator) Run(ctx context.Context, x0 State, noise NoiseSource, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{Metrics: make(map[string]float64)}
	if cfg.Record {
		result.States = make([]State, 0, cfg.Steps+1)
		result.Times = make([]float64, 0, cfg.Steps+1)
		result.States = append(result.States, x0)
		result.Times = append(result.Times, 0)
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0
	t := 0.0

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			result.Final = x
			return result, fmt.Errorf("%w: %v", ErrContextCanceled, ctx.Err())
		default:
		}

		next := s.integrator.Step(s.sys, x, cfg.Dt, noise)
		t = float64(i+1) * cfg.Dt

		if cfg.ValidateState && !next.IsValid() {
			result.Final = x
			return result, &SimulationError{Step: i + 1, Time: t, State: next, Wrapped: ErrInvalidState}
		}

		x = next
		result.StepsTaken++

		if cfg.Record {
			result.States = append(result.States, x)
			result.Times = append(result.Times, t)
		}
		for _, m := range s.metrics {
			m.Observe(x, t)
		}
		for _, obs := range s.observers {
			if err := obs.OnStep(i+1, x, t); err != nil {
				result.Final = x
				return result, err
			}
		}
	}

	result.Final = x
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 || math.IsNaN(cfg.Dt) || math.IsInf(cfg.Dt, 0) {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrParameterBounds, cfg.Dt)
	}
	if cfg.Steps <= 0 {
		return fmt.Errorf("%w: steps must be positive, got %d", ErrParameterBounds, cfg.Steps)
	}
	return nil
}
