package dynamo

import (
	"context"
	"math/rand/v2"
	"testing"
)

type seededNoise struct {
	r *rand.Rand
}

func (s *seededNoise) Normal() float64 { return s.r.NormFloat64() }

func newSeededNoise(seed int64) NoiseSource {
	return &seededNoise{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

func TestEnsembleRun(t *testing.T) {
	sim := New(&decay{}, &testIntegrator{})
	ens := NewEnsemble(sim, 8, 100, newSeededNoise)

	cfg := Config{Dt: 0.01, Steps: 50, Record: true}
	results, err := ens.Run(context.Background(), State{}, cfg)
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 8 {
		t.Fatalf("expected 8 results, got %d", len(results))
	}

	for i, r := range results {
		if len(r.States) != 51 {
			t.Errorf("run %d: expected 51 states, got %d", i, len(r.States))
		}

		solo, err := New(&decay{}, &testIntegrator{}).Run(context.Background(), State{}, newSeededNoise(100+int64(i)), cfg)
		if err != nil {
			t.Fatal(err)
		}
		if solo.Final != r.Final {
			t.Errorf("run %d: ensemble member %v differs from sequential run %v", i, r.Final, solo.Final)
		}
	}

	if results[0].Final == results[1].Final {
		t.Error("members with different seeds should differ")
	}
}

func TestEnsembleCanceled(t *testing.T) {
	sim := New(&decay{}, &testIntegrator{})
	ens := NewEnsemble(sim, 4, 0, newSeededNoise)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := ens.Run(ctx, State{}, DefaultConfig()); err == nil {
		t.Error("expected error from canceled context")
	}
}
