package experiment

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/brownian/internal/config"
	"github.com/san-kum/brownian/internal/dynamo"
	"github.com/san-kum/brownian/internal/noise"
	"github.com/san-kum/brownian/internal/physics"
)

type Experiment struct {
	cfg        *config.Config
	log        *zap.Logger
	particle   *physics.Particle
	integrator dynamo.Integrator
	simulator  *dynamo.Simulator
}

func New(cfg *config.Config, log *zap.Logger) *Experiment {
	if log == nil {
		log = zap.NewNop()
	}
	return &Experiment{cfg: cfg, log: log}
}

func (e *Experiment) Setup(r *Registry) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	p, err := e.cfg.Particle()
	if err != nil {
		return err
	}
	integ, err := r.GetIntegrator(e.cfg.Integrator)
	if err != nil {
		return err
	}

	e.particle = p
	e.integrator = integ
	e.simulator = dynamo.New(p, integ)
	for _, m := range r.DefaultMetrics(p, e.cfg.InitialState()) {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*dynamo.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	e.log.Debug("run started",
		zap.String("force", e.cfg.Force),
		zap.Int64("seed", e.cfg.Seed),
		zap.Int("steps", e.cfg.Steps),
		zap.Float64("dt", e.cfg.Dt),
		zap.Float64("sigma", e.particle.Sigma),
	)
	start := time.Now()

	result, err := e.simulator.Run(ctx, e.cfg.InitialState(), noise.NewGaussian(e.cfg.Seed), e.cfg.SimConfig())
	if err != nil {
		e.log.Warn("run stopped", zap.Error(err), zap.Int("steps_taken", stepsTaken(result)))
		return result, err
	}

	e.log.Info("run finished", zap.Duration("elapsed", time.Since(start)), zap.Int("steps", result.StepsTaken))
	return result, nil
}

// Ensemble runs n independent members seeded cfg.Seed, cfg.Seed+1, ...
func (e *Experiment) Ensemble(ctx context.Context, n int) ([]*dynamo.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: ensemble size must be positive, got %d", dynamo.ErrParameterBounds, n)
	}

	ens := dynamo.NewEnsemble(e.simulator, n, e.cfg.Seed, func(seed int64) dynamo.NoiseSource {
		return noise.NewGaussian(seed)
	})

	start := time.Now()
	results, err := ens.Run(ctx, e.cfg.InitialState(), e.cfg.SimConfig())
	if err != nil {
		return nil, err
	}
	e.log.Info("ensemble finished", zap.Int("runs", n), zap.Duration("elapsed", time.Since(start)))
	return results, nil
}

func (e *Experiment) Particle() *physics.Particle { return e.particle }

func (e *Experiment) Integrator() dynamo.Integrator { return e.integrator }

func stepsTaken(r *dynamo.Result) int {
	if r == nil {
		return 0
	}
	return r.StepsTaken
}
