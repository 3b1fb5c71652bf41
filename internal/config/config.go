package config

import (
	"fmt"
	"math"
	"os"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/brownian/internal/dynamo"
	"github.com/san-kum/brownian/internal/physics"
)

const (
	DefaultDt    = 0.01
	DefaultSteps = 10000
)

type Config struct {
	Force       string          `yaml:"force"`
	Integrator  string          `yaml:"integrator"`
	Stiffness   float64         `yaml:"stiffness"`
	Gamma       float64         `yaml:"gamma"`
	Temperature float64         `yaml:"temperature"`
	Mass        float64         `yaml:"mass"`
	Dt          float64         `yaml:"dt"`
	Steps       int             `yaml:"steps"`
	Seed        int64           `yaml:"seed"`
	InitState   InitStateConfig `yaml:"init_state"`
}

type InitStateConfig struct {
	X float64 `yaml:"x"`
	V float64 `yaml:"v"`
}

func DefaultConfig() *Config {
	return &Config{
		Force:       physics.ForceHarmonic,
		Integrator:  "euler_maruyama",
		Stiffness:   physics.DefaultStiffness,
		Gamma:       physics.DefaultGamma,
		Temperature: physics.DefaultTemperature,
		Mass:        physics.DefaultMass,
		Dt:          DefaultDt,
		Steps:       DefaultSteps,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Sigma is the noise intensity implied by temperature and friction.
func (c *Config) Sigma() float64 {
	return physics.NoiseIntensity(c.Temperature, c.Gamma)
}

func (c *Config) InitialState() dynamo.State {
	return dynamo.State{X: c.InitState.X, V: c.InitState.V}
}

// Particle builds the particle described by c. The force name must be
// registered in physics.
func (c *Config) Particle() (*physics.Particle, error) {
	force, err := physics.ForceByName(c.Force, c.Stiffness)
	if err != nil {
		return nil, err
	}
	p := physics.NewParticle(c.Mass, c.Gamma, c.Sigma(), force)
	if force != nil {
		p.Stiffness = c.Stiffness
	}
	return p, nil
}

func (c *Config) SimConfig() dynamo.Config {
	cfg := dynamo.DefaultConfig()
	cfg.Dt = c.Dt
	cfg.Steps = c.Steps
	cfg.Seed = c.Seed
	return cfg
}

// Fingerprint hashes every parameter except the seed, so runs of the same
// setup share a fingerprint.
func (c *Config) Fingerprint() string {
	cc := *c
	cc.Seed = 0
	data, err := yaml.Marshal(&cc)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// SetParam overrides a numeric parameter by its flag name.
func (c *Config) SetParam(name string, value float64) error {
	switch name {
	case "dt":
		c.Dt = value
	case "gamma":
		c.Gamma = value
	case "temperature":
		c.Temperature = value
	case "mass":
		c.Mass = value
	case "k":
		c.Stiffness = value
	default:
		return fmt.Errorf("unknown parameter: %s", name)
	}
	return nil
}

// Validate rejects parameters the integrator cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Mass <= 0 || !finite(c.Mass):
		return fmt.Errorf("%w: mass must be positive, got %g", dynamo.ErrParameterBounds, c.Mass)
	case c.Dt <= 0 || !finite(c.Dt):
		return fmt.Errorf("%w: dt must be positive, got %g", dynamo.ErrParameterBounds, c.Dt)
	case c.Steps <= 0:
		return fmt.Errorf("%w: steps must be positive, got %d", dynamo.ErrParameterBounds, c.Steps)
	case c.Gamma < 0 || !finite(c.Gamma):
		return fmt.Errorf("%w: gamma must be non-negative, got %g", dynamo.ErrParameterBounds, c.Gamma)
	case c.Temperature < 0 || !finite(c.Temperature):
		return fmt.Errorf("%w: temperature must be non-negative, got %g", dynamo.ErrParameterBounds, c.Temperature)
	}
	if _, err := physics.ForceByName(c.Force, c.Stiffness); err != nil {
		return err
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
