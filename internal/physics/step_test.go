package physics

import (
	"math"
	"testing"
)

type constNoise struct {
	value float64
	draws int
}

func (c *constNoise) Normal() float64 {
	c.draws++
	return c.value
}

func TestStepDriftOnly(t *testing.T) {
	tests := []struct {
		name              string
		x, v, h, gamma, m float64
		force             Force
		wantX, wantV      float64
	}{
		{"at rest no force", 0, 0, 0.01, 1, 1, nil, 0, 0},
		{"friction only", 0, 1, 0.1, 1, 1, nil, 0.1, 0.9},
		{"harmonic from rest", 1, 0, 0.1, 1, 1, HarmonicForce(1), 1, -0.1},
		{"heavy particle", 2, 1, 0.5, 2, 4, HarmonicForce(3), 2.5, 1 + 0.5*(-6)/4 - 0.5*2/4*1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			noise := &constNoise{}
			x, v := Step(tt.x, tt.v, tt.h, tt.gamma, 0, tt.m, tt.force, noise)
			if math.Abs(x-tt.wantX) > 1e-12 {
				t.Errorf("x = %v, want %v", x, tt.wantX)
			}
			if math.Abs(v-tt.wantV) > 1e-12 {
				t.Errorf("v = %v, want %v", v, tt.wantV)
			}
		})
	}
}

func TestStepNoiseKick(t *testing.T) {
	noise := &constNoise{value: 1.5}
	h, sigma, m := 0.04, 2.0, 4.0

	_, v := Step(0, 0, h, 0, sigma, m, nil, noise)

	want := math.Sqrt(h) * sigma / m * 1.5
	if math.Abs(v-want) > 1e-12 {
		t.Errorf("expected noise kick %v, got %v", want, v)
	}
}

func TestStepDrawsOnce(t *testing.T) {
	noise := &constNoise{}
	x, v := 0.0, 0.0
	for i := 0; i < 100; i++ {
		x, v = Step(x, v, 0.01, 1, NoiseIntensity(10, 1), 1, HarmonicForce(1), noise)
	}
	if noise.draws != 100 {
		t.Errorf("expected 100 draws, got %d", noise.draws)
	}
}

func TestStepZeroMass(t *testing.T) {
	x, v := Step(1, 1, 0.01, 1, 1, 0, HarmonicForce(1), &constNoise{value: 1})
	if x != 1.01 {
		t.Errorf("position should not depend on mass, got %v", x)
	}
	if !math.IsInf(v, 0) && !math.IsNaN(v) {
		t.Errorf("expected non-finite velocity for zero mass, got %v", v)
	}
}
