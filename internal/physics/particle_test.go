package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/brownian/internal/dynamo"
	"github.com/san-kum/brownian/internal/noise"
	"github.com/san-kum/brownian/internal/physics"
)

var _ = Describe("Particle", func() {
	var p *physics.Particle

	BeforeEach(func() {
		p = physics.NewHarmonicParticle(2, 0.5, 3, 4)
	})

	Describe("Drift", func() {
		It("combines the force and friction per unit mass", func() {
			s := dynamo.State{X: 1, V: 2}
			Expect(p.Drift(s)).To(BeNumerically("~", -4.0/2-0.5/2*2, 1e-12))
		})

		It("reduces to friction without a force", func() {
			free := physics.NewParticle(2, 0.5, 3, nil)
			Expect(free.Drift(dynamo.State{X: 100, V: 2})).To(BeNumerically("~", -0.5, 1e-12))
		})
	})

	It("scales the noise by the mass", func() {
		Expect(p.NoiseScale()).To(BeNumerically("~", 1.5, 1e-12))
	})

	It("adds kinetic and harmonic potential energy", func() {
		Expect(p.Energy(dynamo.State{X: 1, V: 1})).To(BeNumerically("~", 0.5*2+0.5*4, 1e-12))
	})

	Describe("SetParam", func() {
		It("rebinds the harmonic force when k changes", func() {
			Expect(p.SetParam("k", 10)).To(Succeed())
			Expect(p.Force.At(1)).To(Equal(-10.0))
			Expect(p.GetParams()).To(HaveKeyWithValue("k", 10.0))
		})

		It("keeps a free particle free", func() {
			free := physics.NewParticle(1, 1, 1, nil)
			Expect(free.SetParam("k", 10)).To(Succeed())
			Expect(free.Force).To(BeNil())
		})

		It("rejects unknown parameters", func() {
			Expect(p.SetParam("charge", 1)).NotTo(Succeed())
		})
	})
})

var _ = Describe("Step", func() {
	const (
		h     = 0.01
		steps = 10000
	)

	It("is reproducible for equal seeds", func() {
		run := func(seed int64) (float64, float64) {
			src := noise.NewGaussian(seed)
			x, v := 0.0, 0.0
			for range 500 {
				x, v = physics.Step(x, v, h, 1, math.Sqrt(20), 1, physics.HarmonicForce(1), src)
			}
			return x, v
		}
		x1, v1 := run(7)
		x2, v2 := run(7)
		Expect(x1).To(Equal(x2))
		Expect(v1).To(Equal(v2))
	})

	It("stays finite with the classic parameters", func() {
		src := noise.NewGaussian(42)
		sigma := physics.NoiseIntensity(physics.DefaultTemperature, physics.DefaultGamma)
		for _, force := range []physics.Force{nil, physics.HarmonicForce(physics.DefaultStiffness)} {
			x, v := 0.0, 0.0
			for range steps {
				x, v = physics.Step(x, v, h, physics.DefaultGamma, sigma, physics.DefaultMass, force, src)
				Expect(dynamo.State{X: x, V: v}.IsValid()).To(BeTrue())
			}
		}
	})

	It("relaxes towards the origin without noise", func() {
		src := noise.NewGaussian(1)
		x, v := 1.0, 0.0
		for range steps {
			x, v = physics.Step(x, v, h, 1, 0, 1, physics.HarmonicForce(1), src)
		}
		Expect(math.Abs(x)).To(BeNumerically("<", 1e-6))
		Expect(math.Abs(v)).To(BeNumerically("<", 1e-6))
	})
})
