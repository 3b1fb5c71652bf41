package metrics

import "github.com/san-kum/brownian/internal/dynamo"

// SquaredDisplacement reports (x − x0)² of the last observed state, where
// x0 is the origin the run started from.
type SquaredDisplacement struct {
	name   string
	origin float64
	last   float64
}

func NewSquaredDisplacement(origin float64) *SquaredDisplacement {
	return &SquaredDisplacement{name: "squared_displacement", origin: origin}
}

func (d *SquaredDisplacement) Name() string { return d.name }

func (d *SquaredDisplacement) Observe(s dynamo.State, t float64) {
	dx := s.X - d.origin
	d.last = dx * dx
}

func (d *SquaredDisplacement) Value() float64 { return d.last }

func (d *SquaredDisplacement) Reset() { d.last = 0 }
