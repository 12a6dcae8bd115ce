package cloud

import (
	"math"

	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/synapse/config"
	"github.com/pthm-cable/synapse/graph"
)

// ShellParams shapes a noisy ellipsoid surface with a fold along its top midline.
type ShellParams struct {
	Count      int
	Radius     [3]float64
	NoiseScale float64 // spatial frequency of the surface displacement
	Amplitude  float64 // displacement as a fraction of the local radius
	Fold       float64 // depth of the midline groove, 0 for none
}

// ShellParamsFromConfig maps the shell section of the cloud config.
func ShellParamsFromConfig(c config.ShellConfig) ShellParams {
	return ShellParams{
		Count:      c.Count,
		Radius:     [3]float64{c.RadiusX, c.RadiusY, c.RadiusZ},
		NoiseScale: c.NoiseScale,
		Amplitude:  c.Amplitude,
		Fold:       c.Fold,
	}
}

var goldenAngle = math.Pi * (3 - math.Sqrt(5))

// Shell spreads Count samples over the surface on a Fibonacci spiral and
// pushes each along its normal by simplex noise. The same seed always yields
// the same cloud.
func Shell(p ShellParams, seed int64) []graph.Point {
	if p.Count <= 0 {
		return nil
	}
	noise := opensimplex.New(seed)
	pts := make([]graph.Point, p.Count)

	for i := range pts {
		// Unit direction on the spiral
		y := 1 - 2*(float64(i)+0.5)/float64(p.Count)
		r := math.Sqrt(1 - y*y)
		theta := goldenAngle * float64(i)
		dx, dy, dz := r*math.Cos(theta), y, r*math.Sin(theta)

		x0, y0, z0 := dx*p.Radius[0], dy*p.Radius[1], dz*p.Radius[2]
		n := noise.Eval3(x0*p.NoiseScale, y0*p.NoiseScale, z0*p.NoiseScale)
		k := 1 + p.Amplitude*n

		x, yy, z := x0*k, y0*k, z0*k
		if p.Fold > 0 && yy > 0 {
			w := x / (0.12 * p.Radius[0])
			yy -= p.Fold * math.Exp(-w*w) * dy
		}

		pts[i] = graph.Point{X: float32(x), Y: float32(yy), Z: float32(z)}
	}
	return pts
}
