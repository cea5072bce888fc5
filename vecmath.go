package svg3d

import (
	"math"

	"github.com/soypat/geometry/md3"
)

// Sub returns a-b.
func Sub(a, b md3.Vec) md3.Vec { return md3.Sub(a, b) }

// Add returns a+b.
func Add(a, b md3.Vec) md3.Vec { return md3.Add(a, b) }

// Scale returns v with every component multiplied by s.
func Scale(v md3.Vec, s float64) md3.Vec { return md3.Scale(s, v) }

// LinearTransform returns m*v where m rows are applied to v as a column vector.
func LinearTransform(v md3.Vec, m md3.Mat3) md3.Vec { return md3.MulMatVec(m, v) }

// Magnitude returns the euclidean length of v.
func Magnitude(v md3.Vec) float64 { return md3.Norm(v) }

// Dot returns the dot product of a and b.
func Dot(a, b md3.Vec) float64 { return md3.Dot(a, b) }

// AngleBetween returns the angle in radians between a and b. The result is NaN
// when either vector is of zero length.
func AngleBetween(a, b md3.Vec) float64 {
	return math.Acos(Dot(a, b) / (Magnitude(a) * Magnitude(b)))
}

// RotationY returns the matrix rotating a vector by angle radians about the Y axis.
func RotationY(angle float64) md3.Mat3 {
	s, c := math.Sincos(angle)
	return md3.NewMat3([]float64{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	})
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
