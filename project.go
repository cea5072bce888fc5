package svg3d

import (
	"math"

	"github.com/soypat/geometry/md2"
	"github.com/soypat/geometry/md3"
)

// Project projects p onto the lens of cam using the camera's accuracy. See [Project].
func (c *Camera) Project(p md3.Vec) (md2.Vec, error) {
	return Project(p, c, c.accuracy)
}

// Project maps p onto the lens of cam and returns its normalized lens coordinates.
// X grows from the lens zero corner towards the x axis corner in lens widths.
// Y is flipped so that 1 lies on the zero corner edge and 0 on the y axis corner edge.
//
// The lens intersection is searched for iteratively: p is scaled by lambda about the
// camera origin until the scaled point minimizes |(lambda*p - center)·center|, where
// center is the lens center relative to the origin. The search runs for accuracy iterations,
// halving its step each iteration unless the metric is already below tolerance.
// A lambda greater than one means the point lies behind the camera and [ErrBehindCamera] is returned.
// Since lambda only grows past one for points nearer to the origin than the lens plane,
// such points are reported as behind the camera too. Points on or behind the plane through
// the origin facing the lens return [ErrBehindCamera] without searching.
//
// If the projection lands on the lens zero corner the angle on the lens is undefined and
// a [DegenerateGeometryError] is returned along with the NaN coordinates.
func Project(p md3.Vec, cam *Camera, accuracy int) (md2.Vec, error) {
	center := cam.relCenter
	relPoint := Sub(p, cam.origin)
	if Dot(relPoint, center) <= 0 {
		// Not in the half-space the lens faces.
		return md2.Vec{}, ErrBehindCamera
	}
	metric := func(proj md3.Vec) float64 {
		return abs(Dot(Sub(proj, center), center))
	}

	lambda := 1.0
	increment := 0.5
	projection := relPoint
	dot := metric(projection)
	for i := 0; i < accuracy; i++ {
		up := Scale(relPoint, lambda+increment)
		down := Scale(relPoint, lambda-increment)
		upDot := metric(up)
		downDot := metric(down)
		if upDot < dot {
			lambda += increment
			projection = up
			dot = upDot
		} else if downDot < dot {
			lambda -= increment
			projection = down
			dot = downDot
		}
		if dot < convergeTol {
			// Converged: keep the step size for the next iteration.
			continue
		}
		if lambda > 1 {
			return md2.Vec{}, ErrBehindCamera
		}
		increment /= 2
	}

	relProjection := Sub(projection, cam.relZero)
	angle := AngleBetween(relProjection, cam.relXAxis)
	length := Magnitude(relProjection)
	s, c := math.Sincos(angle)
	result := md2.Vec{
		X: length * c / cam.lensWidth,
		Y: 1 - length*s/cam.lensHeight,
	}
	if math.IsNaN(result.X) || math.IsNaN(result.Y) {
		return result, &DegenerateGeometryError{Op: "projection angle on lens undefined"}
	}
	return result, nil
}
