package svg3d

import (
	"github.com/soypat/geometry/md3"
)

// Camera is a pinhole camera with a fixed origin and a rectangular lens defined
// by three of its corners. Lens derived quantities are computed when the lens is set
// so projection reads them without recomputation.
type Camera struct {
	origin    md3.Vec
	lensZero  md3.Vec
	lensXAxis md3.Vec
	lensYAxis md3.Vec

	lensCenter md3.Vec
	lensWidth  float64
	lensHeight float64

	// Projection terms relative to origin.
	relZero   md3.Vec
	relCenter md3.Vec
	relXAxis  md3.Vec

	accuracy int
}

// NewCamera returns a camera at origin with the default lens (see [DefaultLens])
// and the given projection accuracy.
func NewCamera(origin md3.Vec, accuracy int) *Camera {
	cam := &Camera{origin: origin, accuracy: accuracy}
	zero, x, y := DefaultLens(origin)
	cam.setLens(zero, x, y)
	return cam
}

// DefaultLens returns the corners of a 10 by 8 lens centered 10 units in front
// of origin along the positive Z axis.
func DefaultLens(origin md3.Vec) (zero, xAxis, yAxis md3.Vec) {
	zero = md3.Add(origin, md3.Vec{X: -5, Y: -4, Z: 10})
	xAxis = md3.Add(origin, md3.Vec{X: 5, Y: -4, Z: 10})
	yAxis = md3.Add(origin, md3.Vec{X: -5, Y: 4, Z: 10})
	return zero, xAxis, yAxis
}

// SetLens sets the lens corners. zero is the corner shared by the x and y edges of the lens.
// The corners are expected to form a rectangle; only zero-length edges are rejected,
// in which case the previous lens is kept.
func (c *Camera) SetLens(zero, xAxis, yAxis md3.Vec) error {
	if Magnitude(Sub(xAxis, zero)) == 0 {
		return &DegenerateGeometryError{Op: "lens width is zero"}
	} else if Magnitude(Sub(yAxis, zero)) == 0 {
		return &DegenerateGeometryError{Op: "lens height is zero"}
	}
	c.setLens(zero, xAxis, yAxis)
	return nil
}

func (c *Camera) setLens(zero, xAxis, yAxis md3.Vec) {
	c.lensZero = zero
	c.lensXAxis = xAxis
	c.lensYAxis = yAxis
	c.lensCenter = Scale(Add(xAxis, yAxis), 0.5)
	c.lensWidth = Magnitude(Sub(xAxis, zero))
	c.lensHeight = Magnitude(Sub(yAxis, zero))
	c.relZero = Sub(zero, c.origin)
	c.relCenter = Sub(c.lensCenter, c.origin)
	c.relXAxis = Sub(xAxis, zero)
}

// Origin returns the camera position.
func (c *Camera) Origin() md3.Vec { return c.origin }

// Lens returns the three lens corners as passed to SetLens.
func (c *Camera) Lens() (zero, xAxis, yAxis md3.Vec) {
	return c.lensZero, c.lensXAxis, c.lensYAxis
}

// LensCenter returns the midpoint between the lens x and y axis corners.
func (c *Camera) LensCenter() md3.Vec { return c.lensCenter }

// LensWidth returns the distance between the lens zero and x axis corners.
func (c *Camera) LensWidth() float64 { return c.lensWidth }

// LensHeight returns the distance between the lens zero and y axis corners.
func (c *Camera) LensHeight() float64 { return c.lensHeight }

// Accuracy returns the number of iterations used by [Camera.Project].
func (c *Camera) Accuracy() int { return c.accuracy }

// SetAccuracy sets the iteration budget of [Camera.Project].
func (c *Camera) SetAccuracy(accuracy int) { c.accuracy = accuracy }
