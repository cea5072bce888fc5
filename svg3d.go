// Package svg3d renders points, planes and cuboids onto a 2D drawing surface by
// projecting their vertices through a pinhole camera described by an origin and
// a rectangular lens in 3D space.
//
// Projection is done by an iterative search along the ray joining the camera
// origin and the point, see [Project]. Shapes are kept in a [Scene] and drawn onto
// a [Drawable] sink that owns the actual visual elements.
package svg3d

import (
	"errors"
)

const (
	// DefaultAccuracy is the default iteration budget of the projection search.
	DefaultAccuracy = 10
	// convergeTol is the metric value under which the projection search
	// stops halving its step.
	convergeTol = 0.01
)

// ErrBehindCamera is returned when a point cannot be projected onto the lens
// because it lies behind the camera.
var ErrBehindCamera = errors.New("point behind camera")

// DegenerateGeometryError is returned when a computation involves a zero-length
// vector, such as a projection landing exactly on the lens zero corner or a lens with
// no width or height.
type DegenerateGeometryError struct {
	Op string
}

func (e *DegenerateGeometryError) Error() string {
	return "degenerate geometry: " + e.Op
}
