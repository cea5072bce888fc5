package svg3d

import (
	"image/color"
	"strconv"

	"github.com/soypat/geometry/md2"
)

// ElementKind is the kind of visual element a [Drawable] creates.
type ElementKind uint8

const (
	_ ElementKind = iota
	// ElementPoint is a small filled circle. Its geometry is a single point.
	ElementPoint
	// ElementPath is a polyline, closed if the geometry says so.
	ElementPath
)

func (k ElementKind) String() string {
	switch k {
	case ElementPoint:
		return "point"
	case ElementPath:
		return "path"
	}
	return "ElementKind(" + strconv.Itoa(int(k)) + ")"
}

// Handle identifies an element created by a [Drawable]. Handles are only meaningful
// to the Drawable that issued them.
type Handle int

// Drawable is a drawing surface. Shapes create one element on first render and then
// only update its geometry on subsequent renders.
type Drawable interface {
	// CreateElement creates a new element which is not visible until appended.
	CreateElement(kind ElementKind, style Style) Handle
	// Append adds the element to the surface. Elements are drawn in append order.
	Append(h Handle)
	// SetGeometry replaces the element geometry, given in surface pixel units.
	SetGeometry(h Handle, g Geometry)
	// Size returns the drawing surface width and height in pixels.
	Size() (width, height float64)
}

// Style is the fixed visual style of an element. A nil color means no fill or stroke.
type Style struct {
	Fill   color.Color
	Stroke color.Color
	// Radius of point elements.
	Radius float64
}

var (
	// PointStyle is the style of elements created by [Point].
	PointStyle = Style{Fill: color.Black, Radius: 1}
	// PlaneStyle is the style of elements created by [Plane].
	PlaneStyle = Style{Fill: color.NRGBA{R: 240, G: 200, B: 200, A: 128}, Stroke: color.Black}
)

// Geometry is the placement of an element on the drawing surface.
type Geometry struct {
	Points []md2.Vec
	Closed bool
}

// PathData returns the SVG path data of g, i.e: "M x0 y0 L x1 y1 L x2 y2 Z".
func (g Geometry) PathData() string {
	return string(g.AppendPathData(nil))
}

// AppendPathData appends the SVG path data of g to b.
func (g Geometry) AppendPathData(b []byte) []byte {
	for i, p := range g.Points {
		if i == 0 {
			b = append(b, "M "...)
		} else {
			b = append(b, " L "...)
		}
		b = strconv.AppendFloat(b, p.X, 'g', -1, 64)
		b = append(b, ' ')
		b = strconv.AppendFloat(b, p.Y, 'g', -1, 64)
	}
	if g.Closed && len(g.Points) > 0 {
		b = append(b, " Z"...)
	}
	return b
}
