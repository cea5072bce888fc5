// Package drawrender implements [svg3d.Drawable] drawing surfaces: an SVG document writer
// and an anti-aliased raster image.
package drawrender

import (
	"math"

	"github.com/soypat/geometry/md2"
	"github.com/soypat/svg3d"
)

type element struct {
	kind     svg3d.ElementKind
	style    svg3d.Style
	geom     svg3d.Geometry
	placed   bool
	appended bool
}

// store keeps elements and their append order. It implements all of
// [svg3d.Drawable] except Size.
type store struct {
	elems []element
	order []svg3d.Handle
}

func (s *store) CreateElement(kind svg3d.ElementKind, style svg3d.Style) svg3d.Handle {
	s.elems = append(s.elems, element{kind: kind, style: style})
	return svg3d.Handle(len(s.elems) - 1)
}

// Append appends h to the drawing order. Appending an already appended element does nothing.
func (s *store) Append(h svg3d.Handle) {
	el := s.get(h)
	if el == nil || el.appended {
		return
	}
	el.appended = true
	s.order = append(s.order, h)
}

func (s *store) SetGeometry(h svg3d.Handle, g svg3d.Geometry) {
	el := s.get(h)
	if el == nil {
		return
	}
	el.geom.Points = append(el.geom.Points[:0], g.Points...)
	el.geom.Closed = g.Closed
	el.placed = true
}

func (s *store) get(h svg3d.Handle) *element {
	if h < 0 || int(h) >= len(s.elems) {
		return nil
	}
	return &s.elems[h]
}

// Len returns the number of appended elements.
func (s *store) Len() int { return len(s.order) }

// Reset removes all elements. Handles issued before Reset are invalidated.
func (s *store) Reset() {
	s.elems = s.elems[:0]
	s.order = s.order[:0]
}

// forEachDrawable calls fn with the appended and placed elements in draw order,
// skipping those with non finite coordinates.
func (s *store) forEachDrawable(fn func(el *element) error) error {
	for _, h := range s.order {
		el := &s.elems[h]
		if !el.placed || len(el.geom.Points) == 0 || !finite(el.geom.Points) {
			continue
		}
		if err := fn(el); err != nil {
			return err
		}
	}
	return nil
}

func finite(pts []md2.Vec) bool {
	for _, p := range pts {
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			return false
		}
	}
	return true
}
