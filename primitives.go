package svg3d

import (
	"errors"
	"fmt"

	"github.com/soypat/geometry/md2"
	"github.com/soypat/geometry/md3"
)

// Renderable is a shape that can be projected onto a [Drawable].
type Renderable interface {
	// Points returns the vertices that define the shape. The returned slice is
	// of the length Update expects.
	Points() []md3.Vec
	// Update replaces the shape vertices. It does not render.
	Update(vertices ...md3.Vec) error
	// Render projects the shape through cam and updates its element on dst,
	// creating the element on first render.
	Render(cam *Camera, dst Drawable) error
}

var (
	_ Renderable = (*Point)(nil)
	_ Renderable = (*Plane)(nil)
	_ Renderable = (*Cuboid)(nil)
)

// element is a lazily created drawable handle.
type element struct {
	h       Handle
	created bool
}

func (e *element) set(dst Drawable, kind ElementKind, style Style, g Geometry) {
	if !e.created {
		e.h = dst.CreateElement(kind, style)
		dst.Append(e.h)
		e.created = true
	}
	dst.SetGeometry(e.h, g)
}

func errVertexCount(shape string, want, got int) error {
	return fmt.Errorf("%s requires %d vertices, got %d", shape, want, got)
}

// Point is a single vertex drawn as a small dot.
type Point struct {
	pos md3.Vec
	el  element
}

// NewPoint returns a point at p.
func NewPoint(p md3.Vec) *Point {
	return &Point{pos: p}
}

// Points returns the point position.
func (p *Point) Points() []md3.Vec { return []md3.Vec{p.pos} }

// Update moves the point. Exactly one vertex is expected.
func (p *Point) Update(vertices ...md3.Vec) error {
	if len(vertices) != 1 {
		return errVertexCount("point", 1, len(vertices))
	}
	p.pos = vertices[0]
	return nil
}

// Render places the point on dst. If the point cannot be projected it is left
// where it was last placed, or is not created at all if never placed.
func (p *Point) Render(cam *Camera, dst Drawable) error {
	rel, err := cam.Project(p.pos)
	if err != nil {
		return fmt.Errorf("point: %w", err)
	}
	w, h := dst.Size()
	p.el.set(dst, ElementPoint, PointStyle, Geometry{
		Points: []md2.Vec{{X: rel.X * w, Y: rel.Y * h}},
	})
	return nil
}

// Plane is a quadrilateral drawn as the closed path a→b→c→d→a.
// Planarity and convexity are not checked.
type Plane struct {
	pos [4]md3.Vec
	el  element
}

// NewPlane returns a plane with corners a, b, c, d in drawing order.
func NewPlane(a, b, c, d md3.Vec) *Plane {
	return &Plane{pos: [4]md3.Vec{a, b, c, d}}
}

// Points returns a copy of the four corners.
func (p *Plane) Points() []md3.Vec { return append([]md3.Vec{}, p.pos[:]...) }

// Update replaces the four corners.
func (p *Plane) Update(vertices ...md3.Vec) error {
	if len(vertices) != 4 {
		return errVertexCount("plane", 4, len(vertices))
	}
	copy(p.pos[:], vertices)
	return nil
}

// Render projects the four corners and updates the plane's path on dst.
// Both coordinates are scaled by the surface width. If any corner fails to
// project the path keeps its previous geometry.
func (p *Plane) Render(cam *Camera, dst Drawable) error {
	var errs []error
	pts := make([]md2.Vec, len(p.pos))
	w, _ := dst.Size()
	for i, v := range p.pos {
		rel, err := cam.Project(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("plane vertex %d: %w", i, err))
			continue
		}
		pts[i] = md2.Vec{X: rel.X * w, Y: rel.Y * w}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	p.el.set(dst, ElementPath, PlaneStyle, Geometry{Points: pts, Closed: true})
	return nil
}

// Cuboid is a parallelepiped defined by a corner a and its three neighbouring corners b, c, d.
// The remaining four corners are derived and the six faces are drawn as planes.
type Cuboid struct {
	// a,b,c,d given; e,f,g,h derived.
	pos    [8]md3.Vec
	planes [6]*Plane
}

// NewCuboid returns the cuboid spanned by corner a and the edges a→b, a→c and a→d.
func NewCuboid(a, b, c, d md3.Vec) *Cuboid {
	cb := &Cuboid{}
	cb.derive(a, b, c, d)
	for i, f := range cb.faces() {
		cb.planes[i] = NewPlane(f[0], f[1], f[2], f[3])
	}
	return cb
}

func (cb *Cuboid) derive(a, b, c, d md3.Vec) {
	e := Sub(Add(b, c), a)
	cb.pos = [8]md3.Vec{
		a, b, c, d,
		e,
		Sub(Add(b, d), a),
		Sub(Add(c, d), a),
		Sub(Add(e, d), a),
	}
}

// faces returns the corners of each face in the order planes are kept.
func (cb *Cuboid) faces() [6][4]md3.Vec {
	p := &cb.pos
	return [6][4]md3.Vec{
		{p[0], p[1], p[4], p[2]},
		{p[0], p[3], p[6], p[2]},
		{p[1], p[5], p[7], p[4]},
		{p[0], p[1], p[5], p[3]},
		{p[2], p[6], p[7], p[4]},
		{p[3], p[5], p[7], p[6]},
	}
}

// Points returns the four defining corners a, b, c, d. Derived corners are not included.
func (cb *Cuboid) Points() []md3.Vec { return append([]md3.Vec{}, cb.pos[:4]...) }

// Corners returns all eight corners, the defining four followed by the derived four.
func (cb *Cuboid) Corners() [8]md3.Vec { return cb.pos }

// Faces returns the planes of the cuboid. They are owned by the cuboid and should only
// be modified through it.
func (cb *Cuboid) Faces() [6]*Plane { return cb.planes }

// Update replaces the defining corners and rederives the rest, updating every face.
func (cb *Cuboid) Update(vertices ...md3.Vec) error {
	if len(vertices) != 4 {
		return errVertexCount("cuboid", 4, len(vertices))
	}
	cb.derive(vertices[0], vertices[1], vertices[2], vertices[3])
	for i, f := range cb.faces() {
		err := cb.planes[i].Update(f[:]...)
		if err != nil {
			return err
		}
	}
	return nil
}

// Render renders every face. A face failing to render does not stop the others.
func (cb *Cuboid) Render(cam *Camera, dst Drawable) error {
	var errs []error
	for i, pl := range cb.planes {
		err := pl.Render(cam, dst)
		if err != nil {
			errs = append(errs, fmt.Errorf("cuboid face %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
