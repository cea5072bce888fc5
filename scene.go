package svg3d

import (
	"errors"
	"fmt"
	"sync"

	"github.com/soypat/geometry/md3"
)

// Config configures a new [Scene]. Use [DefaultConfig] as a starting point.
type Config struct {
	CameraOrigin md3.Vec
	// Lens corners. See [Camera.SetLens].
	LensZero  md3.Vec
	LensXAxis md3.Vec
	LensYAxis md3.Vec
	// Accuracy is the iteration budget of the projection search.
	// Values of zero or less apply no refinement at all.
	Accuracy int
}

// DefaultConfig returns a camera at (0,20,-100) looking along +Z through the
// default lens (see [DefaultLens]) with an accuracy of [DefaultAccuracy].
func DefaultConfig() Config {
	origin := md3.Vec{X: 0, Y: 20, Z: -100}
	zero, x, y := DefaultLens(origin)
	return Config{
		CameraOrigin: origin,
		LensZero:     zero,
		LensXAxis:    x,
		LensYAxis:    y,
		Accuracy:     DefaultAccuracy,
	}
}

// Scene holds a camera and the shapes drawn through it onto a [Drawable].
// Shapes are rendered in the order they were added.
//
// Scene methods are safe for concurrent use; all calls into the Drawable
// made through the scene are serialized.
type Scene struct {
	mu      sync.Mutex
	cam     *Camera
	dst     Drawable
	objects []Renderable
}

// NewScene creates a scene drawing onto dst.
func NewScene(dst Drawable, cfg Config) (*Scene, error) {
	if dst == nil {
		return nil, errors.New("nil Drawable")
	}
	cam := NewCamera(cfg.CameraOrigin, cfg.Accuracy)
	err := cam.SetLens(cfg.LensZero, cfg.LensXAxis, cfg.LensYAxis)
	if err != nil {
		return nil, fmt.Errorf("setting lens: %w", err)
	}
	return &Scene{cam: cam, dst: dst}, nil
}

// AddPoint adds a point at p to the scene.
func (s *Scene) AddPoint(p md3.Vec) *Point {
	obj := NewPoint(p)
	s.add(obj)
	return obj
}

// AddPlane adds a plane with corners a, b, c, d to the scene.
func (s *Scene) AddPlane(a, b, c, d md3.Vec) *Plane {
	obj := NewPlane(a, b, c, d)
	s.add(obj)
	return obj
}

// AddCuboid adds a cuboid to the scene. See [NewCuboid].
func (s *Scene) AddCuboid(a, b, c, d md3.Vec) *Cuboid {
	obj := NewCuboid(a, b, c, d)
	s.add(obj)
	return obj
}

func (s *Scene) add(obj Renderable) {
	s.mu.Lock()
	s.objects = append(s.objects, obj)
	s.mu.Unlock()
}

// Render renders all shapes. Shapes that fail to render do not prevent the rest
// from rendering; all errors are returned joined.
func (s *Scene) Render() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var errs []error
	for _, obj := range s.objects {
		err := obj.Render(s.cam, s.dst)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Update updates obj's vertices while holding the scene lock. It does not render.
func (s *Scene) Update(obj Renderable, vertices ...md3.Vec) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return obj.Update(vertices...)
}

// SetLens sets the camera lens while holding the scene lock.
func (s *Scene) SetLens(zero, xAxis, yAxis md3.Vec) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cam.SetLens(zero, xAxis, yAxis)
}

// Camera returns the scene camera. Modifying it while the scene is in use by
// other goroutines is a race; use [Scene.SetLens] instead.
func (s *Scene) Camera() *Camera { return s.cam }

// Objects returns the shapes of the scene in render order.
func (s *Scene) Objects() []Renderable {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Renderable{}, s.objects...)
}

// Len returns the number of shapes in the scene.
func (s *Scene) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

// updateAndRender updates and renders a single object under the scene lock.
func (s *Scene) updateAndRender(obj Renderable, vertices []md3.Vec) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := obj.Update(vertices...)
	if err != nil {
		return err
	}
	return obj.Render(s.cam, s.dst)
}
