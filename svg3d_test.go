package svg3d_test

import (
	"errors"
	"math"
	"testing"

	"github.com/soypat/geometry/md2"
	"github.com/soypat/geometry/md3"
	"github.com/soypat/svg3d"
)

type recElem struct {
	kind  svg3d.ElementKind
	style svg3d.Style
	geom  svg3d.Geometry
	sets  int
}

// recorder is a Drawable that keeps everything it is told.
type recorder struct {
	w, h     float64
	elems    []recElem
	appended []svg3d.Handle
}

func (r *recorder) CreateElement(kind svg3d.ElementKind, style svg3d.Style) svg3d.Handle {
	r.elems = append(r.elems, recElem{kind: kind, style: style})
	return svg3d.Handle(len(r.elems) - 1)
}

func (r *recorder) Append(h svg3d.Handle) { r.appended = append(r.appended, h) }

func (r *recorder) SetGeometry(h svg3d.Handle, g svg3d.Geometry) {
	r.elems[h].geom = g
	r.elems[h].sets++
}

func (r *recorder) Size() (float64, float64) { return r.w, r.h }

// lensAtZ10 returns a camera at the origin with a 10x8 lens centered at z=10.
func lensAtZ10(t *testing.T, accuracy int) *svg3d.Camera {
	t.Helper()
	cam := svg3d.NewCamera(md3.Vec{}, accuracy)
	err := cam.SetLens(md3.Vec{X: -5, Y: -4, Z: 10}, md3.Vec{X: 5, Y: -4, Z: 10}, md3.Vec{X: -5, Y: 4, Z: 10})
	if err != nil {
		t.Fatal(err)
	}
	return cam
}

func TestCameraSetLens(t *testing.T) {
	cam := svg3d.NewCamera(md3.Vec{X: 1, Y: 2, Z: 3}, 4)
	zero := md3.Vec{X: 0, Y: 0, Z: 5}
	x := md3.Vec{X: 6, Y: 0, Z: 5}
	y := md3.Vec{X: 0, Y: 2, Z: 5}
	err := cam.SetLens(zero, x, y)
	if err != nil {
		t.Fatal(err)
	}
	if cam.LensWidth() != 6 || cam.LensHeight() != 2 {
		t.Errorf("want lens 6x2, got %vx%v", cam.LensWidth(), cam.LensHeight())
	}
	if got := cam.LensCenter(); got != (md3.Vec{X: 3, Y: 1, Z: 5}) {
		t.Errorf("bad lens center %v", got)
	}
	if cam.Origin() != (md3.Vec{X: 1, Y: 2, Z: 3}) || cam.Accuracy() != 4 {
		t.Error("camera construction parameters not kept")
	}

	// Degenerate lens is rejected and the previous lens kept.
	var degenerate *svg3d.DegenerateGeometryError
	err = cam.SetLens(zero, zero, y)
	if !errors.As(err, &degenerate) {
		t.Fatalf("expected DegenerateGeometryError, got %v", err)
	}
	gotZero, gotX, gotY := cam.Lens()
	if gotZero != zero || gotX != x || gotY != y {
		t.Error("degenerate lens modified camera")
	}
}

func TestDefaultLens(t *testing.T) {
	cfg := svg3d.DefaultConfig()
	if cfg.CameraOrigin != (md3.Vec{Y: 20, Z: -100}) || cfg.Accuracy != svg3d.DefaultAccuracy {
		t.Fatalf("unexpected default config %+v", cfg)
	}
	cam := svg3d.NewCamera(cfg.CameraOrigin, cfg.Accuracy)
	if cam.LensWidth() != 10 || cam.LensHeight() != 8 {
		t.Errorf("default lens should be 10x8, got %vx%v", cam.LensWidth(), cam.LensHeight())
	}
	want := md3.Vec{X: 0, Y: 20, Z: -90}
	if got := cam.LensCenter(); got != want {
		t.Errorf("default lens center want %v, got %v", want, got)
	}
}

func TestProjectLensCenter(t *testing.T) {
	const tol = 0.05
	cfg := svg3d.DefaultConfig()
	cam := svg3d.NewCamera(cfg.CameraOrigin, cfg.Accuracy)
	got, err := cam.Project(cam.LensCenter())
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got.X-0.5) > tol || math.Abs(got.Y-0.5) > tol {
		t.Errorf("lens center should project to (0.5,0.5), got %v", got)
	}
}

func TestProjectBehindCamera(t *testing.T) {
	cam := lensAtZ10(t, 10)
	for _, p := range []md3.Vec{
		{X: 0, Y: 0, Z: -5},
		{X: 3, Y: 1, Z: -0.5},
		{}, // Camera origin.
		// Points nearer than the lens plane grow lambda past one.
		{X: 0, Y: 0, Z: 5},
	} {
		_, err := cam.Project(p)
		if !errors.Is(err, svg3d.ErrBehindCamera) {
			t.Errorf("point %v: want ErrBehindCamera, got %v", p, err)
		}
	}
}

func TestProjectExact(t *testing.T) {
	// At z=20 the search lands on lambda=0.5 in the first iteration.
	const tol = 1e-12
	cam := lensAtZ10(t, 10)
	var tests = []struct {
		p    md3.Vec
		want md2.Vec
	}{
		{p: md3.Vec{X: 0, Y: 0, Z: 20}, want: md2.Vec{X: 0.5, Y: 0.5}},
		{p: md3.Vec{X: 4, Y: 0, Z: 20}, want: md2.Vec{X: 0.7, Y: 0.5}},
		{p: md3.Vec{X: -4, Y: 0, Z: 20}, want: md2.Vec{X: 0.3, Y: 0.5}},
		{p: md3.Vec{X: 0, Y: 4, Z: 20}, want: md2.Vec{X: 0.5, Y: 0.25}},
		{p: md3.Vec{X: 0, Y: -6, Z: 20}, want: md2.Vec{X: 0.5, Y: 0.875}},
		{p: md3.Vec{X: 8, Y: 6, Z: 20}, want: md2.Vec{X: 0.9, Y: 0.125}},
	}
	for _, test := range tests {
		got, err := cam.Project(test.p)
		if err != nil {
			t.Errorf("point %v: %s", test.p, err)
			continue
		}
		if math.Abs(got.X-test.want.X) > tol || math.Abs(got.Y-test.want.Y) > tol {
			t.Errorf("point %v: want %v, got %v", test.p, test.want, got)
		}
	}
}

func TestProjectMonotonicY(t *testing.T) {
	cam := lensAtZ10(t, 10)
	for _, z := range []float64{20, 30, 55} {
		prev := math.Inf(1)
		for y := -3.0; y <= 3; y += 0.5 {
			got, err := cam.Project(md3.Vec{X: 1, Y: y, Z: z})
			if err != nil {
				t.Fatalf("z=%v y=%v: %s", z, y, err)
			}
			if math.IsNaN(got.X) || math.IsInf(got.X, 0) || math.IsNaN(got.Y) || math.IsInf(got.Y, 0) {
				t.Fatalf("z=%v y=%v: non finite projection %v", z, y, got)
			}
			if got.Y >= prev {
				t.Errorf("z=%v y=%v: ny=%v not decreasing from %v", z, y, got.Y, prev)
			}
			prev = got.Y
		}
	}
}

func TestProjectNoRefinement(t *testing.T) {
	cam := lensAtZ10(t, 0)
	got, err := cam.Project(md3.Vec{Z: 20})
	if err != nil {
		t.Fatal(err)
	}
	// Unrefined projection (0,0,20) relative to lens zero is (5,4,10).
	wantY := 1 - math.Sqrt(116)/8
	if math.Abs(got.X-0.5) > 1e-12 || math.Abs(got.Y-wantY) > 1e-12 {
		t.Errorf("want (0.5,%v), got %v", wantY, got)
	}
	// Negative accuracy behaves the same.
	got2, err := svg3d.Project(md3.Vec{Z: 20}, cam, -3)
	if err != nil || got2 != got {
		t.Errorf("negative accuracy: got %v, %v", got2, err)
	}
}

func TestProjectDegenerate(t *testing.T) {
	cam := lensAtZ10(t, 10)
	// Projects exactly onto the lens zero corner.
	got, err := cam.Project(md3.Vec{X: -10, Y: -8, Z: 20})
	var degenerate *svg3d.DegenerateGeometryError
	if !errors.As(err, &degenerate) {
		t.Fatalf("want DegenerateGeometryError, got %v", err)
	}
	if !math.IsNaN(got.X) && !math.IsNaN(got.Y) {
		t.Errorf("expected NaN coordinates, got %v", got)
	}
}

func TestGeometryPathData(t *testing.T) {
	g := svg3d.Geometry{
		Points: []md2.Vec{{X: 1, Y: 2}, {X: 3.5, Y: 4}, {X: 5, Y: 6}, {X: 7, Y: 8}},
		Closed: true,
	}
	const want = "M 1 2 L 3.5 4 L 5 6 L 7 8 Z"
	if got := g.PathData(); got != want {
		t.Errorf("want %q, got %q", want, got)
	}
	g.Closed = false
	if got := g.PathData(); got != want[:len(want)-2] {
		t.Errorf("open path: got %q", got)
	}
}
