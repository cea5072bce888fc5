package svg3daux

import (
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/soypat/geometry/md3"
	"github.com/soypat/svg3d"
	"github.com/soypat/svg3d/drawrender"
)

func TestRenderFrames(t *testing.T) {
	img := drawrender.NewImage(64, 64)
	sc, err := svg3d.NewScene(img, svg3d.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	cb := sc.AddCuboid(md3.Vec{X: -5, Y: 15}, md3.Vec{X: 5, Y: 15}, md3.Vec{X: -5, Y: 25}, md3.Vec{X: -5, Y: 15, Z: 10})
	var sched svg3d.StepScheduler
	anim := sc.RotateOnY(&sched, cb, svg3d.RotateConfig{
		Duration: 5 * time.Millisecond,
		Frames:   5,
	})
	dir := t.TempDir()
	n, err := RenderFrames(context.Background(), FramesConfig{
		Image:     img,
		Scheduler: &sched,
		Dir:       dir,
		MaxFrames: 100,
		Caption:   true,
		Silent:    true,
	})
	if err != nil {
		t.Fatal(err)
	}
	// First frame is rendered synchronously, one file per remaining frame plus the initial one.
	if n != 5 {
		t.Errorf("want 5 frames, got %d", n)
	}
	if anim.Frame() != 5 {
		t.Errorf("animation should have finished, at frame %d", anim.Frame())
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != n {
		t.Fatalf("want %d files, got %d", n, len(entries))
	}
	fp, err := os.Open(filepath.Join(dir, "frame0000.png"))
	if err != nil {
		t.Fatal(err)
	}
	defer fp.Close()
	decoded, err := png.Decode(fp)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Bounds().Dx() != 64 {
		t.Errorf("unexpected frame size %v", decoded.Bounds())
	}
}

func TestRenderFramesLimit(t *testing.T) {
	img := drawrender.NewImage(16, 16)
	var sched svg3d.StepScheduler
	var reschedule func()
	reschedule = func() { sched.After(time.Millisecond, reschedule) }
	reschedule()
	n, err := RenderFrames(context.Background(), FramesConfig{
		Image:     img,
		Scheduler: &sched,
		Dir:       t.TempDir(),
		MaxFrames: 3,
		Silent:    true,
	})
	if err != nil || n != 3 {
		t.Errorf("want 3 frames and no error, got %d, %v", n, err)
	}
	_, err = RenderFrames(context.Background(), FramesConfig{Image: img, Scheduler: &sched})
	if err == nil {
		t.Error("expected error for zero MaxFrames")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dir := t.TempDir()
	n, err = RenderFrames(ctx, FramesConfig{
		Image:     img,
		Scheduler: &sched,
		Dir:       dir,
		MaxFrames: 3,
		Silent:    true,
	})
	if n != 0 || !errors.Is(err, context.Canceled) {
		t.Errorf("want 0 frames and context.Canceled, got %d, %v", n, err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("cancelled render wrote %d files", len(entries))
	}
}

func TestRenderSVGFile(t *testing.T) {
	s := drawrender.NewSVG(100, 80)
	sc, err := svg3d.NewScene(s, svg3d.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	sc.AddPlane(md3.Vec{X: -10, Y: 10}, md3.Vec{X: 10, Y: 10}, md3.Vec{X: 10, Y: 30}, md3.Vec{X: -10, Y: 30})
	sc.AddPoint(md3.Vec{Y: 20})
	if err := sc.Render(); err != nil {
		t.Fatal(err)
	}
	filename := filepath.Join(t.TempDir(), "scene.svg")
	err = RenderSVGFile(filename, s)
	if err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	got := string(b)
	if !strings.HasPrefix(got, "<svg") || strings.Count(got, "<path") != 1 || strings.Count(got, "<circle") != 1 {
		t.Errorf("unexpected SVG file contents:\n%s", got)
	}
}
