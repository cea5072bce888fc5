// Package svg3daux provides helpers to get svg3d scenes onto files and screens quickly.
// Applications with specific needs should write their own host around [svg3d.Drawable].
package svg3daux

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/soypat/svg3d"
	"github.com/soypat/svg3d/drawrender"
)

// RenderPNGFile draws img and saves the result to a PNG file with said filename.
func RenderPNGFile(filename string, img *drawrender.Image) error {
	rgba, err := img.RGBA()
	if err != nil {
		return err
	}
	fp, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	err = png.Encode(fp, rgba)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filename, err)
	}
	return fp.Sync()
}

// RenderSVGFile writes the SVG document of s to a file with said filename.
func RenderSVGFile(filename string, s *drawrender.SVG) error {
	fp, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	_, err = s.WriteTo(fp)
	if err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	return fp.Sync()
}

// FramesConfig configures [RenderFrames].
type FramesConfig struct {
	// Image is the surface the animated scene draws onto.
	Image *drawrender.Image
	// Scheduler drives the scene animations.
	Scheduler *svg3d.StepScheduler
	// Dir is the directory frames are written to. It is created if missing.
	Dir string
	// Step is the scheduler time advanced between frames. Defaults to 1ms.
	Step time.Duration
	// MaxFrames limits the number of frames written. Must be positive.
	MaxFrames int
	// Caption draws the frame number and scheduler time on every frame.
	Caption bool
	Silent  bool
}

// RenderFrames writes the current state of the image as the first frame and then advances
// the scheduler by cfg.Step writing one numbered PNG file per step, until no
// scheduled work is left or cfg.MaxFrames frames have been written.
// It returns the number of frames written.
func RenderFrames(ctx context.Context, cfg FramesConfig) (n int, err error) {
	if cfg.Image == nil || cfg.Scheduler == nil {
		return 0, errors.New("RenderFrames requires Image and Scheduler in config")
	} else if cfg.MaxFrames <= 0 {
		return 0, errors.New("RenderFrames requires positive MaxFrames")
	}
	log := func(args ...any) {
		if !cfg.Silent {
			fmt.Println(args...)
		}
	}
	if cfg.Step <= 0 {
		cfg.Step = time.Millisecond
	}
	err = os.MkdirAll(cfg.Dir, 0755)
	if err != nil {
		return 0, err
	}
	watch := stopwatch()
	for n < cfg.MaxFrames {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return n, ctx.Err()
			default:
			}
		}
		if cfg.Caption {
			err = cfg.Image.SetCaption(fmt.Sprintf("frame %d  t=%s", n, cfg.Scheduler.Now()))
			if err != nil {
				return n, err
			}
		}
		filename := filepath.Join(cfg.Dir, fmt.Sprintf("frame%04d.png", n))
		err = RenderPNGFile(filename, cfg.Image)
		if err != nil {
			return n, err
		}
		n++
		if cfg.Scheduler.Pending() == 0 {
			break
		}
		cfg.Scheduler.Advance(cfg.Step)
	}
	log("wrote", n, "frames to", cfg.Dir, "in", watch())
	return n, nil
}

// UIConfig configures [UI].
type UIConfig struct {
	// Width and height of the window. Default to the image size.
	Width, Height int
	// Context cancels the window loop when done. May be nil.
	Context context.Context
	// ShowFPS draws the frame rate as the image caption.
	ShowFPS bool
	Silent  bool
}

// UI opens a window showing img, which sc draws onto, and advances sched with wall clock time
// so that animations scheduled on it play in real time. sc is rendered once before the window opens.
// Space pauses and resumes time, escape closes the window. Requires cgo.
func UI(sc *svg3d.Scene, img *drawrender.Image, sched *svg3d.StepScheduler, cfg UIConfig) error {
	if sc == nil || img == nil || sched == nil {
		return errors.New("UI requires non-nil scene, image and scheduler")
	}
	w, h := img.Size()
	if cfg.Width <= 0 {
		cfg.Width = int(w)
	}
	if cfg.Height <= 0 {
		cfg.Height = int(h)
	}
	return ui(sc, img, sched, cfg)
}

func stopwatch() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}
