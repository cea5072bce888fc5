package svg3d

import (
	"math"
	"sync"
	"time"

	"github.com/soypat/geometry/md3"
)

// RotateConfig configures [Scene.RotateOnY]. Zero values take defaults.
type RotateConfig struct {
	// Center of rotation. Defaults to the origin.
	Center md3.Vec
	// Angle rotated over the whole animation in radians. Defaults to 2π.
	Angle float64
	// Duration of the animation. Defaults to 50ms.
	Duration time.Duration
	// Repeat keeps the animation running past its last frame, rotating further each frame.
	Repeat bool
	// Frames is the number of frames over Duration. Defaults to 24 frames per
	// millisecond of Duration.
	Frames int
}

func (cfg *RotateConfig) defaults() {
	if cfg.Angle == 0 {
		cfg.Angle = 2 * math.Pi
	}
	if cfg.Duration == 0 {
		cfg.Duration = 50 * time.Millisecond
	}
	if cfg.Frames <= 0 {
		cfg.Frames = max(1, int(cfg.Duration/time.Millisecond)*24)
	}
}

// Animation is a running animation started by a [Scene] method.
type Animation struct {
	sc    *Scene
	obj   Renderable
	sched Scheduler
	cfg   RotateConfig
	delay time.Duration
	start []md3.Vec

	mu       sync.Mutex
	frame    int
	stopped  bool
	err      error
	done     chan struct{}
	doneOnce sync.Once
}

// RotateOnY rotates obj about the vertical axis through cfg.Center. The vertices of obj
// are read once when called; frame k sets them to the starting vertices rotated by
// cfg.Angle*k/cfg.Frames and renders obj. The first frame is rendered before RotateOnY
// returns and the following ones are scheduled on sched every cfg.Duration/cfg.Frames.
func (s *Scene) RotateOnY(sched Scheduler, obj Renderable, cfg RotateConfig) *Animation {
	cfg.defaults()
	s.mu.Lock()
	start := obj.Points()
	s.mu.Unlock()
	a := &Animation{
		sc:    s,
		obj:   obj,
		sched: sched,
		cfg:   cfg,
		delay: cfg.Duration / time.Duration(cfg.Frames),
		start: start,
		done:  make(chan struct{}),
	}
	a.tick()
	return a
}

func (a *Animation) tick() {
	a.mu.Lock()
	if a.stopped {
		a.mu.Unlock()
		return
	}
	a.frame++
	frame := a.frame
	a.mu.Unlock()

	rotation := a.cfg.Angle * float64(frame) / float64(a.cfg.Frames)
	m := RotationY(rotation)
	vertices := make([]md3.Vec, len(a.start))
	for i, v := range a.start {
		rel := Sub(v, a.cfg.Center)
		vertices[i] = Add(LinearTransform(rel, m), a.cfg.Center)
	}
	err := a.sc.updateAndRender(a.obj, vertices)

	a.mu.Lock()
	if err != nil {
		a.err = err
	}
	more := !a.stopped && (frame < a.cfg.Frames || a.cfg.Repeat)
	a.mu.Unlock()
	if more {
		a.sched.After(a.delay, a.tick)
	} else {
		a.finish()
	}
}

// Stop stops the animation. Already scheduled frames do nothing when they run.
func (a *Animation) Stop() {
	a.mu.Lock()
	a.stopped = true
	a.mu.Unlock()
	a.finish()
}

func (a *Animation) finish() {
	a.doneOnce.Do(func() { close(a.done) })
}

// Done returns a channel closed when the animation has rendered its last frame or is stopped.
func (a *Animation) Done() <-chan struct{} { return a.done }

// Frame returns the number of frames rendered so far.
func (a *Animation) Frame() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.frame
}

// Err returns the error of the most recent frame that failed to update or render.
func (a *Animation) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}
