//go:build tinygo || !cgo

package svg3daux

import (
	"errors"

	"github.com/soypat/svg3d"
	"github.com/soypat/svg3d/drawrender"
)

func ui(sc *svg3d.Scene, img *drawrender.Image, sched *svg3d.StepScheduler, cfg UIConfig) error {
	return errors.New("require cgo for UI rendering")
}
