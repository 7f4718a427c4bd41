package app

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/ripple/internal/engine/camera"
)

var keyBindings = map[sdl.Scancode]camera.Action{
	sdl.SCANCODE_UP:       camera.ActionPitchUp,
	sdl.SCANCODE_DOWN:     camera.ActionPitchDown,
	sdl.SCANCODE_LEFT:     camera.ActionYawLeft,
	sdl.SCANCODE_RIGHT:    camera.ActionYawRight,
	sdl.SCANCODE_Q:        camera.ActionTwistLeft,
	sdl.SCANCODE_E:        camera.ActionTwistRight,
	sdl.SCANCODE_W:        camera.ActionMoveForward,
	sdl.SCANCODE_S:        camera.ActionMoveBack,
	sdl.SCANCODE_A:        camera.ActionMoveLeft,
	sdl.SCANCODE_D:        camera.ActionMoveRight,
	sdl.SCANCODE_EQUALS:   camera.ActionZoomIn,
	sdl.SCANCODE_KP_PLUS:  camera.ActionZoomIn,
	sdl.SCANCODE_MINUS:    camera.ActionZoomOut,
	sdl.SCANCODE_KP_MINUS: camera.ActionZoomOut,
	sdl.SCANCODE_R:        camera.ActionReset,
}

// ActionForKey returns the camera action bound to a key, or ActionNone.
func ActionForKey(key sdl.Scancode) camera.Action {
	if a, ok := keyBindings[key]; ok {
		return a
	}
	return camera.ActionNone
}
