// Package camera turns user input into camera pose changes for the
// transform composer.
package camera

import (
	gomath "math"

	"github.com/Faultbox/ripple/internal/transform"
	"github.com/Faultbox/ripple/pkg/math"
)

// Action is a discrete camera command, usually bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionPitchUp
	ActionPitchDown
	ActionYawLeft
	ActionYawRight
	ActionTwistLeft
	ActionTwistRight
	ActionMoveForward
	ActionMoveBack
	ActionMoveLeft
	ActionMoveRight
	ActionZoomIn
	ActionZoomOut
	ActionReset
)

// Controller holds the camera pose between frames and applies it to a
// composer when it changes.
type Controller struct {
	Position math.Vec3
	Theta    float64 // Pitch (rotation about X, radians)
	Phi      float64 // Yaw (rotation about Y, radians)
	Twist    float64 // Roll (rotation about Z, radians)
	Zoom     float32 // Factor on the starting X/Y scale

	// Constraints
	MinPitch float64
	MaxPitch float64
	MinZoom  float32
	MaxZoom  float32

	// Sensitivity
	RotateStep      float64 // Radians per key press
	MoveStep        float32 // World units per key press
	ZoomStep        float32 // Fractional zoom per key press
	DragSensitivity float64 // Radians per pixel

	home    transform.Pose
	changed bool
}

// NewController creates a controller starting at pose.
func NewController(pose transform.Pose) *Controller {
	c := &Controller{
		MinPitch:        -gomath.Pi / 2,
		MaxPitch:        gomath.Pi / 2,
		MinZoom:         0.1,
		MaxZoom:         10,
		RotateStep:      0.05,
		MoveStep:        0.05,
		ZoomStep:        0.1,
		DragSensitivity: 0.005,
		home:            pose,
	}
	c.Reset()
	return c
}

// Reset restores the starting pose.
func (c *Controller) Reset() {
	c.Position = c.home.Position
	c.Theta = c.home.Theta
	c.Phi = c.home.Phi
	c.Twist = c.home.Twist
	c.Zoom = 1
	c.changed = true
}

// Handle applies one action.
func (c *Controller) Handle(a Action) {
	switch a {
	case ActionPitchUp:
		c.setPitch(c.Theta + c.RotateStep)
	case ActionPitchDown:
		c.setPitch(c.Theta - c.RotateStep)
	case ActionYawLeft:
		c.Phi -= c.RotateStep
	case ActionYawRight:
		c.Phi += c.RotateStep
	case ActionTwistLeft:
		c.Twist -= c.RotateStep
	case ActionTwistRight:
		c.Twist += c.RotateStep
	case ActionMoveForward:
		c.HandleMovement(1, 0)
		return
	case ActionMoveBack:
		c.HandleMovement(-1, 0)
		return
	case ActionMoveLeft:
		c.HandleMovement(0, -1)
		return
	case ActionMoveRight:
		c.HandleMovement(0, 1)
		return
	case ActionZoomIn:
		c.HandleZoom(1)
		return
	case ActionZoomOut:
		c.HandleZoom(-1)
		return
	case ActionReset:
		c.Reset()
		return
	default:
		return
	}
	c.changed = true
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *Controller) HandleDrag(deltaX, deltaY float32) {
	c.Phi += float64(deltaX) * c.DragSensitivity
	c.setPitch(c.Theta + float64(deltaY)*c.DragSensitivity)
	c.changed = true
}

// HandleMovement moves the camera on the XZ plane relative to the current yaw.
func (c *Controller) HandleMovement(forward, right float32) {
	sin := float32(gomath.Sin(c.Phi))
	cos := float32(gomath.Cos(c.Phi))

	dir := math.Vec3{X: -sin*forward + cos*right, Z: -cos*forward - sin*right}
	c.Position = c.Position.Add(dir.Scale(c.MoveStep))
	c.changed = true
}

// HandleZoom scales the view by ZoomStep per unit of delta.
func (c *Controller) HandleZoom(delta float32) {
	c.Zoom += delta * c.Zoom * c.ZoomStep
	if c.Zoom < c.MinZoom {
		c.Zoom = c.MinZoom
	}
	if c.Zoom > c.MaxZoom {
		c.Zoom = c.MaxZoom
	}
	c.changed = true
}

func (c *Controller) setPitch(theta float64) {
	c.Theta = max(c.MinPitch, min(c.MaxPitch, theta))
}

// Apply pushes the pose into the composer if it changed since the last call.
// Reports whether anything was pushed.
func (c *Controller) Apply(comp *transform.Composer) bool {
	if !c.changed {
		return false
	}
	comp.SetCameraPosition(c.Position)
	comp.SetOrientation(c.Theta, c.Phi, c.Twist)
	comp.SetScale(unitScale(c.home.ScaleX)*c.Zoom, unitScale(c.home.ScaleY)*c.Zoom)
	c.changed = false
	return true
}

func unitScale(s float32) float32 {
	if s == 0 {
		return 1
	}
	return s
}
