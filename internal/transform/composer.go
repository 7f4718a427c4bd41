// Package transform composes the camera and projection matrices into the
// single matrix handed to the vertex shader each frame.
package transform

import (
	"github.com/Faultbox/ripple/pkg/math"
)

// Default clip planes and aspect used until SetPerspective is called.
const (
	DefaultNear   float32 = 0.5
	DefaultFar    float32 = 10.0
	DefaultAspect float32 = 1.0
)

// dirty bits, one per factor.
const (
	dirtyVertical uint8 = 1 << iota
	dirtyHorizontal
	dirtyTwist
	dirtyTranslation
	dirtyPerspective

	dirtyAll = dirtyVertical | dirtyHorizontal | dirtyTwist | dirtyTranslation | dirtyPerspective
)

// Pose is the camera state feeding the composer.
type Pose struct {
	Position math.Vec3
	Theta    float64 // Rotation about X (vertical)
	Phi      float64 // Rotation about Y (horizontal)
	Twist    float64 // Rotation about Z
	ScaleX   float32
	ScaleY   float32
	Near     float32
	Far      float32
	Aspect   float32
}

// DefaultPose returns the camera at the origin with no rotation, unit scale
// and the default clip planes.
func DefaultPose() Pose {
	return Pose{
		ScaleX: 1,
		ScaleY: 1,
		Near:   DefaultNear,
		Far:    DefaultFar,
		Aspect: DefaultAspect,
	}
}

// Composer keeps the five factor matrices and their product, rebuilding
// only the factors whose inputs changed since the last FinalMatrix call.
type Composer struct {
	pose Pose

	vertical    math.Mat4
	horizontal  math.Mat4
	twist       math.Mat4
	translation math.Mat4
	perspective math.Mat4
	final       math.Mat4

	dirty      uint8
	finalStale bool
}

// New returns a composer with the default pose. Every factor starts dirty.
func New() *Composer {
	return NewWithPose(DefaultPose())
}

// NewWithPose returns a composer initialized from pose.
func NewWithPose(pose Pose) *Composer {
	return &Composer{
		pose:       pose,
		dirty:      dirtyAll,
		finalStale: true,
	}
}

// Pose returns the current camera state.
func (c *Composer) Pose() Pose {
	return c.pose
}

// SetCameraPosition stores the camera translation.
func (c *Composer) SetCameraPosition(pos math.Vec3) {
	c.pose.Position = pos
	c.mark(dirtyTranslation)
}

// SetScale stores the X and Y scale factors of the translation matrix.
func (c *Composer) SetScale(x, y float32) {
	c.pose.ScaleX = x
	c.pose.ScaleY = y
	c.mark(dirtyTranslation)
}

// SetOrientation stores the three rotation angles (radians). Only the
// rotations whose angle actually changed are rebuilt.
func (c *Composer) SetOrientation(theta, phi, twist float64) {
	if theta != c.pose.Theta {
		c.pose.Theta = theta
		c.mark(dirtyVertical)
	}
	if phi != c.pose.Phi {
		c.pose.Phi = phi
		c.mark(dirtyHorizontal)
	}
	if twist != c.pose.Twist {
		c.pose.Twist = twist
		c.mark(dirtyTwist)
	}
}

// SetPerspective stores the clip planes and aspect ratio. This is the only
// path that rebuilds the perspective matrix; call it on viewport resize.
func (c *Composer) SetPerspective(near, far, aspect float32) {
	c.pose.Near = near
	c.pose.Far = far
	c.pose.Aspect = aspect
	c.mark(dirtyPerspective)
}

// FinalMatrix returns translation * vertical * horizontal * twist *
// perspective in column-major order.
func (c *Composer) FinalMatrix() math.Mat4 {
	c.refresh()
	if c.finalStale {
		c.final = c.translation.
			Mul(c.vertical).
			Mul(c.horizontal).
			Mul(c.twist).
			Mul(c.perspective)
		c.finalStale = false
	}
	return c.final
}

// VerticalRotation returns the rotation about X by theta.
func (c *Composer) VerticalRotation() math.Mat4 {
	c.refresh()
	return c.vertical
}

// HorizontalRotation returns the rotation about Y by phi.
func (c *Composer) HorizontalRotation() math.Mat4 {
	c.refresh()
	return c.horizontal
}

// Twist returns the rotation about Z by the twist angle.
func (c *Composer) Twist() math.Mat4 {
	c.refresh()
	return c.twist
}

// Translation returns the scale/translation matrix.
func (c *Composer) Translation() math.Mat4 {
	c.refresh()
	return c.translation
}

// Perspective returns the projection matrix.
func (c *Composer) Perspective() math.Mat4 {
	c.refresh()
	return c.perspective
}

func (c *Composer) mark(bits uint8) {
	c.dirty |= bits
	c.finalStale = true
}

func (c *Composer) refresh() {
	if c.dirty == 0 {
		return
	}
	p := &c.pose

	if c.dirty&dirtyVertical != 0 {
		c.vertical = math.RotateX(p.Theta)
	}
	if c.dirty&dirtyHorizontal != 0 {
		c.horizontal = math.RotateY(p.Phi)
	}
	if c.dirty&dirtyTwist != 0 {
		c.twist = math.TwistZ(p.Twist)
	}
	if c.dirty&dirtyTranslation != 0 {
		c.translation = math.ScaleTranslate(p.ScaleX, p.ScaleY, p.Position)
	}
	if c.dirty&dirtyPerspective != 0 {
		c.perspective = math.Projection(p.Aspect, p.Near, p.Far)
	}
	c.dirty = 0
}

// AspectRatio returns height/width for the perspective X scale. A zero or
// negative width yields 1.
func AspectRatio(width, height int) float32 {
	if width <= 0 || height <= 0 {
		return DefaultAspect
	}
	return float32(height) / float32(width)
}
