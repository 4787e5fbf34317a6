// Package camera provides the viewer's orbit/pan/zoom camera. Input is
// folded into an immutable State by ApplyInput; a Rig turns a State into
// view and projection matrices.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/objview/internal/engine/input"
	"github.com/Faultbox/objview/pkg/mesh"
)

// State is the user-controlled part of the camera.
type State struct {
	Rotation     mgl32.Vec2 // X: yaw, Y: pitch, in degrees
	Pan          mgl32.Vec2 // world-space offset of the model
	ZoomDistance float32    // eye distance from the target
}

// Settings controls how input deltas map onto State.
type Settings struct {
	RotateSpeed float32 // degrees per pixel dragged
	PanSpeed    float32 // world units per pixel dragged
	ZoomStep    float32 // fraction of the distance per wheel notch
	MinZoom     float32
	MaxZoom     float32 // 0 means unbounded
}

// DefaultSettings mirrors the classic drag-to-orbit viewer feel:
// one degree per pixel and 1/20 unit of pan per pixel.
func DefaultSettings() Settings {
	return Settings{
		RotateSpeed: 1.0,
		PanSpeed:    0.05,
		ZoomStep:    0.1,
		MinZoom:     1.0,
	}
}

// ApplyInput returns the state after ev using DefaultSettings.
func ApplyInput(s State, ev input.Event) State {
	return DefaultSettings().Apply(s, ev)
}

// Apply returns the state after ev. Left drag orbits, right drag pans and
// the wheel zooms. Events that do not affect the camera return s unchanged.
func (cfg Settings) Apply(s State, ev input.Event) State {
	switch ev.Type {
	case input.EventMouseMove:
		dx, dy := float32(ev.RelX), float32(ev.RelY)
		if ev.Buttons.Has(input.ButtonLeft) {
			s.Rotation[0] += dx * cfg.RotateSpeed
			s.Rotation[1] += dy * cfg.RotateSpeed
		}
		if ev.Buttons.Has(input.ButtonRight) {
			s.Pan[0] += dx * cfg.PanSpeed
			s.Pan[1] -= dy * cfg.PanSpeed
		}
	case input.EventMouseWheel:
		s.ZoomDistance -= float32(ev.WheelY) * s.ZoomDistance * cfg.ZoomStep
		s.ZoomDistance = cfg.clampZoom(s.ZoomDistance)
	}
	return s
}

func (cfg Settings) clampZoom(d float32) float32 {
	if d < cfg.MinZoom {
		d = cfg.MinZoom
	}
	if cfg.MaxZoom > 0 && d > cfg.MaxZoom {
		d = cfg.MaxZoom
	}
	return d
}

// Rig is the fixed part of the camera: where it looks from and its lens.
type Rig struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3
	FovY   float32 // degrees
	Near   float32
	Far    float32

	// Radius of the model the rig was fitted to, 0 if never fitted.
	// A fitted rig scales its zoom limits and clip planes to it.
	Radius float32
}

// DefaultRig looks at the origin from (100, 100, 100).
func DefaultRig() Rig {
	return Rig{
		Eye:  mgl32.Vec3{100, 100, 100},
		Up:   mgl32.Vec3{0, 1, 0},
		FovY: 45,
		Near: 0.1,
		Far:  1000,
	}
}

// Home returns the state with no rotation or pan and the eye at its
// configured distance.
func (r Rig) Home() State {
	return State{ZoomDistance: r.Eye.Sub(r.Target).Len()}
}

// FitTo re-aims the rig at the center of b and backs the eye off along its
// current direction until the bounding sphere fills the field of view.
func (r Rig) FitTo(b mesh.Bounds) Rig {
	radius := b.Radius()
	if radius <= 0 {
		radius = 1
	}
	dir := r.direction()
	half := mgl32.DegToRad(r.FovY) / 2
	dist := radius / math32.Sin(half) * 1.1

	r.Target = b.Center()
	r.Eye = r.Target.Add(dir.Mul(dist))
	r.Radius = radius
	r.Near, r.Far = r.clipPlanes(dist, 0)
	return r
}

// Limits adapts cfg to the model size of a fitted rig. The nearest stop
// is at most a tenth of the radius from the target and an unbounded far
// stop becomes twenty fitted distances. Unfitted rigs return cfg as is.
func (r Rig) Limits(cfg Settings) Settings {
	if r.Radius <= 0 {
		return cfg
	}
	home := r.Home().ZoomDistance
	cfg.MinZoom = math32.Min(cfg.MinZoom, r.Radius*0.1)
	if cfg.MaxZoom <= 0 || cfg.MaxZoom < home {
		cfg.MaxZoom = home * 20
	}
	return cfg
}

// clipPlanes brackets the bounding sphere seen from dist, widened by the
// pan offset.
func (r Rig) clipPlanes(dist, pan float32) (near, far float32) {
	near = math32.Max(dist-r.Radius*2-pan, dist/1000)
	far = dist + r.Radius*4 + pan
	return near, far
}

func (r Rig) direction() mgl32.Vec3 {
	d := r.Eye.Sub(r.Target)
	if d.Len() == 0 {
		return mgl32.Vec3{0, 0, 1}
	}
	return d.Normalize()
}

// View returns the model-view matrix for s. The model rotates and pans
// about the rig target, and the eye sits ZoomDistance away from it.
func (r Rig) View(s State) mgl32.Mat4 {
	eye := r.Target.Add(r.direction().Mul(s.ZoomDistance))
	look := mgl32.LookAtV(eye, r.Target, r.Up)

	model := mgl32.Translate3D(r.Target[0]+s.Pan[0], r.Target[1]+s.Pan[1], r.Target[2]).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(s.Rotation[1]))).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(s.Rotation[0]))).
		Mul4(mgl32.Translate3D(-r.Target[0], -r.Target[1], -r.Target[2]))

	return look.Mul4(model)
}

// Projection returns the perspective matrix for a viewport. A fitted rig
// moves its clip planes with s so the model stays inside them at any zoom.
func (r Rig) Projection(s State, width, height int) mgl32.Mat4 {
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	near, far := r.Near, r.Far
	if r.Radius > 0 {
		near, far = r.clipPlanes(s.ZoomDistance, s.Pan.Len())
	}
	return mgl32.Perspective(mgl32.DegToRad(r.FovY), aspect, near, far)
}
