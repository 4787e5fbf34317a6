package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/objview/internal/engine/input"
	"github.com/Faultbox/objview/pkg/mesh"
)

func drag(buttons input.ButtonMask, dx, dy int) input.Event {
	return input.Event{Type: input.EventMouseMove, RelX: dx, RelY: dy, Buttons: buttons}
}

func TestApplyInput(t *testing.T) {
	start := State{ZoomDistance: 10}

	tests := []struct {
		name  string
		event input.Event
		want  State
	}{
		{
			name:  "left drag rotates",
			event: drag(input.MaskOf(input.ButtonLeft), 4, -2),
			want:  State{Rotation: mgl32.Vec2{4, -2}, ZoomDistance: 10},
		},
		{
			name:  "right drag pans with y flipped",
			event: drag(input.MaskOf(input.ButtonRight), 20, 40),
			want:  State{Pan: mgl32.Vec2{1, -2}, ZoomDistance: 10},
		},
		{
			name:  "motion without buttons",
			event: drag(0, 50, 50),
			want:  start,
		},
		{
			name:  "wheel up zooms in",
			event: input.Event{Type: input.EventMouseWheel, WheelY: 1},
			want:  State{ZoomDistance: 9},
		},
		{
			name:  "wheel down zooms out",
			event: input.Event{Type: input.EventMouseWheel, WheelY: -1},
			want:  State{ZoomDistance: 11},
		},
		{
			name:  "key events ignored",
			event: input.Event{Type: input.EventKeyDown, Key: input.KeyR},
			want:  start,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyInput(start, tt.event)
			if !got.Rotation.ApproxEqual(tt.want.Rotation) ||
				!got.Pan.ApproxEqual(tt.want.Pan) ||
				!mgl32.FloatEqual(got.ZoomDistance, tt.want.ZoomDistance) {
				t.Errorf("ApplyInput() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestApplyInputDoesNotMutate(t *testing.T) {
	s := State{Rotation: mgl32.Vec2{1, 2}, ZoomDistance: 5}
	before := s
	_ = ApplyInput(s, drag(input.MaskOf(input.ButtonLeft), 10, 10))
	if s != before {
		t.Errorf("input state was modified: %+v", s)
	}
}

func TestZoomClamp(t *testing.T) {
	cfg := DefaultSettings()
	cfg.MaxZoom = 12

	s := State{ZoomDistance: 1.05}
	s = cfg.Apply(s, input.Event{Type: input.EventMouseWheel, WheelY: 5})
	if s.ZoomDistance != cfg.MinZoom {
		t.Errorf("expected zoom clamped to %v, got %v", cfg.MinZoom, s.ZoomDistance)
	}

	s = State{ZoomDistance: 11}
	s = cfg.Apply(s, input.Event{Type: input.EventMouseWheel, WheelY: -3})
	if s.ZoomDistance != 12 {
		t.Errorf("expected zoom clamped to 12, got %v", s.ZoomDistance)
	}
}

func TestRigHome(t *testing.T) {
	r := DefaultRig()
	home := r.Home()
	want := mgl32.Vec3{100, 100, 100}.Len()
	if !mgl32.FloatEqual(home.ZoomDistance, want) {
		t.Errorf("expected home distance %v, got %v", want, home.ZoomDistance)
	}
	if home.Rotation != (mgl32.Vec2{}) || home.Pan != (mgl32.Vec2{}) {
		t.Errorf("home should have no rotation or pan: %+v", home)
	}
}

func TestRigViewHomeMatchesLookAt(t *testing.T) {
	r := DefaultRig()
	got := r.View(r.Home())
	want := mgl32.LookAtV(r.Eye, r.Target, r.Up)
	if !got.ApproxEqualThreshold(want, 1e-3) {
		t.Errorf("View(Home()) = %v, want %v", got, want)
	}
}

func TestRigViewKeepsTargetFixedUnderRotation(t *testing.T) {
	r := DefaultRig()
	r.Target = mgl32.Vec3{5, 0, 0}
	s := r.Home()
	s.Rotation = mgl32.Vec2{90, 30}

	// The target is the rotation pivot, so it always lands at the same
	// eye-space point regardless of rotation.
	p := r.View(s).Mul4x1(r.Target.Vec4(1))
	q := r.View(r.Home()).Mul4x1(r.Target.Vec4(1))
	if !p.ApproxEqualThreshold(q, 1e-3) {
		t.Errorf("target moved: %v vs %v", p, q)
	}
}

func TestRigFitTo(t *testing.T) {
	b := mesh.Bounds{Min: mgl32.Vec3{9, -1, -1}, Max: mgl32.Vec3{11, 1, 1}}
	r := DefaultRig().FitTo(b)

	if r.Target != (mgl32.Vec3{10, 0, 0}) {
		t.Errorf("expected target at bounds center, got %v", r.Target)
	}
	dist := r.Eye.Sub(r.Target).Len()
	if dist <= b.Radius() {
		t.Errorf("eye at %v is inside the bounding sphere (radius %v)", dist, b.Radius())
	}
	if r.Near <= 0 || r.Far <= dist {
		t.Errorf("bad clip planes near=%v far=%v dist=%v", r.Near, r.Far, dist)
	}
	// Direction from the target is preserved.
	if !r.Eye.Sub(r.Target).Normalize().ApproxEqualThreshold(mgl32.Vec3{1, 1, 1}.Normalize(), 1e-4) {
		t.Errorf("eye direction changed: %v", r.Eye.Sub(r.Target))
	}
}

func TestRigProjection(t *testing.T) {
	r := DefaultRig()
	got := r.Projection(r.Home(), 800, 600)
	want := mgl32.Perspective(mgl32.DegToRad(45), 800.0/600.0, 0.1, 1000)
	if !got.ApproxEqual(want) {
		t.Errorf("Projection = %v, want %v", got, want)
	}
	// Zero height must not divide by zero.
	_ = r.Projection(r.Home(), 800, 0)
}

func TestSmallFittedModelZoom(t *testing.T) {
	b := mesh.Bounds{Min: mgl32.Vec3{-0.05, -0.05, -0.05}, Max: mgl32.Vec3{0.05, 0.05, 0.05}}
	r := DefaultRig().FitTo(b)
	cfg := r.Limits(DefaultSettings())
	home := r.Home()

	in := cfg.Apply(home, input.Event{Type: input.EventMouseWheel, WheelY: 1})
	if in.ZoomDistance >= home.ZoomDistance {
		t.Fatalf("wheel in moved the eye from %v to %v", home.ZoomDistance, in.ZoomDistance)
	}
	if in.ZoomDistance < cfg.MinZoom {
		t.Errorf("zoom %v below limit %v", in.ZoomDistance, cfg.MinZoom)
	}

	// Zoom all the way out: the far stop is finite and the model is
	// still between the clip planes there.
	out := home
	for i := 0; i < 200; i++ {
		out = cfg.Apply(out, input.Event{Type: input.EventMouseWheel, WheelY: -1})
	}
	if cfg.MaxZoom <= 0 || out.ZoomDistance != cfg.MaxZoom {
		t.Fatalf("expected zoom to stop at %v, got %v", cfg.MaxZoom, out.ZoomDistance)
	}
	for _, s := range []State{in, out} {
		near, far := r.clipPlanes(s.ZoomDistance, 0)
		if near > s.ZoomDistance-r.Radius || far < s.ZoomDistance+r.Radius {
			t.Errorf("dist %v: model outside clip planes [%v, %v]", s.ZoomDistance, near, far)
		}
	}
}

func TestLimitsUnfittedRig(t *testing.T) {
	cfg := DefaultSettings()
	if got := DefaultRig().Limits(cfg); got != cfg {
		t.Errorf("unfitted rig changed settings: %+v", got)
	}
}

func TestProjectionFollowsZoom(t *testing.T) {
	b := mesh.Bounds{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
	r := DefaultRig().FitTo(b)
	far := State{ZoomDistance: r.Home().ZoomDistance * 10}

	// The model center must land inside clip space when zoomed far out.
	eye := r.View(far).Mul4x1(r.Target.Vec4(1))
	clip := r.Projection(far, 800, 600).Mul4x1(eye)
	if z := clip.Z() / clip.W(); z < -1 || z > 1 {
		t.Errorf("model center clipped at depth %v", z)
	}
}
