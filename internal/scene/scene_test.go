package scene

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/tomz197/newton/internal/physics"
	"github.com/tomz197/newton/internal/vector"
)

// recorder is a Renderer that records the draw order.
type recorder struct {
	calls []string
}

func (r *recorder) DrawCircle(c *physics.Circle) {
	r.calls = append(r.calls, "circle:"+c.Position().String())
}

func (r *recorder) DrawOBB(o *physics.OBB) {
	r.calls = append(r.calls, "obb:"+o.Center().String())
}

func mustAddCircle(t *testing.T, s *Scene, r, x, y float64, bt physics.BodyType) ShapeID {
	t.Helper()
	id, err := s.AddCircle(r, vector.New(x, y), bt)
	if err != nil {
		t.Fatalf("AddCircle: %v", err)
	}
	return id
}

func mustAddOBB(t *testing.T, s *Scene, cx, cy, ex, ey float64, bt physics.BodyType) ShapeID {
	t.Helper()
	id, err := s.AddOBB(vector.New(cx, cy), vector.New(ex, ey), 0, bt)
	if err != nil {
		t.Fatalf("AddOBB: %v", err)
	}
	return id
}

func TestAddReturnsStableIDs(t *testing.T) {
	s := New()
	c0 := mustAddCircle(t, s, 1, 0, 0, physics.Dynamic)
	o0 := mustAddOBB(t, s, 10, 10, 1, 1, physics.Static)
	c1 := mustAddCircle(t, s, 2, 5, 5, physics.Dynamic)

	if c0 != (ShapeID{physics.KindCircle, 0}) || c1 != (ShapeID{physics.KindCircle, 1}) {
		t.Errorf("circle ids = %v, %v", c0, c1)
	}
	if o0 != (ShapeID{physics.KindOBB, 0}) {
		t.Errorf("obb id = %v", o0)
	}

	// Growing the slices must not break earlier handles.
	for i := 0; i < 100; i++ {
		mustAddCircle(t, s, 1, float64(i), 100, physics.Dynamic)
	}
	c, err := s.Circle(c1)
	if err != nil {
		t.Fatalf("Circle(%v): %v", c1, err)
	}
	if c.Radius() != 2 {
		t.Errorf("Circle(%v).Radius = %v, want 2", c1, c.Radius())
	}

	if n, m := s.Len(); n != 102 || m != 1 {
		t.Errorf("Len = %d, %d, want 102, 1", n, m)
	}
}

func TestLookupErrors(t *testing.T) {
	s := New()
	mustAddCircle(t, s, 1, 0, 0, physics.Dynamic)

	tests := []struct {
		name string
		id   ShapeID
	}{
		{"index out of range", ShapeID{physics.KindCircle, 1}},
		{"negative index", ShapeID{physics.KindCircle, -1}},
		{"no boxes", ShapeID{physics.KindOBB, 0}},
		{"bad kind", ShapeID{physics.Kind(9), 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Body(tt.id); !errors.Is(err, ErrUnknownShape) {
				t.Errorf("Body error = %v, want ErrUnknownShape", err)
			}
			if err := s.ApplyImpulse(tt.id, vector.New(1, 0)); !errors.Is(err, ErrUnknownShape) {
				t.Errorf("ApplyImpulse error = %v, want ErrUnknownShape", err)
			}
		})
	}

	if _, err := s.AddCircle(-1, vector.Zero, physics.Dynamic); !errors.Is(err, physics.ErrInvalidRadius) {
		t.Errorf("AddCircle(-1) error = %v, want ErrInvalidRadius", err)
	}
}

func TestSetMaterialPropertiesLogsRejection(t *testing.T) {
	var buf bytes.Buffer
	s := New(WithLogger(log.New(&buf)))
	id := mustAddCircle(t, s, 1, 0, 0, physics.Dynamic)

	err := s.SetMaterialProperties(id, physics.Material{Mass: 0, Restitution: 0.5})
	if !errors.Is(err, physics.ErrInvalidMass) {
		t.Fatalf("error = %v, want ErrInvalidMass", err)
	}
	if !strings.Contains(buf.String(), "material rejected") {
		t.Errorf("log output = %q, want rejection warning", buf.String())
	}

	// The scene keeps stepping after a rejected edit.
	s.OnUpdate(0.1)
	b, _ := s.Body(id)
	if b.InvMass() != 1 {
		t.Errorf("InvMass = %v, want default 1", b.InvMass())
	}
}

func TestOnUpdateIntegratesAndFalls(t *testing.T) {
	s := New()
	ball := mustAddCircle(t, s, 1, 0, 100, physics.Dynamic)
	wall := mustAddOBB(t, s, 50, 50, 1, 1, physics.Static)

	for i := 0; i < 30; i++ {
		s.OnUpdate(1.0 / 60)
	}

	c, _ := s.Circle(ball)
	if c.Position().Y >= 100 {
		t.Errorf("ball y = %v, want < 100", c.Position().Y)
	}
	o, _ := s.OBB(wall)
	if !o.Center().Equal(vector.New(50, 50)) {
		t.Errorf("static box moved to %v", o.Center())
	}
}

func TestCheckCollisionsCountsPairs(t *testing.T) {
	s := New()
	mustAddCircle(t, s, 1, 0, 0, physics.Dynamic)
	mustAddCircle(t, s, 1, 1.5, 0, physics.Dynamic)
	mustAddCircle(t, s, 1, 50, 50, physics.Dynamic)
	mustAddOBB(t, s, 0, -1.5, 3, 1, physics.Static)
	mustAddOBB(t, s, 0, -3, 3, 1, physics.Static)

	// circle0/circle1, circle0/box0, circle1/box0, box0/box1
	if got := s.CheckCollisions(); got != 4 {
		t.Errorf("CheckCollisions = %d, want 4", got)
	}
	if got := len(s.Contacts()); got != 4 {
		t.Errorf("len(Contacts) = %d, want 4", got)
	}
}

func TestBallSettlesOnFloor(t *testing.T) {
	s := New()
	ball := mustAddCircle(t, s, 1, 0, 3, physics.Dynamic)
	floor := mustAddOBB(t, s, 0, 0, 10, 1, physics.Static)
	for _, id := range []ShapeID{ball, floor} {
		if err := s.SetMaterialProperties(id, physics.Material{Mass: 1, Restitution: 0, Friction: 0.5}); err != nil {
			t.Fatal(err)
		}
	}

	for i := 0; i < 600; i++ {
		s.OnUpdate(1.0 / 60)
	}

	c, _ := s.Circle(ball)
	y := c.Position().Y
	if y < 1.5 || y > 2.5 {
		t.Errorf("ball y = %v, want resting near 2", y)
	}
}

func TestOnDrawOrder(t *testing.T) {
	s := New()
	mustAddOBB(t, s, 9, 9, 1, 1, physics.Static)
	mustAddCircle(t, s, 1, 1, 1, physics.Dynamic)
	mustAddCircle(t, s, 1, 2, 2, physics.Dynamic)

	var r recorder
	s.OnDraw(&r)
	want := []string{"circle:(1, 1)", "circle:(2, 2)", "obb:(9, 9)"}
	if strings.Join(r.calls, " ") != strings.Join(want, " ") {
		t.Errorf("draw order = %v, want %v", r.calls, want)
	}

	var fromSnap recorder
	s.Snapshot().Draw(&fromSnap)
	if strings.Join(fromSnap.calls, " ") != strings.Join(want, " ") {
		t.Errorf("snapshot draw order = %v, want %v", fromSnap.calls, want)
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	s := New(WithBounds(100, 50))
	id := mustAddCircle(t, s, 1, 0, 10, physics.Dynamic)

	snap := s.Snapshot()
	s.OnUpdate(0.5)

	if !snap.Circles[0].Position().Equal(vector.New(0, 10)) {
		t.Errorf("snapshot circle moved to %v", snap.Circles[0].Position())
	}
	c, _ := s.Circle(id)
	if c.Position().Equal(vector.New(0, 10)) {
		t.Error("scene circle did not move")
	}
	if snap.Width != 100 || snap.Height != 50 {
		t.Errorf("snapshot bounds = %v x %v", snap.Width, snap.Height)
	}
	if snap.Dynamic() != 1 {
		t.Errorf("Dynamic = %d, want 1", snap.Dynamic())
	}
}

func TestKickMovesOnlyDynamic(t *testing.T) {
	s := New()
	dyn := mustAddCircle(t, s, 1, 0, 100, physics.Dynamic)
	fixed := mustAddCircle(t, s, 1, 50, 100, physics.Static)

	s.Kick(vector.New(10, 0))
	s.OnUpdate(0.1)

	d, _ := s.Body(dyn)
	if d.Velocity().X != 10 {
		t.Errorf("dynamic vx = %v, want 10", d.Velocity().X)
	}
	f, _ := s.Body(fixed)
	if !f.Velocity().IsZero() {
		t.Errorf("static velocity = %v, want zero", f.Velocity())
	}
}

func TestLayouts(t *testing.T) {
	tests := []struct {
		name          string
		circles, obbs int
	}{
		{"default", 2, 3},
		{"circles", 15 + 50, 0},
		{"boxes", 0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			mustAddCircle(t, s, 1, 0, 0, physics.Dynamic) // Replaced by Load
			if err := s.Load(tt.name); err != nil {
				t.Fatalf("Load: %v", err)
			}
			if c, o := s.Len(); c != tt.circles || o != tt.obbs {
				t.Errorf("Len = %d, %d, want %d, %d", c, o, tt.circles, tt.obbs)
			}
			for i := 0; i < 120; i++ {
				s.OnUpdate(1.0 / 60)
			}
		})
	}

	if err := New().Load("nope"); !errors.Is(err, ErrUnknownLayout) {
		t.Errorf("Load(nope) error = %v, want ErrUnknownLayout", err)
	}
}

func TestNextLayoutWraps(t *testing.T) {
	names := LayoutNames()
	if len(names) != 3 || names[0] != "default" {
		t.Fatalf("LayoutNames = %v", names)
	}
	for i, n := range names {
		if got, want := NextLayout(n), names[(i+1)%len(names)]; got != want {
			t.Errorf("NextLayout(%q) = %q, want %q", n, got, want)
		}
	}
	if got := NextLayout("missing"); got != "default" {
		t.Errorf("NextLayout(missing) = %q, want default", got)
	}
	if !HasLayout("boxes") || HasLayout("missing") {
		t.Error("HasLayout disagrees with LayoutNames")
	}
}
