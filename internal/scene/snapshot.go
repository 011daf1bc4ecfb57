package scene

import "github.com/tomz197/newton/internal/physics"

// Snapshot is an immutable copy of a scene's shapes, safe to read from other goroutines.
type Snapshot struct {
	Circles  []physics.Circle
	OBBs     []physics.OBB
	Contacts []physics.Contact
	Width    float64
	Height   float64
}

// Snapshot copies the current shapes and contacts.
func (s *Scene) Snapshot() *Snapshot {
	return &Snapshot{
		Circles:  append([]physics.Circle(nil), s.circles...),
		OBBs:     append([]physics.OBB(nil), s.obbs...),
		Contacts: append([]physics.Contact(nil), s.contacts...),
		Width:    s.width,
		Height:   s.height,
	}
}

// Draw hands every shape to r in the same order as Scene.OnDraw.
func (snap *Snapshot) Draw(r Renderer) {
	for i := range snap.Circles {
		r.DrawCircle(&snap.Circles[i])
	}
	for i := range snap.OBBs {
		r.DrawOBB(&snap.OBBs[i])
	}
}

// Dynamic returns how many shapes in the snapshot are dynamic.
func (snap *Snapshot) Dynamic() int {
	n := 0
	for i := range snap.Circles {
		if snap.Circles[i].Body().IsDynamic() {
			n++
		}
	}
	for i := range snap.OBBs {
		if snap.OBBs[i].Body().IsDynamic() {
			n++
		}
	}
	return n
}
