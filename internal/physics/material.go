package physics

import (
	"errors"
	"fmt"
	"math"
)

// Material validation errors.
var (
	ErrInvalidMass        = errors.New("invalid material mass")
	ErrInvalidRestitution = errors.New("invalid material restitution")
	ErrInvalidFriction    = errors.New("invalid material friction")
)

// Material describes how a body responds to forces and contacts.
type Material struct {
	Mass        float64 // > 0, or +Inf for immovable bodies
	Restitution float64 // 0 = inelastic, 1 = perfectly elastic
	Friction    float64 // Coulomb coefficient, >= 0
}

// DefaultMaterial returns the material every new body starts with.
func DefaultMaterial() Material {
	return Material{Mass: 1, Restitution: 1, Friction: 0.5}
}

// Validate checks m for use on a body of the given type.
// Static bodies ignore mass, so only restitution and friction are checked for them.
func (m Material) Validate(t BodyType) error {
	if t == Dynamic && (math.IsNaN(m.Mass) || m.Mass <= 0) {
		return fmt.Errorf("%w: %v", ErrInvalidMass, m.Mass)
	}
	if math.IsNaN(m.Restitution) || m.Restitution < 0 || m.Restitution > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidRestitution, m.Restitution)
	}
	if math.IsNaN(m.Friction) || m.Friction < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidFriction, m.Friction)
	}
	return nil
}

// inverseMass returns 1/mass, or 0 for infinite mass.
func (m Material) inverseMass() float64 {
	if math.IsInf(m.Mass, 1) {
		return 0
	}
	return 1 / m.Mass
}
