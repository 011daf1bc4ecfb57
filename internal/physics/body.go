package physics

import (
	"math"

	"github.com/tomz197/newton/internal/vector"
)

// BodyType fixes how a body takes part in the simulation. It never changes after construction.
type BodyType int

const (
	Static  BodyType = iota // Immovable, infinite mass
	Dynamic                 // Integrated every update
)

func (t BodyType) String() string {
	switch t {
	case Static:
		return "static"
	case Dynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

// RigidBody holds the dynamics state of one shape.
//
// Forces and impulses accumulate between updates and are consumed by Update.
// Static bodies ignore forces, impulses and Update; only SetPosition and
// SetRotation move them.
type RigidBody struct {
	bodyType BodyType

	position        vector.Vector2
	rotation        float64 // Degrees
	velocity        vector.Vector2
	angularVelocity float64 // Degrees per second
	angularAccel    float64

	force   vector.Vector2 // Accumulated since last Update
	impulse vector.Vector2 // Accumulated since last Update

	material Material
	invMass  float64
}

// NewRigidBody creates a body at the given position and rotation (degrees)
// with DefaultMaterial applied.
func NewRigidBody(position vector.Vector2, rotation float64, t BodyType) RigidBody {
	m := DefaultMaterial()
	if t == Static {
		m.Mass = math.Inf(1)
	}
	return RigidBody{
		bodyType: t,
		position: position,
		rotation: rotation,
		material: m,
		invMass:  m.inverseMass(),
	}
}

// SetMaterialProperties replaces the body's material.
// Static bodies keep restitution and friction but are forced to infinite mass.
// On error the previous material is left in place.
func (b *RigidBody) SetMaterialProperties(m Material) error {
	if err := m.Validate(b.bodyType); err != nil {
		return err
	}
	if b.bodyType == Static {
		m.Mass = math.Inf(1)
	}
	b.material = m
	b.invMass = m.inverseMass()
	return nil
}

// ApplyForce adds a continuous force consumed by the next Update. No-op for static bodies.
func (b *RigidBody) ApplyForce(f vector.Vector2) {
	if b.bodyType != Dynamic {
		return
	}
	b.force.AddAssign(f)
}

// ApplyForceAtPoint applies f at a world-space point, adding the resulting
// torque (per unit mass) to the angular acceleration.
func (b *RigidBody) ApplyForceAtPoint(f, point vector.Vector2) {
	if b.bodyType != Dynamic {
		return
	}
	b.force.AddAssign(f)
	torque := vector.Cross(point.Sub(b.position), f)
	b.angularAccel += torque * b.invMass
}

// ApplyImpulse adds an instantaneous velocity change (scaled by invMass) consumed by the next Update.
func (b *RigidBody) ApplyImpulse(j vector.Vector2) {
	if b.bodyType != Dynamic {
		return
	}
	b.impulse.AddAssign(j)
}

// Update integrates the body over dt seconds with semi-implicit Euler and
// clears the force and impulse accumulators.
func (b *RigidBody) Update(dt float64) {
	if b.bodyType != Dynamic {
		return
	}

	// Infinite-mass dynamic bodies keep their velocity; gravity*mass would be Inf*0.
	if b.invMass != 0 {
		b.force.AddAssign(Gravity.Scale(b.material.Mass))
		accel := b.force.Scale(b.invMass)
		b.velocity.AddAssign(accel.Scale(dt))
		b.velocity.AddAssign(b.impulse.Scale(b.invMass))
	}
	b.position.AddAssign(b.velocity.Scale(dt))

	b.force = vector.Zero
	b.impulse = vector.Zero

	b.rotation += b.angularVelocity * dt
	b.angularVelocity += b.angularAccel * dt
	b.angularAccel = 0
}

// Type returns the body type.
func (b *RigidBody) Type() BodyType { return b.bodyType }

// IsStatic reports whether the body is static.
func (b *RigidBody) IsStatic() bool { return b.bodyType == Static }

// IsDynamic reports whether the body is dynamic.
func (b *RigidBody) IsDynamic() bool { return b.bodyType == Dynamic }

// Position returns the body's world position.
func (b *RigidBody) Position() vector.Vector2 { return b.position }

// Rotation returns the body's rotation in degrees.
func (b *RigidBody) Rotation() float64 { return b.rotation }

// Velocity returns the linear velocity.
func (b *RigidBody) Velocity() vector.Vector2 { return b.velocity }

// AngularVelocity returns the angular velocity in degrees per second.
func (b *RigidBody) AngularVelocity() float64 { return b.angularVelocity }

// Material returns the current material. Static bodies report infinite mass.
func (b *RigidBody) Material() Material { return b.material }

// InvMass returns the cached inverse mass (0 for immovable bodies).
func (b *RigidBody) InvMass() float64 { return b.invMass }

// SetPosition moves the body directly. Used for positional correction and editing.
func (b *RigidBody) SetPosition(p vector.Vector2) { b.position = p }

// SetRotation sets the rotation in degrees.
func (b *RigidBody) SetRotation(deg float64) { b.rotation = deg }
