package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// BodyType represents the type of rigid body
type BodyType int

const (
	// BodyTypeDynamic bodies are moved by collision responses
	BodyTypeDynamic BodyType = iota

	// BodyTypeStatic bodies are immovable and have infinite mass (ground, walls)
	BodyTypeStatic
)

type Material struct {
	mass           float64
	Restitution    float64 // 0= no rebound, 1= perfect restitution
	LinearDamping  float64 // 1/s, typical: 0.01
	AngularDamping float64 // 1/s, typical: 0.05
}

func (material Material) GetMass() float64 {
	return material.mass
}

// RigidBody is the pose owner read by colliders and the target of collision responses.
// Integration is owned by the engine; Integrate is a plain semi-implicit Euler step.
type RigidBody struct {
	Transform Transform

	Velocity        mgl64.Vec3
	AngularVelocity mgl64.Vec3

	InertiaLocal        mgl64.Mat3
	InverseInertiaLocal mgl64.Mat3

	Material Material
	BodyType BodyType

	// Solid bodies take part in the narrow phase; non-solid ones are skipped entirely.
	Solid bool
}

// NewRigidBody creates a solid rigid body
// halfExtents feeds the box inertia approximation; mass is ignored for static bodies.
func NewRigidBody(transform Transform, halfExtents mgl64.Vec3, bodyType BodyType, mass float64) *RigidBody {
	rb := &RigidBody{
		Transform: transform,
		BodyType:  bodyType,
		Solid:     true,
	}

	if bodyType == BodyTypeStatic {
		rb.Material = Material{mass: math.Inf(1)}
		return rb
	}

	rb.Material = Material{mass: mass}
	rb.InertiaLocal = BoxInertia(halfExtents, mass)
	rb.InverseInertiaLocal = rb.InertiaLocal.Inv()

	return rb
}

// WorldTransform is the read-only pose query used by colliders
func (rb *RigidBody) WorldTransform() Transform {
	return rb.Transform
}

// InverseMass returns 0 for static bodies
func (rb *RigidBody) InverseMass() float64 {
	if rb.BodyType == BodyTypeStatic {
		return 0
	}
	return 1.0 / rb.Material.GetMass()
}

// BoxInertia returns the inertia tensor of a solid box: I = (m/12) * (d1² + d2²)
func BoxInertia(halfExtents mgl64.Vec3, mass float64) mgl64.Mat3 {
	x := halfExtents.X() * 2
	y := halfExtents.Y() * 2
	z := halfExtents.Z() * 2

	factor := mass / 12.0
	return mgl64.Mat3{
		factor * (y*y + z*z), 0, 0,
		0, factor * (x*x + z*z), 0,
		0, 0, factor * (x*x + y*y),
	}
}

// Integrate advances the pose by dt under gravity
func (rb *RigidBody) Integrate(dt float64, gravity mgl64.Vec3) {
	if rb.BodyType == BodyTypeStatic {
		return
	}

	rb.Velocity = rb.Velocity.Add(gravity.Mul(dt))
	rb.Velocity = rb.Velocity.Mul(math.Exp(-rb.Material.LinearDamping * dt))
	rb.Transform.Position = rb.Transform.Position.Add(rb.Velocity.Mul(dt))

	rb.AngularVelocity = rb.AngularVelocity.Mul(math.Exp(-rb.Material.AngularDamping * dt))
	if rb.AngularVelocity.Len() > 0 {
		omegaQuat := mgl64.Quat{V: rb.AngularVelocity, W: 0}
		qDot := omegaQuat.Mul(rb.Transform.Rotation).Scale(0.5)
		rb.Transform.Rotation = rb.Transform.Rotation.Add(qDot.Scale(dt)).Normalize()
	}
}

// GetInverseInertiaWorld returns R * I_local^(-1) * R^T, or zero for static bodies
func (rb *RigidBody) GetInverseInertiaWorld() mgl64.Mat3 {
	if rb.BodyType == BodyTypeStatic {
		return mgl64.Mat3{}
	}

	R := rb.Transform.RotationMatrix()
	return R.Mul3(rb.InverseInertiaLocal).Mul3(R.Transpose())
}

// HasNaN reports whether the pose has been corrupted by a NaN
func (rb *RigidBody) HasNaN() bool {
	p := rb.Transform.Position
	q := rb.Transform.Rotation
	return math.IsNaN(p.X()) || math.IsNaN(p.Y()) || math.IsNaN(p.Z()) ||
		math.IsNaN(q.W) || math.IsNaN(q.V.X()) || math.IsNaN(q.V.Y()) || math.IsNaN(q.V.Z())
}
