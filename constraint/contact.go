package constraint

import (
	"math"

	"github.com/akmonengine/hullsat/actor"
	"github.com/akmonengine/hullsat/internal/debug"
	"github.com/akmonengine/hullsat/narrow"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultCompliance controls soft constraint stiffness for contact resolution.
	// Lower values = stiffer contacts, 0 = rigid.
	DefaultCompliance = 1e-7

	// DefaultSeparationBias is added to the penetration depth so a resolved pair ends up
	// strictly apart, beyond the narrow phase tolerance
	DefaultSeparationBias = 2e-4

	// DefaultContactAngularDamping is the decay rate (1/s) of the angular velocity of a
	// body in contact. Without friction nothing else stops a resting body from rocking.
	DefaultContactAngularDamping = 5.0
)

// Material compliances (inverse stiffness, m/N)
const (
	CONCRETE_COMPLIANCE = 0.04e-9
	WOOD_COMPLIANCE     = 0.16e-9
	LEATHER_COMPLIANCE  = 14e-8
	TENDON_COMPLIANCE   = 0.2e-7
	RUBBER_COMPLIANCE   = 1e-6
	MUSCLE_COMPLIANCE   = 0.2e-3
	FAT_COMPLIANCE      = 1e-3
)

type ContactPoint struct {
	Position    mgl64.Vec3
	Penetration float64
}

// ContactConstraint pushes BodyA and BodyB apart along Normal.
// BodyA owns the originator collider of the manifold.
type ContactConstraint struct {
	BodyA  *actor.RigidBody
	BodyB  *actor.RigidBody
	Points []ContactPoint
	// Normal points from A toward B
	Normal      mgl64.Vec3
	Penetration float64

	Compliance     float64
	SeparationBias float64
	// AngularDamping is applied to both bodies on every velocity solve, 0 disables it
	AngularDamping float64
}

// NewContactConstraint builds the constraint of a colliding manifold.
// originator and other are the bodies owning m.Originator and m.Other.
func NewContactConstraint(m narrow.Manifold, originator, other *actor.RigidBody, bias float64) *ContactConstraint {
	depth := m.Depth()
	points := make([]ContactPoint, len(m.Contacts))
	for i, p := range m.Contacts {
		points[i] = ContactPoint{Position: p, Penetration: depth}
	}

	return &ContactConstraint{
		BodyA:          originator,
		BodyB:          other,
		Points:         points,
		Normal:         m.Axis.Mul(-1),
		Penetration:    depth,
		Compliance:     DefaultCompliance,
		SeparationBias: bias,
		AngularDamping: DefaultContactAngularDamping,
	}
}

// SolvePosition moves both bodies apart by the penetration depth plus the separation bias
// (XPBD style, softened by Compliance), shared by inverse mass: a static body never moves,
// two equal bodies move half each.
func (c *ContactConstraint) SolvePosition(dt float64) {
	bodyA := c.BodyA
	bodyB := c.BodyB

	invMassA := bodyA.InverseMass()
	invMassB := bodyB.InverseMass()
	totalWeight := invMassA + invMassB
	if totalWeight <= 1e-12 {
		return
	}

	correction := c.Penetration + c.SeparationBias
	if correction <= 0 {
		return
	}

	alphaTilde := 0.0
	if dt > 0 {
		alphaTilde = c.Compliance / (dt * dt)
	}
	deltaLambda := -correction / (totalWeight + alphaTilde)
	impulse := c.Normal.Mul(deltaLambda)

	if bodyA.BodyType != actor.BodyTypeStatic {
		bodyA.Transform.Position = bodyA.Transform.Position.Add(impulse.Mul(invMassA))
	}
	if bodyB.BodyType != actor.BodyTypeStatic {
		bodyB.Transform.Position = bodyB.Transform.Position.Sub(impulse.Mul(invMassB))
	}

	debug.Assert(!bodyA.HasNaN() && !bodyB.HasNaN(), "NaN position after contact correction")
}

// SolveVelocity applies a normal impulse with restitution to approaching bodies
func (c *ContactConstraint) SolveVelocity(dt float64) {
	if len(c.Points) == 0 {
		return
	}

	bodyA := c.BodyA
	bodyB := c.BodyB

	invMassA := bodyA.InverseMass()
	invMassB := bodyB.InverseMass()
	IA_inv := bodyA.GetInverseInertiaWorld()
	IB_inv := bodyB.GetInverseInertiaWorld()

	restitution := ComputeRestitution(bodyA.Material, bodyB.Material)
	share := 1.0 / float64(len(c.Points))

	var totalLinearImpulseA mgl64.Vec3
	var totalLinearImpulseB mgl64.Vec3
	var totalAngularImpulseA mgl64.Vec3
	var totalAngularImpulseB mgl64.Vec3

	for _, point := range c.Points {
		rA := point.Position.Sub(bodyA.Transform.Position)
		rB := point.Position.Sub(bodyB.Transform.Position)

		vA := bodyA.Velocity.Add(bodyA.AngularVelocity.Cross(rA))
		vB := bodyB.Velocity.Add(bodyB.AngularVelocity.Cross(rB))
		normalVel := vB.Sub(vA).Dot(c.Normal)

		// separating already
		if normalVel >= 0 {
			continue
		}

		rA_cross_n := rA.Cross(c.Normal)
		rB_cross_n := rB.Cross(c.Normal)

		angularInertiaA := IA_inv.Mul3x1(rA_cross_n).Dot(rA_cross_n)
		angularInertiaB := IB_inv.Mul3x1(rB_cross_n).Dot(rB_cross_n)

		effectiveMassNormal := invMassA + invMassB + angularInertiaA + angularInertiaB
		if effectiveMassNormal < 1e-10 {
			continue
		}

		lambdaNormal := -(1 + restitution) * normalVel / effectiveMassNormal * share
		normalImpulse := c.Normal.Mul(lambdaNormal)

		totalLinearImpulseA = totalLinearImpulseA.Sub(normalImpulse.Mul(invMassA))
		totalLinearImpulseB = totalLinearImpulseB.Add(normalImpulse.Mul(invMassB))

		torqueA := rA.Cross(normalImpulse.Mul(-1))
		torqueB := rB.Cross(normalImpulse)

		totalAngularImpulseA = totalAngularImpulseA.Add(IA_inv.Mul3x1(torqueA))
		totalAngularImpulseB = totalAngularImpulseB.Add(IB_inv.Mul3x1(torqueB))
	}

	damping := math.Exp(-c.AngularDamping * dt)
	if bodyA.BodyType != actor.BodyTypeStatic {
		bodyA.Velocity = bodyA.Velocity.Add(totalLinearImpulseA)
		bodyA.AngularVelocity = bodyA.AngularVelocity.Add(totalAngularImpulseA).Mul(damping)
		clampSmallVelocities(bodyA)
	}
	if bodyB.BodyType != actor.BodyTypeStatic {
		bodyB.Velocity = bodyB.Velocity.Add(totalLinearImpulseB)
		bodyB.AngularVelocity = bodyB.AngularVelocity.Add(totalAngularImpulseB).Mul(damping)
		clampSmallVelocities(bodyB)
	}
}
