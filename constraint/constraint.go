// Package constraint holds the default collision response applied to the rigid bodies
// of a colliding pair. The narrow phase only describes contacts; this package moves bodies.
package constraint

import (
	"github.com/akmonengine/hullsat/actor"
	"github.com/go-gl/mathgl/mgl64"
)

type Constraint interface {
	SolvePosition(dt float64)
	SolveVelocity(dt float64)
}

func ComputeRestitution(matA, matB actor.Material) float64 {
	// Average: a bouncy body against a dead one bounces half as much
	return (matA.Restitution + matB.Restitution) / 2.0
}

func clampSmallVelocities(rb *actor.RigidBody) {
	const velocityThreshold = 1e-5

	if rb.Velocity.Len() < velocityThreshold {
		rb.Velocity = mgl64.Vec3{0, 0, 0}
	}
	if rb.AngularVelocity.Len() < velocityThreshold {
		rb.AngularVelocity = mgl64.Vec3{0, 0, 0}
	}
}
