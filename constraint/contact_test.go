package constraint

import (
	"math"
	"testing"

	"github.com/akmonengine/hullsat/actor"
	"github.com/akmonengine/hullsat/collider"
	"github.com/akmonengine/hullsat/narrow"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createBody(position, halfExtents mgl64.Vec3, bodyType actor.BodyType) *actor.RigidBody {
	transform := actor.NewTransform()
	transform.Position = position
	return actor.NewRigidBody(transform, halfExtents, bodyType, 1.0)
}

// collide runs the narrow phase between box colliders bound to the two bodies
func collide(t *testing.T, a, b *actor.RigidBody, halfA, halfB mgl64.Vec3) (narrow.Manifold, *collider.Collider, *collider.Collider) {
	t.Helper()
	ca := collider.NewBox(a, halfA)
	cb := collider.NewBox(b, halfB)
	m := narrow.Intersects(ca, cb)
	require.True(t, m.Colliding())
	return m, ca, cb
}

func TestNewContactConstraint(t *testing.T) {
	bodyA := createBody(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}, actor.BodyTypeDynamic)
	bodyB := createBody(mgl64.Vec3{0, 0, 1.5}, mgl64.Vec3{1, 1, 1}, actor.BodyTypeDynamic)
	m, _, _ := collide(t, bodyA, bodyB, mgl64.Vec3{1, 1, 1}, mgl64.Vec3{1, 1, 1})

	c := NewContactConstraint(m, bodyA, bodyB, DefaultSeparationBias)
	assert.Same(t, bodyA, c.BodyA)
	assert.Same(t, bodyB, c.BodyB)
	assert.InDeltaSlice(t, []float64{0, 0, 1}, c.Normal[:], 1e-12)
	assert.InDelta(t, 0.5, c.Penetration, 1e-12)
	assert.Equal(t, DefaultCompliance, c.Compliance)
	require.Len(t, c.Points, 4)
	for _, p := range c.Points {
		assert.InDelta(t, 0.5, p.Penetration, 1e-12)
	}
}

func TestContactConstraint_SolvePosition(t *testing.T) {
	unit := mgl64.Vec3{1, 1, 1}
	floorHalf := mgl64.Vec3{10, 10, 1}

	tests := []struct {
		name      string
		typeA     actor.BodyType
		typeB     actor.BodyType
		positionA mgl64.Vec3
		halfA     mgl64.Vec3
		wantMoveA float64
		wantMoveB float64
	}{
		{
			name:      "equal dynamic bodies share the correction",
			typeA:     actor.BodyTypeDynamic,
			typeB:     actor.BodyTypeDynamic,
			positionA: mgl64.Vec3{0, 0, 0},
			halfA:     unit,
			wantMoveA: -(0.5 + DefaultSeparationBias) / 2,
			wantMoveB: (0.5 + DefaultSeparationBias) / 2,
		},
		{
			name:      "static floor never moves",
			typeA:     actor.BodyTypeStatic,
			typeB:     actor.BodyTypeDynamic,
			positionA: mgl64.Vec3{0, 0, 0},
			halfA:     floorHalf,
			wantMoveA: 0,
			wantMoveB: 0.5 + DefaultSeparationBias,
		},
		{
			name:      "two static bodies stay in place",
			typeA:     actor.BodyTypeStatic,
			typeB:     actor.BodyTypeStatic,
			positionA: mgl64.Vec3{0, 0, 0},
			halfA:     unit,
			wantMoveA: 0,
			wantMoveB: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bodyA := createBody(tt.positionA, tt.halfA, tt.typeA)
			bodyB := createBody(mgl64.Vec3{0, 0, 1.5}, unit, tt.typeB)
			m, ca, cb := collide(t, bodyA, bodyB, tt.halfA, unit)
			require.Same(t, ca, m.Originator)

			startA := bodyA.Transform.Position
			startB := bodyB.Transform.Position

			c := NewContactConstraint(m, bodyA, bodyB, DefaultSeparationBias)
			c.Compliance = 0
			c.SolvePosition(1.0 / 60.0)

			assert.InDelta(t, tt.wantMoveA, bodyA.Transform.Position.Z()-startA.Z(), 1e-12)
			assert.InDelta(t, tt.wantMoveB, bodyB.Transform.Position.Z()-startB.Z(), 1e-12)

			if tt.wantMoveB != 0 {
				ca.Invalidate()
				cb.Invalidate()
				assert.False(t, narrow.Intersects(ca, cb).Colliding(), "resolved pair must be apart")
			}
		})
	}
}

func TestContactConstraint_SolvePosition_Compliance(t *testing.T) {
	bodyA := createBody(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}, actor.BodyTypeDynamic)
	bodyB := createBody(mgl64.Vec3{0, 0, 1.5}, mgl64.Vec3{1, 1, 1}, actor.BodyTypeDynamic)
	m, _, _ := collide(t, bodyA, bodyB, mgl64.Vec3{1, 1, 1}, mgl64.Vec3{1, 1, 1})

	c := NewContactConstraint(m, bodyA, bodyB, 0)
	c.Compliance = 1e-4
	c.SolvePosition(0.01)

	separation := bodyB.Transform.Position.Z() - bodyA.Transform.Position.Z()
	assert.Greater(t, separation, 1.5)
	assert.Less(t, separation, 2.0, "soft contacts only partially correct")
}

func TestContactConstraint_SolveVelocity(t *testing.T) {
	tests := []struct {
		name        string
		restitution float64
		velocityB   mgl64.Vec3
		wantA       mgl64.Vec3
		wantB       mgl64.Vec3
	}{
		{
			name:        "inelastic impact stops the relative motion",
			restitution: 0,
			velocityB:   mgl64.Vec3{0, 0, -2},
			wantA:       mgl64.Vec3{0, 0, -1},
			wantB:       mgl64.Vec3{0, 0, -1},
		},
		{
			name:        "elastic impact swaps the velocities",
			restitution: 1,
			velocityB:   mgl64.Vec3{0, 0, -2},
			wantA:       mgl64.Vec3{0, 0, -2},
			wantB:       mgl64.Vec3{0, 0, 0},
		},
		{
			name:        "separating bodies are left alone",
			restitution: 0.5,
			velocityB:   mgl64.Vec3{0, 0, 3},
			wantA:       mgl64.Vec3{0, 0, 0},
			wantB:       mgl64.Vec3{0, 0, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bodyA := createBody(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}, actor.BodyTypeDynamic)
			bodyB := createBody(mgl64.Vec3{0, 0, 1.5}, mgl64.Vec3{1, 1, 1}, actor.BodyTypeDynamic)
			bodyA.Material.Restitution = tt.restitution
			bodyB.Material.Restitution = tt.restitution
			bodyB.Velocity = tt.velocityB

			// a single contact on the line of centers applies no torque
			c := &ContactConstraint{
				BodyA:       bodyA,
				BodyB:       bodyB,
				Normal:      mgl64.Vec3{0, 0, 1},
				Penetration: 0.5,
				Points:      []ContactPoint{{Position: mgl64.Vec3{0, 0, 0.75}, Penetration: 0.5}},
			}
			c.SolveVelocity(1.0 / 60.0)

			assert.InDeltaSlice(t, tt.wantA[:], bodyA.Velocity[:], 1e-12)
			assert.InDeltaSlice(t, tt.wantB[:], bodyB.Velocity[:], 1e-12)
			assert.Equal(t, mgl64.Vec3{}, bodyA.AngularVelocity)
			assert.Equal(t, mgl64.Vec3{}, bodyB.AngularVelocity)
		})
	}
}

func TestContactConstraint_SolveVelocity_StaticBody(t *testing.T) {
	floor := createBody(mgl64.Vec3{0, 0, -1}, mgl64.Vec3{10, 10, 1}, actor.BodyTypeStatic)
	cube := createBody(mgl64.Vec3{0, 0, 0.9}, mgl64.Vec3{1, 1, 1}, actor.BodyTypeDynamic)
	cube.Velocity = mgl64.Vec3{0, 0, -3}

	m, _, _ := collide(t, floor, cube, mgl64.Vec3{10, 10, 1}, mgl64.Vec3{1, 1, 1})
	c := NewContactConstraint(m, floor, cube, DefaultSeparationBias)
	c.SolveVelocity(1.0 / 60.0)

	assert.Equal(t, mgl64.Vec3{}, floor.Velocity)
	assert.Greater(t, cube.Velocity.Z(), -3.0)
	assert.LessOrEqual(t, cube.Velocity.Z(), 1e-9)
}

func TestContactConstraint_SolveVelocity_DampsAngularVelocity(t *testing.T) {
	const dt = 1.0 / 60.0

	tests := []struct {
		name           string
		angularDamping float64
		steps          int
		want           mgl64.Vec3
	}{
		{
			name:           "one solve decays the spin",
			angularDamping: DefaultContactAngularDamping,
			steps:          1,
			want:           mgl64.Vec3{0, 0, 2 * math.Exp(-DefaultContactAngularDamping*dt)},
		},
		{
			name:           "a resting body stops spinning",
			angularDamping: DefaultContactAngularDamping,
			steps:          300,
			want:           mgl64.Vec3{0, 0, 0},
		},
		{
			name:           "zero damping keeps the spin",
			angularDamping: 0,
			steps:          300,
			want:           mgl64.Vec3{0, 0, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			floor := createBody(mgl64.Vec3{0, 0, -1}, mgl64.Vec3{10, 10, 1}, actor.BodyTypeStatic)
			cube := createBody(mgl64.Vec3{0, 0, 0.99}, mgl64.Vec3{1, 1, 1}, actor.BodyTypeDynamic)
			// a spin about the contact normal never approaches the floor, so no impulse cancels it
			cube.AngularVelocity = mgl64.Vec3{0, 0, 2}

			m, _, _ := collide(t, floor, cube, mgl64.Vec3{10, 10, 1}, mgl64.Vec3{1, 1, 1})
			c := NewContactConstraint(m, floor, cube, DefaultSeparationBias)
			c.AngularDamping = tt.angularDamping
			for i := 0; i < tt.steps; i++ {
				c.SolveVelocity(dt)
			}

			assert.InDeltaSlice(t, tt.want[:], cube.AngularVelocity[:], 1e-12)
			assert.Equal(t, mgl64.Vec3{}, cube.Velocity)
			assert.Equal(t, mgl64.Vec3{}, floor.AngularVelocity)
		})
	}
}
