package hullsat

import (
	"testing"

	"github.com/akmonengine/hullsat/actor"
	"github.com/akmonengine/hullsat/collider"
	"github.com/akmonengine/hullsat/narrow"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
)

// createBoxEntity creates an active entity whose box collider follows a fresh rigid body
func createBoxEntity(position, halfExtents mgl64.Vec3, bodyType actor.BodyType) *Entity {
	transform := actor.NewTransform()
	transform.Position = position
	body := actor.NewRigidBody(transform, halfExtents, bodyType, 1.0)
	return NewEntity(body, collider.NewBox(body, halfExtents))
}

func newTestManager(t *testing.T, opts ...Option) *Manager {
	t.Helper()
	m, err := NewManager(DefaultConfig(), opts...)
	require.NoError(t, err)
	return m
}

func register(t *testing.T, m *Manager, entities ...*Entity) {
	t.Helper()
	for _, e := range entities {
		require.NoError(t, m.AddEntity(e))
	}
}

// frozen is a responder that leaves both bodies in place
var frozen = ResponderFunc(func(_ narrow.Manifold, _, _ *Entity, _ float64) {})
