// Package hullsat is the collision manager of the narrow phase core: it registers
// collidable entities, keeps the ordered list of their pairs and runs the per-tick
// fixed-point loop of broad phase, narrow phase and resolution.
package hullsat

import (
	"github.com/akmonengine/hullsat/actor"
	"github.com/akmonengine/hullsat/collider"
	"github.com/akmonengine/hullsat/constraint"
	"github.com/akmonengine/hullsat/narrow"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrNilCollider     = errors.New("entity has no collider")
	ErrDuplicateEntity = errors.New("entity already registered")
)

// Entity is a collidable object: a collider, usually bound to the rigid body that owns its pose.
type Entity struct {
	ID       uuid.UUID
	Collider *collider.Collider
	// Body may be nil for colliders driven by another transform source; such entities
	// are always solid and never moved by the default response
	Body *actor.RigidBody

	// Inactive entities are skipped by the narrow phase
	Active bool

	// Responder resolves the collisions this entity originates. Nil selects the
	// manager's default contact response.
	Responder Responder
}

// NewEntity creates an active entity with a fresh ID
func NewEntity(body *actor.RigidBody, c *collider.Collider) *Entity {
	return &Entity{
		ID:       uuid.New(),
		Collider: c,
		Body:     body,
		Active:   true,
	}
}

func (e *Entity) solid() bool {
	return e.Body == nil || e.Body.Solid
}

func (e *Entity) static() bool {
	return e.Body != nil && e.Body.BodyType == actor.BodyTypeStatic
}

// Responder receives the manifold of a collision originated by self, the entity owning
// the originator collider
type Responder interface {
	Respond(m narrow.Manifold, self, other *Entity, dt float64)
}

// ResponderFunc adapts a function to Responder
type ResponderFunc func(m narrow.Manifold, self, other *Entity, dt float64)

func (f ResponderFunc) Respond(m narrow.Manifold, self, other *Entity, dt float64) {
	f(m, self, other, dt)
}

// ContactResponder is the default response: a contact constraint solved once for
// position and once for velocity. The zero Compliance is a rigid correction.
type ContactResponder struct {
	SeparationBias float64
	Compliance     float64
	AngularDamping float64
}

func (r ContactResponder) Respond(m narrow.Manifold, self, other *Entity, dt float64) {
	if self.Body == nil || other.Body == nil {
		return
	}

	c := constraint.NewContactConstraint(m, self.Body, other.Body, r.SeparationBias)
	c.Compliance = r.Compliance
	c.AngularDamping = r.AngularDamping
	c.SolvePosition(dt)
	c.SolveVelocity(dt)
}
