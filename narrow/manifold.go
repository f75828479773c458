package narrow

import (
	"github.com/akmonengine/hullsat/collider"
	"github.com/go-gl/mathgl/mgl64"
)

// Kind tags which variant of the manifold is populated
type Kind uint8

const (
	KindNone Kind = iota
	KindFace
	KindEdge
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindFace:
		return "face"
	case KindEdge:
		return "edge"
	}
	return "unknown"
}

// Manifold is the result of one pairwise test, built fresh every time.
// A nil Originator means no collision.
type Manifold struct {
	Kind Kind

	// Originator owns the reference face or the first edge
	Originator *collider.Collider
	Other      *collider.Collider

	// Axis is a unit vector pointing from Other toward Originator
	Axis mgl64.Vec3
	// Penetration is the signed distance along the axis, negative when overlapping
	Penetration float64
	Contacts    []mgl64.Vec3

	// Face is the reference face index on Originator (KindFace only)
	Face int
	// Edges holds the adjacency of Originator then of Other (KindEdge only)
	Edges [2]collider.Adjacency
}

// Colliding reports whether the manifold describes a contact
func (m Manifold) Colliding() bool {
	return m.Originator != nil
}

// Depth returns the positive penetration depth, 0 when separated or touching
func (m Manifold) Depth() float64 {
	if m.Penetration >= 0 {
		return 0
	}
	return -m.Penetration
}
