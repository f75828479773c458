// Package narrow implements the narrow phase between two convex colliders.
//
// The test follows the separating axis theorem: face normals of both bodies are tried
// first, then edge-edge axes taken from the overlay of both Gauss maps. The least
// penetrating axis decides the contact type:
//   - face contact: incident faces of the other body are clipped against the
//     reference face (Sutherland-Hodgman), 1 point or more
//   - edge contact: the closest point between the two winning edges, exactly 1 point
//
// Nothing is cached between calls; a test is a pure function of the current geometry
// of its two colliders.
package narrow

import (
	"github.com/akmonengine/hullsat/collider"
	"github.com/akmonengine/hullsat/internal/debug"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultTolerance is the signed distance above which an axis separates two bodies.
	// It is a small positive slop: bodies resting at zero gap are still in contact.
	DefaultTolerance = 1e-4

	// IncidentEpsilon keeps every incident face whose alignment with the reference
	// normal is within this margin of the most anti-parallel one
	IncidentEpsilon = 1e-6
)

// Tester runs pairwise tests with a fixed tolerance and debug sink
type Tester struct {
	Tolerance float64
	Sink      DebugSink
}

// NewTester creates a tester; a nil sink discards draw requests
func NewTester(tolerance float64, sink DebugSink) *Tester {
	if sink == nil {
		sink = NopSink{}
	}
	return &Tester{Tolerance: tolerance, Sink: sink}
}

var defaultTester = NewTester(DefaultTolerance, nil)

// Intersects tests a against b with DefaultTolerance
func Intersects(a, b *collider.Collider) Manifold {
	return defaultTester.Intersects(a, b)
}

// Intersects decides whether a and b overlap and builds the contact manifold.
//
// Decision order:
//  1. bounding spheres apart: no collision
//  2. a face of a separates: no collision
//  3. a face of b separates: no collision
//  4. an edge pair separates: no collision
//  5. otherwise the shallowest face axis is compared to the shallowest edge axis;
//     a strictly shallower edge axis gives an edge contact, anything else a face contact
//
// Both colliders must have been refreshed for the current frame by the caller.
func (t *Tester) Intersects(a, b *collider.Collider) Manifold {
	sink := t.Sink
	if sink == nil {
		sink = NopSink{}
	}

	delta := b.Center().Sub(a.Center())
	reach := a.BoundingRadius() + b.BoundingRadius()
	if delta.Dot(delta) > reach*reach {
		return Manifold{}
	}

	faceA := FaceAxis(a, b, t.Tolerance)
	if faceA.Penetration > t.Tolerance {
		return Manifold{}
	}

	faceB := FaceAxis(b, a, t.Tolerance)
	if faceB.Penetration > t.Tolerance {
		return Manifold{}
	}

	edge := EdgeAxis(a, b, t.Tolerance, sink)
	if edge.Penetration > t.Tolerance {
		return Manifold{}
	}

	debug.Assert(faceA.Valid() || faceB.Valid(), "no face axis between colliders with %d and %d faces", a.NumFaces(), b.NumFaces())
	if !faceA.Valid() && !faceB.Valid() {
		return Manifold{}
	}

	reference, incident, face := a, b, faceA
	if faceB.Penetration > faceA.Penetration {
		reference, incident, face = b, a, faceB
	}

	if edge.Found && edge.Penetration > face.Penetration {
		return edgeContact(a, b, edge, sink)
	}
	return faceContact(reference, incident, face, sink)
}

func edgeContact(a, b *collider.Collider, edge EdgeQuery, sink DebugSink) Manifold {
	edgeA := edge.Edges[0].Edge
	edgeB := edge.Edges[1].Edge

	contact := ClosestPointSegments(
		a.Vertex(edgeA.A), a.Vertex(edgeA.B),
		b.Vertex(edgeB.A), b.Vertex(edgeB.B),
	)
	sink.Point(contact)

	return Manifold{
		Kind:        KindEdge,
		Originator:  a,
		Other:       b,
		Axis:        edge.Normal.Mul(-1),
		Penetration: edge.Penetration,
		Contacts:    []mgl64.Vec3{contact},
		Face:        -1,
		Edges:       edge.Edges,
	}
}

func faceContact(reference, incident *collider.Collider, face FaceQuery, sink DebugSink) Manifold {
	refNormal := face.Normal
	refPolygon := reference.FacePolygon(face.Face)

	minDot := 2.0
	for f := 0; f < incident.NumFaces(); f++ {
		n := incident.Normal(f)
		if n == (mgl64.Vec3{}) {
			continue
		}
		if d := refNormal.Dot(n); d < minDot {
			minDot = d
		}
	}

	var contacts []mgl64.Vec3
	for f := 0; f < incident.NumFaces(); f++ {
		n := incident.Normal(f)
		if n == (mgl64.Vec3{}) || refNormal.Dot(n) > minDot+IncidentEpsilon {
			continue
		}
		contacts = append(contacts, ClipPolygon(incident.FacePolygon(f), refPolygon, refNormal)...)
	}

	for _, p := range contacts {
		sink.Point(p)
	}

	return Manifold{
		Kind:        KindFace,
		Originator:  reference,
		Other:       incident,
		Axis:        refNormal.Mul(-1),
		Penetration: face.Penetration,
		Contacts:    contacts,
		Face:        face.Face,
	}
}
