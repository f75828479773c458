package narrow

import (
	"math"

	"github.com/akmonengine/hullsat/collider"
	"github.com/go-gl/mathgl/mgl64"
)

// EdgeQuery is the least-penetrating edge-edge axis between two bodies
type EdgeQuery struct {
	Found bool
	// Normal is the unit axis, oriented outward from the first body
	Normal      mgl64.Vec3
	Penetration float64
	Edges       [2]collider.Adjacency
}

// EdgeAxis overlays the Gauss maps of this and other to test only the edge pairs that
// form a face of the Minkowski difference.
//
// Each adjacency of this is an arc (a, b) between two face normals on the unit sphere,
// each adjacency of other an arc (c, d). Only crossing arcs are kept; for those the
// axis is cross(edgeA, edgeB), oriented away from the center of this, and the signed
// distance runs from the edge of this to the edge of other. Parallel edges are skipped.
// The scan returns as soon as a distance exceeds tolerance.
func EdgeAxis(this, other *collider.Collider, tolerance float64, sink DebugSink) EdgeQuery {
	if sink == nil {
		sink = NopSink{}
	}
	best := EdgeQuery{Penetration: -math.MaxFloat64}
	center := this.Center()

	for _, adjA := range this.Adjacencies() {
		a := this.Normal(adjA.FaceA)
		b := this.Normal(adjA.FaceB)
		bxa := b.Cross(a)
		edgeA, _ := this.CurrentEdge(adjA.Edge.A, adjA.Edge.B)
		pointA := this.Vertex(adjA.Edge.A)

		for _, adjB := range other.Adjacencies() {
			c := other.Normal(adjB.FaceA)
			d := other.Normal(adjB.FaceB)
			if !arcsCross(a, b, bxa, c, d, d.Cross(c)) {
				continue
			}

			edgeB, _ := other.CurrentEdge(adjB.Edge.A, adjB.Edge.B)
			axis := edgeA.Cross(edgeB)
			length := axis.Len()
			if length <= collider.ParallelEpsilon*edgeA.Len()*edgeB.Len() {
				continue // parallel edges span no plane
			}
			axis = axis.Mul(1 / length)
			if axis.Dot(pointA.Sub(center)) < 0 {
				axis = axis.Mul(-1)
			}

			pen := axis.Dot(other.Vertex(adjB.Edge.A).Sub(pointA))
			if pen > best.Penetration {
				best = EdgeQuery{
					Found:       true,
					Normal:      axis,
					Penetration: pen,
					Edges:       [2]collider.Adjacency{adjA, adjB},
				}
			} else {
				sink.Line(pointA, pointA.Add(axis))
			}

			if pen > tolerance {
				return best
			}
		}
	}

	return best
}

// arcsCross tests whether arc (a, b) crosses arc (-c, -d) on the unit sphere, that is
// whether the two edges build a face of the Minkowski difference A - B. The negation
// of the second arc is folded into the sign tests: it flips the sign of c·(b×a) and
// d·(b×a) but leaves d×c unchanged. A zero triple product (including -0.0) never counts
// as a crossing.
func arcsCross(a, b, bxa, c, d, dxc mgl64.Vec3) bool {
	cba := c.Dot(bxa)
	dba := d.Dot(bxa)
	adc := a.Dot(dxc)
	bdc := b.Dot(dxc)

	return cba*dba < 0 && adc*bdc < 0 && cba*bdc < 0
}
