package narrow

import (
	"math"

	"github.com/akmonengine/hullsat/collider"
	"github.com/go-gl/mathgl/mgl64"
)

// FaceQuery is the least-penetrating face axis of one body against another
type FaceQuery struct {
	// Face is -1 when the body has no usable face; Normal is unset then
	Face        int
	Normal      mgl64.Vec3
	Penetration float64
	// Support is the vertex of the other body deepest along -Normal
	Support int
}

// Valid reports whether a face axis was found
func (q FaceQuery) Valid() bool {
	return q.Face >= 0
}

// FaceAxis runs the separating axis test over the faces of this against other.
//
// For every world normal n of this, the support point s of other along -n gives the
// signed distance n·(s - v), v any vertex of the face. The maximum over all faces is
// kept; the scan stops at the first distance above tolerance since that axis already
// separates the bodies.
//
// Only the faces of this are tested: callers run it both ways.
func FaceAxis(this, other *collider.Collider, tolerance float64) FaceQuery {
	best := FaceQuery{Face: -1, Support: -1, Penetration: -math.MaxFloat64}

	for f := 0; f < this.NumFaces(); f++ {
		n := this.Normal(f)
		if n == (mgl64.Vec3{}) {
			continue // degenerate face
		}

		index, support := other.SupportPoint(n.Mul(-1))
		if index < 0 {
			continue
		}
		pen := n.Dot(support.Sub(this.FaceVertex(f)))

		if pen > best.Penetration {
			best = FaceQuery{Face: f, Normal: n, Penetration: pen, Support: index}
		}
		if pen > tolerance {
			break
		}
	}

	return best
}
