package collider

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// NormalKey is the hashable identity of an untransformed face normal.
// Components are compared bit for bit, with -0.0 folded into +0.0.
type NormalKey [3]uint64

// MakeNormalKey packs a normal into a NormalKey
func MakeNormalKey(n mgl64.Vec3) NormalKey {
	return NormalKey{floatKey(n.X()), floatKey(n.Y()), floatKey(n.Z())}
}

func floatKey(f float64) uint64 {
	if f == 0 {
		return 0
	}
	return math.Float64bits(f)
}

// EdgeKey is an unordered pair of vertex indices, always stored smaller index first
type EdgeKey struct {
	A, B int
}

// MakeEdgeKey canonicalizes (a, b) so that MakeEdgeKey(a, b) == MakeEdgeKey(b, a)
func MakeEdgeKey(a, b int) EdgeKey {
	if b < a {
		a, b = b, a
	}
	return EdgeKey{A: a, B: b}
}

// Adjacency records two faces meeting at a shared edge.
// It is one arc of the Gauss map, running from the normal of FaceA to the normal of FaceB.
type Adjacency struct {
	FaceA int
	FaceB int
	Edge  EdgeKey
}
