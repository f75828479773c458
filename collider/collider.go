// Package collider holds the collision shape of one convex body: geometry cached once
// at construction (vertices, face normals, the Gauss map and the edges derived from it)
// and the world-space copy of that geometry recomputed from the owner's live transform.
package collider

import (
	"math"

	"github.com/akmonengine/hullsat/actor"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// ShapeKind represents the type of collision shape
type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapeMesh
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeBox:
		return "box"
	case ShapeMesh:
		return "mesh"
	}
	return "unknown"
}

const (
	// DefaultFudge inflates the world AABB and bounding sphere
	DefaultFudge = 1.05

	// ParallelEpsilon is the cross product length under which two unit vectors are parallel
	ParallelEpsilon = 1e-6
)

// TransformSource is the read-only pose owner of a collider.
// The collider never writes to it.
type TransformSource interface {
	WorldTransform() actor.Transform
}

type Option func(*Collider)

// WithFudge sets the factor applied to the world AABB and bounding sphere.
// Factors below 1 are clamped to 1.
func WithFudge(factor float64) Option {
	return func(c *Collider) {
		c.fudge = math.Max(1, factor)
	}
}

// WithoutFudge disables AABB and sphere inflation
func WithoutFudge() Option {
	return WithFudge(1)
}

// Collider is the collision shape of one convex body.
// Cached (untransformed) and current (world) arrays share indexing and length.
type Collider struct {
	kind        ShapeKind
	source      TransformSource
	halfExtents mgl64.Vec3
	localCenter mgl64.Vec3
	localRadius float64
	fudge       float64

	vertices []mgl64.Vec3
	faces    [][]int
	normals  []mgl64.Vec3

	adjacencies []Adjacency
	gaussMap    map[NormalKey][]int

	edges     []mgl64.Vec3
	edgeIndex map[EdgeKey]int

	current pose
	frame   uint64
	dirty   bool
}

// NewBox creates a box collider with 6 axis-aligned quad faces.
// Boxes carry no Gauss map, so they only ever produce face contacts; build the box with
// NewMesh(source, BoxMesh(halfExtents)) when edge-edge contacts are needed.
func NewBox(source TransformSource, halfExtents mgl64.Vec3, opts ...Option) *Collider {
	c := newCollider(ShapeBox, source, opts)
	c.vertices = boxVertices(halfExtents)

	c.faces = make([][]int, len(boxQuads))
	c.normals = make([]mgl64.Vec3, len(boxQuads))
	for i, q := range boxQuads {
		c.faces[i] = []int{q[0], q[1], q[2], q[3]}
		c.normals[i] = boxNormals[i]
	}

	c.finish()
	return c
}

// NewMesh creates a convex mesh collider.
// The build order is fixed: normals, then the Gauss map (needs normals), then edges
// (derived from the Gauss map).
func NewMesh(source TransformSource, mesh Mesh, opts ...Option) (*Collider, error) {
	if err := mesh.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid collider mesh")
	}

	c := newCollider(ShapeMesh, source, opts)
	c.vertices = append([]mgl64.Vec3(nil), mesh.Vertices...)

	c.faces = make([][]int, mesh.FaceCount())
	for f := range c.faces {
		c.faces[f] = []int{mesh.Indices[3*f], mesh.Indices[3*f+1], mesh.Indices[3*f+2]}
	}

	c.buildNormals()
	c.buildGaussMap()
	c.buildEdges()

	c.finish()
	return c, nil
}

func newCollider(kind ShapeKind, source TransformSource, opts []Option) *Collider {
	c := &Collider{
		kind:      kind,
		source:    source,
		fudge:     DefaultFudge,
		gaussMap:  make(map[NormalKey][]int),
		edgeIndex: make(map[EdgeKey]int),
		dirty:     true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// buildNormals computes normalize(cross(v1-v0, v2-v0)) per triangle.
// Degenerate triangles keep a zero normal so the indexing stays aligned with faces.
func (c *Collider) buildNormals() {
	c.normals = make([]mgl64.Vec3, len(c.faces))
	for f, face := range c.faces {
		v0 := c.vertices[face[0]]
		n := c.vertices[face[1]].Sub(v0).Cross(c.vertices[face[2]].Sub(v0))
		if l := n.Len(); l > 0 {
			c.normals[f] = n.Mul(1 / l)
		}
	}
}

// buildGaussMap records one adjacency for every pair of non-parallel faces sharing
// exactly two vertices, keyed by the normal of the lower-indexed face.
func (c *Collider) buildGaussMap() {
	for i := 0; i < len(c.faces); i++ {
		if c.normals[i] == (mgl64.Vec3{}) {
			continue
		}
		for j := i + 1; j < len(c.faces); j++ {
			if c.normals[j] == (mgl64.Vec3{}) {
				continue
			}
			if c.normals[i].Cross(c.normals[j]).Len() < ParallelEpsilon {
				continue
			}

			var shared [2]int
			count := 0
			for _, a := range c.faces[i] {
				for _, b := range c.faces[j] {
					if a == b {
						if count < 2 {
							shared[count] = a
						}
						count++
					}
				}
			}
			if count != 2 {
				continue
			}

			key := MakeNormalKey(c.normals[i])
			c.gaussMap[key] = append(c.gaussMap[key], len(c.adjacencies))
			c.adjacencies = append(c.adjacencies, Adjacency{
				FaceA: i,
				FaceB: j,
				Edge:  MakeEdgeKey(shared[0], shared[1]),
			})
		}
	}
}

// buildEdges stores one edge vector per distinct Gauss map edge, oriented from the
// smaller vertex index to the larger one.
func (c *Collider) buildEdges() {
	for _, adj := range c.adjacencies {
		if _, ok := c.edgeIndex[adj.Edge]; ok {
			continue
		}
		c.edgeIndex[adj.Edge] = len(c.edges)
		c.edges = append(c.edges, c.vertices[adj.Edge.B].Sub(c.vertices[adj.Edge.A]))
	}
}

// finish derives the local bounds and allocates the current arrays
func (c *Collider) finish() {
	lo, hi := c.vertices[0], c.vertices[0]
	for _, v := range c.vertices[1:] {
		for k := 0; k < 3; k++ {
			lo[k] = math.Min(lo[k], v[k])
			hi[k] = math.Max(hi[k], v[k])
		}
	}
	c.localCenter = lo.Add(hi).Mul(0.5)
	c.halfExtents = hi.Sub(lo).Mul(0.5)

	for _, v := range c.vertices {
		c.localRadius = math.Max(c.localRadius, v.Sub(c.localCenter).Len())
	}

	c.current = pose{
		vertices: make([]mgl64.Vec3, len(c.vertices)),
		normals:  make([]mgl64.Vec3, len(c.normals)),
		edges:    make([]mgl64.Vec3, len(c.edges)),
	}
}

func (c *Collider) Kind() ShapeKind {
	return c.kind
}

// HalfExtents returns the local (untransformed) AABB half size
func (c *Collider) HalfExtents() mgl64.Vec3 {
	return c.halfExtents
}

// Radius returns the local bounding sphere radius, before scale and fudge
func (c *Collider) Radius() float64 {
	return c.localRadius
}

func (c *Collider) Fudge() float64 {
	return c.fudge
}

func (c *Collider) Source() TransformSource {
	return c.source
}

func (c *Collider) NumVertices() int {
	return len(c.vertices)
}

func (c *Collider) NumFaces() int {
	return len(c.faces)
}

// LocalVertex returns the untransformed vertex i
func (c *Collider) LocalVertex(i int) mgl64.Vec3 {
	return c.vertices[i]
}

// LocalNormal returns the untransformed normal of face i
func (c *Collider) LocalNormal(i int) mgl64.Vec3 {
	return c.normals[i]
}

// FaceIndices returns the vertex loop of face i. The slice must not be modified.
func (c *Collider) FaceIndices(i int) []int {
	return c.faces[i]
}

// Adjacencies returns the Gauss map arcs in construction order. The slice must not be modified.
func (c *Collider) Adjacencies() []Adjacency {
	return c.adjacencies
}

// GaussMap returns the adjacencies keyed by an untransformed face normal
func (c *Collider) GaussMap(normal mgl64.Vec3) []Adjacency {
	indices := c.gaussMap[MakeNormalKey(normal)]
	if len(indices) == 0 {
		return nil
	}
	out := make([]Adjacency, len(indices))
	for i, idx := range indices {
		out[i] = c.adjacencies[idx]
	}
	return out
}

// EdgeIndex returns the position of edge (a, b) in the edge arrays, in either vertex order
func (c *Collider) EdgeIndex(a, b int) (int, bool) {
	idx, ok := c.edgeIndex[MakeEdgeKey(a, b)]
	return idx, ok
}

// Edge returns the untransformed edge vector of (a, b), in either vertex order
func (c *Collider) Edge(a, b int) (mgl64.Vec3, bool) {
	idx, ok := c.EdgeIndex(a, b)
	if !ok {
		return mgl64.Vec3{}, false
	}
	return c.edges[idx], true
}

func (c *Collider) NumEdges() int {
	return len(c.edges)
}
