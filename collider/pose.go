package collider

import (
	"math"

	"github.com/akmonengine/hullsat/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// pose is the world-space geometry derived from the owner's transform
type pose struct {
	vertices []mgl64.Vec3
	normals  []mgl64.Vec3
	edges    []mgl64.Vec3
	center   mgl64.Vec3
	radius   float64
	aabb     actor.AABB
}

// Update recomputes the world-space geometry from the transform source right away.
// Vertices use the full world matrix, normals the rotation only and edges rotation * scale.
// Non-uniform scale leaves the normals un-renormalized and therefore inaccurate.
func (c *Collider) Update() {
	tr := c.source.WorldTransform()
	world := tr.WorldMatrix()
	rotation := tr.RotationMatrix()
	linear := tr.LinearMatrix()

	for i, v := range c.vertices {
		c.current.vertices[i] = mgl64.TransformCoordinate(v, world)
	}
	for i, n := range c.normals {
		c.current.normals[i] = rotation.Mul3x1(n)
	}
	for i, e := range c.edges {
		c.current.edges[i] = linear.Mul3x1(e)
	}

	c.current.center = mgl64.TransformCoordinate(c.localCenter, world)
	c.current.radius = c.localRadius * tr.MaxScale() * c.fudge
	c.current.aabb = actor.OrientedAABB(c.current.center, c.halfExtents, linear).Inflate(c.fudge)

	c.dirty = false
}

// Refresh stamps the collider with the given frame; the first read in a new frame
// recomputes the world geometry.
func (c *Collider) Refresh(frame uint64) {
	if frame != c.frame {
		c.frame = frame
		c.dirty = true
	}
}

// Invalidate forces a recompute on the next read, for poses changed within a frame
func (c *Collider) Invalidate() {
	c.dirty = true
}

// Frame returns the frame of the last Refresh
func (c *Collider) Frame() uint64 {
	return c.frame
}

func (c *Collider) pose() *pose {
	if c.dirty {
		c.Update()
	}
	return &c.current
}

// Vertices returns the world-space vertices. The slice must not be modified.
func (c *Collider) Vertices() []mgl64.Vec3 {
	return c.pose().vertices
}

// Vertex returns world-space vertex i
func (c *Collider) Vertex(i int) mgl64.Vec3 {
	return c.pose().vertices[i]
}

// Normal returns the world-space normal of face i
func (c *Collider) Normal(i int) mgl64.Vec3 {
	return c.pose().normals[i]
}

// FaceVertex returns the first world-space vertex of face i
func (c *Collider) FaceVertex(i int) mgl64.Vec3 {
	return c.pose().vertices[c.faces[i][0]]
}

// FacePolygon returns a fresh copy of the world-space vertex loop of face i
func (c *Collider) FacePolygon(i int) []mgl64.Vec3 {
	p := c.pose()
	polygon := make([]mgl64.Vec3, len(c.faces[i]))
	for k, idx := range c.faces[i] {
		polygon[k] = p.vertices[idx]
	}
	return polygon
}

// CurrentEdge returns the world-space edge vector of (a, b), in either vertex order
func (c *Collider) CurrentEdge(a, b int) (mgl64.Vec3, bool) {
	idx, ok := c.EdgeIndex(a, b)
	if !ok {
		return mgl64.Vec3{}, false
	}
	return c.pose().edges[idx], true
}

// Center returns the world-space center of the local AABB
func (c *Collider) Center() mgl64.Vec3 {
	return c.pose().center
}

// BoundingRadius returns the world bounding sphere radius, scaled and fudged
func (c *Collider) BoundingRadius() float64 {
	return c.pose().radius
}

// AABB returns the conservative world-space bound
func (c *Collider) AABB() actor.AABB {
	return c.pose().aabb
}

// SupportPoint returns the world vertex with the largest projection on direction.
// Ties keep the first vertex found.
func (c *Collider) SupportPoint(direction mgl64.Vec3) (int, mgl64.Vec3) {
	vertices := c.pose().vertices
	best := -1
	bestDot := math.Inf(-1)
	for i, v := range vertices {
		if d := v.Dot(direction); d > bestDot {
			bestDot = d
			best = i
		}
	}
	if best < 0 {
		return -1, mgl64.Vec3{}
	}
	return best, vertices[best]
}
