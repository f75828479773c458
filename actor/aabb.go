package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// NewAABB builds a box from its center and half dimensions
func NewAABB(center, halfDims mgl64.Vec3) AABB {
	return AABB{Min: center.Sub(halfDims), Max: center.Add(halfDims)}
}

// OrientedAABB returns the conservative world bound of a box with the given local half
// dimensions after applying the linear map m (rotation * scale): each world half
// dimension is |m0|*hx + |m1|*hy + |m2|*hz, summed over the absolute matrix columns.
func OrientedAABB(center, halfDims mgl64.Vec3, m mgl64.Mat3) AABB {
	var world mgl64.Vec3
	for col := 0; col < 3; col++ {
		c := m.Col(col)
		h := halfDims[col]
		world[0] += math.Abs(c.X()) * h
		world[1] += math.Abs(c.Y()) * h
		world[2] += math.Abs(c.Z()) * h
	}
	return NewAABB(center, world)
}

// Center returns the midpoint of the box
func (a AABB) Center() mgl64.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

// HalfDims returns half the box size along each axis
func (a AABB) HalfDims() mgl64.Vec3 {
	return a.Max.Sub(a.Min).Mul(0.5)
}

// Inflate scales the box around its center
func (a AABB) Inflate(factor float64) AABB {
	return NewAABB(a.Center(), a.HalfDims().Mul(factor))
}

// ContainsPoint checks if a point is inside the AABB
func (a AABB) ContainsPoint(point mgl64.Vec3) bool {
	return point.X() >= a.Min.X() && point.X() <= a.Max.X() &&
		point.Y() >= a.Min.Y() && point.Y() <= a.Max.Y() &&
		point.Z() >= a.Min.Z() && point.Z() <= a.Max.Z()
}

// Overlaps checks if two AABBs overlap
func (a AABB) Overlaps(other AABB) bool {
	// AABBs overlap if they overlap on all three axes
	return a.Max.X() >= other.Min.X() && a.Min.X() <= other.Max.X() &&
		a.Max.Y() >= other.Min.Y() && a.Min.Y() <= other.Max.Y() &&
		a.Max.Z() >= other.Min.Z() && a.Min.Z() <= other.Max.Z()
}
