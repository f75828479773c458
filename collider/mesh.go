package collider

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

var (
	ErrEmptyMesh  = errors.New("mesh has no vertices")
	ErrIndexCount = errors.New("face index count is not a positive multiple of 3")
	ErrIndexRange = errors.New("face index out of range")
)

// Mesh is an immutable convex triangle mesh: 3 indices per face, counter-clockwise
// when seen from outside.
type Mesh struct {
	Vertices []mgl64.Vec3
	Indices  []int
}

// Validate reports every structural problem of the mesh at once
func (m Mesh) Validate() error {
	var err error
	if len(m.Vertices) == 0 {
		err = multierr.Append(err, ErrEmptyMesh)
	}
	if len(m.Indices) == 0 || len(m.Indices)%3 != 0 {
		err = multierr.Append(err, errors.Wrapf(ErrIndexCount, "got %d indices", len(m.Indices)))
	}
	for i, idx := range m.Indices {
		if idx < 0 || idx >= len(m.Vertices) {
			err = multierr.Append(err, errors.Wrapf(ErrIndexRange, "index %d at position %d (%d vertices)", idx, i, len(m.Vertices)))
		}
	}
	return err
}

// FaceCount returns the number of triangles
func (m Mesh) FaceCount() int {
	return len(m.Indices) / 3
}

// boxCorner returns corner i of a box, bit 0/1/2 of i selecting the +X/+Y/+Z side
func boxCorner(i int, h mgl64.Vec3) mgl64.Vec3 {
	v := h.Mul(-1)
	if i&1 != 0 {
		v[0] = h.X()
	}
	if i&2 != 0 {
		v[1] = h.Y()
	}
	if i&4 != 0 {
		v[2] = h.Z()
	}
	return v
}

// boxQuads lists the 6 box faces as corner loops, in the order of boxNormals
var boxQuads = [6][4]int{
	{1, 3, 7, 5}, // +X
	{0, 4, 6, 2}, // -X
	{2, 6, 7, 3}, // +Y
	{0, 1, 5, 4}, // -Y
	{4, 5, 7, 6}, // +Z
	{0, 2, 3, 1}, // -Z
}

var boxNormals = [6]mgl64.Vec3{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}

func boxVertices(halfExtents mgl64.Vec3) []mgl64.Vec3 {
	vertices := make([]mgl64.Vec3, 8)
	for i := range vertices {
		vertices[i] = boxCorner(i, halfExtents)
	}
	return vertices
}

// BoxMesh triangulates a box into 12 faces, each quad split along its (0,2) diagonal
func BoxMesh(halfExtents mgl64.Vec3) Mesh {
	indices := make([]int, 0, 36)
	for _, q := range boxQuads {
		indices = append(indices, q[0], q[1], q[2], q[0], q[2], q[3])
	}
	return Mesh{Vertices: boxVertices(halfExtents), Indices: indices}
}

// TetrahedronMesh returns a regular tetrahedron inscribed in the cube of the given half size
func TetrahedronMesh(size float64) Mesh {
	vertices := []mgl64.Vec3{
		{size, size, size},
		{size, -size, -size},
		{-size, size, -size},
		{-size, -size, size},
	}
	return windOutward(Mesh{
		Vertices: vertices,
		Indices:  []int{0, 1, 2, 0, 1, 3, 0, 2, 3, 1, 2, 3},
	})
}

// OctahedronMesh returns an octahedron with its 6 vertices on the axes at distance size
func OctahedronMesh(size float64) Mesh {
	vertices := []mgl64.Vec3{
		{size, 0, 0}, {-size, 0, 0},
		{0, size, 0}, {0, -size, 0},
		{0, 0, size}, {0, 0, -size},
	}
	indices := make([]int, 0, 24)
	for _, x := range []int{0, 1} {
		for _, y := range []int{2, 3} {
			for _, z := range []int{4, 5} {
				indices = append(indices, x, y, z)
			}
		}
	}
	return windOutward(Mesh{Vertices: vertices, Indices: indices})
}

// windOutward flips any triangle whose normal points toward the mesh centroid
func windOutward(m Mesh) Mesh {
	var centroid mgl64.Vec3
	for _, v := range m.Vertices {
		centroid = centroid.Add(v)
	}
	centroid = centroid.Mul(1.0 / float64(len(m.Vertices)))

	for f := 0; f < m.FaceCount(); f++ {
		i0, i1, i2 := m.Indices[3*f], m.Indices[3*f+1], m.Indices[3*f+2]
		v0, v1, v2 := m.Vertices[i0], m.Vertices[i1], m.Vertices[i2]
		n := v1.Sub(v0).Cross(v2.Sub(v0))
		if n.Dot(v0.Sub(centroid)) < 0 {
			m.Indices[3*f+1], m.Indices[3*f+2] = i2, i1
		}
	}
	return m
}
