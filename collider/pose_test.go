package collider

import (
	"math"
	"testing"

	"github.com/akmonengine/hullsat/actor"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdate_TransformsVerticesNormalsEdges(t *testing.T) {
	tr := actor.Transform{
		Position: mgl64.Vec3{5, 0, 0},
		Rotation: mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1}),
		Scale:    mgl64.Vec3{2, 2, 2},
	}
	c := mustMesh(t, &tr, BoxMesh(mgl64.Vec3{1, 1, 1}))
	c.Update()

	world := tr.WorldMatrix()
	for i := 0; i < c.NumVertices(); i++ {
		want := mgl64.TransformCoordinate(c.LocalVertex(i), world)
		got := c.Vertex(i)
		assert.InDeltaSlice(t, want[:], got[:], 1e-12)
	}

	for f := 0; f < c.NumFaces(); f++ {
		n := c.Normal(f)
		assert.InDelta(t, 1.0, n.Len(), 1e-12, "normals ignore uniform scale")
		want := tr.RotationMatrix().Mul3x1(c.LocalNormal(f))
		assert.InDeltaSlice(t, want[:], n[:], 1e-12)
	}

	for _, adj := range c.Adjacencies() {
		local, _ := c.Edge(adj.Edge.A, adj.Edge.B)
		current, ok := c.CurrentEdge(adj.Edge.B, adj.Edge.A)
		require.True(t, ok)
		assert.InDelta(t, 2*local.Len(), current.Len(), 1e-12)
		// edges are translation invariant: they match the difference of world vertices
		diff := c.Vertex(adj.Edge.B).Sub(c.Vertex(adj.Edge.A))
		assert.InDeltaSlice(t, diff[:], current[:], 1e-12)
	}

	center := c.Center()
	assert.InDeltaSlice(t, []float64{5, 0, 0}, center[:], 1e-12)
	assert.InDelta(t, math.Sqrt(3)*2*DefaultFudge, c.BoundingRadius(), 1e-12)
}

func TestUpdate_AABBUsesAbsoluteRotationColumns(t *testing.T) {
	tr := actor.Transform{
		Position: mgl64.Vec3{0, 0, 1},
		Rotation: mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{0, 0, 1}),
	}
	c := NewBox(&tr, mgl64.Vec3{1, 1, 1}, WithoutFudge())

	half := c.AABB().HalfDims()
	assert.InDelta(t, math.Sqrt2, half.X(), 1e-12)
	assert.InDelta(t, math.Sqrt2, half.Y(), 1e-12)
	assert.InDelta(t, 1.0, half.Z(), 1e-12)

	for _, v := range c.Vertices() {
		assert.True(t, c.AABB().Inflate(1+1e-9).ContainsPoint(v))
	}
}

func TestUpdate_AABBFudge(t *testing.T) {
	tr := actor.NewTransform()
	c := NewBox(&tr, mgl64.Vec3{1, 1, 1}, WithFudge(1.5))

	assert.Equal(t, mgl64.Vec3{1.5, 1.5, 1.5}, c.AABB().HalfDims())
}

func TestUpdate_AABBMonotonicInScale(t *testing.T) {
	rotation := mgl64.QuatRotate(0.7, mgl64.Vec3{1, 2, 3}.Normalize())

	for axis := 0; axis < 3; axis++ {
		base := actor.Transform{Rotation: rotation, Scale: mgl64.Vec3{1, 1, 1}}
		grown := base
		grown.Scale[axis] = 3

		a := NewBox(&base, mgl64.Vec3{1, 0.5, 2}).AABB().HalfDims()
		b := NewBox(&grown, mgl64.Vec3{1, 0.5, 2}).AABB().HalfDims()
		for i := 0; i < 3; i++ {
			assert.GreaterOrEqual(t, b[i], a[i]-1e-12)
		}
	}
}

func TestRefresh_RecomputesOncePerFrame(t *testing.T) {
	tr := actor.NewTransform()
	c := NewBox(&tr, mgl64.Vec3{1, 1, 1})

	c.Refresh(1)
	assert.Equal(t, uint64(1), c.Frame())
	assert.InDelta(t, 0.0, c.Center().X(), 1e-12)

	// moved within the same frame: the cached pose is kept
	tr.Position = mgl64.Vec3{3, 0, 0}
	c.Refresh(1)
	assert.InDelta(t, 0.0, c.Center().X(), 1e-12)

	// next frame: first read recomputes
	c.Refresh(2)
	assert.InDelta(t, 3.0, c.Center().X(), 1e-12)

	// explicit invalidation inside a frame
	tr.Position = mgl64.Vec3{-1, 0, 0}
	c.Invalidate()
	assert.InDelta(t, -1.0, c.Center().X(), 1e-12)
	assert.Equal(t, uint64(2), c.Frame())
}

func TestUpdate_ReadsRigidBodyPose(t *testing.T) {
	body := actor.NewRigidBody(actor.Transform{Position: mgl64.Vec3{0, 4, 0}}, mgl64.Vec3{1, 1, 1}, actor.BodyTypeDynamic, 1)
	c := NewBox(body, mgl64.Vec3{1, 1, 1})

	assert.InDelta(t, 4.0, c.Center().Y(), 1e-12)
	assert.Same(t, body, c.Source())
}

func TestSupportPoint(t *testing.T) {
	tr := actor.Transform{Position: mgl64.Vec3{0, 0, 10}}
	c := NewBox(&tr, mgl64.Vec3{1, 1, 1})

	tests := []struct {
		name      string
		direction mgl64.Vec3
		index     int
		point     mgl64.Vec3
	}{
		{name: "corner", direction: mgl64.Vec3{1, 1, 1}, index: 7, point: mgl64.Vec3{1, 1, 11}},
		{name: "opposite corner", direction: mgl64.Vec3{-1, -1, -1}, index: 0, point: mgl64.Vec3{-1, -1, 9}},
		// four vertices tie on the -Z face; the first one wins
		{name: "face tie keeps first", direction: mgl64.Vec3{0, 0, -1}, index: 0, point: mgl64.Vec3{-1, -1, 9}},
		{name: "face tie +Z", direction: mgl64.Vec3{0, 0, 1}, index: 4, point: mgl64.Vec3{-1, -1, 11}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index, point := c.SupportPoint(tt.direction)
			assert.Equal(t, tt.index, index)
			assert.InDeltaSlice(t, tt.point[:], point[:], 1e-12)
		})
	}
}

func TestFacePolygon_IsACopy(t *testing.T) {
	tr := actor.NewTransform()
	c := NewBox(&tr, mgl64.Vec3{1, 1, 1})

	polygon := c.FacePolygon(4)
	require.Len(t, polygon, 4)
	for _, p := range polygon {
		assert.Equal(t, 1.0, p.Z())
	}
	assert.Equal(t, polygon[0], c.FaceVertex(4))

	polygon[0] = mgl64.Vec3{100, 100, 100}
	assert.NotEqual(t, polygon[0], c.FaceVertex(4))
}
