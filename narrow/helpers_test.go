package narrow

import (
	"math"
	"testing"

	"github.com/akmonengine/hullsat/actor"
	"github.com/akmonengine/hullsat/collider"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
)

var unit = mgl64.Vec3{1, 1, 1}

func placed(position mgl64.Vec3, rotation mgl64.Quat) *actor.Transform {
	return &actor.Transform{Position: position, Rotation: rotation, Scale: unit}
}

func box(position mgl64.Vec3, halfExtents mgl64.Vec3) *collider.Collider {
	c := collider.NewBox(placed(position, mgl64.QuatIdent()), halfExtents)
	c.Update()
	return c
}

func meshBox(t *testing.T, tr *actor.Transform, halfExtents mgl64.Vec3) *collider.Collider {
	t.Helper()
	c, err := collider.NewMesh(tr, collider.BoxMesh(halfExtents))
	require.NoError(t, err)
	c.Update()
	return c
}

// crossedBoxes builds two unit mesh boxes rotated 45° about X and Y respectively,
// whose ridge edges cross with the given overlap along Z
func crossedBoxes(t *testing.T, overlap float64) (*collider.Collider, *collider.Collider) {
	t.Helper()
	a := meshBox(t, placed(mgl64.Vec3{}, mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{1, 0, 0})), unit)
	b := meshBox(t, placed(mgl64.Vec3{0, 0, 2*math.Sqrt2 - overlap}, mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{0, 1, 0})), unit)
	return a, b
}

type recordingSink struct {
	lines  int
	points []mgl64.Vec3
}

func (s *recordingSink) Line(from, to mgl64.Vec3) { s.lines++ }
func (s *recordingSink) Point(p mgl64.Vec3)       { s.points = append(s.points, p) }
