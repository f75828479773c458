package main

import (
	"fmt"
	"log"

	"github.com/akmonengine/hullsat"
	"github.com/akmonengine/hullsat/actor"
	"github.com/akmonengine/hullsat/collider"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

func newBox(position, halfExtents mgl64.Vec3, bodyType actor.BodyType) *hullsat.Entity {
	transform := actor.NewTransform()
	transform.Position = position
	body := actor.NewRigidBody(transform, halfExtents, bodyType, 1.0)
	return hullsat.NewEntity(body, collider.NewBox(body, halfExtents))
}

// newTiltedCube is a mesh collider, so it also produces edge contacts
func newTiltedCube(position mgl64.Vec3, angle float64) (*hullsat.Entity, error) {
	half := mgl64.Vec3{0.5, 0.5, 0.5}
	transform := actor.NewTransform()
	transform.Position = position
	transform.Rotation = mgl64.QuatRotate(angle, mgl64.Vec3{1, 1, 0}.Normalize())
	body := actor.NewRigidBody(transform, half, actor.BodyTypeDynamic, 1.0)

	c, err := collider.NewMesh(body, collider.BoxMesh(half))
	if err != nil {
		return nil, err
	}
	return hullsat.NewEntity(body, c), nil
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	config, err := hullsat.DecodeConfig(map[string]any{
		"iteration_cap":  16,
		"broad_phase":    "grid",
		"grid_cell_size": 2.0,
	})
	if err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}

	manager, err := hullsat.NewManager(config, hullsat.WithLogger(logger))
	if err != nil {
		logger.Fatal("cannot create manager", zap.Error(err))
	}

	manager.Events.Subscribe(hullsat.COLLISION_ENTER, func(event hullsat.Event) {
		e := event.(hullsat.CollisionEnterEvent)
		logger.Info("collision enter", zap.Stringer("a", e.EntityA.ID), zap.Stringer("b", e.EntityB.ID))
	})

	floor := newBox(mgl64.Vec3{0, 0, -1}, mgl64.Vec3{10, 10, 1}, actor.BodyTypeStatic)
	entities := []*hullsat.Entity{floor}
	for i := 0; i < 3; i++ {
		entities = append(entities, newBox(mgl64.Vec3{0, 0, 0.5 + 1.1*float64(i)}, mgl64.Vec3{0.5, 0.5, 0.5}, actor.BodyTypeDynamic))
	}
	cube, err := newTiltedCube(mgl64.Vec3{3, 0, 2}, 0.7)
	if err != nil {
		logger.Fatal("cannot build cube", zap.Error(err))
	}
	entities = append(entities, cube)

	for _, e := range entities {
		if err := manager.AddEntity(e); err != nil {
			logger.Fatal("cannot register entity", zap.Error(err))
		}
	}

	world := hullsat.NewWorld(manager, mgl64.Vec3{0, 0, -9.81})
	world.Substeps = 2

	const dt = 1.0 / 60.0
	for step := 0; step < 180; step++ {
		resolved := 0
		for _, report := range world.Step(dt) {
			resolved += report.Resolved()
		}
		if step%30 == 0 {
			fmt.Printf("step %3d: resolved %d\n", step, resolved)
			for i, e := range entities[1:] {
				fmt.Printf("  body %d at %.4f\n", i, e.Body.Transform.Position)
			}
		}
	}
}
