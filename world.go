package hullsat

import (
	"github.com/go-gl/mathgl/mgl64"
)

const DEFAULT_SUBSTEPS = 1

// World drives a Manager with a minimal integrator: every substep advances the active
// bodies under gravity, then runs the collision step on the new poses.
type World struct {
	Manager *Manager
	// Gravity acceleration (m/s², or N/kg)
	Gravity  mgl64.Vec3
	Substeps int
}

func NewWorld(manager *Manager, gravity mgl64.Vec3) *World {
	return &World{
		Manager:  manager,
		Gravity:  gravity,
		Substeps: DEFAULT_SUBSTEPS,
	}
}

// Step advances the world by dt and returns the collision report of every substep
func (w *World) Step(dt float64) []StepReport {
	substeps := max(DEFAULT_SUBSTEPS, w.Substeps)
	h := dt / float64(substeps)

	reports := make([]StepReport, 0, substeps)
	for i := 0; i < substeps; i++ {
		w.integrate(h)
		reports = append(reports, w.Manager.Step(h))
	}
	return reports
}

func (w *World) integrate(h float64) {
	for _, e := range w.Manager.Entities() {
		if e.Body == nil || !e.Active {
			continue
		}
		e.Body.Integrate(h, w.Gravity)
	}
}
