package narrow

import "github.com/go-gl/mathgl/mgl64"

// DebugSink receives fire-and-forget draw requests from the narrow phase.
// Implementations must not affect collision outcomes.
type DebugSink interface {
	// Line is emitted for edge axes that were tested and rejected
	Line(from, to mgl64.Vec3)
	// Point is emitted for every accepted contact point
	Point(p mgl64.Vec3)
}

// NopSink discards every request
type NopSink struct{}

func (NopSink) Line(from, to mgl64.Vec3) {}
func (NopSink) Point(p mgl64.Vec3)       {}
