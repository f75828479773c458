package hullsat

import (
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// LogSink writes narrow phase draw requests as debug records
type LogSink struct {
	logger *zap.Logger
}

func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger.Named("narrow")}
}

func (s *LogSink) Line(from, to mgl64.Vec3) {
	s.logger.Debug("rejected edge axis", zap.Float64s("from", from[:]), zap.Float64s("to", to[:]))
}

func (s *LogSink) Point(p mgl64.Vec3) {
	s.logger.Debug("contact point", zap.Float64s("point", p[:]))
}
