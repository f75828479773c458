package hullsat

import (
	"github.com/akmonengine/hullsat/narrow"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// StepReport describes one run of the fixed-point loop
type StepReport struct {
	Frame      uint64
	Iterations int
	// Collisions holds the resolved collision count of every iteration
	Collisions []int
	// CapReached is set when the last iteration still resolved collisions
	CapReached bool
}

// Resolved returns the total number of resolutions in the step
func (r StepReport) Resolved() int {
	total := 0
	for _, n := range r.Collisions {
		total += n
	}
	return total
}

type Option func(*Manager)

// WithLogger sets the logger; the default discards everything
func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithBroadPhase overrides the broad phase selected by the config
func WithBroadPhase(bp BroadPhase) Option {
	return func(m *Manager) {
		m.broadPhase = bp
	}
}

// WithDebugSink overrides the narrow phase draw request sink
func WithDebugSink(sink narrow.DebugSink) Option {
	return func(m *Manager) {
		m.sink = sink
	}
}

// Manager owns the registered entities and their pairs. It is not safe for concurrent use:
// registration and stepping happen on the single physics thread.
type Manager struct {
	config     Config
	logger     *zap.Logger
	broadPhase BroadPhase
	sink       narrow.DebugSink
	tester     *narrow.Tester
	responder  Responder

	entities []*Entity
	index    map[uuid.UUID]*Entity
	pairs    []Pair
	frame    uint64

	Events Events
}

func NewManager(config Config, opts ...Option) (*Manager, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	m := &Manager{
		config:    config,
		logger:    zap.NewNop(),
		responder: ContactResponder{
			SeparationBias: config.SeparationBias,
			Compliance:     config.Compliance,
			AngularDamping: config.AngularDamping,
		},
		index:     make(map[uuid.UUID]*Entity),
		Events:    NewEvents(),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.broadPhase == nil {
		switch config.BroadPhase {
		case BroadPhaseGrid:
			m.broadPhase = NewSpatialGrid(config.GridCellSize, config.GridCells)
		default:
			m.broadPhase = AllPairs{}
		}
	}
	if m.sink == nil && config.Debug {
		m.sink = NewLogSink(m.logger)
	}
	m.tester = narrow.NewTester(config.Tolerance, m.sink)

	return m, nil
}

func (m *Manager) Config() Config {
	return m.config
}

// AddEntity registers the entity and pairs it with every entity registered before it.
// A nil ID is replaced by a fresh one.
func (m *Manager) AddEntity(entity *Entity) error {
	if entity == nil || entity.Collider == nil {
		return ErrNilCollider
	}
	if entity.ID == uuid.Nil {
		entity.ID = uuid.New()
	}
	if _, ok := m.index[entity.ID]; ok {
		return errors.Wrapf(ErrDuplicateEntity, "entity %s", entity.ID)
	}

	for _, other := range m.entities {
		m.pairs = append(m.pairs, Pair{A: other, B: entity})
	}
	m.entities = append(m.entities, entity)
	m.index[entity.ID] = entity

	m.logger.Debug("entity registered",
		zap.Stringer("id", entity.ID),
		zap.Stringer("shape", entity.Collider.Kind()),
		zap.Int("pairs", len(m.pairs)),
	)
	return nil
}

// RemoveEntity unregisters the entity and drops its pairs. The remaining pairs keep their
// registration order. It reports whether the entity was registered.
func (m *Manager) RemoveEntity(id uuid.UUID) bool {
	entity, ok := m.index[id]
	if !ok {
		return false
	}
	delete(m.index, id)

	n := 0
	for _, e := range m.entities {
		if e != entity {
			m.entities[n] = e
			n++
		}
	}
	clear(m.entities[n:])
	m.entities = m.entities[:n]

	n = 0
	for _, pair := range m.pairs {
		if pair.A != entity && pair.B != entity {
			m.pairs[n] = pair
			n++
		}
	}
	clear(m.pairs[n:])
	m.pairs = m.pairs[:n]

	m.Events.forget(id)

	m.logger.Debug("entity removed", zap.Stringer("id", id), zap.Int("pairs", len(m.pairs)))
	return true
}

// Entity returns the registered entity with the given ID
func (m *Manager) Entity(id uuid.UUID) (*Entity, bool) {
	e, ok := m.index[id]
	return e, ok
}

// Entities returns the registered entities in registration order. The slice must not be modified.
func (m *Manager) Entities() []*Entity {
	return m.entities
}

// Pairs returns the registered pairs in registration order. The slice must not be modified.
func (m *Manager) Pairs() []Pair {
	return m.pairs
}

// Frame returns the number of steps run so far
func (m *Manager) Frame() uint64 {
	return m.frame
}

// BroadPhase returns the pairs to test in this iteration
func (m *Manager) BroadPhase() []Pair {
	return m.broadPhase.Pairs(m.entities, m.pairs)
}

// NarrowPhase tests every pair in order and resolves each collision right away, so later
// pairs see the poses produced by earlier resolutions. It returns the number of
// collisions resolved.
//
// A pair is skipped when either entity is inactive or non-solid, or when both bodies are
// static since no response can move them.
func (m *Manager) NarrowPhase(pairs []Pair, dt float64) int {
	count := 0

	for _, pair := range pairs {
		a, b := pair.A, pair.B
		if !a.Active || !b.Active || !a.solid() || !b.solid() {
			continue
		}
		if a.static() && b.static() {
			continue
		}

		manifold := m.tester.Intersects(a.Collider, b.Collider)
		if !manifold.Colliding() {
			continue
		}

		self, other := a, b
		if manifold.Originator != a.Collider {
			self, other = b, a
		}

		responder := self.Responder
		if responder == nil {
			responder = m.responder
		}
		responder.Respond(manifold, self, other, dt)

		a.Collider.Invalidate()
		b.Collider.Invalidate()

		m.Events.recordCollision(pair)
		count++
	}

	return count
}

// Step runs one physics tick: poses are refreshed for the new frame, then broad and
// narrow phase repeat until no collision is left or the iteration cap is reached.
// Reaching the cap is not an error; the residual overlap is handled on the next step.
func (m *Manager) Step(dt float64) StepReport {
	m.frame++
	for _, e := range m.entities {
		e.Collider.Refresh(m.frame)
	}

	report := StepReport{Frame: m.frame}
	count := 0
	for report.Iterations < m.config.IterationCap {
		count = m.NarrowPhase(m.BroadPhase(), dt)
		report.Iterations++
		report.Collisions = append(report.Collisions, count)
		if count == 0 {
			break
		}
	}

	if count > 0 {
		report.CapReached = true
		m.logger.Debug("iteration cap reached",
			zap.Uint64("frame", m.frame),
			zap.Int("cap", m.config.IterationCap),
			zap.Int("unresolved", count),
		)
	}

	m.Events.flush(m.pairs)
	return report
}
