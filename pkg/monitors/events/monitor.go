package events

import (
	"github.com/google/uuid"

	"github.com/JakeFAU/progress-monitor/internal/clock"
	"github.com/JakeFAU/progress-monitor/internal/clock/system"
	"github.com/JakeFAU/progress-monitor/internal/id"
	"github.com/JakeFAU/progress-monitor/internal/tracker"
	"github.com/JakeFAU/progress-monitor/pkg/progress"
)

// Key is the registry key.
const Key = "events"

// Deps are the collaborators of the events backend. Zero fields fall back to
// the wall clock and UUIDv7 identifiers; a nil Emitter drops every event.
type Deps struct {
	Emitter Emitter
	Clock   clock.Clock
	IDs     id.Source
}

// Monitor emits an event for every state change.
type Monitor struct {
	tracker.Tracker
	id   uuid.UUID
	desc string
	deps Deps
}

var _ progress.Monitor = (*Monitor)(nil)

// Config returns a configuration emitting through deps.
func Config(deps Deps, defaults progress.Options) progress.Config {
	return progress.NewConfig("events", Factory(deps), defaults)
}

// Factory returns a progress.Factory emitting through deps.
func Factory(deps Deps) progress.Factory {
	if deps.Emitter == nil {
		deps.Emitter = EmitterFunc(func(Event) {})
	}
	if deps.Clock == nil {
		deps.Clock = system.New()
	}
	if deps.IDs == nil {
		deps.IDs = id.New()
	}
	return func(p progress.Params) (progress.Monitor, error) {
		tr, err := tracker.New(p.Total, p.Initial)
		if err != nil {
			return nil, err
		}
		monitorID, err := deps.IDs.NewID()
		if err != nil {
			return nil, err
		}
		m := &Monitor{Tracker: tr, id: monitorID, desc: p.Description, deps: deps}
		m.emit(StageOpen)
		return m, nil
	}
}

// ID returns the identifier stamped on every event of this monitor.
func (m *Monitor) ID() uuid.UUID {
	return m.id
}

// Increment moves the monitor by delta.
func (m *Monitor) Increment(delta int) error {
	return progress.MoveBy(m, delta)
}

// MoveTo sets the position and emits a MOVE event.
func (m *Monitor) MoveTo(n int) error {
	if err := m.Move(n); err != nil {
		return err
	}
	m.emit(StageMove)
	return nil
}

// Close emits a CLOSE event once.
func (m *Monitor) Close() error {
	if m.Tracker.Close() {
		m.emit(StageClose)
	}
	return nil
}

func (m *Monitor) emit(stage Stage) {
	m.deps.Emitter.Emit(Event{
		MonitorID:   m.id,
		TS:          m.deps.Clock.Now().UTC(),
		Stage:       stage,
		Description: m.desc,
		Position:    m.Position(),
		Total:       m.Total(),
	})
}
