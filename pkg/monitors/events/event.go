package events

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Stage denotes the lifecycle step an Event records.
type Stage string

// Supported stages.
const (
	StageOpen  Stage = "OPEN"
	StageMove  Stage = "MOVE"
	StageClose Stage = "CLOSE"
)

// Event captures one observation of a monitor.
type Event struct {
	// MonitorID identifies the monitor instance.
	MonitorID uuid.UUID
	// TS is the UTC time the event was recorded.
	TS time.Time
	// Stage is the lifecycle step that produced the event.
	Stage Stage
	// Description is the monitor's label, possibly empty.
	Description string
	Position    int
	Total       int
}

// Validate performs coarse validation on Event payloads.
func (e Event) Validate() error {
	if e.MonitorID == uuid.Nil {
		return errors.New("monitor id is required")
	}
	if e.TS.IsZero() {
		return errors.New("timestamp is required")
	}
	switch e.Stage {
	case StageOpen, StageMove, StageClose:
	default:
		return fmt.Errorf("unknown stage %q", e.Stage)
	}
	if e.Total < 0 {
		return errors.New("total must be >= 0")
	}
	if e.Position < 0 {
		return errors.New("position must be >= 0")
	}
	return nil
}

// Completed reports whether the event's position reached its total.
func (e Event) Completed() bool {
	return e.Position >= e.Total
}
