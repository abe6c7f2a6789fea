package progress

// Null is a monitor that reports nothing. It is the fallback whenever no
// progress display is requested or none is available. It remembers the total
// and initial position it was created with but never moves.
type Null struct {
	position int
	total    int
}

var _ Monitor = Null{}

// Position returns the initial position.
func (n Null) Position() int { return n.position }

// Total returns the total the monitor was created with.
func (n Null) Total() int { return n.total }

// Closed always returns false.
func (Null) Closed() bool { return false }

// Increment does nothing.
func (Null) Increment(int) error { return nil }

// MoveTo does nothing.
func (Null) MoveTo(int) error { return nil }

// Close does nothing.
func (Null) Close() error { return nil }

// Create returns a Null reporting p.Initial out of p.Total. Extra options are
// ignored.
func (Null) Create(p Params) (Monitor, error) {
	return Null{position: p.Initial, total: p.Total}, nil
}

// NullConfig returns the configuration that builds Null monitors.
func NullConfig() Config {
	return NewConfig(nullName, Null{}.Create, nil)
}

const nullName = "progress.Null"
