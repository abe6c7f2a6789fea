package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestHubBatchBySize flushes immediately once the batch size limit is reached.
func TestHubBatchBySize(t *testing.T) {
	t.Parallel()

	sink := newStubSink()
	hub := NewHub(HubConfig{BufferSize: 8, MaxBatchEvents: 2, MaxBatchWait: time.Minute}, sink)
	defer func() {
		require.NoError(t, hub.Close(context.Background()))
	}()

	hub.Emit(sampleEvent(StageOpen))
	hub.Emit(sampleEvent(StageMove))
	require.Eventually(t, func() bool {
		batches := sink.Batches()
		return len(batches) == 1 && len(batches[0]) == 2
	}, time.Second, 10*time.Millisecond)
}

// TestHubBatchByTimer flushes a small batch once the wait elapses.
func TestHubBatchByTimer(t *testing.T) {
	t.Parallel()

	sink := newStubSink()
	hub := NewHub(HubConfig{BufferSize: 4, MaxBatchEvents: 10, MaxBatchWait: 25 * time.Millisecond}, sink)
	defer func() {
		require.NoError(t, hub.Close(context.Background()))
	}()

	hub.Emit(sampleEvent(StageOpen))
	require.Eventually(t, func() bool {
		return len(sink.Batches()) == 1
	}, time.Second, 5*time.Millisecond)
}

// TestHubFlushOnClose delivers buffered events and closes sinks before Close returns.
func TestHubFlushOnClose(t *testing.T) {
	t.Parallel()

	sink := newStubSink()
	hub := NewHub(HubConfig{BufferSize: 4, MaxBatchEvents: 100, MaxBatchWait: time.Minute}, sink)
	hub.Emit(sampleEvent(StageOpen))

	require.NoError(t, hub.Close(context.Background()))
	require.Len(t, sink.Batches(), 1)
	require.Len(t, sink.Batches()[0], 1)
	require.True(t, sink.Closed())
	require.NoError(t, hub.Close(context.Background()))

	hub.Emit(sampleEvent(StageMove))
	require.Len(t, sink.Batches(), 1)
}

// TestHubEmitNonBlocking drops events instead of blocking when nothing drains the queue.
func TestHubEmitNonBlocking(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.WarnLevel)
	hub := &Hub{
		cfg:    HubConfig{Logger: zap.New(core)}.withDefaults(),
		events: make(chan Event),
	}
	start := time.Now()
	hub.Emit(sampleEvent(StageOpen))
	hub.Emit(sampleEvent(StageOpen))
	require.Less(t, time.Since(start), 50*time.Millisecond)
	require.Equal(t, int64(2), hub.Dropped())
	require.Equal(t, 1, logs.Len())
}

// TestHubDiscardsInvalidEvents never forwards events that fail validation.
func TestHubDiscardsInvalidEvents(t *testing.T) {
	t.Parallel()

	sink := newStubSink()
	hub := NewHub(HubConfig{MaxBatchEvents: 1}, sink)
	hub.Emit(Event{Stage: StageOpen})
	require.NoError(t, hub.Close(context.Background()))
	require.Empty(t, sink.Batches())
}

// TestHubLogsSinkFailures keeps delivering after a sink error.
func TestHubLogsSinkFailures(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.WarnLevel)
	good := newStubSink()
	bad := sinkFunc(func(context.Context, []Event) error { return errors.New("unavailable") })
	hub := NewHub(HubConfig{MaxBatchEvents: 1, Logger: zap.New(core)}, bad, nil, good)

	hub.Emit(sampleEvent(StageOpen))
	require.NoError(t, hub.Close(context.Background()))
	require.Len(t, good.Batches(), 1)
	require.Equal(t, 1, logs.FilterMessage("progress sink consume failed").Len())
}

// TestHubCloseHonorsContext returns when the context ends before shutdown completes.
func TestHubCloseHonorsContext(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	slow := sinkFunc(func(context.Context, []Event) error {
		<-release
		return nil
	})
	hub := NewHub(HubConfig{MaxBatchEvents: 1}, slow)
	hub.Emit(sampleEvent(StageOpen))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, hub.Close(ctx), context.DeadlineExceeded)

	close(release)
	require.NoError(t, hub.Close(context.Background()))
}

// TestEventValidate rejects incomplete events.
func TestEventValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, sampleEvent(StageClose).Validate())

	cases := map[string]func(*Event){
		"missing id":        func(e *Event) { e.MonitorID = uuid.Nil },
		"missing timestamp": func(e *Event) { e.TS = time.Time{} },
		"unknown stage":     func(e *Event) { e.Stage = "PAUSE" },
		"negative total":    func(e *Event) { e.Total = -1 },
		"negative position": func(e *Event) { e.Position = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			evt := sampleEvent(StageMove)
			mutate(&evt)
			require.Error(t, evt.Validate())
		})
	}
}

type stubSink struct {
	mu      sync.Mutex
	batches [][]Event
	closed  bool
}

func newStubSink() *stubSink {
	return &stubSink{}
}

func (s *stubSink) Consume(_ context.Context, batch []Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches = append(s.batches, append([]Event(nil), batch...))
	return nil
}

func (s *stubSink) Close(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *stubSink) Batches() [][]Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]Event, len(s.batches))
	for i, b := range s.batches {
		out[i] = append([]Event(nil), b...)
	}
	return out
}

func (s *stubSink) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

type sinkFunc func(context.Context, []Event) error

func (f sinkFunc) Consume(ctx context.Context, batch []Event) error {
	return f(ctx, batch)
}

func (sinkFunc) Close(context.Context) error {
	return nil
}

func sampleEvent(stage Stage) Event {
	return Event{
		MonitorID: uuid.New(),
		TS:        time.Now(),
		Stage:     stage,
		Position:  1,
		Total:     2,
	}
}
