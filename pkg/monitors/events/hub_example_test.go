package events_test

import (
	"context"
	"fmt"

	"github.com/JakeFAU/progress-monitor/pkg/monitors/events"
	"github.com/JakeFAU/progress-monitor/pkg/progress"
)

type stageCounter map[events.Stage]int

func (c stageCounter) Consume(_ context.Context, batch []events.Event) error {
	for _, evt := range batch {
		c[evt.Stage]++
	}
	return nil
}

func (stageCounter) Close(context.Context) error { return nil }

// ExampleHub wires an events monitor to a Hub and counts the delivered stages.
func ExampleHub() {
	counts := stageCounter{}
	hub := events.NewHub(events.HubConfig{BufferSize: 16}, counts)

	reg := progress.NewRegistry(nil)
	if _, err := reg.Register(events.Key, events.Config(events.Deps{Emitter: hub}, nil), false); err != nil {
		panic(err)
	}
	it, err := progress.Iterate(reg, []string{"a", "b", "c"}, progress.Key(events.Key), nil)
	if err != nil {
		panic(err)
	}
	for range it.All() {
	}
	if err := hub.Close(context.Background()); err != nil {
		panic(err)
	}

	fmt.Println(counts[events.StageOpen], counts[events.StageMove], counts[events.StageClose])
	// Output: 1 3 1
}
