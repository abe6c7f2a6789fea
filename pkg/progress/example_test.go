package progress_test

import (
	"fmt"

	"github.com/JakeFAU/progress-monitor/pkg/progress"
	"github.com/JakeFAU/progress-monitor/pkg/progress/progresstest"
)

func ExampleIterate() {
	reg := progress.NewRegistry(nil)
	if _, err := reg.Register("test", progresstest.Config(nil), false); err != nil {
		panic(err)
	}
	reg.SetDefault("test")

	it, err := progress.Iterate(reg, []string{"a.txt", "b.txt", "c.txt"}, progress.Default, nil)
	if err != nil {
		panic(err)
	}
	defer it.Close() //nolint:errcheck

	for it.Next() {
		fmt.Printf("%s at %d/%d\n", it.Value(), it.Monitor().Position(), it.Monitor().Total())
	}
	fmt.Println("done:", it.Monitor().Position(), it.Monitor().Closed())
	// Output:
	// a.txt at 0/3
	// b.txt at 1/3
	// c.txt at 2/3
	// done: 3 true
}

func ExampleWith() {
	reg := progress.NewRegistry(nil)
	m, err := reg.Acquire(progress.Type{Creator: progresstest.Monitor{}}, 100, 0, nil)
	if err != nil {
		panic(err)
	}
	err = progress.With(m, func(m progress.Monitor) error {
		for range 4 {
			if err := m.Increment(25); err != nil {
				return err
			}
		}
		return nil
	})
	fmt.Println(m.Position(), m.Closed(), err)
	// Output: 100 true <nil>
}
