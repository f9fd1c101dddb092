// Package clock abstracts wall-clock time and the once-per-second ticks that
// drive an observation session
package clock

import (
	"sync"
	"time"
)

// Clock is a source of time and tickers.
type Clock interface {
	Now() time.Time
	NewTicker(interval time.Duration) Ticker
}

// Ticker calls a function once per interval between Start and Stop.
type Ticker interface {
	// Start begins calling fn once per interval. Calling Start on a running
	// ticker has no effect.
	Start(fn func())
	// Stop ends the ticks. It is idempotent and no tick is started after it
	// returns. A callback that is already executing is allowed to finish, so
	// owners that share state with the callback must discard it themselves.
	Stop()
}

type system struct{}

// System returns a Clock backed by the operating system clock.
func System() Clock {
	return system{}
}

func (system) Now() time.Time {
	return time.Now()
}

func (system) NewTicker(interval time.Duration) Ticker {
	return &ticker{interval: interval}
}

type ticker struct {
	stop     chan struct{}
	interval time.Duration
	mu       sync.Mutex
}

func (t *ticker) Start(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stop != nil {
		return
	}

	stop := make(chan struct{})
	t.stop = stop

	go func() {
		tk := time.NewTicker(t.interval)
		defer tk.Stop()

		for {
			select {
			case <-stop:
				return
			case <-tk.C:
				// both cases may be ready at once; stop wins
				select {
				case <-stop:
					return
				default:
				}

				fn()
			}
		}
	}()
}

func (t *ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stop == nil {
		return
	}

	close(t.stop)
	t.stop = nil
}
