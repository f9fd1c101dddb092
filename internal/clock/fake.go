package clock

import (
	"sync"
	"time"
)

// Fake is a manually advanced Clock. Tickers created from it fire
// synchronously inside Advance, which makes session behaviour deterministic
// in tests.
type Fake struct {
	now     time.Time
	tickers []*fakeTicker
	mu      sync.Mutex
}

// NewFake returns a fake clock set to start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.now
}

func (f *Fake) NewTicker(interval time.Duration) Ticker {
	f.mu.Lock()
	defer f.mu.Unlock()

	t := &fakeTicker{clock: f, interval: interval}
	f.tickers = append(f.tickers, t)

	return t
}

// Advance moves the clock forward by d, firing every tick that falls due on
// the way in chronological order.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now.Add(d)
	f.mu.Unlock()

	for {
		f.mu.Lock()

		var due *fakeTicker

		for _, t := range f.tickers {
			if t.fn == nil || t.next.After(target) {
				continue
			}

			if due == nil || t.next.Before(due.next) {
				due = t
			}
		}

		if due == nil {
			f.now = target
			f.mu.Unlock()

			return
		}

		f.now = due.next
		due.next = due.next.Add(due.interval)
		fn := due.fn

		f.mu.Unlock()

		fn()
	}
}

// Running reports how many tickers are currently started.
func (f *Fake) Running() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	var n int

	for _, t := range f.tickers {
		if t.fn != nil {
			n++
		}
	}

	return n
}

type fakeTicker struct {
	next     time.Time
	clock    *Fake
	fn       func()
	interval time.Duration
}

func (t *fakeTicker) Start(fn func()) {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.fn != nil {
		return
	}

	t.fn = fn
	t.next = t.clock.now.Add(t.interval)
}

func (t *fakeTicker) Stop() {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	t.fn = nil
}
