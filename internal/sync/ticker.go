// Package sync drives the periodic work of the board client. The only
// background activity is the fuel tick: a once-per-minute pulse that
// re-renders due-date countdowns without touching the data service.
// There is deliberately no background board polling; reloads are
// always user- or failure-initiated.
package sync

import (
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FuelTickMsg is a tea.Msg emitted on every tick. Views recompute
// urgency gauges from the wall clock it carries.
type FuelTickMsg struct {
	Now time.Time
}

// Ticker emits FuelTickMsg at a fixed interval on a channel consumed
// through the Bubble Tea command loop.
type Ticker struct {
	interval time.Duration
	tickCh   chan FuelTickMsg
	stopCh   chan struct{}
	mu       gosync.Mutex
	running  bool
}

// New creates a Ticker with the given interval. Intervals of zero or
// less fall back to one minute.
func New(interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Ticker{
		interval: interval,
		tickCh:   make(chan FuelTickMsg, 1),
		stopCh:   make(chan struct{}),
	}
}

// Start launches the ticking goroutine and returns the subscription
// command that waits for the first tick. Calling Start twice is a no-op.
func (t *Ticker) Start() tea.Cmd {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return nil
	}
	t.running = true
	t.mu.Unlock()

	go t.run()

	return t.WaitForTick()
}

// Stop halts the ticking goroutine.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return
	}

	close(t.stopCh)
	t.running = false
}

// run is the ticking loop.
func (t *Ticker) run() {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.stopCh:
			return
		case now := <-ticker.C:
			t.send(FuelTickMsg{Now: now})
		}
	}
}

// send delivers a tick without blocking; a full channel means the UI
// has not consumed the previous tick yet, and dropping is fine.
func (t *Ticker) send(msg FuelTickMsg) {
	select {
	case t.tickCh <- msg:
	default:
	}
}

// WaitForTick returns a tea.Cmd that waits for the next tick. The app
// re-issues it after processing each FuelTickMsg to keep listening.
func (t *Ticker) WaitForTick() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-t.tickCh
		if !ok {
			return nil
		}
		return msg
	}
}
