package adapter

import (
	"context"
	"log"
	"sync"
	"time"
)

// pollInterval gives a polling rate of approximately 1000 Hz, matching the
// adapter's own report rate.
const pollInterval = time.Millisecond

// Source produces raw adapter reports. *Adapter satisfies it; tests supply
// their own.
type Source interface {
	Read() (State, error)
}

// Poller reads the adapter in a background loop, keeps the last report and
// emits the active channel's controller state whenever it changes.
type Poller struct {
	src     Source
	changes chan ControllerState

	mu     sync.RWMutex
	last   State
	active Channel
}

func NewPoller(src Source) *Poller {
	return &Poller{
		src:     src,
		changes: make(chan ControllerState, 64),
	}
}

// Changes returns the channel on which active-controller state changes are
// sent. It is closed when Run returns.
func (p *Poller) Changes() <-chan ControllerState {
	return p.changes
}

// State returns a snapshot of the last raw adapter report.
func (p *Poller) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last
}

// Controller returns the active channel's last decoded sample.
func (p *Poller) Controller() ControllerState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last.Controller(p.active)
}

// ActiveChannel returns the channel whose changes are being emitted.
func (p *Poller) ActiveChannel() Channel {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.active
}

// SetActiveChannel switches the emitted channel. It reports false and leaves
// the selection alone when the port number is out of range.
func (p *Poller) SetActiveChannel(n int) bool {
	if n < 0 || n >= NumChannels {
		return false
	}
	p.mu.Lock()
	p.active = Channel(n)
	p.mu.Unlock()
	return true
}

// Run polls until the context is cancelled. Read errors are logged and
// retried; the adapter recovers from transient stalls on its own.
func (p *Poller) Run(ctx context.Context) {
	defer close(p.changes)

	var prev ControllerState
	var errLogged bool

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		state, err := p.src.Read()
		if err != nil {
			if !errLogged {
				log.Printf("Adapter read error: %v", err)
				errLogged = true
			}
			time.Sleep(16 * pollInterval)
			continue
		}
		errLogged = false

		p.mu.Lock()
		p.last = state
		cur := state.Controller(p.active)
		p.mu.Unlock()

		if cur != prev {
			prev = cur
			select {
			case p.changes <- cur:
			default:
				// Consumer is behind; drop the sample rather than stall
				// the polling loop.
			}
		}

		time.Sleep(pollInterval)
	}
}
