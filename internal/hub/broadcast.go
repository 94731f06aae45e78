package hub

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/soar/gcinput/internal/n64"
)

const (
	fullSyncInterval = 5 * time.Second
	deltaCountSync   = 100
)

// Broadcaster listens for remapped controller state changes and broadcasts
// them to the hub.
type Broadcaster struct {
	hub     *Hub
	changes <-chan n64.State

	mu        sync.Mutex
	seq       int64
	lastState n64.State
}

func NewBroadcaster(h *Hub, changes <-chan n64.State) *Broadcaster {
	return &Broadcaster{
		hub:     h,
		changes: changes,
	}
}

func (b *Broadcaster) nextSeq() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	return b.seq
}

// Run starts the broadcaster loop. Should be run in a goroutine; it returns
// when the changes channel is closed.
func (b *Broadcaster) Run() {
	ticker := time.NewTicker(fullSyncInterval)
	defer ticker.Stop()

	var deltaCount int64

	for {
		select {
		case state, ok := <-b.changes:
			if !ok {
				return
			}

			b.mu.Lock()
			delta := n64.ComputeDelta(b.lastState, state)
			b.lastState = state
			b.mu.Unlock()

			if delta.IsEmpty() {
				continue
			}

			deltaCount++

			// Resynchronize with a full state periodically so a client
			// that missed a delta cannot stay wrong forever.
			if deltaCount >= deltaCountSync {
				b.sendFull(b.nextSeq(), state)
				deltaCount = 0
			} else {
				b.sendDelta(b.nextSeq(), delta)
			}

		case <-ticker.C:
			b.mu.Lock()
			state := b.lastState
			b.mu.Unlock()
			if state.Connected {
				b.sendFull(b.nextSeq(), state)
			}
		}
	}
}

// SendInitialState sends the current full state to a newly connected client.
func (b *Broadcaster) SendInitialState(c *Client) {
	b.mu.Lock()
	state := b.lastState
	b.mu.Unlock()

	msg := NewFullMessage(b.nextSeq(), &state)
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling initial state: %v", err)
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (b *Broadcaster) sendFull(seq int64, state n64.State) {
	msg := NewFullMessage(seq, &state)
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling full message: %v", err)
		return
	}
	b.hub.Broadcast(data)
}

func (b *Broadcaster) sendDelta(seq int64, delta *n64.Delta) {
	msg := NewDeltaMessage(seq, delta)
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling delta message: %v", err)
		return
	}
	b.hub.Broadcast(data)
}
