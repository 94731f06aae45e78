package hub

import (
	"time"

	"github.com/soar/gcinput/internal/n64"
)

// WSMessage represents a WebSocket message sent from server to client.
type WSMessage struct {
	Type      string     `json:"type"`      // "full", "delta" or "channel_selected"
	Seq       int64      `json:"seq"`       // Sequence number for ordering
	Timestamp int64      `json:"timestamp"` // Unix timestamp in milliseconds
	Data      *n64.State `json:"data,omitempty"`
	Changes   *n64.Delta `json:"changes,omitempty"`
	Channel   int        `json:"channel,omitempty"`
}

// NewFullMessage creates a "full" type message containing complete state.
func NewFullMessage(seq int64, state *n64.State) *WSMessage {
	return &WSMessage{
		Type:      "full",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Data:      state,
	}
}

// NewDeltaMessage creates a "delta" type message containing only changed
// fields.
func NewDeltaMessage(seq int64, changes *n64.Delta) *WSMessage {
	return &WSMessage{
		Type:      "delta",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Changes:   changes,
	}
}

// NewChannelSelectedMessage creates a "channel_selected" confirmation.
func NewChannelSelectedMessage(channel int) *WSMessage {
	return &WSMessage{
		Type:      "channel_selected",
		Timestamp: time.Now().UnixMilli(),
		Channel:   channel,
	}
}

// ClientMessage represents a message sent from the client to the server.
type ClientMessage struct {
	Type    string `json:"type"`
	Channel int    `json:"channel,omitempty"`
}
