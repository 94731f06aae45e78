package hub

import (
	"encoding/json"
	"log"

	"github.com/gorilla/websocket"
)

// ChannelSwitcher switches which adapter port the stream follows.
type ChannelSwitcher interface {
	SetActiveChannel(int) bool
}

// Client represents a connected WebSocket client.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// NewClient creates a new Client attached to the hub.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
}

// WritePump sends messages from the send channel to the WebSocket
// connection.
func (c *Client) WritePump() {
	defer func() {
		c.conn.Close()
	}()

	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// ReadPump reads messages from the WebSocket and handles client commands.
func (c *Client) ReadPump(switcher ChannelSwitcher) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var clientMsg ClientMessage
		if err := json.Unmarshal(message, &clientMsg); err != nil {
			log.Printf("Error parsing client message: %v", err)
			continue
		}

		switch clientMsg.Type {
		case "select_channel":
			if switcher.SetActiveChannel(clientMsg.Channel) {
				msg := NewChannelSelectedMessage(clientMsg.Channel)
				data, _ := json.Marshal(msg)
				c.send <- data
				log.Printf("Client switched to channel %d", clientMsg.Channel)
			} else {
				log.Printf("Failed to switch to channel %d: invalid port", clientMsg.Channel)
			}
		}
	}
}
