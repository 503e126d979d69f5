package notify

import (
	"sync"
	"time"

	"github.com/cyclopcam/logs"
	"github.com/gorilla/websocket"

	"github.com/uright/uright/server/model"
)

// Number of notifications we will queue for a single browser connection
// before dropping frames to it. A browser that can't keep up loses events;
// it still has the feed endpoint to catch up from.
const clientSendBufferSize = 32

const writeTimeout = 10 * time.Second

// Hub fans incoming notifications out to connected browser websockets.
type Hub struct {
	log   logs.Log
	lock  sync.Mutex
	conns map[int64][]*hubClient
}

type hubClient struct {
	conn *websocket.Conn
	send chan model.Notification
}

func NewHub(log logs.Log) *Hub {
	return &Hub{
		log:   log,
		conns: map[int64][]*hubClient{},
	}
}

// Serve takes ownership of an upgraded websocket connection for the given
// user, and blocks until the connection dies.
func (h *Hub) Serve(userID int64, conn *websocket.Conn) {
	client := &hubClient{
		conn: conn,
		send: make(chan model.Notification, clientSendBufferSize),
	}
	h.lock.Lock()
	h.conns[userID] = append(h.conns[userID], client)
	n := len(h.conns[userID])
	h.lock.Unlock()
	h.log.Infof("Notification websocket connected for user %v (%v active)", userID, n)

	go client.writePump()

	// Read pump. The browser doesn't send us anything meaningful; reading
	// is how we notice the connection closing.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.lock.Lock()
	list := h.conns[userID]
	for i, c := range list {
		if c == client {
			h.conns[userID] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(h.conns[userID]) == 0 {
		delete(h.conns, userID)
	}
	h.lock.Unlock()
	close(client.send)
	conn.Close()
	h.log.Infof("Notification websocket closed for user %v", userID)
}

func (c *hubClient) writePump() {
	for n := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteJSON(&n); err != nil {
			// Reader will notice the dead connection and clean up
			return
		}
	}
}

// Publish sends the notification to every live connection of userID.
// userID 0 broadcasts to everybody. Slow connections get frames dropped.
func (h *Hub) Publish(userID int64, n model.Notification) {
	h.lock.Lock()
	defer h.lock.Unlock()
	send := func(clients []*hubClient) {
		for _, c := range clients {
			select {
			case c.send <- n:
			default:
				// send buffer full - drop
			}
		}
	}
	if userID == 0 {
		for _, clients := range h.conns {
			send(clients)
		}
	} else {
		send(h.conns[userID])
	}
}

// NumConnections is for tests and the debug endpoint.
func (h *Hub) NumConnections() int {
	h.lock.Lock()
	defer h.lock.Unlock()
	total := 0
	for _, clients := range h.conns {
		total += len(clients)
	}
	return total
}
