package notify

import (
	"context"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cyclopcam/logs"
	"github.com/gorilla/websocket"

	"github.com/uright/uright/server/model"
)

// State of the upstream push connection. Unlike the old silent-failure
// behaviour, the state is explicit and queryable, so the UI can show when the
// channel has given up.
type State int32

const (
	StateConnecting State = iota
	StateConnected
	StateRetrying
	StateDisconnected // retries exhausted, channel gave up
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateRetrying:
		return "retrying"
	case StateDisconnected:
		return "disconnected"
	}
	return "unknown"
}

// Reconnect policy: bounded attempts, linear backoff with a cap.
const (
	maxConnectAttempts = 5
	baseRetryDelay     = time.Second
	maxRetryDelay      = 5 * time.Second
)

// The two event topics we subscribe to.
const (
	TopicAlert   = "alert"
	TopicMessage = "message"
)

// envelope is a single frame from the backend push channel.
// UserID 0 means "every user of this tenant".
type envelope struct {
	Topic        string             `json:"topic"`
	UserID       int64              `json:"userId"`
	Notification model.Notification `json:"notification"`
}

// Channel maintains the single websocket connection from this process to the
// backend push endpoint, and routes received events into the feed and the hub.
type Channel struct {
	log   logs.Log
	url   string
	token string
	feed  *Feed
	hub   *Hub
	state atomic.Int32
}

func NewChannel(log logs.Log, backendURL, token string, feed *Feed, hub *Hub) *Channel {
	return &Channel{
		log:   log,
		url:   pushURL(backendURL),
		token: token,
		feed:  feed,
		hub:   hub,
	}
}

// pushURL turns the backend base URL into its websocket push endpoint.
func pushURL(base string) string {
	base = strings.TrimSuffix(base, "/")
	if after, ok := strings.CutPrefix(base, "https://"); ok {
		base = "wss://" + after
	} else if after, ok := strings.CutPrefix(base, "http://"); ok {
		base = "ws://" + after
	}
	return base + "/ws"
}

func (c *Channel) State() State {
	return State(c.state.Load())
}

func (c *Channel) setState(s State) {
	c.state.Store(int32(s))
}

// Run connects and keeps reading until the retry budget is spent or ctx is
// cancelled. Intended to run in its own goroutine.
func (c *Channel) Run(ctx context.Context) {
	attempt := 0
	for {
		if ctx.Err() != nil {
			return
		}
		if attempt == 0 {
			c.setState(StateConnecting)
		} else {
			c.setState(StateRetrying)
			delay := time.Duration(attempt) * baseRetryDelay
			if delay > maxRetryDelay {
				delay = maxRetryDelay
			}
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return
			}
		}

		conn, err := c.dial(ctx)
		if err != nil {
			attempt++
			if attempt >= maxConnectAttempts {
				c.setState(StateDisconnected)
				c.log.Warnf("Push channel gave up after %v attempts: %v", attempt, err)
				return
			}
			c.log.Warnf("Push channel connect failed (attempt %v): %v", attempt, err)
			continue
		}

		c.setState(StateConnected)
		c.log.Infof("Push channel connected to %v", c.url)
		attempt = 0
		c.readLoop(ctx, conn)
		conn.Close()
		if ctx.Err() != nil {
			return
		}
		// Connection dropped after being healthy; start a fresh retry cycle.
		attempt = 1
	}
}

func (c *Channel) dial(ctx context.Context) (*websocket.Conn, error) {
	header := http.Header{}
	if c.token != "" {
		header.Set("Authorization", "Bearer "+c.token)
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, header)
	return conn, err
}

func (c *Channel) readLoop(ctx context.Context, conn *websocket.Conn) {
	// The watcher must not outlive this connection, or every reconnect cycle
	// would strand one goroutine until process exit.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()
	for {
		env := envelope{}
		if err := conn.ReadJSON(&env); err != nil {
			if ctx.Err() == nil {
				c.log.Warnf("Push channel read error: %v", err)
			}
			return
		}
		if env.Topic != TopicAlert && env.Topic != TopicMessage {
			continue
		}
		// Broadcast frames (userId 0) are transient toasts only; targeted
		// frames also land in the user's feed.
		if env.UserID != 0 {
			c.feed.Add(env.UserID, env.Notification)
		}
		c.hub.Publish(env.UserID, env.Notification)
	}
}
