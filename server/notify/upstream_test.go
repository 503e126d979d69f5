package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cyclopcam/logs"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/uright/uright/server/model"
)

func TestPushURL(t *testing.T) {
	require.Equal(t, "ws://api.example.com/ws", pushURL("http://api.example.com"))
	require.Equal(t, "wss://api.example.com/ws", pushURL("https://api.example.com/"))
	require.Equal(t, "ws://localhost:3000/ws", pushURL("http://localhost:3000"))
}

func waitForState(t *testing.T, c *Channel, s State) {
	deadline := time.Now().Add(5 * time.Second)
	for c.State() != s {
		require.True(t, time.Now().Before(deadline), "expected state %v, have %v", s, c.State())
		time.Sleep(time.Millisecond)
	}
}

func TestChannelRoutesFrames(t *testing.T) {
	upgrader := websocket.Upgrader{}
	frames := []envelope{
		{Topic: TopicAlert, UserID: 7, Notification: model.Notification{ID: "t1", Title: "Pagamento em atraso"}},
		{Topic: "presence", UserID: 7, Notification: model.Notification{ID: "skip"}},
		{Topic: TopicMessage, UserID: 0, Notification: model.Notification{ID: "t2", Title: "Para todos"}},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ws", r.URL.Path)
		require.Equal(t, "Bearer push-token", r.Header.Get("Authorization"))
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		for _, f := range frames {
			require.NoError(t, conn.WriteJSON(&f))
		}
		// Keep the connection open until the client goes away
		conn.ReadMessage()
	}))
	defer srv.Close()

	feed := NewFeed()
	hub := NewHub(logs.NewTestingLog(t))
	c := NewChannel(logs.NewTestingLog(t), srv.URL, "push-token", feed, hub)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)

	waitForState(t, c, StateConnected)

	deadline := time.Now().Add(2 * time.Second)
	for len(feed.List(7)) == 0 {
		require.True(t, time.Now().Before(deadline), "targeted frame never reached the feed")
		time.Sleep(time.Millisecond)
	}
	list := feed.List(7)
	require.Len(t, list, 1)
	require.Equal(t, "t1", list[0].ID)

	// The unknown topic and the broadcast frame must not land in any feed
	require.Empty(t, feed.List(0))
}

func TestChannelGivesUpAfterRetries(t *testing.T) {
	// Point the channel at a server that refuses websocket upgrades
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no websocket here", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewChannel(logs.NewTestingLog(t), srv.URL, "", NewFeed(), NewHub(logs.NewTestingLog(t)))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)

	deadline := time.Now().Add(30 * time.Second)
	for c.State() != StateDisconnected {
		require.True(t, time.Now().Before(deadline), "channel never gave up, state %v", c.State())
		time.Sleep(10 * time.Millisecond)
	}
}

func TestChannelStopsOnContextCancel(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		conn.ReadMessage()
	}))
	defer srv.Close()

	c := NewChannel(logs.NewTestingLog(t), srv.URL, "", NewFeed(), NewHub(logs.NewTestingLog(t)))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan bool)
	go func() {
		c.Run(ctx)
		done <- true
	}()

	waitForState(t, c, StateConnected)
	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}

// Every reconnect cycle spawns a watcher for its connection; the watchers
// must die with their connection, not pile up behind ctx.Done().
func TestChannelReconnectDoesNotAccumulateGoroutines(t *testing.T) {
	upgrader := websocket.Upgrader{}
	dials := atomic.Int32{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		dials.Add(1)
		conn.Close()
	}))
	defer srv.Close()

	c := NewChannel(logs.NewTestingLog(t), srv.URL, "", NewFeed(), NewHub(logs.NewTestingLog(t)))
	before := runtime.NumGoroutine()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)

	deadline := time.Now().Add(30 * time.Second)
	for dials.Load() < 5 {
		require.True(t, time.Now().Before(deadline), "only %v dials", dials.Load())
		time.Sleep(10 * time.Millisecond)
	}
	// Give the dead connections' watchers a moment to wind down
	time.Sleep(100 * time.Millisecond)
	require.LessOrEqual(t, runtime.NumGoroutine(), before+4,
		"reconnect cycles are leaking goroutines")
}

func TestStateString(t *testing.T) {
	require.Equal(t, "connecting", StateConnecting.String())
	require.Equal(t, "connected", StateConnected.String())
	require.Equal(t, "retrying", StateRetrying.String())
	require.Equal(t, "disconnected", StateDisconnected.String())
}
