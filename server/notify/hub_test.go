package notify

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cyclopcam/logs"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/uright/uright/server/model"
)

// connectClient dials a websocket into the hub for userID, and returns the
// browser side of the connection.
func connectClient(t *testing.T, hub *Hub, userID int64) *websocket.Conn {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Serve(userID, conn)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForConnections(t *testing.T, hub *Hub, n int) {
	deadline := time.Now().Add(2 * time.Second)
	for hub.NumConnections() != n {
		require.True(t, time.Now().Before(deadline), "expected %v connections, have %v", n, hub.NumConnections())
		time.Sleep(time.Millisecond)
	}
}

func readNotification(t *testing.T, conn *websocket.Conn) model.Notification {
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	n := model.Notification{}
	require.NoError(t, conn.ReadJSON(&n))
	return n
}

func TestHubTargetedDelivery(t *testing.T) {
	hub := NewHub(logs.NewTestingLog(t))
	alice := connectClient(t, hub, 1)
	bob := connectClient(t, hub, 2)
	waitForConnections(t, hub, 2)

	hub.Publish(1, model.Notification{ID: "a1", Title: "Para a Alice"})
	got := readNotification(t, alice)
	require.Equal(t, "a1", got.ID)

	// Bob must not receive Alice's notification
	bob.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	n := model.Notification{}
	require.Error(t, bob.ReadJSON(&n))
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub(logs.NewTestingLog(t))
	alice := connectClient(t, hub, 1)
	bob := connectClient(t, hub, 2)
	waitForConnections(t, hub, 2)

	hub.Publish(0, model.Notification{ID: "b1", Title: "Para todos"})
	require.Equal(t, "b1", readNotification(t, alice).ID)
	require.Equal(t, "b1", readNotification(t, bob).ID)
}

func TestHubCleanupOnDisconnect(t *testing.T) {
	hub := NewHub(logs.NewTestingLog(t))
	conn := connectClient(t, hub, 1)
	waitForConnections(t, hub, 1)

	conn.Close()
	waitForConnections(t, hub, 0)

	// Publishing into the void must not panic or block
	hub.Publish(1, model.Notification{ID: "x"})
}

func TestHubDropsWhenClientStalls(t *testing.T) {
	hub := NewHub(logs.NewTestingLog(t))
	connectClient(t, hub, 1)
	waitForConnections(t, hub, 1)

	// The client never reads. Overfill its send buffer; Publish must never block.
	done := make(chan bool)
	go func() {
		for i := 0; i < clientSendBufferSize*10; i++ {
			hub.Publish(1, makeNotification(i))
		}
		done <- true
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Publish blocked on a stalled client")
	}
}
