package notify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/uright/uright/server/model"
)

func makeNotification(i int) model.Notification {
	return model.Notification{
		ID:      fmt.Sprintf("n-%v", i),
		Title:   fmt.Sprintf("Title %v", i),
		Message: "Mensagem",
	}
}

func TestFeedNewestFirst(t *testing.T) {
	f := NewFeed()
	for i := 0; i < 3; i++ {
		f.Add(1, makeNotification(i))
	}
	list := f.List(1)
	require.Len(t, list, 3)
	require.Equal(t, "n-2", list[0].ID)
	require.Equal(t, "n-0", list[2].ID)

	// Other users see nothing
	require.Empty(t, f.List(2))
}

func TestFeedCapDropsOldest(t *testing.T) {
	f := NewFeed()
	for i := 0; i < FeedCapacity+10; i++ {
		f.Add(1, makeNotification(i))
	}
	list := f.List(1)
	require.Len(t, list, FeedCapacity)
	// Newest survives, the 10 oldest are gone
	require.Equal(t, fmt.Sprintf("n-%v", FeedCapacity+9), list[0].ID)
	require.Equal(t, "n-10", list[len(list)-1].ID)
}

func TestFeedUnreadAndMarkRead(t *testing.T) {
	f := NewFeed()
	for i := 0; i < 5; i++ {
		f.Add(1, makeNotification(i))
	}
	require.Equal(t, 5, f.UnreadCount(1))

	f.MarkRead(1, "n-2")
	require.Equal(t, 4, f.UnreadCount(1))

	// Marking twice, or marking an unknown id, changes nothing
	f.MarkRead(1, "n-2")
	f.MarkRead(1, "does-not-exist")
	require.Equal(t, 4, f.UnreadCount(1))

	// List copies must not alias internal state
	list := f.List(1)
	list[0].IsRead = true
	require.Equal(t, 4, f.UnreadCount(1))
}

func TestFeedClear(t *testing.T) {
	f := NewFeed()
	f.Add(1, makeNotification(0))
	f.Add(2, makeNotification(1))
	f.Clear(1)
	require.Empty(t, f.List(1))
	require.Len(t, f.List(2), 1)
}
