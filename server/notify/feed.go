// Package notify receives server-pushed events from the backend and fans them
// out to connected browsers, keeping a small per-user feed in memory.
// Delivery is best effort: no acknowledgement, no replay, no persistence.
package notify

import (
	"sync"

	"github.com/uright/uright/server/model"
)

// FeedCapacity caps the per-user feed. The oldest entry is dropped silently
// once the cap is reached; nothing marks the drop.
const FeedCapacity = 50

// Feed holds the newest-first notification list for every user.
// Lifetime is the process; a restart starts empty.
type Feed struct {
	lock   sync.Mutex
	byUser map[int64][]model.Notification
}

func NewFeed() *Feed {
	return &Feed{
		byUser: map[int64][]model.Notification{},
	}
}

// Add prepends the notification and truncates to FeedCapacity.
func (f *Feed) Add(userID int64, n model.Notification) {
	f.lock.Lock()
	defer f.lock.Unlock()
	list := append([]model.Notification{n}, f.byUser[userID]...)
	if len(list) > FeedCapacity {
		list = list[:FeedCapacity]
	}
	f.byUser[userID] = list
}

// List returns a copy of the user's feed, newest first.
func (f *Feed) List(userID int64) []model.Notification {
	f.lock.Lock()
	defer f.lock.Unlock()
	list := f.byUser[userID]
	out := make([]model.Notification, len(list))
	copy(out, list)
	return out
}

func (f *Feed) UnreadCount(userID int64) int {
	f.lock.Lock()
	defer f.lock.Unlock()
	n := 0
	for _, item := range f.byUser[userID] {
		if !item.IsRead {
			n++
		}
	}
	return n
}

// MarkRead flags one notification. Unknown ids are ignored.
func (f *Feed) MarkRead(userID int64, id string) {
	f.lock.Lock()
	defer f.lock.Unlock()
	list := f.byUser[userID]
	for i := range list {
		if list[i].ID == id {
			list[i].IsRead = true
		}
	}
}

func (f *Feed) Clear(userID int64) {
	f.lock.Lock()
	defer f.lock.Unlock()
	delete(f.byUser, userID)
}
