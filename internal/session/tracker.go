// Package session tracks the panel message currently displayed in each chat.
package session

import "sync"

// Tracker maps a chat to the id of the last panel message sent to it. Entries
// live for the process lifetime only; losing them across restarts means one
// stray old message cannot be cleaned up, which is accepted.
type Tracker struct {
	mu       sync.Mutex
	messages map[int64]int
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{messages: make(map[int64]int)}
}

// Record remembers messageID as the current panel message for chatID,
// replacing any previous entry.
func (t *Tracker) Record(chatID int64, messageID int) {
	t.mu.Lock()
	t.messages[chatID] = messageID
	t.mu.Unlock()
}

// TakeAndClear removes and returns the tracked message id for chatID.
// The second return value reports whether an entry existed.
func (t *Tracker) TakeAndClear(chatID int64) (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	messageID, ok := t.messages[chatID]
	if ok {
		delete(t.messages, chatID)
	}

	return messageID, ok
}
