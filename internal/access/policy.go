// Package access decides which Telegram users may operate the panel.
package access

import "sync"

// Policy answers whether a caller identity is allowed to use the bot.
type Policy interface {
	Authorized(userID int64) bool
}

// StaticAllowList is a Policy over a fixed set of user IDs. The set can be
// swapped at runtime (config reload) without recreating dependents.
type StaticAllowList struct {
	mu      sync.RWMutex
	allowed map[int64]struct{}
}

// NewStaticAllowList builds a policy allowing exactly the provided IDs.
func NewStaticAllowList(userIDs []int64) *StaticAllowList {
	p := &StaticAllowList{}
	p.Replace(userIDs)
	return p
}

// Authorized reports whether userID is in the allow-list.
func (p *StaticAllowList) Authorized(userID int64) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	_, ok := p.allowed[userID]
	return ok
}

// Replace swaps the allow-list contents atomically.
func (p *StaticAllowList) Replace(userIDs []int64) {
	allowed := make(map[int64]struct{}, len(userIDs))
	for _, id := range userIDs {
		allowed[id] = struct{}{}
	}

	p.mu.Lock()
	p.allowed = allowed
	p.mu.Unlock()
}
