package order

import "sync"

// DraftRegistry holds one draft per authenticated user. The lock only
// guards the map; the drafts themselves carry their own mutex, so parallel
// requests on one token stay safe even though their ordering is undefined.
type DraftRegistry struct {
	mu     sync.Mutex
	drafts map[string]*Draft
}

func NewDraftRegistry() *DraftRegistry {
	return &DraftRegistry{drafts: make(map[string]*Draft)}
}

// Get returns the user's draft, creating a fresh one on first use.
func (r *DraftRegistry) Get(userID string) *Draft {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.drafts[userID]
	if !ok {
		d = NewDraft()
		r.drafts[userID] = d
	}
	return d
}

// Drop discards the user's draft, e.g. on sign-out.
func (r *DraftRegistry) Drop(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.drafts, userID)
}
