package smartdial

import (
	"context"
	"sync"
	"sync/atomic"
)

// Session runs queries in the background for one typing user. Each Submit
// supersedes every earlier one: a query still running when a newer one is
// submitted finishes, but its results are discarded and its callback gets
// ErrSuperseded instead. Queries are never interrupted mid-search.
type Session struct {
	searcher ISearcher
	seq      atomic.Uint64
	// mu serializes delivery so the current check and the callback are
	// atomic with respect to other deliveries.
	mu sync.Mutex
	wg sync.WaitGroup
}

// NewSession creates a session over searcher.
func NewSession(searcher ISearcher) *Session {
	return &Session{searcher: searcher}
}

// Submit starts query and returns its sequence number. deliver is called
// exactly once from another goroutine, with the results if the query is
// still the latest when it finishes, or with ErrSuperseded otherwise.
func (s *Session) Submit(ctx context.Context, query string, deliver func([]Entry, error)) uint64 {
	id := s.seq.Add(1)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		entries, err := s.searcher.Search(ctx, query)

		s.mu.Lock()
		defer s.mu.Unlock()
		if !s.IsCurrent(id) {
			deliver(nil, ErrSuperseded)
			return
		}
		deliver(entries, err)
	}()
	return id
}

// IsCurrent reports whether id is the latest submission.
func (s *Session) IsCurrent(id uint64) bool {
	return s.seq.Load() == id
}

// Wait blocks until every submitted query has delivered.
func (s *Session) Wait() {
	s.wg.Wait()
}
