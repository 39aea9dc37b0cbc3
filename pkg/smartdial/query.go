package smartdial

import (
	"context"
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/bastiangx/dialserve/internal/utils"
	"github.com/bastiangx/dialserve/pkg/dialpad"
	"github.com/charmbracelet/log"
)

const (
	// DefaultMaxEntries is how many results a query returns, one per
	// presentation slot.
	DefaultMaxEntries = 3
	// DefaultMaxQuery bounds query length in runes.
	DefaultMaxQuery = 64
	// DefaultResultCacheSize is the number of query results kept.
	DefaultResultCacheSize = 256
)

// SearchOptions configures a Searcher.
type SearchOptions struct {
	MaxEntries int
	MaxQuery   int
	// NANP tolerates a missing trunk prefix or area code when matching
	// numbers.
	NANP bool
	// ResultCacheSize of 0 disables result caching.
	ResultCacheSize int
}

// DefaultSearchOptions returns the options used when none are configured.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		MaxEntries:      DefaultMaxEntries,
		MaxQuery:        DefaultMaxQuery,
		NANP:            true,
		ResultCacheSize: DefaultResultCacheSize,
	}
}

// Searcher runs dial queries against a Cache. It is safe for concurrent use.
type Searcher struct {
	cache   *Cache
	opts    SearchOptions
	results *resultCache
}

// NewSearcher creates a searcher reading from cache.
func NewSearcher(cache *Cache, opts SearchOptions) (*Searcher, error) {
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = DefaultMaxEntries
	}
	if opts.MaxQuery <= 0 {
		opts.MaxQuery = DefaultMaxQuery
	}
	results, err := newResultCache(opts.ResultCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create result cache: %w", err)
	}
	return &Searcher{cache: cache, opts: opts, results: results}, nil
}

// Search returns up to MaxEntries entries for query, best first.
//
// The query is reduced to keypad digits, every contact under that prefix is
// taken from the index, ordered by affinity and reduced to one number per
// contact. Each survivor is matched against its name and number for
// highlighting. A hit whose name does not match is kept with no name
// highlight, since it was found by number or by a latinized spelling.
//
// A query with nothing dialable yields an empty list. Identical queries
// against the same index generation yield identical results.
func (s *Searcher) Search(ctx context.Context, query string) ([]Entry, error) {
	if utf8.RuneCountInString(query) > s.opts.MaxQuery {
		return nil, fmt.Errorf("%w: %d runes, max %d", ErrQueryTooLong, utf8.RuneCountInString(query), s.opts.MaxQuery)
	}
	digits := dialpad.DialDigits(query)
	if digits == "" {
		return []Entry{}, nil
	}

	trie, err := s.cache.GetContacts(ctx)
	if err != nil {
		return nil, err
	}

	key := resultKey{generation: trie.Generation(), digits: digits}
	if entries, ok := s.results.get(key); ok {
		return entries, nil
	}

	entries := s.rank(trie.GetAllWithPrefix(digits), digits)
	// an unpublished trie has generation 0 and may still change
	if trie.Generation() > 0 {
		s.results.add(key, entries)
	}
	log.Debugf("Query %q (%s): %d entries", query, digits, len(entries))
	return entries, nil
}

// rank orders candidates by affinity, keeps the best number per contact and
// turns the first MaxEntries into entries.
func (s *Searcher) rank(candidates []*ContactNumber, digits string) []Entry {
	if len(candidates) == 0 {
		return []Entry{}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Affinity < candidates[j].Affinity
	})

	matcher := NewNameMatcher(digits)
	seen := utils.NewSeenFilter[contactKey](len(candidates))
	entries := make([]Entry, 0, s.opts.MaxEntries)
	for _, c := range candidates {
		if !seen.ShouldInclude(c.key()) {
			continue
		}
		entries = append(entries, s.entryFor(c, matcher))
		if len(entries) == s.opts.MaxEntries {
			break
		}
	}
	return entries
}

func (s *Searcher) entryFor(c *ContactNumber, matcher *NameMatcher) Entry {
	e := Entry{
		DisplayName: c.DisplayName,
		ContactURI:  ContactURI(c.ID, c.LookupKey),
		PhoneNumber: c.PhoneNumber,
	}
	if matcher.Matches(c.DisplayName) {
		e.NameMatches = matcher.MatchPositions()
	}
	if pos, ok := MatchesNumber(c.PhoneNumber, matcher.Query(), s.opts.NANP); ok {
		e.NumberMatch = &pos
	}
	return e
}

// Recache implements ISearcher.
func (s *Searcher) Recache(ctx context.Context, force bool) {
	s.cache.CacheIfNeeded(ctx, force)
}

// Stats implements ISearcher.
func (s *Searcher) Stats() map[string]int {
	stats := s.cache.Stats()
	for k, v := range s.results.stats() {
		stats[k] = v
	}
	stats["maxEntries"] = s.opts.MaxEntries
	return stats
}
