package smartdial

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// resultKey scopes a cached result to the index generation it came from, so
// a rebuild invalidates every older entry without a purge.
type resultKey struct {
	generation uint64
	digits     string
}

// resultCache is a bounded LRU of query results.
type resultCache struct {
	lru    *lru.Cache[resultKey, []Entry]
	hits   atomic.Int64
	misses atomic.Int64
}

// newResultCache returns nil for a non-positive size, which disables caching.
func newResultCache(size int) (*resultCache, error) {
	if size <= 0 {
		return nil, nil
	}
	c, err := lru.New[resultKey, []Entry](size)
	if err != nil {
		return nil, err
	}
	return &resultCache{lru: c}, nil
}

func (rc *resultCache) get(key resultKey) ([]Entry, bool) {
	if rc == nil {
		return nil, false
	}
	entries, ok := rc.lru.Get(key)
	if ok {
		rc.hits.Add(1)
	} else {
		rc.misses.Add(1)
	}
	if !ok {
		return nil, false
	}
	return cloneEntries(entries), true
}

func (rc *resultCache) add(key resultKey, entries []Entry) {
	if rc == nil {
		return
	}
	rc.lru.Add(key, cloneEntries(entries))
}

// cloneEntries deep-copies entries so callers never share highlight slices
// or number matches with the cache.
func cloneEntries(entries []Entry) []Entry {
	if entries == nil {
		return nil
	}
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = e
		if e.NameMatches != nil {
			out[i].NameMatches = append([]MatchPosition(nil), e.NameMatches...)
		}
		if e.NumberMatch != nil {
			m := *e.NumberMatch
			out[i].NumberMatch = &m
		}
	}
	return out
}

func (rc *resultCache) stats() map[string]int {
	if rc == nil {
		return map[string]int{"resultCacheSize": 0}
	}
	return map[string]int{
		"resultCacheSize":   rc.lru.Len(),
		"resultCacheHits":   int(rc.hits.Load()),
		"resultCacheMisses": int(rc.misses.Load()),
	}
}
