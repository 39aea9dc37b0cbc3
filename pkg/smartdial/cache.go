package smartdial

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bastiangx/dialserve/internal/logger"
	"github.com/bastiangx/dialserve/pkg/contacts"
	"github.com/bastiangx/dialserve/pkg/dialpad"
	"github.com/charmbracelet/log"
)

// State is the generation state of a Cache.
type State int32

const (
	// NeedsRecache means no usable index exists, or the last build failed.
	NeedsRecache State = iota
	// InProgress means a build is running.
	InProgress
	// Completed means the current snapshot reflects the last successful build.
	Completed
)

func (s State) String() string {
	switch s {
	case NeedsRecache:
		return "needs_recache"
	case InProgress:
		return "in_progress"
	case Completed:
		return "completed"
	}
	return fmt.Sprintf("state(%d)", int32(s))
}

// CacheOptions configures how a Cache builds its index.
type CacheOptions struct {
	Trie TrieOptions
	// Latinize also indexes a Latin transliteration of names written in
	// scripts with no keypad letters.
	Latinize bool
	// Logger defaults to a "cache" component logger.
	Logger *log.Logger
}

// DefaultCacheOptions returns the options used when none are configured.
func DefaultCacheOptions() CacheOptions {
	return CacheOptions{Trie: DefaultTrieOptions(), Latinize: true}
}

// build is one in-flight index build. done is closed once trie is set.
type build struct {
	done chan struct{}
	trie *Trie
	err  error
}

// Cache owns the contact index. At most one build runs at a time; callers
// that need the index while a build runs wait for that build instead of
// starting their own. A published Trie is never modified, so a reader holding
// an older snapshot is unaffected by later builds.
type Cache struct {
	source contacts.Source
	opts   CacheOptions
	log    *log.Logger

	mu       sync.Mutex
	state    State
	inflight *build
	// again is set when a forced recache arrives during a build; the
	// content it announces may have been missed by the running scan.
	again bool

	current    atomic.Pointer[Trie]
	generation atomic.Uint64
	builds     atomic.Int64
	failures   atomic.Int64
	lastBuild  atomic.Int64
}

// NewCache creates a cache over source. Nothing is built until the first
// GetContacts or CacheIfNeeded call.
func NewCache(source contacts.Source, opts CacheOptions) *Cache {
	if opts.Logger == nil {
		opts.Logger = logger.New("cache")
	}
	c := &Cache{
		source: source,
		opts:   opts,
		log:    opts.Logger,
		state:  NeedsRecache,
	}
	c.current.Store(NewTrie(opts.Trie))
	return c
}

// State returns the current generation state.
func (c *Cache) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Generation returns the number of successful builds so far.
func (c *Cache) Generation() uint64 {
	return c.generation.Load()
}

// Snapshot returns the latest published index without waiting. Before the
// first successful build it is empty.
func (c *Cache) Snapshot() *Trie {
	return c.current.Load()
}

// GetContacts returns the index, blocking while one is being built. With a
// completed index and no build running it returns immediately. With a build
// running it waits for that build. Otherwise it builds on the calling
// goroutine. A failed build yields the previous snapshot, or an empty index
// if there never was one.
//
// If ctx ends while waiting on another caller's build, the latest snapshot
// is returned along with ctx's error.
func (c *Cache) GetContacts(ctx context.Context) (*Trie, error) {
	c.mu.Lock()
	if c.state == Completed && c.inflight == nil {
		c.mu.Unlock()
		return c.current.Load(), nil
	}
	if b := c.inflight; b != nil {
		c.mu.Unlock()
		select {
		case <-b.done:
			return b.trie, nil
		case <-ctx.Done():
			return c.current.Load(), ctx.Err()
		}
	}
	b := c.startLocked()
	c.mu.Unlock()

	// other callers may wait on this build, so it must outlive ctx
	c.run(context.WithoutCancel(ctx), b)
	return b.trie, nil
}

// CacheIfNeeded starts a build in the background unless one is running.
// With force unset it also does nothing once a completed index exists.
// A forced call during a running build schedules one more build after it.
func (c *Cache) CacheIfNeeded(ctx context.Context, force bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inflight != nil {
		if force {
			c.again = true
		}
		return
	}
	if !force && c.state == Completed {
		return
	}
	b := c.startLocked()
	go c.run(ctx, b)
}

// Wait blocks until no build is running or ctx ends.
func (c *Cache) Wait(ctx context.Context) error {
	for {
		c.mu.Lock()
		b := c.inflight
		c.mu.Unlock()
		if b == nil {
			return nil
		}
		select {
		case <-b.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Stats returns statistics about the index
func (c *Cache) Stats() map[string]int {
	return map[string]int{
		"contacts":        c.current.Load().Size(),
		"state":           int(c.State()),
		"generation":      int(c.generation.Load()),
		"builds":          int(c.builds.Load()),
		"buildFailures":   int(c.failures.Load()),
		"lastBuildMillis": int(time.Duration(c.lastBuild.Load()).Milliseconds()),
	}
}

// startLocked registers a new in-flight build. c.mu must be held.
func (c *Cache) startLocked() *build {
	b := &build{done: make(chan struct{})}
	c.inflight = b
	c.state = InProgress
	c.again = false
	return b
}

func (c *Cache) run(ctx context.Context, b *build) {
	start := time.Now()
	trie, err := c.buildTrie(ctx)
	elapsed := time.Since(start)
	c.builds.Add(1)
	c.lastBuild.Store(int64(elapsed))

	c.mu.Lock()
	if err != nil {
		c.failures.Add(1)
		c.state = NeedsRecache
		b.err = err
		b.trie = c.current.Load()
		c.log.Warn("contact index build failed, keeping previous index",
			"err", err, "generation", b.trie.Generation())
	} else {
		trie.generation = c.generation.Add(1)
		c.current.Store(trie)
		c.state = Completed
		b.trie = trie
		c.log.Debug("contact index built",
			"entries", trie.Size(), "generation", trie.generation, "took", elapsed)
	}
	c.inflight = nil
	again := c.again
	if again {
		next := c.startLocked()
		go c.run(ctx, next)
	}
	c.mu.Unlock()
	close(b.done)
}

// buildTrie scans the source once. Each record is put under its canonical
// name first and then under each latinized variant, every put taking the
// next affinity so source order decides ranking.
func (c *Cache) buildTrie(ctx context.Context) (*Trie, error) {
	if c.source == nil {
		return nil, fmt.Errorf("%w: no source configured", contacts.ErrSourceUnavailable)
	}

	trie := NewTrie(c.opts.Trie)
	affinity := 0
	err := c.source.Scan(ctx, func(rec contacts.Record) error {
		names := []string{rec.DisplayName}
		if c.opts.Latinize {
			names = dialpad.Latinize(rec.DisplayName)
		}
		for i, name := range names {
			cn := &ContactNumber{
				ID:          rec.ID,
				DisplayName: rec.DisplayName,
				PhoneNumber: rec.PhoneNumber,
				LookupKey:   rec.LookupKey,
				Affinity:    affinity,
			}
			if i > 0 {
				cn.LatinizedName = name
			}
			trie.Put(cn)
			affinity++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan contacts: %w", err)
	}
	return trie, nil
}
