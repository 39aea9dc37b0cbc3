package config

import (
	"fmt"
	"strings"

	"github.com/bastiangx/dialserve/pkg/contacts"
	"github.com/bastiangx/dialserve/pkg/contacts/elasticsearch"
	"github.com/bastiangx/dialserve/pkg/contacts/redis"
	"github.com/bastiangx/dialserve/pkg/smartdial"
)

// Ranker builds the contact ranker from the [ranking] section.
func (c *Config) Ranker() *contacts.Ranker {
	r := contacts.DefaultRanker()
	r.PreferStarred = c.Ranking.PreferStarred
	if len(c.Ranking.RecentWindowDays) > 0 {
		r.RecentWindows = contacts.WindowsFromDays(c.Ranking.RecentWindowDays)
	}
	return &r
}

// SourceParams returns the backend name and the config value its factory
// expects. path overrides the configured file path when set.
func (c *Config) SourceParams(path string) (string, interface{}, error) {
	kind := strings.ToLower(c.Source.Kind)
	switch kind {
	case "", "file":
		if path == "" {
			path = c.Source.Path
		}
		return "file", contacts.FileConfig{
			Path:   path,
			Format: c.Source.Format,
			Ranker: c.Ranker(),
		}, nil
	case "memory":
		return kind, contacts.MemoryConfig{}, nil
	case "redis":
		return kind, redis.Config{
			Addr:      c.Source.RedisAddr,
			Password:  c.Source.RedisPassword,
			DB:        c.Source.RedisDB,
			Namespace: c.Source.RedisNamespace,
		}, nil
	case "elasticsearch":
		return kind, elasticsearch.Config{
			URLs:     c.Source.ESURLs,
			Index:    c.Source.ESIndex,
			PageSize: c.Source.ESPageSize,
		}, nil
	}
	return "", nil, fmt.Errorf("%w: %q", contacts.ErrSourceNotFound, c.Source.Kind)
}

// CacheOptions maps the [index] section onto cache options.
func (c *Config) CacheOptions() smartdial.CacheOptions {
	opts := smartdial.DefaultCacheOptions()
	opts.Latinize = c.Index.Latinize
	opts.Trie.NANP = c.Index.NANP
	opts.Trie.Initials = c.Index.Initials
	if c.Index.MaxKeyDigits > 0 {
		opts.Trie.MaxKeyDigits = c.Index.MaxKeyDigits
	}
	return opts
}

// QueryLimit is max_query capped at the index key depth, so no accepted
// query is longer than the keys it is looked up against.
func (c *Config) QueryLimit() int {
	depth := c.Index.MaxKeyDigits
	if depth <= 0 {
		depth = smartdial.DefaultMaxKeyDigits
	}
	if c.Server.MaxQuery <= 0 || c.Server.MaxQuery > depth {
		return depth
	}
	return c.Server.MaxQuery
}

// SearchOptions maps the [server] and [index] sections onto search options.
func (c *Config) SearchOptions() smartdial.SearchOptions {
	return smartdial.SearchOptions{
		MaxEntries:      c.Server.MaxEntries,
		MaxQuery:        c.QueryLimit(),
		NANP:            c.Index.NANP,
		ResultCacheSize: c.Server.ResultCacheSize,
	}
}
