// Package redis implements a contacts.Source on Redis.
//
// Contacts live under a namespace: a sorted set "<ns>:contacts" holds one
// member per record scored by rank, best first, and a hash
// "<ns>:contact:<member>" holds the record's fields. Scan pages through the
// sorted set and fetches each page of hashes in one pipeline.
package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/bastiangx/dialserve/internal/logger"
	"github.com/bastiangx/dialserve/pkg/contacts"
	"github.com/charmbracelet/log"
	"github.com/go-redis/redis/v8"
)

const (
	// DefaultNamespace prefixes every key when none is configured.
	DefaultNamespace = "dialserve"

	// defaultPageSize is how many members one ZRANGE fetches.
	defaultPageSize = 500

	fieldID        = "id"
	fieldLookupKey = "lookup_key"
	fieldName      = "name"
	fieldNumber    = "number"
	fieldStarred   = "starred"
	fieldTimes     = "times_contacted"
	fieldLast      = "last_contacted"
)

// Config holds Redis connection parameters.
type Config struct {
	// Addr is the Redis server address in the format "host:port".
	Addr string

	// Password is the Redis password (empty string for no password).
	Password string

	// DB is the Redis database number.
	DB int

	// Namespace prefixes all keys. Defaults to DefaultNamespace.
	Namespace string

	// PageSize is the number of records fetched per round trip.
	PageSize int
}

func (c *Config) setDefaults() {
	if c.Namespace == "" {
		c.Namespace = DefaultNamespace
	}
	if c.PageSize <= 0 {
		c.PageSize = defaultPageSize
	}
}

// Source reads ranked contacts from Redis. All methods are safe for
// concurrent use.
type Source struct {
	client   *redis.Client
	ns       string
	pageSize int64
	log      *log.Logger
}

// New creates a Redis source and verifies connectivity with a PING.
func New(config Config) (*Source, error) {
	config.setDefaults()
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: failed to connect to Redis at %s: %v", contacts.ErrSourceUnavailable, config.Addr, err)
	}

	return &Source{
		client:   client,
		ns:       config.Namespace,
		pageSize: int64(config.PageSize),
		log:      logger.New("source"),
	}, nil
}

func (s *Source) setKey() string {
	return s.ns + ":contacts"
}

func (s *Source) hashKey(member string) string {
	return s.ns + ":contact:" + member
}

// member is the sorted set member for a record. A contact with several
// numbers has one member per number.
func member(r contacts.Record) string {
	return strconv.FormatInt(r.ID, 10) + ":" + r.PhoneNumber
}

// Scan implements contacts.Source, walking the sorted set by ascending score.
func (s *Source) Scan(ctx context.Context, fn func(contacts.Record) error) error {
	for start := int64(0); ; start += s.pageSize {
		members, err := s.client.ZRange(ctx, s.setKey(), start, start+s.pageSize-1).Result()
		if err != nil {
			return fmt.Errorf("%w: failed to read contact ranking: %v", contacts.ErrSourceUnavailable, err)
		}
		if len(members) == 0 {
			return nil
		}

		records, err := s.fetch(ctx, members)
		if err != nil {
			return err
		}
		for _, r := range records {
			if err := fn(r); err != nil {
				return err
			}
		}
		if int64(len(members)) < s.pageSize {
			return nil
		}
	}
}

// fetch loads the hashes for members in one pipeline, skipping members whose
// hash has gone missing.
func (s *Source) fetch(ctx context.Context, members []string) ([]contacts.Record, error) {
	pipe := s.client.Pipeline()
	cmds := make([]*redis.StringStringMapCmd, len(members))
	for i, m := range members {
		cmds[i] = pipe.HGetAll(ctx, s.hashKey(m))
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("%w: failed to fetch contacts: %v", contacts.ErrSourceUnavailable, err)
	}

	records := make([]contacts.Record, 0, len(members))
	for i, cmd := range cmds {
		fields, err := cmd.Result()
		if err != nil || len(fields) == 0 {
			s.log.Warn("contact hash missing", "member", members[i])
			continue
		}
		r, err := recordFromHash(fields)
		if err != nil {
			s.log.Warn("skipping malformed contact", "member", members[i], "err", err)
			continue
		}
		records = append(records, r)
	}
	return records, nil
}

// Store replaces the namespace's contacts with records, ranked in the given
// order, in one transaction.
func (s *Source) Store(ctx context.Context, records []contacts.Record) error {
	old, err := s.client.ZRange(ctx, s.setKey(), 0, -1).Result()
	if err != nil {
		return fmt.Errorf("failed to read existing contacts: %w", err)
	}

	pipe := s.client.TxPipeline()
	for _, m := range old {
		pipe.Del(ctx, s.hashKey(m))
	}
	pipe.Del(ctx, s.setKey())
	for i, r := range records {
		m := member(r)
		pipe.HSet(ctx, s.hashKey(m), hashFromRecord(r))
		pipe.ZAdd(ctx, s.setKey(), &redis.Z{Score: float64(i), Member: m})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store contacts: %w", err)
	}
	s.log.Debug("stored contacts", "count", len(records), "namespace", s.ns)
	return nil
}

// Close implements contacts.Source.
func (s *Source) Close() error {
	return s.client.Close()
}

func hashFromRecord(r contacts.Record) map[string]interface{} {
	fields := map[string]interface{}{
		fieldID:        strconv.FormatInt(r.ID, 10),
		fieldLookupKey: r.LookupKey,
		fieldName:      r.DisplayName,
		fieldNumber:    r.PhoneNumber,
		fieldStarred:   strconv.FormatBool(r.Starred),
		fieldTimes:     strconv.Itoa(r.TimesContacted),
		fieldLast:      "0",
	}
	if !r.LastContacted.IsZero() {
		fields[fieldLast] = strconv.FormatInt(r.LastContacted.Unix(), 10)
	}
	return fields
}

func recordFromHash(fields map[string]string) (contacts.Record, error) {
	id, err := strconv.ParseInt(fields[fieldID], 10, 64)
	if err != nil {
		return contacts.Record{}, fmt.Errorf("invalid id %q: %w", fields[fieldID], err)
	}
	r := contacts.Record{
		ID:          id,
		LookupKey:   fields[fieldLookupKey],
		DisplayName: fields[fieldName],
		PhoneNumber: fields[fieldNumber],
	}
	if v, ok := fields[fieldStarred]; ok {
		r.Starred, _ = strconv.ParseBool(v)
	}
	if v, ok := fields[fieldTimes]; ok {
		r.TimesContacted, _ = strconv.Atoi(v)
	}
	if v, ok := fields[fieldLast]; ok {
		if secs, err := strconv.ParseInt(v, 10, 64); err == nil && secs > 0 {
			r.LastContacted = time.Unix(secs, 0).UTC()
		}
	}
	return r, nil
}
