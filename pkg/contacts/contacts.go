// Package contacts is the boundary to the contact data the dialer indexes.
//
// A Source yields Records in relevance order: the first record scanned is the
// one the user is most likely to dial. The smartdial cache turns that order
// into affinity, so a Source decides ranking and the index never does.
//
// Backends register themselves by name, the way database drivers do:
//
//	import _ "github.com/bastiangx/dialserve/pkg/contacts/redis"
//
//	src, err := contacts.Open("redis", redis.Config{Addr: "localhost:6379"})
package contacts

import (
	"context"
	"time"
)

// Record is one (contact, phone number) row. A contact with several numbers
// appears once per number, sharing ID and LookupKey.
type Record struct {
	// ID identifies the contact in its source. It may go stale when the
	// source re-syncs; LookupKey does not.
	ID          int64  `toml:"id" msgpack:"id" json:"id"`
	LookupKey   string `toml:"lookup_key" msgpack:"lookup_key" json:"lookup_key"`
	DisplayName string `toml:"name" msgpack:"name" json:"name"`
	PhoneNumber string `toml:"number" msgpack:"number" json:"number"`

	Starred        bool      `toml:"starred" msgpack:"starred" json:"starred"`
	TimesContacted int       `toml:"times_contacted" msgpack:"times_contacted" json:"times_contacted"`
	LastContacted  time.Time `toml:"last_contacted" msgpack:"last_contacted" json:"last_contacted"`
}

// Source provides contact records in relevance order.
// Implementations must be safe for concurrent use.
type Source interface {
	// Scan calls fn for every record, best ranked first. It stops at the
	// first error from fn and returns it. A source that cannot be reached
	// returns an error wrapping ErrSourceUnavailable.
	Scan(ctx context.Context, fn func(Record) error) error

	// Close releases the source's resources. Safe to call more than once.
	Close() error
}

// Collect scans src into a slice.
func Collect(ctx context.Context, src Source) ([]Record, error) {
	var out []Record
	err := src.Scan(ctx, func(r Record) error {
		out = append(out, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
