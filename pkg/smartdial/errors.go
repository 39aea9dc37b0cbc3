package smartdial

import "errors"

var (
	// ErrEmptyQuery is returned for a query with nothing to dial.
	ErrEmptyQuery = errors.New("empty dial query")

	// ErrQueryTooLong is returned for a query longer than the configured
	// maximum.
	ErrQueryTooLong = errors.New("dial query too long")

	// ErrSuperseded is delivered in place of results for a query that a
	// newer submission replaced before it finished.
	ErrSuperseded = errors.New("query superseded")
)
