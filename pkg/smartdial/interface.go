// Package smartdial is the core, matching dialpad input against contact names
// and numbers and ranking the results.
//
// A Cache builds a digit Trie from a contacts.Source and publishes it as an
// immutable snapshot. A Searcher runs queries against the current snapshot,
// checks every hit with the name and number matchers and returns at most a
// handful of Entries, best first. A Session sits in front of a Searcher for
// callers that type one digit at a time and only care about the latest
// query.
package smartdial

import "context"

// ISearcher defines the interface the server and CLI query through
type ISearcher interface {
	// Search returns the ranked entries for a dial query.
	Search(ctx context.Context, query string) ([]Entry, error)

	// Recache starts a rebuild of the index. With force unset it only
	// builds when no completed index exists.
	Recache(ctx context.Context, force bool)

	// Stats returns statistics about the index and query caching
	Stats() map[string]int
}
