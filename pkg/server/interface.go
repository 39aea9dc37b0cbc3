/*
Package server implements msgpack IPC for smart dial services.

The server reads msgpack requests from stdin and writes msgpack responses to
stdout. Logs go to stderr so they never interleave with the response stream.

# IPC

Every request carries an ID that is echoed back in its response. A request
with no action is a dial query:

	{"id": "q_001", "q": "2255"}

The server responds with at most max_entries contacts, best first:

	{"id": "q_001", "s": [{"n": "Alice Baker", "u": "contacts://lookup/a1/1",
	  "p": "555-111-2222", "r": 1, "nm": [{"s": 0, "e": 4}]}], "c": 1, "t": 210}

Queries run in the background. A query still running when a newer one
arrives is answered with code 409 instead of results, so a client typing
quickly only ever renders the latest answer.

Other actions:

	{"id": "r_001", "a": "recache", "f": true}
	{"id": "s_001", "a": "stats"}
	{"id": "h_001", "a": "health"}

recache asks for the contact index to be rebuilt, for example after the
contact source changed. It returns at once; queries keep using the previous
index until the new one is ready.

# Message Types

QueryResponse holds ranked entries with highlight ranges in rune offsets
into the name ("nm") and number ("pm"). StatusResponse answers recache,
stats and health. ErrorResponse carries an HTTP-like code: 400 for bad
requests, 409 for superseded queries and 500 for anything else.
*/
package server

import "github.com/bastiangx/dialserve/pkg/smartdial"

// Actions a Request may name. An empty action is a query.
const (
	ActionQuery   = "query"
	ActionRecache = "recache"
	ActionStats   = "stats"
	ActionHealth  = "health"
)

// Error codes
const (
	CodeBadRequest = 400
	CodeSuperseded = 409
	CodeInternal   = 500
)

// Request - minimal request
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"a,omitempty"`
	Query  string `msgpack:"q,omitempty"`
	Limit  int    `msgpack:"l,omitempty"`
	Force  bool   `msgpack:"f,omitempty"`
}

// WireEntry - one ranked contact
type WireEntry struct {
	Name        string                    `msgpack:"n"`
	URI         string                    `msgpack:"u"`
	Number      string                    `msgpack:"p"`
	Rank        uint16                    `msgpack:"r"`
	NameMatches []smartdial.MatchPosition `msgpack:"nm,omitempty"`
	NumberMatch *smartdial.MatchPosition  `msgpack:"pm,omitempty"`
}

// QueryResponse - query response, TimeTaken in microseconds
type QueryResponse struct {
	ID        string      `msgpack:"id"`
	Entries   []WireEntry `msgpack:"s"`
	Count     int         `msgpack:"c"`
	TimeTaken int64       `msgpack:"t"`
}

// StatusResponse answers every non-query action
type StatusResponse struct {
	ID     string         `msgpack:"id,omitempty"`
	Status string         `msgpack:"status"`
	Stats  map[string]int `msgpack:"stats,omitempty"`
}

// ErrorResponse holds basic error information
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
