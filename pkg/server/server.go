package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/dialserve/internal/logger"
	"github.com/bastiangx/dialserve/internal/utils"
	"github.com/bastiangx/dialserve/pkg/smartdial"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Options bounds what the server accepts.
type Options struct {
	MinQuery int
	MaxQuery int
}

// Server handles the IPC for smart dial queries
type Server struct {
	searcher smartdial.ISearcher
	session  *smartdial.Session
	opts     Options
	log      *log.Logger

	dec *msgpack.Decoder
	// mu guards enc; query results are written from session goroutines
	mu  sync.Mutex
	enc *msgpack.Encoder
}

// NewServer creates a server using stdin/stdout for IPC
func NewServer(searcher smartdial.ISearcher, opts Options) *Server {
	return NewServerIO(searcher, opts, os.Stdin, os.Stdout)
}

// NewServerIO creates a server reading requests from r and writing
// responses to w.
func NewServerIO(searcher smartdial.ISearcher, opts Options, r io.Reader, w io.Writer) *Server {
	if opts.MinQuery < 1 {
		opts.MinQuery = 1
	}
	if opts.MaxQuery < 1 {
		opts.MaxQuery = smartdial.DefaultMaxQuery
	}
	return &Server{
		searcher: searcher,
		session:  smartdial.NewSession(searcher),
		opts:     opts,
		log:      logger.New("server"),
		dec:      msgpack.NewDecoder(r),
		enc:      msgpack.NewEncoder(w),
	}
}

// Start serves requests until the input ends. Queries still running at that
// point are answered before Start returns.
func (s *Server) Start(ctx context.Context) error {
	s.log.Debug("Starting Server.")
	s.send(StatusResponse{Status: "ready"})
	defer s.session.Wait()

	for {
		// decode one whole value first so a malformed request cannot
		// desync the stream
		var raw msgpack.RawMessage
		if err := s.dec.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				s.log.Debug("Input closed, shutting down")
				return nil
			}
			s.log.Errorf("Reading from stdin: %v", err)
			return fmt.Errorf("failed to read request: %w", err)
		}

		var req Request
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			s.log.Errorf("Unmarshaling request: %v", err)
			s.sendError("", "Invalid msgpack request", CodeBadRequest)
			continue
		}
		s.handleRequest(ctx, req)
	}
}

func (s *Server) handleRequest(ctx context.Context, req Request) {
	switch strings.ToLower(req.Action) {
	case "", ActionQuery:
		s.handleQuery(ctx, req)
	case ActionRecache:
		s.searcher.Recache(ctx, req.Force)
		s.send(StatusResponse{ID: req.ID, Status: "ok"})
	case ActionStats:
		s.send(StatusResponse{ID: req.ID, Status: "ok", Stats: s.searcher.Stats()})
	case ActionHealth:
		s.send(StatusResponse{ID: req.ID, Status: "ok"})
	default:
		s.sendError(req.ID, fmt.Sprintf("Unknown action: %s", req.Action), CodeBadRequest)
	}
}

func (s *Server) handleQuery(ctx context.Context, req Request) {
	if err := s.validate(req.Query); err != nil {
		s.log.Debug("Rejected query", "id", req.ID, "err", err)
		s.sendError(req.ID, err.Error(), CodeBadRequest)
		return
	}

	start := time.Now()
	s.session.Submit(ctx, req.Query, func(entries []smartdial.Entry, err error) {
		switch {
		case errors.Is(err, smartdial.ErrSuperseded):
			s.sendError(req.ID, err.Error(), CodeSuperseded)
		case errors.Is(err, smartdial.ErrQueryTooLong):
			s.sendError(req.ID, err.Error(), CodeBadRequest)
		case err != nil:
			s.log.Errorf("Query %s failed: %v", req.ID, err)
			s.sendError(req.ID, "Internal server error", CodeInternal)
		default:
			wire := toWire(entries, req.Limit)
			s.send(QueryResponse{
				ID:        req.ID,
				Entries:   wire,
				Count:     len(wire),
				TimeTaken: time.Since(start).Microseconds(),
			})
		}
	})
}

func (s *Server) validate(query string) error {
	if strings.TrimSpace(query) == "" {
		return smartdial.ErrEmptyQuery
	}
	if !utils.IsValidQuery(query) {
		return fmt.Errorf("query %q has characters no keypad can dial", query)
	}
	if n := utf8.RuneCountInString(query); n < s.opts.MinQuery {
		return fmt.Errorf("query must be at least %d characters", s.opts.MinQuery)
	} else if n > s.opts.MaxQuery {
		return fmt.Errorf("%w: %d characters, max %d", smartdial.ErrQueryTooLong, n, s.opts.MaxQuery)
	}
	return nil
}

// toWire converts entries, already best first, keeping at most limit of
// them when limit is positive.
func toWire(entries []smartdial.Entry, limit int) []WireEntry {
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	ranks := utils.CreateRankList(len(entries))
	out := make([]WireEntry, len(entries))
	for i, e := range entries {
		out[i] = WireEntry{
			Name:        e.DisplayName,
			URI:         e.ContactURI,
			Number:      e.PhoneNumber,
			Rank:        ranks[i],
			NameMatches: e.NameMatches,
			NumberMatch: e.NumberMatch,
		}
	}
	return out
}

func (s *Server) send(response interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enc.Encode(response); err != nil {
		s.log.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
