// Package cli handles cmd line input and the suggestion strip for DBG and testing
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/dialserve/internal/utils"
	"github.com/bastiangx/dialserve/pkg/smartdial"
	"github.com/charmbracelet/log"
)

// Options controls what the input handler accepts and shows.
type Options struct {
	MinQuery int
	MaxQuery int
	// Limit caps how many entries are listed under the strip.
	Limit int
	Color bool
}

// InputHandler reads dial queries from stdin and renders the matching
// contacts. Lines starting with ':' are commands:
//
//	:recache  rebuild the contact index
//	:stats    print index statistics
//	:q        quit
type InputHandler struct {
	searcher     smartdial.ISearcher
	renderer     *Renderer
	opts         Options
	in           io.Reader
	requestCount int
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(searcher smartdial.ISearcher, opts Options) *InputHandler {
	if opts.MinQuery < 1 {
		opts.MinQuery = 1
	}
	if opts.MaxQuery < opts.MinQuery {
		opts.MaxQuery = smartdial.DefaultMaxQuery
	}
	return &InputHandler{
		searcher: searcher,
		renderer: NewRenderer(opts.Color),
		opts:     opts,
		in:       os.Stdin,
	}
}

// Start begins the interface loop. It returns nil once input ends or :q is
// entered.
func (h *InputHandler) Start(ctx context.Context) error {
	log.Print("DialServe CLI [BETA]")
	log.Print("type digits or letters and press Enter to see matching contacts (:q to exit):")
	reader := bufio.NewReader(h.in)

	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if line != "" {
			if quit := h.handleLine(ctx, line); quit {
				return nil
			}
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

func (h *InputHandler) handleLine(ctx context.Context, line string) bool {
	if !strings.HasPrefix(line, ":") {
		h.handleInput(ctx, line)
		return false
	}
	switch line {
	case ":q", ":quit":
		return true
	case ":recache":
		h.searcher.Recache(ctx, true)
		log.Info("Recache requested")
	case ":stats":
		log.Print(formatStats(h.searcher.Stats()))
	default:
		log.Errorf("Unknown command: %s", line)
	}
	return false
}

// handleInput runs one query and prints the strip and the ranked list.
func (h *InputHandler) handleInput(ctx context.Context, query string) {
	h.requestCount++

	entries, err := h.search(ctx, query)
	if err != nil {
		log.Error(err)
		return
	}
	if len(entries) == 0 {
		log.Warnf("No contacts found for query: '%s'", query)
		return
	}

	log.Print("\n" + h.renderer.RenderSlots(Slots(entries)))
	for i, e := range entries {
		log.Printf("%2d. %s  %s", i+1,
			h.renderer.Highlight(e.DisplayName, e.NameMatches), e.PhoneNumber)
	}
}

func (h *InputHandler) search(ctx context.Context, query string) ([]smartdial.Entry, error) {
	n := utf8.RuneCountInString(query)
	if n < h.opts.MinQuery {
		return nil, fmt.Errorf("query too short: %s", query)
	}
	if n > h.opts.MaxQuery {
		return nil, fmt.Errorf("query too long: %s", query)
	}
	if !utils.IsValidQuery(query) {
		return nil, fmt.Errorf("query has characters no keypad can dial: %s", query)
	}

	start := time.Now()
	entries, err := h.searcher.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	log.Debugf("Took [ %v ] for query '%s'", time.Since(start), query)

	if h.opts.Limit > 0 && len(entries) > h.opts.Limit {
		entries = entries[:h.opts.Limit]
	}
	return entries, nil
}

func formatStats(stats map[string]int) string {
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%-20s %d\n", k, stats[k])
	}
	return strings.TrimRight(b.String(), "\n")
}
