package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/bastiangx/dialserve/pkg/smartdial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entries(names ...string) []smartdial.Entry {
	out := make([]smartdial.Entry, len(names))
	for i, n := range names {
		out[i] = smartdial.Entry{DisplayName: n}
	}
	return out
}

func slotName(t *testing.T, s smartdial.Slot) string {
	t.Helper()
	e, ok := s.Entry()
	if !ok {
		return ""
	}
	return e.DisplayName
}

func TestSlots(t *testing.T) {
	tests := []struct {
		name    string
		entries []smartdial.Entry
		want    [SlotCount]string
	}{
		{"none", nil, [SlotCount]string{"", "", ""}},
		{"one", entries("best"), [SlotCount]string{"", "best", ""}},
		{"two", entries("best", "second"), [SlotCount]string{"second", "best", ""}},
		{"three", entries("best", "second", "third"), [SlotCount]string{"second", "best", "third"}},
		{"more", entries("best", "second", "third", "fourth"), [SlotCount]string{"second", "best", "third"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := Slots(tt.entries)
			var got [SlotCount]string
			for i, s := range slots {
				got[i] = slotName(t, s)
				assert.Equal(t, got[i] == "", s.IsEmpty())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHighlight(t *testing.T) {
	r := NewRenderer(false)
	tests := []struct {
		name      string
		s         string
		positions []smartdial.MatchPosition
		want      string
	}{
		{"none", "Alice", nil, "Alice"},
		{"prefix", "Alice Baker", []smartdial.MatchPosition{{Start: 0, End: 2}}, "[Al]ice Baker"},
		{"clamped", "Bo", []smartdial.MatchPosition{{Start: 1, End: 9}}, "B[o]"},
		{"merged", "abcdef", []smartdial.MatchPosition{{Start: 3, End: 5}, {Start: 0, End: 2}, {Start: 1, End: 3}}, "[abcde]f"},
		{"runes", "Žofia", []smartdial.MatchPosition{{Start: 0, End: 2}}, "[Žo]fia"},
		{"out of range", "ab", []smartdial.MatchPosition{{Start: 5, End: 7}}, "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Highlight(tt.s, tt.positions))
		})
	}
}

func TestRenderSlot(t *testing.T) {
	r := NewRenderer(false)
	pos := smartdial.MatchPosition{Start: 0, End: 3}
	slot := smartdial.Match(smartdial.Entry{
		DisplayName: "Alan Cho",
		PhoneNumber: "555-333",
		NumberMatch: &pos,
	})
	assert.Equal(t, "Alan Cho\n[555]-333", r.RenderSlot(slot))
	assert.Equal(t, "-", r.RenderSlot(smartdial.NoMatch()))

	strip := r.RenderSlots(Slots(entries("best")))
	assert.Contains(t, strip, "best")
}

type stubSearcher struct {
	entries  []smartdial.Entry
	queries  []string
	recaches int
}

func (s *stubSearcher) Search(_ context.Context, q string) ([]smartdial.Entry, error) {
	s.queries = append(s.queries, q)
	return s.entries, nil
}

func (s *stubSearcher) Recache(context.Context, bool) { s.recaches++ }

func (s *stubSearcher) Stats() map[string]int { return map[string]int{"contacts": 2} }

func TestInputHandler(t *testing.T) {
	s := &stubSearcher{entries: entries("a", "b", "c")}
	h := NewInputHandler(s, Options{Limit: 2, MaxQuery: 8})
	h.in = strings.NewReader("25\n:recache\n$$\n123456789\n:stats\n:q\n33\n")

	require.NoError(t, h.Start(context.Background()))
	assert.Equal(t, []string{"25"}, s.queries)
	assert.Equal(t, 1, s.recaches)
	assert.Equal(t, 3, h.requestCount)
}

func TestSearchLimit(t *testing.T) {
	s := &stubSearcher{entries: entries("a", "b", "c")}
	h := NewInputHandler(s, Options{Limit: 2})
	got, err := h.search(context.Background(), "2")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestFormatStats(t *testing.T) {
	out := formatStats(map[string]int{"b": 2, "a": 1})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "a"))
}
