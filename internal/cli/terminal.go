package cli

import (
	"sort"
	"strings"

	"github.com/bastiangx/dialserve/pkg/smartdial"
	"github.com/charmbracelet/lipgloss"
)

// SlotCount is the number of presentation slots in the suggestion strip.
const SlotCount = 3

// slotOrder maps a slot to the rank of the entry it shows: the best match is
// centered with the second best on its left and the third on its right.
var slotOrder = [SlotCount]int{1, 0, 2}

// Slots places up to three entries, best first, into presentation order.
// Slots without an entry are empty.
func Slots(entries []smartdial.Entry) [SlotCount]smartdial.Slot {
	var slots [SlotCount]smartdial.Slot
	for i, rank := range slotOrder {
		if rank < len(entries) {
			slots[i] = smartdial.Match(entries[rank])
		} else {
			slots[i] = smartdial.NoMatch()
		}
	}
	return slots
}

// Renderer draws slots on a terminal.
type Renderer struct {
	color     bool
	slotWidth int
	name      lipgloss.Style
	number    lipgloss.Style
	mark      lipgloss.Style
	empty     lipgloss.Style
	box       lipgloss.Style
	center    lipgloss.Style
}

// NewRenderer returns a renderer. Without color, highlighted runs are
// wrapped in brackets instead.
func NewRenderer(color bool) *Renderer {
	r := &Renderer{color: color, slotWidth: 24}
	r.box = lipgloss.NewStyle().Width(r.slotWidth).Padding(0, 1)
	r.center = r.box
	if color {
		r.name = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		r.number = lipgloss.NewStyle().Faint(true)
		r.mark = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"})
		r.empty = lipgloss.NewStyle().Faint(true)
		r.center = r.box.Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#907aa9", Dark: "#c4a7e7"})
	}
	return r
}

// Highlight marks the given rune ranges of s. Ranges are clamped to s and
// overlapping ranges are merged.
func (r *Renderer) Highlight(s string, positions []smartdial.MatchPosition) string {
	runes := []rune(s)
	spans := mergeSpans(positions, len(runes))

	var b strings.Builder
	last := 0
	for _, p := range spans {
		b.WriteString(r.name.Render(string(runes[last:p.Start])))
		b.WriteString(r.emphasize(string(runes[p.Start:p.End])))
		last = p.End
	}
	b.WriteString(r.name.Render(string(runes[last:])))
	return b.String()
}

func (r *Renderer) emphasize(s string) string {
	if !r.color {
		return "[" + s + "]"
	}
	return r.mark.Render(s)
}

func mergeSpans(positions []smartdial.MatchPosition, n int) []smartdial.MatchPosition {
	spans := make([]smartdial.MatchPosition, 0, len(positions))
	for _, p := range positions {
		if p = p.Clamp(n); p.Len() > 0 {
			spans = append(spans, p)
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })

	merged := spans[:0]
	for _, p := range spans {
		if k := len(merged) - 1; k >= 0 && p.Start <= merged[k].End {
			merged[k].End = max(merged[k].End, p.End)
			continue
		}
		merged = append(merged, p)
	}
	return merged
}

// RenderSlot draws one slot as a name line over a number line.
func (r *Renderer) RenderSlot(slot smartdial.Slot) string {
	e, ok := slot.Entry()
	if !ok {
		return r.empty.Render("-")
	}
	name := r.Highlight(e.DisplayName, e.NameMatches)

	var number string
	if e.NumberMatch != nil {
		number = r.Highlight(e.PhoneNumber, []smartdial.MatchPosition{*e.NumberMatch})
	} else {
		number = r.number.Render(e.PhoneNumber)
	}
	return name + "\n" + number
}

// RenderSlots draws the strip left to right.
func (r *Renderer) RenderSlots(slots [SlotCount]smartdial.Slot) string {
	cells := make([]string, SlotCount)
	for i, slot := range slots {
		style := r.box
		if i == 1 {
			style = r.center
		}
		cells[i] = style.Render(r.RenderSlot(slot))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, cells...)
}
