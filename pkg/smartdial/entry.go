package smartdial

// MatchPosition is a half-open [Start, End) range of rune offsets into the
// display name or phone number that matched a query.
type MatchPosition struct {
	Start int `msgpack:"s"`
	End   int `msgpack:"e"`
}

// Len returns the number of runes covered.
func (p MatchPosition) Len() int {
	return p.End - p.Start
}

// Clamp fits p inside a string of n runes. Highlighting is best effort, so an
// out of range position is trimmed rather than rejected.
func (p MatchPosition) Clamp(n int) MatchPosition {
	if n < 0 {
		n = 0
	}
	p.Start = max(0, min(p.Start, n))
	p.End = max(p.Start, min(p.End, n))
	return p
}

// Entry is one ranked query result. Entries are built fresh for each query
// and must be treated as read-only: cached results share them.
type Entry struct {
	DisplayName string
	ContactURI  string
	PhoneNumber string

	// NameMatches is empty when the contact was found by its number or a
	// latinized spelling only.
	NameMatches []MatchPosition
	// NumberMatch is nil when the query did not match the number.
	NumberMatch *MatchPosition
}

// Slot is one presentation slot: either a matched entry or nothing.
type Slot struct {
	entry Entry
	ok    bool
}

// Match wraps e in a filled slot.
func Match(e Entry) Slot {
	return Slot{entry: e, ok: true}
}

// NoMatch returns an empty slot.
func NoMatch() Slot {
	return Slot{}
}

// Entry returns the slot's entry and whether there is one.
func (s Slot) Entry() (Entry, bool) {
	return s.entry, s.ok
}

// IsEmpty reports whether the slot holds no entry.
func (s Slot) IsEmpty() bool {
	return !s.ok
}
