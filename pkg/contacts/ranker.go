package contacts

import (
	"sort"
	"strings"
	"time"
)

// DefaultRecentWindows are the recency buckets used when none are configured.
var DefaultRecentWindows = []time.Duration{
	3 * 24 * time.Hour,
	7 * 24 * time.Hour,
	30 * 24 * time.Hour,
}

// Ranker orders raw records the way a contacts provider orders its
// suggestions: starred first when PreferStarred is set, then by recency
// bucket, then by times contacted, then by name and id so the order is total.
type Ranker struct {
	PreferStarred bool
	// RecentWindows must be ascending. A record contacted within the first
	// window ranks above one contacted within the second, and so on; records
	// outside every window, or never contacted, come last.
	RecentWindows []time.Duration
	// Now is the reference time. Defaults to time.Now.
	Now func() time.Time
}

// DefaultRanker returns a Ranker with starred contacts first and the default
// recency windows.
func DefaultRanker() Ranker {
	return Ranker{PreferStarred: true, RecentWindows: DefaultRecentWindows}
}

// WindowsFromDays converts day counts from configuration into windows.
// Non-positive entries are skipped.
func WindowsFromDays(days []int) []time.Duration {
	out := make([]time.Duration, 0, len(days))
	for _, d := range days {
		if d > 0 {
			out = append(out, time.Duration(d)*24*time.Hour)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (r Ranker) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// bucket returns the index of the first window containing last, or
// len(RecentWindows) when none does.
func (r Ranker) bucket(now, last time.Time) int {
	if last.IsZero() {
		return len(r.RecentWindows)
	}
	age := now.Sub(last)
	for i, w := range r.RecentWindows {
		if age < w {
			return i
		}
	}
	return len(r.RecentWindows)
}

func (r Ranker) less(now time.Time, a, b Record) bool {
	if r.PreferStarred && a.Starred != b.Starred {
		return a.Starred
	}
	if ba, bb := r.bucket(now, a.LastContacted), r.bucket(now, b.LastContacted); ba != bb {
		return ba < bb
	}
	if a.TimesContacted != b.TimesContacted {
		return a.TimesContacted > b.TimesContacted
	}
	if c := strings.Compare(a.DisplayName, b.DisplayName); c != 0 {
		return c < 0
	}
	return a.ID < b.ID
}

// Less reports whether a ranks above b.
func (r Ranker) Less(a, b Record) bool {
	return r.less(r.now(), a, b)
}

// Sort orders records best first, in place. Records that compare equal keep
// their relative order.
func (r Ranker) Sort(records []Record) {
	now := r.now()
	sort.SliceStable(records, func(i, j int) bool {
		return r.less(now, records[i], records[j])
	})
}
