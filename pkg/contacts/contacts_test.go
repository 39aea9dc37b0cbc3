package contacts

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return refNow.Add(-time.Duration(n) * 24 * time.Hour)
}

func fixedRanker() Ranker {
	r := DefaultRanker()
	r.Now = func() time.Time { return refNow }
	return r
}

func displayNames(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.DisplayName
	}
	return out
}

func TestRankerSort(t *testing.T) {
	records := []Record{
		{ID: 1, DisplayName: "Old Friend", TimesContacted: 50, LastContacted: daysAgo(90)},
		{ID: 2, DisplayName: "Never"},
		{ID: 3, DisplayName: "This Week", TimesContacted: 2, LastContacted: daysAgo(5)},
		{ID: 4, DisplayName: "Starred", Starred: true},
		{ID: 5, DisplayName: "Yesterday", TimesContacted: 1, LastContacted: daysAgo(1)},
		{ID: 6, DisplayName: "Also Yesterday", TimesContacted: 9, LastContacted: daysAgo(1)},
	}
	fixedRanker().Sort(records)

	assert.Equal(t, []string{
		"Starred", "Also Yesterday", "Yesterday", "This Week", "Old Friend", "Never",
	}, displayNames(records))
}

func TestRankerWithoutStarred(t *testing.T) {
	r := fixedRanker()
	r.PreferStarred = false
	a := Record{ID: 1, DisplayName: "Starred", Starred: true}
	b := Record{ID: 2, DisplayName: "Recent", LastContacted: daysAgo(1)}
	assert.True(t, r.Less(b, a))
	assert.False(t, r.Less(a, b))
}

func TestRankerTieBreaks(t *testing.T) {
	r := fixedRanker()
	assert.True(t, r.Less(Record{ID: 2, DisplayName: "Ann"}, Record{ID: 1, DisplayName: "Bob"}))
	assert.True(t, r.Less(Record{ID: 1, DisplayName: "Ann"}, Record{ID: 2, DisplayName: "Ann"}))
}

func TestWindowsFromDays(t *testing.T) {
	assert.Equal(t,
		[]time.Duration{24 * time.Hour, 7 * 24 * time.Hour},
		WindowsFromDays([]int{7, 0, 1, -3}))
}

func TestMemorySource(t *testing.T) {
	src := NewMemorySource([]Record{{ID: 1, DisplayName: "A"}, {ID: 2, DisplayName: "B"}})
	got, err := Collect(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, displayNames(got))

	src.Replace([]Record{{ID: 3, DisplayName: "C"}})
	assert.Equal(t, 1, src.Len())

	stop := errors.New("stop")
	err = src.Scan(context.Background(), func(Record) error { return stop })
	assert.ErrorIs(t, err, stop)

	require.NoError(t, src.Close())
	_, err = Collect(context.Background(), src)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestFileSourceFormats(t *testing.T) {
	records := []Record{
		{ID: 1, LookupKey: "never", DisplayName: "Never Called", PhoneNumber: "555 000 1111"},
		{ID: 2, LookupKey: "star", DisplayName: "Star Person", PhoneNumber: "+44 20 7946 0000", Starred: true},
		{ID: 3, LookupKey: "recent", DisplayName: "Recent Caller", PhoneNumber: "1-650-555-1234",
			TimesContacted: 4, LastContacted: daysAgo(2)},
	}
	ranker := fixedRanker()

	for _, format := range []FileFormat{FormatTOML, FormatMsgpack} {
		t.Run(format.String(), func(t *testing.T) {
			info, ok := GetFormatInfo(format)
			require.True(t, ok)
			path := filepath.Join(t.TempDir(), "nested", "contacts"+info.Extensions[0])
			require.NoError(t, WriteFile(path, format, records))

			src, err := NewFileSource(FileConfig{Path: path, Ranker: &ranker})
			require.NoError(t, err)
			got, err := Collect(context.Background(), src)
			require.NoError(t, err)
			assert.Equal(t, []string{"Star Person", "Recent Caller", "Never Called"}, displayNames(got))
			assert.Equal(t, "+44 20 7946 0000", got[0].PhoneNumber)
			assert.True(t, got[1].LastContacted.Equal(daysAgo(2)))

			unranked, err := NewFileSource(FileConfig{Path: path})
			require.NoError(t, err)
			got, err = Collect(context.Background(), unranked)
			require.NoError(t, err)
			assert.Equal(t, []string{"Never Called", "Star Person", "Recent Caller"}, displayNames(got))
		})
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	src, err := NewFileSource(FileConfig{Path: filepath.Join(t.TempDir(), "absent.toml")})
	require.NoError(t, err)
	_, err = Collect(context.Background(), src)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestFormatDetection(t *testing.T) {
	f, err := DetectFileFormat("contacts.TOML")
	require.NoError(t, err)
	assert.Equal(t, FormatTOML, f)

	f, err = ResolveFormat("contacts.dat", "msgpack")
	require.NoError(t, err)
	assert.Equal(t, FormatMsgpack, f)

	_, err = DetectFileFormat("contacts.csv")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = NewFileSource(FileConfig{Path: "contacts.csv"})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestRegistry(t *testing.T) {
	assert.Subset(t, Registered(), []string{"file", "memory"})

	src, err := Open("Memory", MemoryConfig{Records: []Record{{ID: 1}}})
	require.NoError(t, err)
	got, err := Collect(context.Background(), src)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = Open("carrier-pigeon", nil)
	assert.ErrorIs(t, err, ErrSourceNotFound)

	_, err = Open("file", "not a config")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
