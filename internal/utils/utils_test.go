package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidQuery(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"2255", true},
		{"alice", true},
		{"(555) 123-4567", true},
		{"+44 20", true},
		{"*#", true},
		{"Žofia", true},
		{"", false},
		{"   ", false},
		{"25$", false},
		{"a_b", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidQuery(tt.in), tt.in)
	}
}

func TestCreateRankList(t *testing.T) {
	assert.Equal(t, []uint16{1, 2, 3}, CreateRankList(3))
	assert.Empty(t, CreateRankList(0))
	assert.Empty(t, CreateRankList(-2))

	ranks := CreateRankList(70000)
	assert.Equal(t, uint16(65535), ranks[len(ranks)-1])
}

func TestSeenFilter(t *testing.T) {
	type key struct {
		id  int64
		ref string
	}
	f := NewSeenFilter[key](-1)
	assert.True(t, f.ShouldInclude(key{1, "a"}))
	assert.False(t, f.ShouldInclude(key{1, "a"}))
	assert.True(t, f.ShouldInclude(key{1, "b"}))
	assert.Equal(t, 2, f.Len())
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "out.bin")

	require.NoError(t, WriteFileAtomic(path, []byte("one")))
	require.NoError(t, WriteFileAtomic(path, []byte("two")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestTOMLRoundTripAndRecovery(t *testing.T) {
	type section struct {
		Size  int      `toml:"size"`
		Names []string `toml:"names"`
	}
	type doc struct {
		Main section `toml:"main"`
	}
	path := filepath.Join(t.TempDir(), "doc.toml")
	in := doc{Main: section{Size: 4, Names: []string{"a", "b"}}}
	require.NoError(t, SaveTOMLFile(in, path))

	var out doc
	require.NoError(t, LoadTOMLFile(path, &out))
	assert.Equal(t, in, out)

	raw, err := ParseTOMLWithRecovery(path)
	require.NoError(t, err)
	sec, ok := ExtractSection(raw, "main")
	require.True(t, ok)

	size, ok := ExtractInt64(sec, "size")
	assert.True(t, ok)
	assert.Equal(t, 4, size)
	names, ok := ExtractStrings(sec, "names")
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, names)
	_, ok = ExtractBool(sec, "size")
	assert.False(t, ok)
	_, ok = ExtractString(sec, "missing")
	assert.False(t, ok)
}

func TestExtractInts(t *testing.T) {
	data := map[string]any{"days": []any{int64(3), "x", int64(30)}}
	days, ok := ExtractInts(data, "days")
	assert.True(t, ok)
	assert.Equal(t, []int{3, 30}, days)

	_, ok = ExtractInts(data, "none")
	assert.False(t, ok)
}

func TestCheckDirStatus(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "new")
	res := CheckDirStatus(dir)
	require.NoError(t, res.Error)
	assert.True(t, res.Exists)
	assert.True(t, res.Writable)
	assert.True(t, FileExists(dir))
	assert.Equal(t, dir, GetAbsolutePath(dir))
	assert.Equal(t, "unknown", GetAbsolutePath(""))
}
