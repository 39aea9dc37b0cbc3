package elasticsearch

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/bastiangx/dialserve/pkg/contacts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSearchBody(t *testing.T) {
	body, err := buildSearchBody(100, nil)
	require.NoError(t, err)

	var q map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &q))
	assert.Equal(t, float64(100), q["size"])
	assert.NotContains(t, q, "search_after")
	assert.Equal(t, []interface{}{
		map[string]interface{}{"rank": "asc"},
		map[string]interface{}{"id": "asc"},
	}, q["sort"])

	body, err = buildSearchBody(100, []json.RawMessage{json.RawMessage("7"), json.RawMessage("42")})
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, &q))
	assert.Equal(t, []interface{}{float64(7), float64(42)}, q["search_after"])
}

func TestParseSearchResponse(t *testing.T) {
	const resp = `{
		"hits": {
			"total": {"value": 2},
			"hits": [
				{"_source": {"id": 1, "lookup_key": "a", "name": "Alice Baker", "number": "5551112222",
					"starred": true, "times_contacted": 3, "last_contacted": "2025-05-30T08:00:00Z", "rank": 0},
				 "sort": [0, 1]},
				{"_source": {"id": 2, "lookup_key": "b", "name": "Alan Cho", "number": "5553334444", "rank": 1},
				 "sort": [1, 2]}
			]
		}
	}`
	hits, err := parseSearchResponse(strings.NewReader(resp))
	require.NoError(t, err)
	require.Len(t, hits, 2)

	first := hits[0].Source.record()
	assert.Equal(t, "Alice Baker", first.DisplayName)
	assert.True(t, first.Starred)
	assert.True(t, first.LastContacted.Equal(time.Date(2025, 5, 30, 8, 0, 0, 0, time.UTC)))

	second := hits[1].Source.record()
	assert.True(t, second.LastContacted.IsZero())
	assert.Equal(t, "[1,2]", string(mustJSON(t, hits[1].Sort)))
}

func TestParseSearchResponseInvalid(t *testing.T) {
	_, err := parseSearchResponse(strings.NewReader("{"))
	assert.Error(t, err)
}

func TestDocumentFor(t *testing.T) {
	r := contacts.Record{ID: 9, LookupKey: "z", DisplayName: "Zed", PhoneNumber: "555"}
	d := documentFor(r, 4)
	assert.Equal(t, int64(4), d.Rank)
	assert.Nil(t, d.LastContacted)
	assert.Equal(t, r, d.record())
	assert.Equal(t, "9:555", documentID(r))
}

func TestNewSourceRejectsConfig(t *testing.T) {
	_, err := NewSource(&Config{})
	assert.ErrorIs(t, err, contacts.ErrInvalidConfig)
}

func mustJSON(t *testing.T, v interface{}) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}
