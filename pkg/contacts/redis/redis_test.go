package redis

import (
	"testing"
	"time"

	"github.com/bastiangx/dialserve/pkg/contacts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashRoundTrip(t *testing.T) {
	rec := contacts.Record{
		ID:             42,
		LookupKey:      "lk-42",
		DisplayName:    "Zoë Ørsted",
		PhoneNumber:    "+45 32 12 34 56",
		Starred:        true,
		TimesContacted: 7,
		LastContacted:  time.Date(2025, 5, 30, 8, 0, 0, 0, time.UTC),
	}

	fields := hashFromRecord(rec)
	strs := make(map[string]string, len(fields))
	for k, v := range fields {
		strs[k] = v.(string)
	}

	got, err := recordFromHash(strs)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestRecordFromHashDefaults(t *testing.T) {
	got, err := recordFromHash(map[string]string{fieldID: "1", fieldName: "Ann", fieldLast: "0"})
	require.NoError(t, err)
	assert.Equal(t, contacts.Record{ID: 1, DisplayName: "Ann"}, got)

	_, err = recordFromHash(map[string]string{fieldName: "no id"})
	assert.Error(t, err)
}

func TestMemberPerNumber(t *testing.T) {
	a := contacts.Record{ID: 1, PhoneNumber: "555 1111"}
	b := contacts.Record{ID: 1, PhoneNumber: "555 2222"}
	assert.NotEqual(t, member(a), member(b))
}

func TestNewSourceRejectsConfig(t *testing.T) {
	_, err := NewSource("localhost:6379")
	assert.ErrorIs(t, err, contacts.ErrInvalidConfig)
}
