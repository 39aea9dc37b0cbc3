package smartdial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func contains(list []*ContactNumber, c *ContactNumber) bool {
	for _, x := range list {
		if x == c {
			return true
		}
	}
	return false
}

func TestTriePutAndPrefix(t *testing.T) {
	trie := NewTrie(DefaultTrieOptions())
	fred := &ContactNumber{ID: 1, DisplayName: "Fred Smith", PhoneNumber: "5551234567", LookupKey: "fred"}
	trie.Put(fred)

	assert.True(t, contains(trie.GetAllWithPrefix("3733"), fred), "first token")
	assert.True(t, contains(trie.GetAllWithPrefix("37337648"), fred), "across tokens")
	assert.True(t, contains(trie.GetAllWithPrefix("7648"), fred), "second token")
	assert.True(t, contains(trie.GetAllWithPrefix("555123"), fred), "number")
	assert.Empty(t, trie.GetAllWithPrefix("9999"))
	assert.Equal(t, 1, trie.Size())
}

func TestTrieEmptyPrefix(t *testing.T) {
	trie := NewTrie(DefaultTrieOptions())
	trie.Put(&ContactNumber{ID: 1, DisplayName: "Fred"})
	assert.Nil(t, trie.GetAllWithPrefix(""))
	assert.Nil(t, NewTrie(DefaultTrieOptions()).GetAllWithPrefix("3"))
}

func TestTrieInitials(t *testing.T) {
	john := &ContactNumber{ID: 1, DisplayName: "John Smith"}

	withInitials := NewTrie(DefaultTrieOptions())
	withInitials.Put(john)
	assert.True(t, contains(withInitials.GetAllWithPrefix("57"), john))
	assert.True(t, contains(withInitials.GetAllWithPrefix("576484"), john))

	opts := DefaultTrieOptions()
	opts.Initials = false
	without := NewTrie(opts)
	without.Put(john)
	assert.Empty(t, without.GetAllWithPrefix("57"))
}

func TestTrieNumberOffsets(t *testing.T) {
	intl := &ContactNumber{ID: 1, DisplayName: "Big Ben", PhoneNumber: "+44 20 7946 0000"}
	nanp := &ContactNumber{ID: 2, DisplayName: "Golden Gate", PhoneNumber: "1-650-555-1234"}

	trie := NewTrie(DefaultTrieOptions())
	trie.Put(intl)
	trie.Put(nanp)

	assert.True(t, contains(trie.GetAllWithPrefix("4420"), intl))
	assert.True(t, contains(trie.GetAllWithPrefix("2079"), intl), "after country code")
	assert.True(t, contains(trie.GetAllWithPrefix("1650"), nanp))
	assert.True(t, contains(trie.GetAllWithPrefix("6505"), nanp), "after trunk prefix")
	assert.True(t, contains(trie.GetAllWithPrefix("5551"), nanp), "after area code")

	opts := DefaultTrieOptions()
	opts.NANP = false
	plain := NewTrie(opts)
	plain.Put(nanp)
	assert.Empty(t, plain.GetAllWithPrefix("5551"))
	assert.Empty(t, plain.GetAllWithPrefix("6505"))
}

func TestTrieSkipsDuplicateKeys(t *testing.T) {
	trie := NewTrie(DefaultTrieOptions())
	c := &ContactNumber{ID: 1, DisplayName: "A A"}
	trie.Put(c)

	// "22" is reached both as the full name and as initial + last token
	assert.Len(t, trie.GetAllWithPrefix("22"), 1)
}

func TestTrieSharedPrefixes(t *testing.T) {
	trie := NewTrie(DefaultTrieOptions())
	al := &ContactNumber{ID: 1, DisplayName: "Al"}
	alan := &ContactNumber{ID: 2, DisplayName: "Alan"}
	trie.Put(al)
	trie.Put(alan)

	got := trie.GetAllWithPrefix("25")
	assert.True(t, contains(got, al))
	assert.True(t, contains(got, alan))
	assert.Equal(t, []*ContactNumber{alan}, trie.GetAllWithPrefix("252"))
	assert.Equal(t, 2, trie.Size())
}

func TestTrieMaxKeyDigits(t *testing.T) {
	opts := DefaultTrieOptions()
	opts.MaxKeyDigits = 4
	trie := NewTrie(opts)
	fred := &ContactNumber{ID: 1, DisplayName: "Fred Smith"}
	trie.Put(fred)

	tests := []struct {
		prefix string
		found  bool
	}{
		{"373", true},
		{"3733", true},
		{"37337", false},
		{"37330000", false},
		{"37337648", false},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			assert.Equal(t, tt.found, contains(trie.GetAllWithPrefix(tt.prefix), fred))
		})
	}
}

func TestTrieLatinizedName(t *testing.T) {
	trie := NewTrie(DefaultTrieOptions())
	ivan := &ContactNumber{ID: 1, DisplayName: "Иван", LatinizedName: "Ivan"}
	trie.Put(ivan)
	assert.True(t, contains(trie.GetAllWithPrefix("4826"), ivan))
}
