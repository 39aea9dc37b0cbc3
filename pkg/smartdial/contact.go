package smartdial

import (
	"fmt"
	"net/url"
)

// ContactNumber is one (contact, number) pair as stored in the trie. Values
// are created during a cache build and never modified afterwards; the trie
// and every query share the same pointers.
type ContactNumber struct {
	ID          int64
	DisplayName string
	PhoneNumber string
	LookupKey   string

	// LatinizedName is an alternate spelling of DisplayName used only for
	// indexing. Empty for the canonical entry.
	LatinizedName string

	// Affinity is the position of this entry in the build that created it.
	// Lower is better. Values from different builds are not comparable.
	Affinity int
}

// IndexName returns the spelling the trie indexes for c.
func (c *ContactNumber) IndexName() string {
	if c.LatinizedName != "" {
		return c.LatinizedName
	}
	return c.DisplayName
}

// contactKey identifies a contact across its numbers and name variants.
type contactKey struct {
	id        int64
	lookupKey string
}

func (c *ContactNumber) key() contactKey {
	return contactKey{id: c.ID, lookupKey: c.LookupKey}
}

// ContactURI builds the stable reference used to open or call a contact. The
// lookup key comes first so the contact can be re-resolved when its id has
// gone stale.
func ContactURI(id int64, lookupKey string) string {
	return fmt.Sprintf("contacts://lookup/%s/%d", url.PathEscape(lookupKey), id)
}
