package smartdial

import (
	"github.com/bastiangx/dialserve/pkg/dialpad"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

const (
	// DefaultMaxKeyDigits bounds every key, and with it the depth of a
	// subtree walk.
	DefaultMaxKeyDigits = 64

	// maxInitialTokens caps how many name tokens take part in initials
	// chains, which grow with the square of the token count.
	maxInitialTokens = 8
)

// TrieOptions controls which keys Put derives from a contact.
type TrieOptions struct {
	// NANP also indexes North American numbers past the trunk prefix and
	// area code.
	NANP bool
	// Initials indexes runs of token initials followed by the rest of the
	// name, e.g. "JS" + "mith" style chains.
	Initials bool
	// MaxKeyDigits truncates keys longer than this.
	MaxKeyDigits int
}

// DefaultTrieOptions returns the options used when none are configured.
func DefaultTrieOptions() TrieOptions {
	return TrieOptions{
		NANP:         true,
		Initials:     true,
		MaxKeyDigits: DefaultMaxKeyDigits,
	}
}

// bucket holds the contacts whose key ends at one trie node.
type bucket struct {
	contacts []*ContactNumber
}

// Trie indexes contacts by the keypad digits of their names and numbers.
//
// A Trie is filled by a single goroutine during a cache build and is
// read-only once published; GetAllWithPrefix may then be called from any
// number of goroutines.
type Trie struct {
	root       *patricia.Trie
	opts       TrieOptions
	size       int
	generation uint64
}

// NewTrie creates an empty trie.
func NewTrie(opts TrieOptions) *Trie {
	if opts.MaxKeyDigits <= 0 {
		opts.MaxKeyDigits = DefaultMaxKeyDigits
	}
	return &Trie{
		// ten possible digits per node, keep them all in the sparse list
		root: patricia.NewTrie(patricia.MaxChildrenPerSparseNode(10)),
		opts: opts,
	}
}

// Put indexes c under every key its name and number produce.
func (t *Trie) Put(c *ContactNumber) {
	if c == nil {
		return
	}
	t.size++
	t.putName(c)
	t.putNumber(c)
}

// Size returns the number of Put calls, not the number of nodes.
func (t *Trie) Size() int {
	return t.size
}

// Generation identifies the cache build that produced t. Zero for a trie
// that was never published.
func (t *Trie) Generation() uint64 {
	return t.generation
}

// GetAllWithPrefix returns every contact stored at or below the node for
// prefix. A contact indexed under several keys in the subtree appears once
// per key. An empty or unknown prefix yields nil, and so does a prefix
// longer than MaxKeyDigits since no stored key reaches that deep.
func (t *Trie) GetAllWithPrefix(prefix string) []*ContactNumber {
	if prefix == "" || len(prefix) > t.opts.MaxKeyDigits {
		return nil
	}

	var out []*ContactNumber
	err := t.root.VisitSubtree(patricia.Prefix(prefix), func(_ patricia.Prefix, item patricia.Item) error {
		b, ok := item.(*bucket)
		if !ok {
			log.Errorf("Unknown item type: %T in contact trie", item)
			return nil
		}
		out = append(out, b.contacts...)
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting trie subtree: %v", err)
	}
	return out
}

// putName derives name keys from the token digits of c's index name: the
// whole name, the name from each later token on, and with Initials set the
// initials of tokens i..j-1 followed by the full tokens from j on.
func (t *Trie) putName(c *ContactNumber) {
	tokens := nameTokens(c.IndexName())
	if len(tokens) == 0 {
		return
	}

	for i := range tokens {
		t.insert(joinTokens(nil, tokens[i:]), c)
	}

	if !t.opts.Initials {
		return
	}
	n := min(len(tokens), maxInitialTokens)
	for i := 0; i < n; i++ {
		var initials []byte
		for j := i + 1; j < n; j++ {
			initials = append(initials, tokens[j-1][0])
			key := joinTokens(append([]byte(nil), initials...), tokens[j:])
			t.insert(key, c)
		}
	}
}

// putNumber derives number keys: the digits as written, the digits after
// an international calling code, and with NANP set the digits after the
// trunk prefix and area code.
func (t *Trie) putNumber(c *ContactNumber) {
	if c.PhoneNumber == "" {
		return
	}
	t.insert([]byte(dialpad.PhoneDigits(c.PhoneNumber)), c)

	runes := []rune(c.PhoneNumber)
	if off, ok := dialpad.CountryCodeOffset(c.PhoneNumber); ok {
		t.insert([]byte(dialpad.PhoneDigits(string(runes[off:]))), c)
	}
	if t.opts.NANP {
		for _, off := range dialpad.NANPOffsets(c.PhoneNumber) {
			t.insert([]byte(dialpad.PhoneDigits(string(runes[off:]))), c)
		}
	}
}

func (t *Trie) insert(key []byte, c *ContactNumber) {
	if len(key) == 0 {
		return
	}
	if len(key) > t.opts.MaxKeyDigits {
		key = key[:t.opts.MaxKeyDigits]
	}

	p := patricia.Prefix(key)
	if item := t.root.Get(p); item != nil {
		b := item.(*bucket)
		// the same contact reaches one key twice for names like "Al Al"
		if n := len(b.contacts); n > 0 && b.contacts[n-1] == c {
			return
		}
		b.contacts = append(b.contacts, c)
		return
	}
	t.root.Insert(p, &bucket{contacts: []*ContactNumber{c}})
}

// nameTokens splits name into runs of keypad digits. Any rune without a
// digit separates tokens.
func nameTokens(name string) [][]byte {
	idx := dialpad.KeyIndexes([]rune(name))
	var tokens [][]byte
	var cur []byte
	for _, d := range idx {
		if d == dialpad.NoDigit {
			if len(cur) > 0 {
				tokens = append(tokens, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, byte('0'+d))
	}
	if len(cur) > 0 {
		tokens = append(tokens, cur)
	}
	return tokens
}

func joinTokens(dst []byte, tokens [][]byte) []byte {
	for _, tok := range tokens {
		dst = append(dst, tok...)
	}
	return dst
}
