/*
Package ngram resolves the previous words typed before the cursor into
dictionary positions, so suggestion scoring can look up n-gram context.

Only bigrams are wired today: the most recent word is the one that anchors the
bigram list. PrevWords reserves MaxPrevWordCountForNGram slots so longer
contexts can be added without changing callers.

Nothing in this package returns an error. Every failure (a word that is too
long, a marker that does not fit, a word the dictionary does not know) comes
back as NotADictPos or an empty iterator, and the caller carries on without
context.
*/
package ngram

import "math"

const (
	// MaxWordLength is the maximum number of code points in a word, marker included.
	MaxWordLength = 48
	// MaxPrevWordCountForNGram is the number of previous word slots kept in PrevWords.
	MaxPrevWordCountForNGram = 2
)

// DictPosition is an opaque handle into a dictionary structure.
type DictPosition int32

// NotADictPos marks an absent or unresolved position.
const NotADictPos DictPosition = math.MinInt32

// Bigram is one (next word, weight) entry of a bigram list.
type Bigram struct {
	TargetPos   DictPosition
	Probability int
}

// DictionaryStructure is the read-only trie capability the resolver needs.
// Implementations must be safe for concurrent readers.
type DictionaryStructure interface {
	// TerminalNodePosition returns the terminal node of codePoints, or NotADictPos.
	// With forceLowerCase set, the query is lowercased before matching.
	TerminalNodePosition(codePoints []rune, forceLowerCase bool) DictPosition

	// BigramsPosition returns the start of the bigram list attached to a
	// terminal node, or NotADictPos when the word has none.
	BigramsPosition(nodePos DictPosition) DictPosition

	// BigramsStructure returns the policy used to walk bigram lists.
	BigramsStructure() BigramsStructure
}

// BigramsStructure reads bigram list entries.
type BigramsStructure interface {
	// NextBigram reads the entry at *pos, advances *pos past it and reports
	// whether another entry follows.
	NextBigram(pos *DictPosition) (Bigram, bool)
}
