/*
Package dictionary is an in-memory word store that satisfies ngram.DictionaryStructure.

Words live in a patricia trie keyed by their code points; the trie value is the
word's terminal position. Every word may own one bigram list, kept sorted by
probability so the most likely next word comes first.

Bigram list positions are laid out as listIndex*maxBigrams + offset, which lets
a single DictPosition carry both the list and the cursor inside it.
*/
package dictionary

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/bastiangx/wordctx/pkg/charutil"
	"github.com/bastiangx/wordctx/pkg/ngram"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

var (
	ErrEmptyWord       = errors.New("empty word")
	ErrWordTooLong     = fmt.Errorf("word longer than %d code points", ngram.MaxWordLength)
	ErrBigramListFull  = errors.New("bigram list is full")
	ErrUnknownPosition = errors.New("unknown dictionary position")

	// ErrTooManyBigramLists means another list would push bigram positions
	// past the int32 range of ngram.DictPosition.
	ErrTooManyBigramLists = errors.New("bigram position space exhausted")
)

// DefaultMaxBigramsPerWord bounds a single bigram list.
const DefaultMaxBigramsPerWord = 1024

type entry struct {
	codePoints  []rune
	probability int
	bigramList  int // index into lists, -1 when the word has none
}

// Dictionary is safe for concurrent readers and a single writer at a time.
type Dictionary struct {
	trie       *patricia.Trie
	entries    []entry
	lists      [][]ngram.Bigram
	maxBigrams int
	mu         sync.RWMutex
}

// Stats summarizes the dictionary contents.
type Stats struct {
	Words       int
	BigramLists int
	Bigrams     int
}

// New creates an empty dictionary. maxBigramsPerWord <= 0 uses DefaultMaxBigramsPerWord;
// values beyond math.MaxInt32 are clamped so positions stay within DictPosition.
func New(maxBigramsPerWord int) *Dictionary {
	if maxBigramsPerWord <= 0 {
		maxBigramsPerWord = DefaultMaxBigramsPerWord
	}
	if int64(maxBigramsPerWord) > math.MaxInt32 {
		maxBigramsPerWord = math.MaxInt32
	}
	return &Dictionary{
		trie:       patricia.NewTrie(),
		maxBigrams: maxBigramsPerWord,
	}
}

// AddWord inserts a word or updates its probability and returns its terminal position.
// Sentence-initial entries are stored with the marker already attached.
func (d *Dictionary) AddWord(codePoints []rune, probability int) (ngram.DictPosition, error) {
	if err := checkWord(codePoints); err != nil {
		return ngram.NotADictPos, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	pos, _ := d.addWordLocked(codePoints, probability, true)
	return pos, nil
}

// AddBigram records that next follows prev with the given probability.
// Missing words are created with probability 0; an existing pair is updated.
func (d *Dictionary) AddBigram(prev, next []rune, probability int) error {
	if err := checkWord(prev); err != nil {
		return fmt.Errorf("previous word: %w", err)
	}
	if err := checkWord(next); err != nil {
		return fmt.Errorf("next word: %w", err)
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	// Capacity is checked before either word is created so a refused pair
	// leaves the dictionary untouched.
	nextPos, nextKnown := d.lookupLocked(next)
	listIdx := -1
	if prevPos, ok := d.lookupLocked(prev); ok {
		listIdx = d.entries[prevPos].bigramList
	}
	switch {
	case listIdx < 0:
		if int64(len(d.lists)+1)*int64(d.maxBigrams) > math.MaxInt32 {
			return fmt.Errorf("%q: %w", printable(prev), ErrTooManyBigramLists)
		}
	case !nextKnown || !containsTarget(d.lists[listIdx], nextPos):
		if len(d.lists[listIdx]) >= d.maxBigrams {
			return fmt.Errorf("%q: %w", printable(prev), ErrBigramListFull)
		}
	}

	prevPos, _ := d.addWordLocked(prev, 0, false)
	nextPos, _ = d.addWordLocked(next, 0, false)

	e := &d.entries[prevPos]
	if e.bigramList < 0 {
		e.bigramList = len(d.lists)
		d.lists = append(d.lists, nil)
	}
	list := d.lists[e.bigramList]

	found := false
	for i := range list {
		if list[i].TargetPos == nextPos {
			list[i].Probability = probability
			found = true
			break
		}
	}
	if !found {
		list = append(list, ngram.Bigram{TargetPos: nextPos, Probability: probability})
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Probability > list[j].Probability
	})
	d.lists[e.bigramList] = list
	return nil
}

func (d *Dictionary) lookupLocked(codePoints []rune) (ngram.DictPosition, bool) {
	item := d.trie.Get(encodeKey(codePoints))
	if item == nil {
		return ngram.NotADictPos, false
	}
	return item.(ngram.DictPosition), true
}

func containsTarget(list []ngram.Bigram, pos ngram.DictPosition) bool {
	for _, b := range list {
		if b.TargetPos == pos {
			return true
		}
	}
	return false
}

// addWordLocked returns the position of codePoints, creating the entry if needed.
// With update set, an existing word gets the new probability.
func (d *Dictionary) addWordLocked(codePoints []rune, probability int, update bool) (ngram.DictPosition, bool) {
	key := encodeKey(codePoints)
	if item := d.trie.Get(key); item != nil {
		pos := item.(ngram.DictPosition)
		if update {
			d.entries[pos].probability = probability
		}
		return pos, false
	}

	pos := ngram.DictPosition(len(d.entries))
	d.entries = append(d.entries, entry{
		codePoints:  append([]rune(nil), codePoints...),
		probability: probability,
		bigramList:  -1,
	})
	d.trie.Insert(key, pos)
	log.Debugf("Added word %q at position %d", printable(codePoints), pos)
	return pos, true
}

// WordAt returns the code points and probability stored at a terminal position.
func (d *Dictionary) WordAt(pos ngram.DictPosition) ([]rune, int, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if pos < 0 || int(pos) >= len(d.entries) {
		return nil, 0, false
	}
	e := d.entries[pos]
	return e.codePoints, e.probability, true
}

// TerminalNodePosition implements ngram.DictionaryStructure.
func (d *Dictionary) TerminalNodePosition(codePoints []rune, forceLowerCase bool) ngram.DictPosition {
	if len(codePoints) == 0 {
		return ngram.NotADictPos
	}
	var buf [ngram.MaxWordLength]rune
	query := codePoints
	if forceLowerCase {
		if len(codePoints) > len(buf) {
			return ngram.NotADictPos
		}
		for i, c := range codePoints {
			buf[i] = charutil.ToLowerCase(c)
		}
		query = buf[:len(codePoints)]
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	item := d.trie.Get(encodeKey(query))
	if item == nil {
		return ngram.NotADictPos
	}
	return item.(ngram.DictPosition)
}

// BigramsPosition implements ngram.DictionaryStructure.
func (d *Dictionary) BigramsPosition(nodePos ngram.DictPosition) ngram.DictPosition {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if nodePos < 0 || int(nodePos) >= len(d.entries) {
		return ngram.NotADictPos
	}
	list := d.entries[nodePos].bigramList
	if list < 0 || len(d.lists[list]) == 0 {
		return ngram.NotADictPos
	}
	return ngram.DictPosition(list * d.maxBigrams)
}

// BigramsStructure implements ngram.DictionaryStructure.
func (d *Dictionary) BigramsStructure() ngram.BigramsStructure {
	return d
}

// NextBigram implements ngram.BigramsStructure.
func (d *Dictionary) NextBigram(pos *ngram.DictPosition) (ngram.Bigram, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if *pos < 0 {
		return ngram.Bigram{TargetPos: ngram.NotADictPos}, false
	}
	list, offset := int(*pos)/d.maxBigrams, int(*pos)%d.maxBigrams
	if list >= len(d.lists) || offset >= len(d.lists[list]) {
		return ngram.Bigram{TargetPos: ngram.NotADictPos}, false
	}
	*pos++
	return d.lists[list][offset], offset+1 < len(d.lists[list])
}

// Stats returns word and bigram counts.
func (d *Dictionary) Stats() Stats {
	d.mu.RLock()
	defer d.mu.RUnlock()

	s := Stats{Words: len(d.entries), BigramLists: len(d.lists)}
	for _, l := range d.lists {
		s.Bigrams += len(l)
	}
	return s
}

func checkWord(codePoints []rune) error {
	if len(codePoints) == 0 {
		return ErrEmptyWord
	}
	if len(codePoints) > ngram.MaxWordLength {
		return ErrWordTooLong
	}
	return nil
}

// encodeKey packs each code point into 3 big-endian bytes. UTF-8 cannot carry
// the beginning-of-sentence marker, which sits just past the Unicode range.
func encodeKey(codePoints []rune) patricia.Prefix {
	key := make(patricia.Prefix, 0, len(codePoints)*3)
	for _, c := range codePoints {
		key = append(key, byte(c>>16), byte(c>>8), byte(c))
	}
	return key
}

func printable(codePoints []rune) string {
	if charutil.IsBeginningOfSentence(codePoints) {
		return "^" + string(codePoints[1:])
	}
	return string(codePoints)
}
