package ngram

import (
	"github.com/bastiangx/wordctx/pkg/charutil"
)

type lookup struct {
	word           string
	forceLowerCase bool
}

// stubDict is a map-backed DictionaryStructure that records every lookup.
type stubDict struct {
	terminals map[string]DictPosition
	bigrams   map[DictPosition]DictPosition
	lists     map[DictPosition][]Bigram
	lookups   []lookup
}

func newStubDict() *stubDict {
	return &stubDict{
		terminals: make(map[string]DictPosition),
		bigrams:   make(map[DictPosition]DictPosition),
		lists:     make(map[DictPosition][]Bigram),
	}
}

func (d *stubDict) addWord(word string, pos DictPosition) {
	d.terminals[word] = pos
}

// addSentenceStart registers word with the beginning-of-sentence marker.
func (d *stubDict) addSentenceStart(word string, pos DictPosition) {
	d.terminals[string(append([]rune{charutil.CodePointBeginningOfSentence}, []rune(word)...))] = pos
}

func (d *stubDict) addBigrams(node, listPos DictPosition, entries ...Bigram) {
	d.bigrams[node] = listPos
	d.lists[listPos] = entries
}

func (d *stubDict) TerminalNodePosition(codePoints []rune, forceLowerCase bool) DictPosition {
	key := make([]rune, len(codePoints))
	for i, c := range codePoints {
		if forceLowerCase {
			c = charutil.ToLowerCase(c)
		}
		key[i] = c
	}
	d.lookups = append(d.lookups, lookup{word: string(key), forceLowerCase: forceLowerCase})
	if pos, ok := d.terminals[string(key)]; ok {
		return pos
	}
	return NotADictPos
}

func (d *stubDict) BigramsPosition(nodePos DictPosition) DictPosition {
	if pos, ok := d.bigrams[nodePos]; ok {
		return pos
	}
	return NotADictPos
}

func (d *stubDict) BigramsStructure() BigramsStructure {
	return d
}

// NextBigram uses list start + offset positions; lists never overlap in tests.
func (d *stubDict) NextBigram(pos *DictPosition) (Bigram, bool) {
	for start, entries := range d.lists {
		offset := int(*pos - start)
		if offset >= 0 && offset < len(entries) {
			*pos++
			return entries[offset], offset+1 < len(entries)
		}
	}
	return Bigram{TargetPos: NotADictPos}, false
}
