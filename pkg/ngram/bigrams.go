package ngram

import "iter"

// BigramsIterator walks a bigram list forward once.
type BigramsIterator struct {
	structure BigramsStructure
	pos       DictPosition
	hasNext   bool
}

// NewBigramsIterator returns an iterator anchored at pos. A NotADictPos anchor
// or a nil structure gives an iterator with no entries.
func NewBigramsIterator(structure BigramsStructure, pos DictPosition) *BigramsIterator {
	return &BigramsIterator{
		structure: structure,
		pos:       pos,
		hasNext:   structure != nil && pos != NotADictPos,
	}
}

// HasNext reports whether Next will return another entry.
func (it *BigramsIterator) HasNext() bool {
	return it.hasNext
}

// Next returns the current entry and advances. It must only be called after
// HasNext returned true.
func (it *BigramsIterator) Next() Bigram {
	if !it.hasNext {
		return Bigram{TargetPos: NotADictPos}
	}
	b, more := it.structure.NextBigram(&it.pos)
	it.hasNext = more
	return b
}

// All drains the iterator as a sequence.
func (it *BigramsIterator) All() iter.Seq[Bigram] {
	return func(yield func(Bigram) bool) {
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}

// LocateBigramsForPrediction returns an iterator over the bigram list of the
// most recent previous word.
//
// The exact-case word is tried first. If it is unknown or has no bigram list,
// the whole lookup is retried lowercased; there is no opt-out since bigram
// prediction is best effort anyway.
func (pw *PrevWords) LocateBigramsForPrediction(dict DictionaryStructure) *BigramsIterator {
	if dict == nil {
		return NewBigramsIterator(nil, NotADictPos)
	}
	w := &pw.words[0]
	pos := bigramListPosOfWord(dict, w.codePoints, w.count, w.beginningOfSentence)
	return NewBigramsIterator(dict.BigramsStructure(), pos)
}

func bigramListPosOfWord(dict DictionaryStructure, codePoints []rune, count int, beginningOfSentence bool) DictPosition {
	var buf [MaxWordLength]rune
	n := prepareWord(dict, &buf, codePoints, count, beginningOfSentence)
	if n < 0 {
		return NotADictPos
	}
	pos := bigramListPos(dict, buf[:n], false)
	if pos == NotADictPos {
		pos = bigramListPos(dict, buf[:n], true)
	}
	return pos
}

func bigramListPos(dict DictionaryStructure, codePoints []rune, forceLowerCase bool) DictPosition {
	if len(codePoints) == 0 {
		return NotADictPos
	}
	nodePos := dict.TerminalNodePosition(codePoints, forceLowerCase)
	if nodePos == NotADictPos {
		return NotADictPos
	}
	return dict.BigramsPosition(nodePos)
}
