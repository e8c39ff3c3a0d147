package ngram

import "github.com/bastiangx/wordctx/pkg/charutil"

// ResolvePositions returns the terminal node position of every previous word slot.
// Empty or invalid slots resolve to NotADictPos.
//
// Each word is looked up with its exact case first. When that misses and
// tryLowerCaseSearch is set, the lookup is repeated lowercased, so an
// auto-capitalized "The" still finds "the" while a proper noun stored with its
// capital is never shadowed.
func (pw *PrevWords) ResolvePositions(dict DictionaryStructure, tryLowerCaseSearch bool) [MaxPrevWordCountForNGram]DictPosition {
	var out [MaxPrevWordCountForNGram]DictPosition
	for i := range pw.words {
		w := &pw.words[i]
		out[i] = terminalPosOfWord(dict, w.codePoints, w.count, w.beginningOfSentence, tryLowerCaseSearch)
	}
	return out
}

// prepareWord copies the word into buf and attaches the beginning-of-sentence
// marker when asked. It returns -1 when the word cannot be looked up.
func prepareWord(dict DictionaryStructure, buf *[MaxWordLength]rune, codePoints []rune, count int, beginningOfSentence bool) int {
	if dict == nil || codePoints == nil || count > MaxWordLength || count < 0 || count > len(codePoints) {
		return -1
	}
	n := copy(buf[:], codePoints[:count])
	if beginningOfSentence {
		n = charutil.AttachBeginningOfSentenceMarker(buf[:], n, MaxWordLength)
		if n <= 0 {
			return -1
		}
	}
	return n
}

func terminalPosOfWord(dict DictionaryStructure, codePoints []rune, count int, beginningOfSentence, tryLowerCaseSearch bool) DictPosition {
	var buf [MaxWordLength]rune
	n := prepareWord(dict, &buf, codePoints, count, beginningOfSentence)
	if n < 0 {
		return NotADictPos
	}
	pos := dict.TerminalNodePosition(buf[:n], false)
	if pos != NotADictPos || !tryLowerCaseSearch {
		return pos
	}
	return dict.TerminalNodePosition(buf[:n], true)
}
