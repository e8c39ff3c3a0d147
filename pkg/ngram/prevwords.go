package ngram

// prevWord is a borrowed view of one previous word. The code point slice is
// owned by the caller and is never copied on store.
type prevWord struct {
	codePoints          []rune
	count               int
	beginningOfSentence bool
}

// PrevWords holds up to MaxPrevWordCountForNGram previous words, most recent first.
// It does not own any code point buffer: the slices passed in must outlive it.
type PrevWords struct {
	words [MaxPrevWordCountForNGram]prevWord
}

// NewPrevWords returns a context with no previous word.
func NewPrevWords() PrevWords {
	return PrevWords{}
}

// NewPrevWordsWithWord returns a context holding one previous word in slot 1.
// Slots 2..MaxPrevWordCountForNGram stay empty; longer contexts are not built yet.
func NewPrevWordsWithWord(codePoints []rune, count int, beginningOfSentence bool) PrevWords {
	var pw PrevWords
	pw.words[0] = prevWord{
		codePoints:          codePoints,
		count:               count,
		beginningOfSentence: beginningOfSentence,
	}
	return pw
}

// IsValid reports whether every slot fits in MaxWordLength.
// Callers must check it before handing the context to the suggestion pipeline.
func (pw *PrevWords) IsValid() bool {
	for i := range pw.words {
		if pw.words[i].count > MaxWordLength {
			return false
		}
	}
	return true
}

// NthPrevWordCodePoints returns the code points of the n-th previous word (1-indexed).
// It returns nil for n outside [1, MaxPrevWordCountForNGram] or an empty slot.
func (pw *PrevWords) NthPrevWordCodePoints(n int) []rune {
	if n <= 0 || n > MaxPrevWordCountForNGram {
		return nil
	}
	return pw.words[n-1].codePoints
}

// NthPrevWordCodePointCount returns the length of the n-th previous word (1-indexed),
// or 0 when n is out of range.
func (pw *PrevWords) NthPrevWordCodePointCount(n int) int {
	if n <= 0 || n > MaxPrevWordCountForNGram {
		return 0
	}
	return pw.words[n-1].count
}

// IsNthBeginningOfSentence reports the begin-of-sentence flag of the n-th previous word.
func (pw *PrevWords) IsNthBeginningOfSentence(n int) bool {
	if n <= 0 || n > MaxPrevWordCountForNGram {
		return false
	}
	return pw.words[n-1].beginningOfSentence
}

// NthPrevWord returns the stored view of the n-th previous word and whether the
// slot is populated.
func (pw *PrevWords) NthPrevWord(n int) ([]rune, int, bool) {
	codePoints := pw.NthPrevWordCodePoints(n)
	if codePoints == nil {
		return nil, 0, false
	}
	return codePoints, pw.words[n-1].count, true
}
