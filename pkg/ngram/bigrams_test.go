package ngram

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(it *BigramsIterator) []Bigram {
	return slices.Collect(it.All())
}

func TestLocateBigramsEmptyContext(t *testing.T) {
	dict := newStubDict()
	dict.addWord("the", 1)
	dict.addBigrams(1, 100, Bigram{TargetPos: 2, Probability: 50})

	pw := NewPrevWords()
	it := pw.LocateBigramsForPrediction(dict)
	require.False(t, it.HasNext())
	assert.Empty(t, collect(it))
	assert.Empty(t, dict.lookups)
}

func TestLocateBigramsNilDictionary(t *testing.T) {
	word := []rune("the")
	pw := NewPrevWordsWithWord(word, len(word), false)
	assert.Empty(t, collect(pw.LocateBigramsForPrediction(nil)))
}

func TestLocateBigramsExactCase(t *testing.T) {
	dict := newStubDict()
	dict.addWord("New", 1)
	dict.addWord("new", 2)
	dict.addBigrams(1, 100, Bigram{TargetPos: 5, Probability: 90}, Bigram{TargetPos: 6, Probability: 40})
	dict.addBigrams(2, 200, Bigram{TargetPos: 7, Probability: 10})

	word := []rune("New")
	pw := NewPrevWordsWithWord(word, len(word), false)

	got := collect(pw.LocateBigramsForPrediction(dict))
	assert.Equal(t, []Bigram{{TargetPos: 5, Probability: 90}, {TargetPos: 6, Probability: 40}}, got)
	assert.Equal(t, []lookup{{word: "New"}}, dict.lookups)
}

func TestLocateBigramsFallsBackWhenExactHasNoList(t *testing.T) {
	dict := newStubDict()
	dict.addWord("The", 1)
	dict.addWord("the", 2)
	dict.addBigrams(2, 200, Bigram{TargetPos: 9, Probability: 70})

	word := []rune("The")
	pw := NewPrevWordsWithWord(word, len(word), false)

	got := collect(pw.LocateBigramsForPrediction(dict))
	assert.Equal(t, []Bigram{{TargetPos: 9, Probability: 70}}, got)
	assert.Equal(t, []lookup{{word: "The"}, {word: "the", forceLowerCase: true}}, dict.lookups)
}

func TestLocateBigramsFallsBackWhenExactIsUnknown(t *testing.T) {
	dict := newStubDict()
	dict.addWord("the", 2)
	dict.addBigrams(2, 200, Bigram{TargetPos: 9, Probability: 70})

	word := []rune("THE")
	pw := NewPrevWordsWithWord(word, len(word), false)

	got := collect(pw.LocateBigramsForPrediction(dict))
	assert.Len(t, got, 1)
}

func TestLocateBigramsBeginningOfSentence(t *testing.T) {
	dict := newStubDict()
	dict.addSentenceStart("i", 3)
	dict.addBigrams(3, 300, Bigram{TargetPos: 4, Probability: 80})

	word := []rune("I")
	pw := NewPrevWordsWithWord(word, len(word), true)

	got := collect(pw.LocateBigramsForPrediction(dict))
	assert.Equal(t, []Bigram{{TargetPos: 4, Probability: 80}}, got)
}

func TestLocateBigramsUnknownWord(t *testing.T) {
	dict := newStubDict()
	word := []rune("zzz")
	pw := NewPrevWordsWithWord(word, len(word), false)

	it := pw.LocateBigramsForPrediction(dict)
	assert.False(t, it.HasNext())
	assert.Len(t, dict.lookups, 2)
}

func TestBigramsIteratorNextPastEnd(t *testing.T) {
	it := NewBigramsIterator(nil, 0)
	require.False(t, it.HasNext())
	assert.Equal(t, NotADictPos, it.Next().TargetPos)
}

func TestBigramsIteratorAllStopsEarly(t *testing.T) {
	dict := newStubDict()
	dict.addBigrams(1, 10, Bigram{TargetPos: 1}, Bigram{TargetPos: 2}, Bigram{TargetPos: 3})

	it := NewBigramsIterator(dict, 10)
	for b := range it.All() {
		assert.Equal(t, DictPosition(1), b.TargetPos)
		break
	}
	require.True(t, it.HasNext())
	assert.Equal(t, DictPosition(2), it.Next().TargetPos)
}
