// Package suggest turns the words typed before the cursor into next-word predictions.
package suggest

import "github.com/bastiangx/wordctx/pkg/ngram"

// IPredictor defines the interface for next-word prediction engines
type IPredictor interface {
	// Predict returns the most likely words to follow prevWord, best first
	Predict(prevWord string, beginningOfSentence bool, limit int) []Suggestion

	// Resolve returns the dictionary positions of the previous word slots
	Resolve(prevWord string, beginningOfSentence, tryLowerCase bool) [ngram.MaxPrevWordCountForNGram]ngram.DictPosition

	// AddWord adds a word, optionally as a sentence start
	AddWord(word string, beginningOfSentence bool, probability int) error

	// AddBigram records that next follows prev
	AddBigram(prev string, prevBeginningOfSentence bool, next string, probability int) error

	// Save writes a dictionary snapshot that can be loaded at the next start
	Save(path string) error

	// Stats returns statistics about the loaded dictionary
	Stats() map[string]int
}
