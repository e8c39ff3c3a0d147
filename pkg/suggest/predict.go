package suggest

import (
	"slices"

	"github.com/bastiangx/wordctx/pkg/charutil"
	"github.com/bastiangx/wordctx/pkg/dictionary"
	"github.com/bastiangx/wordctx/pkg/ngram"
	"github.com/charmbracelet/log"
)

// Suggestion is one predicted next word.
type Suggestion struct {
	Word        string
	Probability int
}

// Predictor answers next-word queries against a dictionary.
type Predictor struct {
	dict     *dictionary.Dictionary
	hotCache *HotCache
}

// NewPredictor wraps dict. A nil dict starts empty.
func NewPredictor(dict *dictionary.Dictionary) *Predictor {
	if dict == nil {
		dict = dictionary.New(0)
	}
	return &Predictor{dict: dict}
}

// NewCachedPredictor is NewPredictor with a hot cache of maxHotWords previous words.
func NewCachedPredictor(dict *dictionary.Dictionary, maxHotWords int) *Predictor {
	p := NewPredictor(dict)
	if maxHotWords > 0 {
		p.hotCache = NewHotCache(maxHotWords)
	}
	return p
}

// Dictionary returns the underlying dictionary.
func (p *Predictor) Dictionary() *dictionary.Dictionary {
	return p.dict
}

// prevWords builds the context for one request. An empty word outside a
// sentence start means there is no context at all; an empty word at a
// sentence start still carries the marker.
func prevWords(prevWord []rune, beginningOfSentence bool) ngram.PrevWords {
	if len(prevWord) == 0 && !beginningOfSentence {
		return ngram.NewPrevWords()
	}
	if prevWord == nil {
		prevWord = []rune{}
	}
	return ngram.NewPrevWordsWithWord(prevWord, len(prevWord), beginningOfSentence)
}

// Predict walks the bigram list of prevWord and returns up to limit words.
// limit <= 0 returns the whole list.
func (p *Predictor) Predict(prevWord string, beginningOfSentence bool, limit int) []Suggestion {
	if p.hotCache == nil {
		return p.predict(prevWord, beginningOfSentence, limit)
	}
	list, ok := p.hotCache.Get(prevWord, beginningOfSentence)
	if !ok {
		gen := p.hotCache.Generation()
		list = p.predict(prevWord, beginningOfSentence, 0)
		p.hotCache.PutIfGeneration(prevWord, beginningOfSentence, list, gen)
	}
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return slices.Clone(list)
}

func (p *Predictor) predict(prevWord string, beginningOfSentence bool, limit int) []Suggestion {
	word := []rune(prevWord)
	pw := prevWords(word, beginningOfSentence)
	if !pw.IsValid() {
		log.Debugf("Previous word too long (%d code points), predicting without context", len(word))
		return nil
	}

	var suggestions []Suggestion
	for b := range pw.LocateBigramsForPrediction(p.dict).All() {
		cps, _, ok := p.dict.WordAt(b.TargetPos)
		if !ok || charutil.IsBeginningOfSentence(cps) {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Word:        string(cps),
			Probability: b.Probability,
		})
		if limit > 0 && len(suggestions) >= limit {
			break
		}
	}
	return suggestions
}

// Resolve returns the terminal positions of the context built from prevWord.
func (p *Predictor) Resolve(prevWord string, beginningOfSentence, tryLowerCase bool) [ngram.MaxPrevWordCountForNGram]ngram.DictPosition {
	pw := prevWords([]rune(prevWord), beginningOfSentence)
	return pw.ResolvePositions(p.dict, tryLowerCase)
}

// AddWord adds word to the dictionary.
func (p *Predictor) AddWord(word string, beginningOfSentence bool, probability int) error {
	if _, err := p.dict.AddWord(withMarker(word, beginningOfSentence), probability); err != nil {
		return err
	}
	p.invalidate()
	return nil
}

// AddBigram adds a (prev, next) pair to the dictionary.
func (p *Predictor) AddBigram(prev string, prevBeginningOfSentence bool, next string, probability int) error {
	if err := p.dict.AddBigram(withMarker(prev, prevBeginningOfSentence), []rune(next), probability); err != nil {
		return err
	}
	p.invalidate()
	return nil
}

// Save writes a snapshot of the dictionary to path.
func (p *Predictor) Save(path string) error {
	return p.dict.SaveFile(path)
}

func (p *Predictor) invalidate() {
	if p.hotCache != nil {
		p.hotCache.Clear()
	}
}

// Stats returns dictionary counters.
func (p *Predictor) Stats() map[string]int {
	s := p.dict.Stats()
	stats := map[string]int{
		"totalWords":  s.Words,
		"bigramLists": s.BigramLists,
		"bigrams":     s.Bigrams,
	}
	if p.hotCache != nil {
		for k, v := range p.hotCache.Stats() {
			stats[k] = v
		}
	}
	return stats
}

func withMarker(word string, beginningOfSentence bool) []rune {
	cps := []rune(word)
	if !beginningOfSentence {
		return cps
	}
	buf := make([]rune, len(cps)+1)
	n := copy(buf, cps)
	n = charutil.AttachBeginningOfSentenceMarker(buf, n, len(buf))
	return buf[:n]
}

var _ IPredictor = (*Predictor)(nil)
