package suggest

import (
	"math"
	"sync"

	"github.com/charmbracelet/log"
)

// cacheKey identifies a prediction context.
type cacheKey struct {
	word string
	bos  bool
}

// HotCache keeps the full prediction lists of recently seen previous words.
// Dictionary updates made through the Predictor clear it as a whole, and each
// Clear starts a new generation so lists computed before it are never stored.
type HotCache struct {
	entries     map[cacheKey][]Suggestion
	accessTime  map[cacheKey]int64
	accessCount int64
	hits        int64
	generation  uint64
	maxWords    int
	mu          sync.Mutex
}

// NewHotCache creates a cache holding at most maxWords previous words.
func NewHotCache(maxWords int) *HotCache {
	return &HotCache{
		entries:    make(map[cacheKey][]Suggestion, maxWords),
		accessTime: make(map[cacheKey]int64, maxWords),
		maxWords:   maxWords,
	}
}

// Get returns the cached list for a previous word.
func (hc *HotCache) Get(word string, bos bool) ([]Suggestion, bool) {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	key := cacheKey{word: word, bos: bos}
	list, ok := hc.entries[key]
	if ok {
		hc.hits++
		hc.markAccessed(key)
	}
	return list, ok
}

// Generation returns the current generation. Read it before computing a list
// that will be handed to PutIfGeneration.
func (hc *HotCache) Generation() uint64 {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	return hc.generation
}

// Put stores the full list for a previous word, evicting the least recently used entry if full.
func (hc *HotCache) Put(word string, bos bool, list []Suggestion) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.putLocked(word, bos, list)
}

// PutIfGeneration stores list only if no Clear happened since gen was read.
// It reports whether the list was stored.
func (hc *HotCache) PutIfGeneration(word string, bos bool, list []Suggestion, gen uint64) bool {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	if gen != hc.generation {
		log.Debugf("Dropped stale list for '%s'", word)
		return false
	}
	hc.putLocked(word, bos, list)
	return true
}

func (hc *HotCache) putLocked(word string, bos bool, list []Suggestion) {
	key := cacheKey{word: word, bos: bos}
	if _, exists := hc.entries[key]; !exists && len(hc.entries) >= hc.maxWords {
		hc.evictLRU()
	}
	hc.entries[key] = list
	hc.markAccessed(key)
}

// Clear drops every entry.
func (hc *HotCache) Clear() {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	clear(hc.entries)
	clear(hc.accessTime)
	hc.generation++
}

// Stats returns cache counters.
func (hc *HotCache) Stats() map[string]int {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	return map[string]int{
		"hotCacheWords": len(hc.entries),
		"maxHotWords":   hc.maxWords,
		"hotCacheHits":  int(hc.hits),
	}
}

func (hc *HotCache) markAccessed(key cacheKey) {
	hc.accessCount++
	hc.accessTime[key] = hc.accessCount
}

func (hc *HotCache) evictLRU() {
	var oldest cacheKey
	var oldestTime int64 = math.MaxInt64
	for key, t := range hc.accessTime {
		if t < oldestTime {
			oldestTime = t
			oldest = key
		}
	}
	if oldestTime == math.MaxInt64 {
		return
	}
	delete(hc.entries, oldest)
	delete(hc.accessTime, oldest)
	log.Debugf("Evicted '%s' from hot cache", oldest.word)
}
