/*
Package server implements msgpack IPC for next-word prediction services.

The server reads a stream of msgpack maps from stdin and answers each one with
a single msgpack map on stdout. Every request carries an ID and an action.

# IPC

Predict the words following the previous word:

	{"id": "req_001", "action": "predict", "w": "The", "l": 3}

The server answers with the bigram list of that word, best first:

	{"id": "req_001", "s": [{"w": "end", "p": 90, "r": 1}, {"w": "best", "p": 60, "r": 2}], "c": 2, "t": 12}

"bos" marks the word as the first of a sentence; an empty "w" with "bos" set
predicts sentence openers.

Resolve the dictionary positions of the previous word slots:

	{"id": "req_002", "action": "resolve", "w": "The", "lc": true}
	{"id": "req_002", "pos": [1042, -2147483648]}

Unresolved slots carry the minimum int32.

Grow the dictionary at runtime:

	{"id": "req_003", "action": "add_word", "w": "hello", "p": 120}
	{"id": "req_004", "action": "add_bigram", "w": "hello", "n": "world", "p": 80}

Persist everything added so far as a snapshot that -snapshot can load later:

	{"id": "req_005", "action": "save", "path": "/tmp/wordctx.msgpack"}
	{"id": "req_005", "status": "ok"}

Failures come back as {"id", "e", "c"} and never stop the server.
*/
package server

// Request is the envelope for every action.
type Request struct {
	ID                  string `msgpack:"id"`
	Action              string `msgpack:"action"`
	Word                string `msgpack:"w"`
	BeginningOfSentence bool   `msgpack:"bos,omitempty"`
	TryLowerCase        *bool  `msgpack:"lc,omitempty"`   // resolve only, defaults to config
	Next                string `msgpack:"n,omitempty"`    // add_bigram only
	Probability         int    `msgpack:"p,omitempty"`    // add_word and add_bigram
	Limit               int    `msgpack:"l,omitempty"`    // predict only
	Path                string `msgpack:"path,omitempty"` // save only
}

// PredictionSuggestion - minimal suggestion response
type PredictionSuggestion struct {
	Word        string `msgpack:"w"`
	Probability int    `msgpack:"p"`
	Rank        uint16 `msgpack:"r"`
}

// PredictionResponse - prediction response
type PredictionResponse struct {
	ID          string                 `msgpack:"id"`
	Suggestions []PredictionSuggestion `msgpack:"s"`
	Count       int                    `msgpack:"c"`
	TimeTaken   int64                  `msgpack:"t"` // microseconds
}

// ResolveResponse - per slot terminal positions
type ResolveResponse struct {
	ID        string  `msgpack:"id"`
	Positions []int32 `msgpack:"pos"`
}

// StatusResponse - dictionary update and health response
type StatusResponse struct {
	ID     string         `msgpack:"id,omitempty"`
	Status string         `msgpack:"status"`
	Stats  map[string]int `msgpack:"stats,omitempty"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
