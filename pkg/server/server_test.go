package server

import (
	"bytes"
	"math"
	"path/filepath"
	"testing"

	"github.com/bastiangx/wordctx/pkg/config"
	"github.com/bastiangx/wordctx/pkg/dictionary"
	"github.com/bastiangx/wordctx/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

// serve runs the server over the encoded requests and returns a decoder
// positioned after the ready message.
func serve(t *testing.T, cfg *config.Config, requests ...Request) *msgpack.Decoder {
	t.Helper()
	var in, out bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, r := range requests {
		require.NoError(t, enc.Encode(r))
	}

	srv := NewServerWithIO(suggest.NewPredictor(nil), cfg, &in, &out)
	require.NoError(t, srv.Start())

	dec := msgpack.NewDecoder(&out)
	var ready StatusResponse
	require.NoError(t, dec.Decode(&ready))
	require.Equal(t, "ready", ready.Status)
	return dec
}

func seed() []Request {
	return []Request{
		{ID: "a1", Action: "add_bigram", Word: "the", Next: "end", Probability: 90},
		{ID: "a2", Action: "add_bigram", Word: "the", Next: "best", Probability: 60},
		{ID: "a3", Action: "add_bigram", Word: "the", Next: "way", Probability: 30},
		{ID: "a4", Action: "add_bigram", Word: "", BeginningOfSentence: true, Next: "I", Probability: 99},
	}
}

func skipStatuses(t *testing.T, dec *msgpack.Decoder, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		var st StatusResponse
		require.NoError(t, dec.Decode(&st))
		require.Equal(t, "ok", st.Status)
	}
}

func TestPredict(t *testing.T) {
	requests := append(seed(),
		Request{ID: "p1", Action: "predict", Word: "The", Limit: 2},
		Request{ID: "p2", Action: "predict", Word: "", BeginningOfSentence: true},
		Request{ID: "p3", Action: "predict", Word: "unknown"},
	)
	dec := serve(t, nil, requests...)
	skipStatuses(t, dec, len(seed()))

	var p1 PredictionResponse
	require.NoError(t, dec.Decode(&p1))
	assert.Equal(t, "p1", p1.ID)
	assert.Equal(t, 2, p1.Count)
	assert.Equal(t, []PredictionSuggestion{
		{Word: "end", Probability: 90, Rank: 1},
		{Word: "best", Probability: 60, Rank: 2},
	}, p1.Suggestions)

	var p2 PredictionResponse
	require.NoError(t, dec.Decode(&p2))
	require.Equal(t, 1, p2.Count)
	assert.Equal(t, "I", p2.Suggestions[0].Word)

	var p3 PredictionResponse
	require.NoError(t, dec.Decode(&p3))
	assert.Zero(t, p3.Count)
	assert.Empty(t, p3.Suggestions)
}

func TestPredictLimitIsClamped(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.MaxLimit = 1
	dec := serve(t, cfg, append(seed(), Request{ID: "p", Action: "predict", Word: "the", Limit: 50})...)
	skipStatuses(t, dec, len(seed()))

	var resp PredictionResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, 1, resp.Count)
}

func TestResolve(t *testing.T) {
	off := false
	requests := append(seed(),
		Request{ID: "r1", Action: "resolve", Word: "The"},
		Request{ID: "r2", Action: "resolve", Word: "The", TryLowerCase: &off},
	)
	dec := serve(t, nil, requests...)
	skipStatuses(t, dec, len(seed()))

	var r1, r2 ResolveResponse
	require.NoError(t, dec.Decode(&r1))
	require.NoError(t, dec.Decode(&r2))

	require.Len(t, r1.Positions, 2)
	assert.Equal(t, int32(0), r1.Positions[0], "\"the\" was the first word added")
	assert.Equal(t, int32(math.MinInt32), r1.Positions[1])
	assert.Equal(t, int32(math.MinInt32), r2.Positions[0])
}

func TestErrors(t *testing.T) {
	dec := serve(t, nil,
		Request{ID: "e1", Action: "explode"},
		Request{ID: "e2", Action: "add_word", Word: ""},
		Request{ID: "h", Action: "health"},
	)

	var e1, e2 ErrorResponse
	require.NoError(t, dec.Decode(&e1))
	assert.Equal(t, "e1", e1.ID)
	assert.Equal(t, 400, e1.Code)
	assert.Contains(t, e1.Error, "explode")

	require.NoError(t, dec.Decode(&e2))
	assert.Equal(t, "e2", e2.ID)
	assert.NotEmpty(t, e2.Error)

	var health StatusResponse
	require.NoError(t, dec.Decode(&health))
	assert.Equal(t, "ok", health.Status)
	assert.Contains(t, health.Stats, "totalWords")
}

func TestMalformedStream(t *testing.T) {
	var out bytes.Buffer
	srv := NewServerWithIO(suggest.NewPredictor(nil), nil, bytes.NewReader([]byte{0xc1}), &out)
	assert.Error(t, srv.Start())
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		name         string
		defaultLimit int
		maxLimit     int
		requested    int
		want         int
	}{
		{"default applies", 10, 64, 0, 10},
		{"max applies", 10, 64, 500, 64},
		{"within bounds", 10, 64, 5, 5},
		{"unbounded max keeps request", 10, 0, 65000, 65000},
		{"unbounded max caps at uint16", 10, 0, 1 << 20, math.MaxUint16},
		{"configured max above uint16", 10, 1 << 20, 1 << 20, math.MaxUint16},
		{"zero default and no max", 0, 0, 0, math.MaxUint16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Server.DefaultLimit = tt.defaultLimit
			cfg.Server.MaxLimit = tt.maxLimit
			srv := NewServerWithIO(suggest.NewPredictor(nil), cfg, &bytes.Buffer{}, &bytes.Buffer{})
			assert.Equal(t, tt.want, srv.clampLimit(tt.requested))
		})
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.msgpack")
	requests := append(seed(),
		Request{ID: "s1", Action: "save", Path: path},
		Request{ID: "s2", Action: "save"},
		Request{ID: "s3", Action: "save", Path: filepath.Join(t.TempDir(), "missing", "dict.msgpack")},
	)
	dec := serve(t, nil, requests...)
	skipStatuses(t, dec, len(seed()))

	var saved StatusResponse
	require.NoError(t, dec.Decode(&saved))
	assert.Equal(t, "s1", saved.ID)
	assert.Equal(t, "ok", saved.Status)

	var noPath, badPath ErrorResponse
	require.NoError(t, dec.Decode(&noPath))
	assert.Equal(t, 400, noPath.Code)
	require.NoError(t, dec.Decode(&badPath))
	assert.Equal(t, "s3", badPath.ID)
	assert.Equal(t, 500, badPath.Code)

	dict := dictionary.New(0)
	require.NoError(t, dict.LoadFile(path))
	got := suggest.NewPredictor(dict).Predict("the", false, 0)
	require.Len(t, got, 3)
	assert.Equal(t, "end", got[0].Word)
}
