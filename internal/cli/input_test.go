package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bastiangx/wordctx/pkg/dictionary"
	"github.com/bastiangx/wordctx/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func run(t *testing.T, noFilter bool, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	h := NewInputHandler(suggest.NewPredictor(nil), 5, true, noFilter).
		WithIO(strings.NewReader(strings.Join(lines, "\n")), &out)
	require.NoError(t, h.Start())
	return out.String()
}

func TestPredictAfterBigrams(t *testing.T) {
	out := run(t, false,
		":bigram the end 90",
		":bigram the best 60",
		"The",
	)
	assert.Contains(t, out, "Added the -> end")
	found := strings.Index(out, "Found 2 predictions after 'The'")
	require.GreaterOrEqual(t, found, 0)
	results := out[found:]
	assert.Less(t, strings.Index(results, "end"), strings.Index(results, "best"))
}

func TestSentenceStart(t *testing.T) {
	out := run(t, false,
		":bigram ^I am 95",
		"I",
		"^I",
	)
	assert.Contains(t, out, "No predictions after 'I'")
	assert.Contains(t, out, "Found 1 predictions after '^I'")
}

func TestResolveCommand(t *testing.T) {
	out := run(t, false,
		":word the 10",
		":resolve The",
		":resolve zebra",
	)
	assert.Contains(t, out, "slot 1: 0")
	assert.Contains(t, out, "slot 1: none")
	assert.Contains(t, out, "slot 2: none")
}

func TestInputFiltering(t *testing.T) {
	out := run(t, false, "1234")
	assert.Contains(t, out, "Skipping invalid input")

	out = run(t, true, "1234")
	assert.Contains(t, out, "No predictions after '1234'")
}

func TestBadCommands(t *testing.T) {
	out := run(t, false,
		":",
		":word the",
		":word the x",
		":bigram a b",
		":nope",
	)
	assert.Contains(t, out, "Empty command")
	assert.Contains(t, out, "usage: :word")
	assert.Contains(t, out, `Invalid probability "x"`)
	assert.Contains(t, out, "usage: :bigram")
	assert.Contains(t, out, "Unknown command: nope")
}

func TestSaveCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.msgpack")
	out := run(t, false,
		":bigram the end 90",
		":bigram ^I am 95",
		":save "+path,
		":save",
		":save "+filepath.Join(t.TempDir(), "missing", "dict.msgpack"),
	)
	assert.Contains(t, out, "Saved snapshot to "+path)
	assert.Contains(t, out, "usage: :save")
	assert.Contains(t, out, "Failed to save snapshot")

	dict := dictionary.New(0)
	require.NoError(t, dict.LoadFile(path))
	p := suggest.NewPredictor(dict)
	assert.Equal(t, []suggest.Suggestion{{Word: "end", Probability: 90}}, p.Predict("the", false, 0))
	assert.Equal(t, []suggest.Suggestion{{Word: "am", Probability: 95}}, p.Predict("I", true, 0))
}
