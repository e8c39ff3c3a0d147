// Package cli handles cmd line input and predictions for DBG and testing various features
package cli

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bastiangx/wordctx/internal/logger"
	"github.com/bastiangx/wordctx/internal/utils"
	"github.com/bastiangx/wordctx/pkg/ngram"
	"github.com/bastiangx/wordctx/pkg/suggest"
	"github.com/charmbracelet/log"
)

// sentenceStartMark flags a word typed at the beginning of a sentence.
const sentenceStartMark = "^"

// InputHandler reads previous words from stdin and prints the predicted next
// words. Lines starting with ':' are commands that edit or inspect the dictionary:
//
//	:word <w> <p>             add a word
//	:bigram <prev> <next> <p> add a bigram
//	:resolve <w>              print the dictionary positions of w
//	:stats                    print dictionary counters
//	:save <path>              write a snapshot for -snapshot
//
// Any word may carry a leading '^' to mark it as the start of a sentence.
type InputHandler struct {
	predictor    suggest.IPredictor
	suggestLimit int
	tryLowerCase bool
	noFilter     bool
	in           io.Reader
	out          *log.Logger
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(predictor suggest.IPredictor, limit int, tryLowerCase, noFilter bool) *InputHandler {
	return &InputHandler{
		predictor:    predictor,
		suggestLimit: limit,
		tryLowerCase: tryLowerCase,
		noFilter:     noFilter,
		in:           os.Stdin,
		out:          logger.NewWithWriter("", os.Stdout),
	}
}

// WithIO swaps stdin/stdout for the given reader and writer.
func (h *InputHandler) WithIO(in io.Reader, out io.Writer) *InputHandler {
	h.in = in
	h.out = logger.NewWithWriter("", out)
	return h
}

// Start runs the loop until the input is exhausted.
func (h *InputHandler) Start() error {
	h.out.Print("WordCtx CLI [BETA]")
	h.out.Print("type the previous word and press Enter to see what comes next (Ctrl+C to exit):")

	reader := bufio.NewReader(h.in)
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if line != "" {
			h.handleInput(line)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func (h *InputHandler) handleInput(line string) {
	if strings.HasPrefix(line, ":") {
		h.handleCommand(strings.Fields(line[1:]))
		return
	}

	word, bos := splitSentenceStart(line)
	if word != "" && !h.noFilter && !utils.IsValidInput(word) {
		h.out.Printf("Skipping invalid input: '%s'", word)
		return
	}

	start := time.Now()
	suggestions := h.predictor.Predict(word, bos, h.suggestLimit)
	log.Debugf("Took [ %v ] for previous word '%s'", time.Since(start), line)

	if len(suggestions) == 0 {
		h.out.Printf("No predictions after '%s'", line)
		return
	}
	h.out.Printf("Found %d predictions after '%s':", len(suggestions), line)
	for i, s := range suggestions {
		h.out.Printf("%2d. %-32s (prob: %8s)", i+1, s.Word, utils.FormatWithCommas(s.Probability))
	}
}

func (h *InputHandler) handleCommand(args []string) {
	if len(args) == 0 {
		h.out.Print("Empty command")
		return
	}

	switch args[0] {
	case "word":
		if len(args) != 3 {
			h.out.Print("usage: :word <w> <probability>")
			return
		}
		prob, err := strconv.Atoi(args[2])
		if err != nil {
			h.out.Printf("Invalid probability %q", args[2])
			return
		}
		word, bos := splitSentenceStart(args[1])
		if err := h.predictor.AddWord(word, bos, prob); err != nil {
			h.out.Printf("Failed to add word: %v", err)
			return
		}
		h.out.Printf("Added %s", args[1])

	case "bigram":
		if len(args) != 4 {
			h.out.Print("usage: :bigram <prev> <next> <probability>")
			return
		}
		prob, err := strconv.Atoi(args[3])
		if err != nil {
			h.out.Printf("Invalid probability %q", args[3])
			return
		}
		prev, bos := splitSentenceStart(args[1])
		if err := h.predictor.AddBigram(prev, bos, args[2], prob); err != nil {
			h.out.Printf("Failed to add bigram: %v", err)
			return
		}
		h.out.Printf("Added %s -> %s", args[1], args[2])

	case "resolve":
		if len(args) != 2 {
			h.out.Print("usage: :resolve <w>")
			return
		}
		word, bos := splitSentenceStart(args[1])
		positions := h.predictor.Resolve(word, bos, h.tryLowerCase)
		for i, pos := range positions {
			if pos == ngram.NotADictPos {
				h.out.Printf("slot %d: none", i+1)
				continue
			}
			h.out.Printf("slot %d: %d", i+1, pos)
		}

	case "stats":
		for k, v := range h.predictor.Stats() {
			h.out.Printf("%-12s %s", k, utils.FormatWithCommas(v))
		}

	case "save":
		if len(args) != 2 {
			h.out.Print("usage: :save <path>")
			return
		}
		if err := h.predictor.Save(args[1]); err != nil {
			h.out.Printf("Failed to save snapshot: %v", err)
			return
		}
		h.out.Printf("Saved snapshot to %s", args[1])

	default:
		h.out.Printf("Unknown command: %s", args[0])
	}
}

func splitSentenceStart(word string) (string, bool) {
	if strings.HasPrefix(word, sentenceStartMark) {
		return word[len(sentenceStartMark):], true
	}
	return word, false
}
