package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/bastiangx/wordctx/internal/logger"
	"github.com/bastiangx/wordctx/internal/utils"
	"github.com/bastiangx/wordctx/pkg/config"
	"github.com/bastiangx/wordctx/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles the IPC for next-word predictions
type Server struct {
	predictor suggest.IPredictor
	config    *config.Config
	decoder   *msgpack.Decoder
	writer    *bufio.Writer
	encoder   *msgpack.Encoder
	log       *log.Logger
}

// NewServer creates a prediction server using stdin/stdout for IPC
func NewServer(predictor suggest.IPredictor, cfg *config.Config) *Server {
	return NewServerWithIO(predictor, cfg, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a prediction server on the given streams
func NewServerWithIO(predictor suggest.IPredictor, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	bw := bufio.NewWriter(w)
	return &Server{
		predictor: predictor,
		config:    cfg,
		decoder:   msgpack.NewDecoder(bufio.NewReader(r)),
		writer:    bw,
		encoder:   msgpack.NewEncoder(bw),
		log:       logger.New("server"),
	}
}

// Start serves requests until the input stream ends.
// A malformed stream cannot be resynchronized, so a decode error ends the loop.
func (s *Server) Start() error {
	s.log.Debug("Starting Server.")
	s.sendResponse(StatusResponse{Status: "ready"})

	for {
		var req Request
		if err := s.decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				s.log.Debug("Client disconnected (EOF)")
				return nil
			}
			s.sendError("", "Invalid msgpack request", 400)
			return fmt.Errorf("failed to decode request: %w", err)
		}
		s.handleRequest(req)
	}
}

func (s *Server) handleRequest(req Request) {
	switch req.Action {
	case "predict":
		s.handlePredict(req)
	case "resolve":
		s.handleResolve(req)
	case "add_word":
		if err := s.predictor.AddWord(req.Word, req.BeginningOfSentence, req.Probability); err != nil {
			s.sendError(req.ID, err.Error(), 400)
			return
		}
		s.sendResponse(StatusResponse{ID: req.ID, Status: "ok"})
	case "add_bigram":
		if err := s.predictor.AddBigram(req.Word, req.BeginningOfSentence, req.Next, req.Probability); err != nil {
			s.sendError(req.ID, err.Error(), 400)
			return
		}
		s.sendResponse(StatusResponse{ID: req.ID, Status: "ok"})
	case "save":
		if req.Path == "" {
			s.sendError(req.ID, "Missing snapshot path", 400)
			return
		}
		if err := s.predictor.Save(req.Path); err != nil {
			s.log.Errorf("Saving snapshot: %v", err)
			s.sendError(req.ID, err.Error(), 500)
			return
		}
		s.log.Infof("Saved snapshot to %s", req.Path)
		s.sendResponse(StatusResponse{ID: req.ID, Status: "ok"})
	case "health":
		s.sendResponse(StatusResponse{ID: req.ID, Status: "ok", Stats: s.predictor.Stats()})
	default:
		s.sendError(req.ID, fmt.Sprintf("Unknown action: %s", req.Action), 400)
	}
}

// clampLimit applies the configured default and maximum to a requested limit.
// Ranks are uint16, so no response may carry more than math.MaxUint16 entries.
func (s *Server) clampLimit(requested int) int {
	limit := requested
	if limit < 1 {
		limit = s.config.Server.DefaultLimit
	}
	if s.config.Server.MaxLimit > 0 && limit > s.config.Server.MaxLimit {
		limit = s.config.Server.MaxLimit
	}
	if limit < 1 || limit > math.MaxUint16 {
		limit = math.MaxUint16
	}
	return limit
}

func (s *Server) handlePredict(req Request) {
	limit := s.clampLimit(req.Limit)

	start := time.Now()
	suggestions := s.predictor.Predict(req.Word, req.BeginningOfSentence, limit)
	elapsed := time.Since(start)

	ranks := utils.CreateRankList(len(suggestions))
	resp := PredictionResponse{
		ID:          req.ID,
		Suggestions: make([]PredictionSuggestion, len(suggestions)),
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	}
	for i, sg := range suggestions {
		resp.Suggestions[i] = PredictionSuggestion{
			Word:        sg.Word,
			Probability: sg.Probability,
			Rank:        ranks[i],
		}
	}
	s.log.Debugf("predict %q bos=%v: %d results in %v", req.Word, req.BeginningOfSentence, resp.Count, elapsed)
	s.sendResponse(resp)
}

func (s *Server) handleResolve(req Request) {
	tryLowerCase := s.config.NGram.TryLowerCase
	if req.TryLowerCase != nil {
		tryLowerCase = *req.TryLowerCase
	}
	positions := s.predictor.Resolve(req.Word, req.BeginningOfSentence, tryLowerCase)

	resp := ResolveResponse{ID: req.ID, Positions: make([]int32, len(positions))}
	for i, pos := range positions {
		resp.Positions[i] = int32(pos)
	}
	s.sendResponse(resp)
}

// sendResponse encodes one response and flushes it so the client sees it immediately.
func (s *Server) sendResponse(response any) {
	if err := s.encoder.Encode(response); err != nil {
		s.log.Errorf("Encoding response: %v", err)
		return
	}
	if err := s.writer.Flush(); err != nil {
		s.log.Errorf("Writing response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(ErrorResponse{ID: id, Error: message, Code: code})
}
