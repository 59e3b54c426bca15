package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bastiangx/addrdict/pkg/dictionary"
	"github.com/bastiangx/addrdict/pkg/record"
	"github.com/bastiangx/addrdict/pkg/suggest"
	"github.com/bastiangx/addrdict/pkg/trie"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Dictionary is the dataset the server answers from.
type Dictionary interface {
	Header() *record.Header
	Lookup(key string) *trie.Result[*record.Record]
	Complete(prefix string, limit int) []suggest.Suggestion
	Stats() dictionary.LoaderStats
}

// Config sets the server limits. Zero MaxResults returns every record.
type Config struct {
	MaxResults  int
	MaxComplete int
}

// Server handles the msgpack IPC for lookups
type Server struct {
	dict     Dictionary
	config   Config
	decoder  *msgpack.Decoder
	writer   *bufio.Writer
	encoder  *msgpack.Encoder
	requests int
}

// NewServer creates a server using stdin/stdout for IPC
func NewServer(dict Dictionary, config Config) *Server {
	return NewServerWithIO(dict, config, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server on the given streams
func NewServerWithIO(dict Dictionary, config Config, r io.Reader, w io.Writer) *Server {
	bw := bufio.NewWriter(w)
	return &Server{
		dict:    dict,
		config:  config,
		decoder: msgpack.NewDecoder(bufio.NewReader(r)),
		writer:  bw,
		encoder: msgpack.NewEncoder(bw),
	}
}

// Start serves requests until the input is closed. A request that cannot
// be decoded ends the stream.
func (s *Server) Start() error {
	log.Debug("Starting server")

	for {
		var req Request
		if err := s.decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				log.Debugf("Input closed after %d requests", s.requests)
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			if sendErr := s.sendError("", "invalid msgpack request", CodeBadRequest); sendErr != nil {
				return sendErr
			}
			return fmt.Errorf("failed to decode request: %w", err)
		}

		s.requests++
		if err := s.handleRequest(req); err != nil {
			return err
		}
	}
}

func (s *Server) handleRequest(req Request) error {
	switch req.Action {
	case "", ActionLookup:
		return s.handleLookup(req)
	case ActionComplete:
		return s.handleComplete(req)
	case ActionStats:
		return s.handleStats(req)
	default:
		return s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), CodeBadRequest)
	}
}

func (s *Server) handleLookup(req Request) error {
	if req.Key == "" {
		log.Debug("Key is empty in request")
		return s.sendError(req.ID, "missing 'k' parameter", CodeBadRequest)
	}

	start := time.Now()
	res := s.dict.Lookup(req.Key)
	elapsed := time.Since(start)

	header := s.dict.Header()
	matches := res.Matches
	if s.config.MaxResults > 0 && len(matches) > s.config.MaxResults {
		matches = matches[:s.config.MaxResults]
	}
	records := make([]map[string]string, len(matches))
	for i, rec := range matches {
		records[i] = header.Map(rec)
	}

	var key string
	if keys := res.Keys(); len(keys) > 0 {
		key = keys[0]
	}

	log.Debugf("Took [ %v ] for key '%s' (%s)", elapsed, req.Key, res.Outcome)
	return s.sendResponse(LookupResponse{
		ID:        req.ID,
		Outcome:   res.Outcome.String(),
		Key:       key,
		Records:   records,
		Count:     res.Len(),
		BitCmps:   res.BitCmps,
		NodeCmps:  res.NodeCmps,
		StrCmps:   res.StrCmps,
		TimeTaken: elapsed.Microseconds(),
	})
}

func (s *Server) handleComplete(req Request) error {
	limit := req.Limit
	if limit <= 0 || (s.config.MaxComplete > 0 && limit > s.config.MaxComplete) {
		limit = s.config.MaxComplete
	}

	start := time.Now()
	suggestions := s.dict.Complete(req.Prefix, limit)
	elapsed := time.Since(start)

	out := make([]CompletionSuggestion, len(suggestions))
	for i, sg := range suggestions {
		out[i] = CompletionSuggestion{Key: sg.Key, Count: sg.Count}
	}
	return s.sendResponse(CompletionResponse{
		ID:          req.ID,
		Suggestions: out,
		Count:       len(out),
		TimeTaken:   elapsed.Microseconds(),
	})
}

func (s *Server) handleStats(req Request) error {
	st := s.dict.Stats()
	return s.sendResponse(StatsResponse{
		ID:       req.ID,
		Records:  st.Records,
		Keys:     st.Keys,
		Skipped:  st.Skipped,
		MaxCount: st.MaxCount,
		Bytes:    st.Bytes,
		Requests: s.requests,
	})
}

// sendResponse encodes one response and flushes it
func (s *Server) sendResponse(response any) error {
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
		return fmt.Errorf("failed to encode response: %w", err)
	}
	if err := s.writer.Flush(); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}
	return nil
}

func (s *Server) sendError(id, message string, code int) error {
	return s.sendResponse(ErrorResponse{
		ID:    id,
		Error: message,
		Code:  code,
	})
}
