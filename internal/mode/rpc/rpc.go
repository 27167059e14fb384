// ABOUTME: RPC mode for external comparison frontends
// ABOUTME: JSONL-based protocol over stdin/stdout

package rpc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Server handles RPC requests from an external client.
type Server struct {
	reader  *bufio.Scanner
	writer  io.Writer
	handler func(Request) Response
}

// NewServer creates an RPC server reading from stdin, writing to stdout,
// dispatching through a fresh comparison router.
func NewServer() *Server {
	router := NewComparisonRouter(NewRegistry())
	return NewServerIO(os.Stdin, os.Stdout, router.Handle)
}

// NewServerIO creates an RPC server over explicit streams, for tests.
func NewServerIO(in io.Reader, out io.Writer, handler func(Request) Response) *Server {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Server{
		reader:  scanner,
		writer:  out,
		handler: handler,
	}
}

// Run starts the RPC server loop. It returns when the input stream closes.
func (s *Server) Run() error {
	for s.reader.Scan() {
		var req Request
		if err := json.Unmarshal(s.reader.Bytes(), &req); err != nil {
			s.sendError("", ErrCodeParse, fmt.Sprintf("parse error: %v", err))
			continue
		}

		resp := s.handler(req)
		resp.ID = req.ID

		data, err := json.Marshal(resp)
		if err != nil {
			s.sendError(req.ID, ErrCodeInternal, fmt.Sprintf("internal error: %v", err))
			continue
		}

		data = append(data, '\n')
		if _, err := s.writer.Write(data); err != nil {
			return fmt.Errorf("writing response: %w", err)
		}
	}

	return s.reader.Err()
}

func (s *Server) sendError(id string, code int, message string) {
	resp := Response{
		ID:    id,
		Error: &Error{Code: code, Message: message},
	}
	data, _ := json.Marshal(resp)
	data = append(data, '\n')
	_, _ = s.writer.Write(data)
}
