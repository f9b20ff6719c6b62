package network

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"

	"github.com/google/uuid"

	"github.com/loamdb/loam/internal/engine"
)

type Request struct {
	Query string `json:"query"`
}

type Response struct {
	Result *engine.Result `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// Start runs the TCP server: newline-delimited JSON requests, one
// goroutine per connection. The server only calls Execute and ships
// the result or the error message back unchanged.
func Start(port int, eng *engine.Engine) error {
	addr := fmt.Sprintf(":%d", port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind to port %d: %w", port, err)
	}
	defer listener.Close()

	slog.Info("server listening", slog.Int("port", port))

	for {
		conn, err := listener.Accept()
		if err != nil {
			slog.Error("failed to accept connection", slog.Any("error", err))
			continue
		}
		go handleConnection(conn, eng)
	}
}

func handleConnection(conn net.Conn, eng *engine.Engine) {
	defer conn.Close()

	sessionID := uuid.NewString()
	slog.Info("session opened",
		slog.String("session_id", sessionID),
		slog.String("remote", conn.RemoteAddr().String()),
	)

	decoder := json.NewDecoder(conn)
	encoder := json.NewEncoder(conn)

	for {
		var req Request
		if err := decoder.Decode(&req); err != nil {
			if err == io.EOF {
				slog.Info("session closed", slog.String("session_id", sessionID))
				return
			}
			slog.Error("decode error",
				slog.String("session_id", sessionID),
				slog.Any("error", err),
			)
			_ = encoder.Encode(Response{Error: fmt.Sprintf("invalid request: %v", err)})
			return
		}

		if req.Query == "exit" || req.Query == "\\q" {
			slog.Info("session closed", slog.String("session_id", sessionID))
			return
		}

		result, err := eng.Execute(req.Query)
		resp := Response{Result: result}
		if err != nil {
			resp = Response{Error: err.Error()}
		}
		if err := encoder.Encode(resp); err != nil {
			slog.Error("encode error",
				slog.String("session_id", sessionID),
				slog.Any("error", err),
			)
			return
		}
	}
}
