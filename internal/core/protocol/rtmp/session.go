// If you are AI: This file manages the state of one captured RTMP client stream.
// A session skips the handshake, reassembles messages, applies protocol
// control messages and remembers the application and stream names.

package rtmp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"amfscope/internal/core/inspect"
	"amfscope/internal/core/protocol/amf"
)

// SessionState represents the current state of a capture session.
type SessionState int

const (
	StateHandshaking SessionState = iota
	StateConnected
	StateClosed
)

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithHandshake sets how the capture's leading bytes are treated.
func WithHandshake(mode HandshakeMode) SessionOption {
	return func(s *Session) { s.handshake = mode }
}

// WithLogger sets the logger used for debug records.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Session reads messages from a captured client stream.
type Session struct {
	r          *bufio.Reader
	parser     *ChunkParser
	state      SessionState
	handshake  HandshakeMode
	app        string
	streamName string
	logger     *slog.Logger
}

// NewSession creates a session over a capture.
func NewSession(r io.Reader, opts ...SessionOption) *Session {
	s := &Session{
		r:      bufio.NewReader(r),
		parser: NewChunkParser(),
		state:  StateHandshaking,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Next returns the next complete message.
// io.EOF is returned when the capture ends on a chunk boundary.
func (s *Session) Next() (Message, error) {
	if s.state == StateClosed {
		return Message{}, io.EOF
	}
	if s.state == StateHandshaking {
		skipped, err := SkipHandshake(s.r, s.handshake)
		if err != nil {
			s.state = StateClosed
			return Message{}, err
		}
		s.logger.Debug("capture start", "handshake", skipped)
		s.state = StateConnected
	}

	for {
		csID, err := s.parser.ReadChunk(s.r)
		if err != nil {
			s.state = StateClosed
			if errors.Is(err, io.EOF) {
				return Message{}, io.EOF
			}
			return Message{}, fmt.Errorf("chunk stream %d: %w", csID, err)
		}
		msg, ok := s.parser.GetCompleteMessage(csID)
		if !ok {
			continue
		}
		s.apply(msg)
		return msg, nil
	}
}

// apply updates session state from control and command messages.
func (s *Session) apply(msg Message) {
	switch msg.Type {
	case MessageTypeSetChunkSize:
		size, err := ParseSetChunkSize(msg.Body)
		if err != nil {
			s.logger.Debug("ignoring set chunk size", "error", err)
			return
		}
		s.parser.SetChunkSize(size)
		s.logger.Debug("chunk size", "size", size)
	case MessageTypeAbortMessage:
		if len(msg.Body) >= 4 {
			csID := uint32(msg.Body[0])<<24 | uint32(msg.Body[1])<<16 | uint32(msg.Body[2])<<8 | uint32(msg.Body[3])
			s.parser.Abort(csID)
		}
	case MessageTypeCommandAMF0, MessageTypeCommandAMF3:
		s.trackCommand(msg)
	}
}

// trackCommand records the app of connect and the stream name of publish or play.
func (s *Session) trackCommand(msg Message) {
	res := amf.Decode(msg.Body, msg.IsCommandStream())
	var args []inspect.Value
	for _, id := range res.Graph.Roots() {
		d, _ := res.Graph.Get(id)
		switch d.Kind() {
		case amf.KindFormatSelector, amf.KindAMF0Switch:
			continue
		}
		v, err := inspect.Materialize(res.Graph, id, 2)
		if err != nil {
			return
		}
		args = append(args, v)
	}
	if len(args) == 0 {
		return
	}
	name, _ := args[0].(string)
	switch name {
	case "connect":
		if len(args) > 2 {
			if obj, ok := args[2].(inspect.Object); ok {
				s.app, _ = obj["app"].(string)
			}
		}
	case "publish", "play":
		if len(args) > 3 {
			s.streamName, _ = args[3].(string)
		}
	}
	s.logger.Debug("command", "name", name, "app", s.app, "stream", s.streamName)
}

// App returns the application name from the connect command.
func (s *Session) App() string {
	return s.app
}

// StreamName returns the stream name from the publish or play command.
func (s *Session) StreamName() string {
	return s.streamName
}

// State returns the current session state.
func (s *Session) State() SessionState {
	return s.state
}

// ChunkSize returns the incoming chunk size in effect.
func (s *Session) ChunkSize() uint32 {
	return s.parser.ChunkSize()
}

// ReadAMFMessages returns every AMF-bearing message of a capture.
// Messages decoded before a truncated trailing chunk are returned with the error.
func ReadAMFMessages(s *Session) ([]Message, error) {
	var msgs []Message
	for {
		msg, err := s.Next()
		if errors.Is(err, io.EOF) {
			return msgs, nil
		}
		if err != nil {
			return msgs, err
		}
		if msg.IsAMF() {
			msgs = append(msgs, msg)
		}
	}
}
