package commons

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/burntcarrot/editseq/operation"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Message represents a message in an edit log.
type Message struct {
	Username string `json:"username"`

	// Text represents the body of the message. It is the base document for text messages.
	Text string `json:"text,omitempty"`

	// Type represents the message type.
	Type MessageType `json:"type"`

	// ID represents the message's UUID.
	ID uuid.UUID `json:"ID"`

	// Operation represents the edit carried by operation messages.
	Operation *operation.Operation `json:"operation,omitempty"`
}

// MessageType represents the type of the message.
type MessageType string

// Currently, editseq supports 2 message types:
// - text (for setting the base document)
// - operation (for contributing an edit)

const (
	TextMessage      MessageType = "text"
	OperationMessage MessageType = "operation"
)

var (
	ErrNoOperation        = errors.New("no operation messages to replay")
	ErrUnknownMessageType = errors.New("unknown message type")
	ErrMissingOperation   = errors.New("operation message without an operation")
)

// ReadMessages decodes one JSON message per line from r.
// Blank lines are skipped, and messages without an ID get a new UUID.
func ReadMessages(r io.Reader) ([]Message, error) {
	var msgs []Message

	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for s.Scan() {
		line++
		if strings.TrimSpace(s.Text()) == "" {
			continue
		}

		var msg Message
		if err := json.Unmarshal(s.Bytes(), &msg); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		if msg.ID == uuid.Nil {
			msg.ID = uuid.New()
		}

		msgs = append(msgs, msg)
	}

	if err := s.Err(); err != nil {
		return nil, err
	}

	return msgs, nil
}

// Replay folds msgs in order and returns the base text and the combined operation.
// The base text is the last text message seen before the first operation message.
// Operation messages are combined in order, the earliest one receiving the rest.
func Replay(msgs []Message, logger logrus.FieldLogger) (string, *operation.Operation, error) {
	var (
		text     string
		combined *operation.Operation
	)

	for i, msg := range msgs {
		entry := logger.WithFields(logrus.Fields{"index": i, "id": msg.ID, "username": msg.Username, "type": msg.Type})

		switch msg.Type {
		case TextMessage:
			if combined != nil {
				entry.Warn("ignoring text message after the first operation")
				continue
			}
			text = msg.Text
			entry.Debugf("base text set (%d characters)", len([]rune(text)))

		case OperationMessage:
			if msg.Operation == nil {
				return "", nil, fmt.Errorf("message %v: %w", msg.ID, ErrMissingOperation)
			}

			// Combining mutates the receiver, so the first operation is cloned.
			next := msg.Operation
			if combined == nil {
				next = next.Clone()
			}

			op, err := operation.Combine(combined, next)
			if err != nil {
				return "", nil, fmt.Errorf("message %v: %w", msg.ID, err)
			}
			combined = op
			entry.Debugf("combined operation: %v", combined)

		default:
			return "", nil, fmt.Errorf("message %v: %w: %q", msg.ID, ErrUnknownMessageType, msg.Type)
		}
	}

	if combined == nil {
		return "", nil, ErrNoOperation
	}

	return text, combined, nil
}
