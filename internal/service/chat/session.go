package chat

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/gzpearl/pearlchat/internal/model/chat"
)

// FailureReply is appended to the transcript whenever an exchange fails,
// whatever the cause. Network errors, timeouts and bad statuses are not
// distinguished.
const FailureReply = "抱歉，网络开小差了，请稍后再试。"

// Asker performs a single question/answer exchange with the backend.
type Asker interface {
	Ask(ctx context.Context, question, userID, sessionID string) (string, error)
}

// Session owns one chat view's conversation state: the append-only
// transcript and the current draft input. It is safe for concurrent use;
// state is destroyed with the value, nothing is persisted.
type Session struct {
	userID    string
	sessionID string
	backend   Asker

	mu       sync.Mutex
	messages []chat.Message
	draft    string
}

// NewSession creates a fresh conversation bound to the given identifiers.
func NewSession(backend Asker, userID, sessionID string) *Session {
	return &Session{
		userID:    userID,
		sessionID: sessionID,
		backend:   backend,
		messages:  make([]chat.Message, 0, 16),
	}
}

// UserID returns the stable user identifier this session sends with.
func (s *Session) UserID() string { return s.userID }

// SessionID returns the identifier minted for this view.
func (s *Session) SessionID() string { return s.sessionID }

// SetDraft stores the composition text verbatim, with no trimming or
// validation.
func (s *Session) SetDraft(text string) {
	s.mu.Lock()
	s.draft = text
	s.mu.Unlock()
}

// Draft returns the current composition text.
func (s *Session) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Messages returns a snapshot copy of the transcript.
func (s *Session) Messages() []chat.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]chat.Message, len(s.messages))
	copy(copied, s.messages)
	return copied
}

// Send submits the current draft. A draft that is empty after trimming is a
// no-op: nothing is appended, no request goes out, the draft keeps its
// value. Otherwise the user message is appended and the draft cleared before
// the exchange starts, and exactly one assistant message lands when it
// settles: the backend's answer on success, FailureReply on any failure.
// Send never returns an error.
//
// Multiple goroutines may call Send at once; each call issues its own
// request and replies are appended in arrival order, not send order.
func (s *Session) Send(ctx context.Context) (reply string, sent bool) {
	s.mu.Lock()
	if strings.TrimSpace(s.draft) == "" {
		s.mu.Unlock()
		return "", false
	}
	question := s.draft
	s.draft = ""
	s.messages = append(s.messages, chat.Message{Role: chat.RoleUser, Content: question})
	s.mu.Unlock()

	answer, err := s.backend.Ask(ctx, question, s.userID, s.sessionID)
	if err != nil {
		log.Printf("[chat] exchange failed: %v", err)
		answer = FailureReply
	}

	s.mu.Lock()
	s.messages = append(s.messages, chat.Message{Role: chat.RoleAssistant, Content: answer})
	s.mu.Unlock()

	return answer, true
}
