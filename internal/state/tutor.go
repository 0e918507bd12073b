package state

import (
	"slices"

	"github.com/learnledger/backend/internal/models"
)

// TutorSession is the append-only message log of one user's conversation
type TutorSession struct {
	ConversationID string
	Messages       []models.TutorMessage
	LastError      string
	// Awaiting counts submitted messages whose reply has not resolved or failed yet
	Awaiting int
}

// NewTutorSession starts an empty session for a conversation
func NewTutorSession(conversationID string) TutorSession {
	return TutorSession{ConversationID: conversationID, Messages: []models.TutorMessage{}}
}

// Submit appends the user's message and marks a reply as awaited
func Submit(s TutorSession, msg models.TutorMessage) TutorSession {
	next := cloneSession(s)
	msg.ConversationID = s.ConversationID
	next.Messages = append(next.Messages, msg)
	next.LastError = ""
	next.Awaiting++
	return next
}

// Resolve appends the AI reply. A reply belonging to a conversation that has
// since been cleared is dropped and reported with false.
func Resolve(s TutorSession, msg models.TutorMessage) (TutorSession, bool) {
	if msg.ConversationID != s.ConversationID {
		return s, false
	}
	next := cloneSession(s)
	next.Messages = append(next.Messages, msg)
	if next.Awaiting > 0 {
		next.Awaiting--
	}
	return next, true
}

// Fail records a responder failure for the conversation
func Fail(s TutorSession, conversationID string, err error) TutorSession {
	if conversationID != s.ConversationID || err == nil {
		return s
	}
	next := cloneSession(s)
	next.LastError = err.Error()
	if next.Awaiting > 0 {
		next.Awaiting--
	}
	return next
}

// Clear empties the log unconditionally and moves to a new conversation
func Clear(conversationID string) TutorSession {
	return NewTutorSession(conversationID)
}

func cloneSession(s TutorSession) TutorSession {
	s.Messages = slices.Clone(s.Messages)
	if s.Messages == nil {
		s.Messages = []models.TutorMessage{}
	}
	return s
}
