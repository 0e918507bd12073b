package models

import "time"

// Sender identifies who wrote a tutor message
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// TutorMessage represents one entry of a tutor conversation
type TutorMessage struct {
	ID              string    `json:"id"`
	ConversationID  string    `json:"conversationId"`
	Content         string    `json:"content"`
	Sender          Sender    `json:"sender"`
	Timestamp       time.Time `json:"timestamp"`
	RelatedCourseID string    `json:"relatedCourseId,omitempty"`
	RelatedModuleID string    `json:"relatedModuleId,omitempty"`
}

// TutorConversation groups the messages of one session
type TutorConversation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	CourseID  string    `json:"courseId,omitempty"`
	ModuleID  string    `json:"moduleId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// SendTutorMessageRequest represents a request to send a tutor message
type SendTutorMessageRequest struct {
	Content  string `json:"content" example:"What is a blockchain?"`
	CourseID string `json:"courseId,omitempty" example:"1"`
	ModuleID string `json:"moduleId,omitempty" example:"m1"`
}

// SendTutorMessageResponse represents the outcome of a send
type SendTutorMessageResponse struct {
	ConversationID string        `json:"conversationId"`
	UserMessage    TutorMessage  `json:"userMessage"`
	AIMessage      *TutorMessage `json:"aiMessage,omitempty"`
	Error          string        `json:"error,omitempty"`
}

// TutorSessionResponse represents the current session log.
// AwaitingReply is set while at least one sent message has no reply or failure yet.
type TutorSessionResponse struct {
	ConversationID string         `json:"conversationId"`
	Messages       []TutorMessage `json:"messages"`
	LastError      string         `json:"lastError,omitempty"`
	AwaitingReply  bool           `json:"awaitingReply"`
}
