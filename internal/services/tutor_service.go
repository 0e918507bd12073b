package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/learnledger/backend/internal/apperr"
	"github.com/learnledger/backend/internal/models"
	"github.com/learnledger/backend/internal/state"
)

// TutorSystemPrompt is the instruction sent with every tutor completion
const TutorSystemPrompt = "You are an expert AI tutor specializing in technology and computer science. " +
	"Your responses should be educational, clear, and engaging. Include examples and analogies when helpful. " +
	"If the user asks about topics you're not confident about, admit it and suggest reliable sources for more information."

// TutorRepository is the interface that wraps methods for tutor conversation data access
type TutorRepository interface {
	// Method CreateConversation persist a new conversation of a user.
	CreateConversation(ctx context.Context, conversation *models.TutorConversation) error
	// Method CreateMessage persist a message of a conversation.
	CreateMessage(ctx context.Context, message *models.TutorMessage) error
	// Method GetLatestConversation retrieve the most recent conversation of a user.
	//
	// If the user has no conversation, the returned error wraps apperr.ErrNotFound.
	GetLatestConversation(ctx context.Context, userID string) (*models.TutorConversation, error)
	// Method GetMessages retrieve the messages of a conversation in insertion order.
	GetMessages(ctx context.Context, conversationID string) ([]models.TutorMessage, error)
}

// Responder is the text-completion collaborator of the tutor
type Responder interface {
	// Complete returns a reply to userMessage given the system prompt and study context
	Complete(ctx context.Context, promptContext, userMessage string) (string, error)
}

type tutorSession struct {
	log state.TutorSession
	// stored reports whether the conversation row exists
	stored bool
}

type tutorService struct {
	repo      TutorRepository
	responder Responder
	courses   CourseProvider
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string

	// mu guards sessions. It is never held while the responder runs.
	mu       sync.Mutex
	sessions map[string]*tutorSession
}

// NewTutorService creates a new tutor session service
func NewTutorService(repo TutorRepository, responder Responder, courses CourseProvider, logger *zap.Logger) *tutorService {
	return &tutorService{
		repo:      repo,
		responder: responder,
		courses:   courses,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
		sessions:  make(map[string]*tutorSession),
	}
}

// Send appends the user's message to the session and asks the responder for a reply.
//
// The user message stays in the session whatever the responder does. A responder failure is
// recorded as the session's last error and returned as apperr.ErrUpstreamFailure together
// with a response carrying the user message.
func (s *tutorService) Send(ctx context.Context, userID string, req models.SendTutorMessageRequest) (*models.SendTutorMessageResponse, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, apperr.InvalidInput("content is required")
	}

	promptContext := s.promptContext(ctx, req.CourseID, req.ModuleID)

	s.mu.Lock()
	session, err := s.session(ctx, userID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	conversationID := session.log.ConversationID
	if !session.stored {
		conversation := &models.TutorConversation{
			ID:        conversationID,
			UserID:    userID,
			CourseID:  req.CourseID,
			ModuleID:  req.ModuleID,
			CreatedAt: s.now(),
		}
		if err := s.repo.CreateConversation(ctx, conversation); err != nil {
			s.mu.Unlock()
			s.logger.Error("failed to create conversation", zap.String("user_id", userID), zap.Error(err))
			return nil, apperr.Upstream("failed to create conversation", err)
		}
		session.stored = true
	}

	userMessage := models.TutorMessage{
		ID:              s.newID(),
		ConversationID:  conversationID,
		Content:         req.Content,
		Sender:          models.SenderUser,
		Timestamp:       s.now(),
		RelatedCourseID: req.CourseID,
		RelatedModuleID: req.ModuleID,
	}
	if err := s.repo.CreateMessage(ctx, &userMessage); err != nil {
		s.mu.Unlock()
		s.logger.Error("failed to save user message", zap.String("user_id", userID), zap.Error(err))
		return nil, apperr.Upstream("failed to save message", err)
	}
	session.log = state.Submit(session.log, userMessage)
	s.mu.Unlock()

	response := &models.SendTutorMessageResponse{
		ConversationID: conversationID,
		UserMessage:    userMessage,
	}

	reply, err := s.responder.Complete(ctx, promptContext, req.Content)
	if err == nil && strings.TrimSpace(reply) == "" {
		err = errors.New("empty reply")
	}
	if err != nil {
		s.logger.Warn("tutor responder failed", zap.String("user_id", userID), zap.Error(err))
		s.mu.Lock()
		if current, ok := s.sessions[userID]; ok {
			current.log = state.Fail(current.log, conversationID, err)
		}
		s.mu.Unlock()
		response.Error = err.Error()
		return response, apperr.Upstream("failed to get tutor response", err)
	}

	aiMessage := models.TutorMessage{
		ID:              s.newID(),
		ConversationID:  conversationID,
		Content:         reply,
		Sender:          models.SenderAI,
		Timestamp:       s.now(),
		RelatedCourseID: req.CourseID,
		RelatedModuleID: req.ModuleID,
	}
	response.AIMessage = &aiMessage

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.sessions[userID]
	if !ok || current.log.ConversationID != conversationID {
		s.logger.Debug("dropping reply of cleared conversation", zap.String("conversation_id", conversationID))
		return response, nil
	}
	if err := s.repo.CreateMessage(ctx, &aiMessage); err != nil {
		s.logger.Warn("failed to save tutor reply", zap.String("conversation_id", conversationID), zap.Error(err))
	}
	current.log, _ = state.Resolve(current.log, aiMessage)

	return response, nil
}

// Messages returns the user's current session
func (s *tutorService) Messages(ctx context.Context, userID string) (*models.TutorSessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.session(ctx, userID)
	if err != nil {
		return nil, err
	}
	return sessionResponse(session.log), nil
}

// Clear empties the user's session and starts a new conversation.
// The new conversation is stored so that it is the one restored later; if storing fails,
// the session is still cleared and the conversation is stored with the next message.
func (s *tutorService) Clear(ctx context.Context, userID string) (*models.TutorSessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := &tutorSession{log: state.Clear(s.newID())}
	s.sessions[userID] = session

	conversation := &models.TutorConversation{
		ID:        session.log.ConversationID,
		UserID:    userID,
		CreatedAt: s.now(),
	}
	if err := s.repo.CreateConversation(ctx, conversation); err != nil {
		s.logger.Warn("failed to store cleared conversation", zap.String("user_id", userID), zap.Error(err))
	} else {
		session.stored = true
	}

	s.logger.Debug("tutor session cleared",
		zap.String("user_id", userID),
		zap.String("conversation_id", session.log.ConversationID),
	)
	return sessionResponse(session.log), nil
}

// session returns the user's session, restoring the latest stored conversation on first access.
// The caller holds mu.
func (s *tutorService) session(ctx context.Context, userID string) (*tutorSession, error) {
	if session, ok := s.sessions[userID]; ok {
		return session, nil
	}

	session := &tutorSession{log: state.NewTutorSession(s.newID())}
	conversation, err := s.repo.GetLatestConversation(ctx, userID)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
	case err != nil:
		s.logger.Error("failed to load conversation", zap.String("user_id", userID), zap.Error(err))
		return nil, apperr.Upstream("failed to load conversation", err)
	default:
		messages, err := s.repo.GetMessages(ctx, conversation.ID)
		if err != nil {
			s.logger.Error("failed to load tutor messages", zap.String("conversation_id", conversation.ID), zap.Error(err))
			return nil, apperr.Upstream("failed to load tutor messages", err)
		}
		session.log = state.NewTutorSession(conversation.ID)
		session.log.Messages = append(session.log.Messages, messages...)
		session.stored = true
	}

	s.sessions[userID] = session
	return session, nil
}

// promptContext builds the system prompt, adding the module content when the module resolves
func (s *tutorService) promptContext(ctx context.Context, courseID, moduleID string) string {
	if courseID == "" || moduleID == "" {
		return TutorSystemPrompt
	}

	course, err := s.courses.Get(ctx, courseID)
	if err != nil {
		s.logger.Debug("tutor context course unavailable", zap.String("course_id", courseID), zap.Error(err))
		return TutorSystemPrompt
	}
	module := course.Module(moduleID)
	if module == nil || module.Content == "" {
		return TutorSystemPrompt
	}

	return TutorSystemPrompt + "\n\nContext: The user is currently studying the following content:\n" + module.Content + "\n\n"
}

func sessionResponse(log state.TutorSession) *models.TutorSessionResponse {
	messages := make([]models.TutorMessage, len(log.Messages))
	copy(messages, log.Messages)
	return &models.TutorSessionResponse{
		ConversationID: log.ConversationID,
		Messages:       messages,
		LastError:      log.LastError,
		AwaitingReply:  log.Awaiting > 0,
	}
}
