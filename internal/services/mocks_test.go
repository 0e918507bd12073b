package services

import (
	"context"
	"sync"

	"github.com/learnledger/backend/internal/apperr"
	"github.com/learnledger/backend/internal/models"
)

// mockCourseRepository is a mock implementation of CourseRepository
type mockCourseRepository struct {
	mu        sync.Mutex
	courses   []models.Course
	err       error
	allCalls  int
	byIDCalls int
}

func (m *mockCourseRepository) FetchAll(ctx context.Context) ([]models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.allCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.courses, nil
}

func (m *mockCourseRepository) FetchByID(ctx context.Context, id string) (*models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byIDCalls++
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.courses {
		if m.courses[i].ID == id {
			course := m.courses[i]
			return &course, nil
		}
	}
	return nil, apperr.NotFound("course %s", id)
}

// mockCourseProvider is a mock implementation of CourseProvider
type mockCourseProvider struct {
	courses map[string]models.Course
	err     error
}

func newMockCourseProvider(courses ...models.Course) *mockCourseProvider {
	m := &mockCourseProvider{courses: make(map[string]models.Course)}
	for _, course := range courses {
		m.courses[course.ID] = course
	}
	return m
}

func (m *mockCourseProvider) Get(ctx context.Context, id string) (*models.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	course, ok := m.courses[id]
	if !ok {
		return nil, apperr.NotFound("course %s", id)
	}
	return &course, nil
}

// mockProgressRepository is a mock implementation of ProgressRepository
type mockProgressRepository struct {
	mu        sync.Mutex
	stored    []models.Progress
	saved     []models.Progress
	fetchErr  error
	saveErr   error
	fetchCall int
}

func (m *mockProgressRepository) FetchByUser(ctx context.Context, userID string) ([]models.Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchCall++
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	result := []models.Progress{}
	for _, p := range m.stored {
		if p.UserID == userID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *mockProgressRepository) Save(ctx context.Context, progress *models.Progress) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, *progress)
	return nil
}

// mockCredentialRepository is a mock implementation of CredentialRepository
type mockCredentialRepository struct {
	mu        sync.Mutex
	stored    []models.Credential
	created   []models.Credential
	updates   []models.CredentialStatus
	listErr   error
	createErr error
	updateErr error
}

func (m *mockCredentialRepository) GetByID(ctx context.Context, id string) (*models.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.stored {
		if c.ID == id {
			credential := c
			return &credential, nil
		}
	}
	return nil, apperr.NotFound("credential %s", id)
}

func (m *mockCredentialRepository) ListByUser(ctx context.Context, userID string) ([]models.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	result := []models.Credential{}
	for _, c := range m.stored {
		if c.UserID == userID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m *mockCredentialRepository) Create(ctx context.Context, credential *models.Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, *credential)
	return nil
}

func (m *mockCredentialRepository) UpdateStatus(ctx context.Context, id string, status models.CredentialStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updates = append(m.updates, status)
	return nil
}

// mockVerifier is a mock implementation of Verifier
type mockVerifier struct {
	result models.VerificationResult
	err    error
	calls  int
	// before runs before the result is returned
	before func()
}

func (m *mockVerifier) Verify(ctx context.Context, credentialID string) (models.VerificationResult, error) {
	m.calls++
	if m.before != nil {
		m.before()
	}
	return m.result, m.err
}

// mockNotifier is a mock implementation of CredentialNotifier
type mockNotifier struct {
	mu       sync.Mutex
	issued   []string
	verified []string
	err      error
}

func (m *mockNotifier) CredentialIssued(ctx context.Context, credential models.Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.issued = append(m.issued, credential.ID)
	return m.err
}

func (m *mockNotifier) CredentialVerified(ctx context.Context, credential models.Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verified = append(m.verified, credential.ID)
	return m.err
}

// mockTutorRepository is a mock implementation of TutorRepository
type mockTutorRepository struct {
	mu            sync.Mutex
	conversations []models.TutorConversation
	messages      []models.TutorMessage
	latest        *models.TutorConversation
	stored        []models.TutorMessage
	createConvErr error
	// createMsgErr fails messages sent by the given sender
	createMsgErr    error
	createMsgSender models.Sender
	latestErr       error
	messagesErr     error
}

func (m *mockTutorRepository) CreateConversation(ctx context.Context, conversation *models.TutorConversation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createConvErr != nil {
		return m.createConvErr
	}
	m.conversations = append(m.conversations, *conversation)
	return nil
}

func (m *mockTutorRepository) CreateMessage(ctx context.Context, message *models.TutorMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createMsgErr != nil && message.Sender == m.createMsgSender {
		return m.createMsgErr
	}
	m.messages = append(m.messages, *message)
	return nil
}

func (m *mockTutorRepository) GetLatestConversation(ctx context.Context, userID string) (*models.TutorConversation, error) {
	if m.latestErr != nil {
		return nil, m.latestErr
	}
	if m.latest == nil {
		return nil, apperr.NotFound("conversation of user %s", userID)
	}
	conversation := *m.latest
	return &conversation, nil
}

func (m *mockTutorRepository) GetMessages(ctx context.Context, conversationID string) ([]models.TutorMessage, error) {
	if m.messagesErr != nil {
		return nil, m.messagesErr
	}
	return m.stored, nil
}

// mockResponder is a mock implementation of Responder
type mockResponder struct {
	mu       sync.Mutex
	reply    string
	err      error
	prompts  []string
	messages []string
	// before runs before the reply is returned
	before func()
}

func (m *mockResponder) Complete(ctx context.Context, promptContext, userMessage string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, promptContext)
	m.messages = append(m.messages, userMessage)
	before := m.before
	m.mu.Unlock()
	if before != nil {
		before()
	}
	return m.reply, m.err
}

func twoModuleCourse() models.Course {
	return models.Course{
		ID:         "1",
		Title:      "Blockchain Fundamentals",
		Difficulty: models.DifficultyBeginner,
		Topics:     []string{"Blockchain", "Web3"},
		Modules: []models.Module{
			{ID: "m1", CourseID: "1", Title: "Introduction", Content: "Blocks link by hash.", Order: 1},
			{ID: "m2", CourseID: "1", Title: "Consensus", Content: "Proof of work.", Order: 2},
		},
	}
}

func oneModuleCourse() models.Course {
	return models.Course{
		ID:         "2",
		Title:      "Smart Contract Development",
		Difficulty: models.DifficultyIntermediate,
		Topics:     []string{"Solidity"},
		Modules: []models.Module{
			{ID: "m1", CourseID: "2", Title: "Solidity Basics", Content: "Contracts are programs.", Order: 1},
		},
	}
}
