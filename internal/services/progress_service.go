package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/learnledger/backend/internal/apperr"
	"github.com/learnledger/backend/internal/models"
	"github.com/learnledger/backend/internal/state"
)

// ProgressRepository is the interface that wraps methods for learning progress data access
type ProgressRepository interface {
	// Method FetchByUser retrieve all progress entries of a user with their completed modules.
	//
	// If the user has no progress, an empty slice is returned.
	// If some error will occur during data retrieve, the error will be returned together with "nil" value.
	FetchByUser(ctx context.Context, userID string) ([]models.Progress, error)
	// Method Save persist a progress entry together with its completed module set.
	//
	// The entry is created when absent. The call is atomic: on error nothing is persisted.
	Save(ctx context.Context, progress *models.Progress) error
}

// CourseProvider resolves courses of the catalog
type CourseProvider interface {
	// Get returns a course or an error wrapping apperr.ErrNotFound
	Get(ctx context.Context, id string) (*models.Course, error)
}

type progressService struct {
	repo    ProgressRepository
	courses CourseProvider
	logger  *zap.Logger
	now     func() time.Time

	// mu guards book and hydrated and is held across persistence
	mu       sync.Mutex
	book     state.ProgressBook
	hydrated map[string]bool
}

// NewProgressService creates a new progress tracking service
func NewProgressService(repo ProgressRepository, courses CourseProvider, logger *zap.Logger) *progressService {
	return &progressService{
		repo:     repo,
		courses:  courses,
		logger:   logger,
		now:      time.Now,
		book:     state.NewProgressBook(),
		hydrated: make(map[string]bool),
	}
}

// RecordCompletion marks a module of a course as completed by the user and returns the updated entry.
//
// Unknown courses and modules yield apperr.ErrNotFound. When persistence fails the
// in-memory progress is left unchanged and apperr.ErrUpstreamFailure is returned.
func (s *progressService) RecordCompletion(ctx context.Context, userID, courseID, moduleID string) (*models.Progress, error) {
	course, err := s.courses.Get(ctx, courseID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.hydrate(ctx, userID); err != nil {
		return nil, err
	}

	next, progress, err := state.RecordCompletion(s.book, *course, userID, moduleID, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, &progress); err != nil {
		s.logger.Error("failed to save progress",
			zap.String("user_id", userID),
			zap.String("course_id", courseID),
			zap.Error(err),
		)
		return nil, apperr.Upstream("failed to save progress", err)
	}
	s.book = next

	s.logger.Debug("module completed",
		zap.String("user_id", userID),
		zap.String("course_id", courseID),
		zap.String("module_id", moduleID),
		zap.Int("completion_percentage", progress.CompletionPercentage),
	)
	return &progress, nil
}

// GetProgress returns the user's progress in a course or a "not started" response
func (s *progressService) GetProgress(ctx context.Context, userID, courseID string) (*models.ProgressResponse, error) {
	course, err := s.courses.Get(ctx, courseID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.hydrate(ctx, userID); err != nil {
		return nil, err
	}

	progress, ok := s.book.Get(userID, courseID)
	if !ok {
		return &models.ProgressResponse{Started: false}, nil
	}
	progress = state.Recompute(progress, *course)
	return &models.ProgressResponse{Started: true, Progress: &progress}, nil
}

// ListProgress returns all progress entries of the user ordered by course ID.
// Percentages are recomputed against each course's current modules; entries of
// courses no longer in the catalog keep their stored percentage.
func (s *progressService) ListProgress(ctx context.Context, userID string) ([]models.Progress, error) {
	entries, err := s.userEntries(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i, entry := range entries {
		course, err := s.courses.Get(ctx, entry.CourseID)
		if errors.Is(err, apperr.ErrNotFound) {
			s.logger.Debug("progress references unknown course",
				zap.String("user_id", userID), zap.String("course_id", entry.CourseID))
			continue
		}
		if err != nil {
			return nil, err
		}
		entries[i] = state.Recompute(entry, *course)
	}
	return entries, nil
}

func (s *progressService) userEntries(ctx context.Context, userID string) ([]models.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.hydrate(ctx, userID); err != nil {
		return nil, err
	}
	return s.book.ForUser(userID), nil
}

// hydrate loads a user's persisted progress once. The caller holds mu.
func (s *progressService) hydrate(ctx context.Context, userID string) error {
	if s.hydrated[userID] {
		return nil
	}

	entries, err := s.repo.FetchByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load progress", zap.String("user_id", userID), zap.Error(err))
		return apperr.Upstream("failed to load progress", err)
	}

	book := s.book
	for _, entry := range entries {
		book = book.Put(entry)
	}
	s.book = book
	s.hydrated[userID] = true

	return nil
}
