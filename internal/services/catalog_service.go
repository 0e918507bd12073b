package services

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/learnledger/backend/internal/apperr"
	"github.com/learnledger/backend/internal/models"
	"github.com/learnledger/backend/internal/state"
)

// CourseRepository is the interface that wraps methods for course catalog data access
type CourseRepository interface {
	// Method FetchAll retrieve all courses together with their modules and exercises.
	//
	// If some error will occur during data retrieve, the error will be returned together with "nil" value.
	FetchAll(ctx context.Context) ([]models.Course, error)
	// Method FetchByID retrieve a course with its modules and exercises.
	//
	// If the course does not exist, the returned error wraps apperr.ErrNotFound.
	// Please reference FetchAll method for more information about other error values.
	FetchByID(ctx context.Context, id string) (*models.Course, error)
}

type catalogService struct {
	repo   CourseRepository
	logger *zap.Logger

	mu        sync.RWMutex
	catalog   state.Catalog
	loadedAll bool
}

// NewCatalogService creates a new course catalog service
func NewCatalogService(repo CourseRepository, logger *zap.Logger) *catalogService {
	return &catalogService{
		repo:    repo,
		logger:  logger,
		catalog: state.NewCatalog(),
	}
}

// List returns the catalog filtered by difficulty, topic and title search.
//
// difficultyParam accepts a difficulty name or its abbreviation ("b", "i", "a"); empty means any.
func (s *catalogService) List(ctx context.Context, difficultyParam, topic, search string) ([]models.Course, error) {
	filter, err := parseCourseFilter(difficultyParam, topic, search)
	if err != nil {
		return nil, err
	}

	if err := s.loadAll(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.List(filter), nil
}

// Get returns a course by ID, fetching it on first access
func (s *catalogService) Get(ctx context.Context, id string) (*models.Course, error) {
	s.mu.RLock()
	course, ok := s.catalog.Get(id)
	s.mu.RUnlock()
	if ok {
		return &course, nil
	}

	fetched, err := s.repo.FetchByID(ctx, id)
	if err != nil {
		if !apperr.IsKnown(err) {
			s.logger.Error("failed to fetch course", zap.String("course_id", id), zap.Error(err))
		}
		return nil, apperr.Upstream("failed to fetch course", err)
	}

	s.mu.Lock()
	s.catalog = s.catalog.With(*fetched)
	course, _ = s.catalog.Get(id)
	s.mu.Unlock()

	return &course, nil
}

func (s *catalogService) loadAll(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loadedAll
	s.mu.RUnlock()
	if loaded {
		return nil
	}

	courses, err := s.repo.FetchAll(ctx)
	if err != nil {
		s.logger.Error("failed to fetch courses", zap.Error(err))
		return apperr.Upstream("failed to fetch courses", err)
	}

	s.mu.Lock()
	s.catalog = s.catalog.With(courses...)
	s.loadedAll = true
	s.mu.Unlock()

	s.logger.Info("course catalog loaded", zap.Int("courses", len(courses)))
	return nil
}

func parseCourseFilter(difficultyParam, topic, search string) (models.CourseFilter, error) {
	filter := models.CourseFilter{
		Topic:  strings.TrimSpace(topic),
		Search: strings.TrimSpace(search),
	}

	difficultyParam = strings.ToLower(strings.TrimSpace(difficultyParam))
	if difficultyParam == "" {
		return filter, nil
	}

	difficulty, ok := models.DifficultyAbbreviation[difficultyParam]
	if !ok {
		difficulty = models.Difficulty(difficultyParam)
	}
	if !difficulty.Valid() {
		return filter, apperr.InvalidInput("invalid difficulty %q", difficultyParam)
	}
	filter.Difficulty = &difficulty

	return filter, nil
}
