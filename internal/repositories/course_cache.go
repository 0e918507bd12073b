package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/learnledger/backend/internal/models"
)

const (
	catalogCacheKey      = "catalog:courses"
	courseCacheKeyPrefix = "catalog:course:"
)

// CourseFetcher is the read side of the course repository
type CourseFetcher interface {
	// FetchAll retrieves all courses with modules and exercises
	FetchAll(ctx context.Context) ([]models.Course, error)
	// FetchByID retrieves a course by id.
	// Returns an error wrapping apperr.ErrNotFound when the course does not exist.
	FetchByID(ctx context.Context, id string) (*models.Course, error)
}

// CacheClient is the subset of the redis client used by the catalog cache
type CacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

type cachedCourseRepository struct {
	inner  CourseFetcher
	client CacheClient
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedCourseRepository wraps a course repository with a redis read-through cache.
// Cache failures are logged and fall through to the wrapped repository.
func NewCachedCourseRepository(inner CourseFetcher, client CacheClient, ttl time.Duration, logger *zap.Logger) *cachedCourseRepository {
	return &cachedCourseRepository{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// FetchAll retrieves all courses, from the cache when present
func (r *cachedCourseRepository) FetchAll(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	if r.load(ctx, catalogCacheKey, &courses) {
		return courses, nil
	}

	courses, err := r.inner.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	r.store(ctx, catalogCacheKey, courses)
	return courses, nil
}

// FetchByID retrieves a course, from the cache when present
func (r *cachedCourseRepository) FetchByID(ctx context.Context, id string) (*models.Course, error) {
	var course models.Course
	if r.load(ctx, courseCacheKeyPrefix+id, &course) {
		return &course, nil
	}

	fetched, err := r.inner.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, courseCacheKeyPrefix+id, fetched)
	return fetched, nil
}

// Refresh reloads all courses from the wrapped repository and rewrites the cache
func (r *cachedCourseRepository) Refresh(ctx context.Context) (int, error) {
	courses, err := r.inner.FetchAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch courses: %w", err)
	}

	if err := r.set(ctx, catalogCacheKey, courses); err != nil {
		return 0, err
	}
	for i := range courses {
		if err := r.set(ctx, courseCacheKeyPrefix+courses[i].ID, courses[i]); err != nil {
			return 0, err
		}
	}

	return len(courses), nil
}

func (r *cachedCourseRepository) load(ctx context.Context, key string, dest any) bool {
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		r.logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		r.logger.Warn("catalog cache entry is corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (r *cachedCourseRepository) store(ctx context.Context, key string, value any) {
	if err := r.set(ctx, key, value); err != nil {
		r.logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (r *cachedCourseRepository) set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry %s: %w", key, err)
	}
	if err := r.client.Set(ctx, key, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache entry %s: %w", key, err)
	}
	return nil
}
