package state

import (
	"math"
	"slices"
	"sort"
	"time"

	"github.com/learnledger/backend/internal/apperr"
	"github.com/learnledger/backend/internal/models"
)

// ProgressBook holds one progress entry per (user, course)
type ProgressBook struct {
	entries map[models.ProgressKey]models.Progress
}

// NewProgressBook creates a book holding the given entries
func NewProgressBook(entries ...models.Progress) ProgressBook {
	b := ProgressBook{entries: make(map[models.ProgressKey]models.Progress, len(entries))}
	for _, p := range entries {
		b.entries[p.Key()] = cloneProgress(p)
	}
	return b
}

// Get returns a copy of the entry for the user and course
func (b ProgressBook) Get(userID, courseID string) (models.Progress, bool) {
	p, ok := b.entries[models.ProgressKey{UserID: userID, CourseID: courseID}]
	if !ok {
		return models.Progress{}, false
	}
	return cloneProgress(p), true
}

// ForUser returns copies of all entries of a user ordered by course ID
func (b ProgressBook) ForUser(userID string) []models.Progress {
	result := []models.Progress{}
	for key, p := range b.entries {
		if key.UserID == userID {
			result = append(result, cloneProgress(p))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CourseID < result[j].CourseID })
	return result
}

// Len returns the number of entries
func (b ProgressBook) Len() int {
	return len(b.entries)
}

// Put returns a book in which the entry for p's key is replaced by p
func (b ProgressBook) Put(p models.Progress) ProgressBook {
	next := ProgressBook{entries: make(map[models.ProgressKey]models.Progress, len(b.entries)+1)}
	for key, entry := range b.entries {
		next.entries[key] = entry
	}
	next.entries[p.Key()] = cloneProgress(p)
	return next
}

// RecordCompletion marks moduleID of course as completed by userID.
//
// The entry is created with StartedAt = now when absent. The completed set is
// idempotent, the percentage is recomputed from the set and the course's
// module count, and LastActiveAt is set to now. An unknown module yields
// ErrNotFound and the book is returned unchanged.
func RecordCompletion(b ProgressBook, course models.Course, userID, moduleID string, now time.Time) (ProgressBook, models.Progress, error) {
	if !course.HasModule(moduleID) {
		return b, models.Progress{}, apperr.NotFound("module %s in course %s", moduleID, course.ID)
	}

	p, ok := b.Get(userID, course.ID)
	if !ok {
		p = models.Progress{
			UserID:           userID,
			CourseID:         course.ID,
			CompletedModules: []string{},
			StartedAt:        now,
		}
	}

	if !slices.Contains(p.CompletedModules, moduleID) {
		p.CompletedModules = append(p.CompletedModules, moduleID)
	}
	p.CompletionPercentage = CompletionPercentage(countKnown(course, p.CompletedModules), len(course.Modules))
	p.LastActiveAt = now

	return b.Put(p), cloneProgress(p), nil
}

// CompletionPercentage returns round(100 * completed / total), 0 for an empty course
func CompletionPercentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// Recompute returns a copy of p whose percentage reflects the course's current modules
func Recompute(p models.Progress, course models.Course) models.Progress {
	p = cloneProgress(p)
	p.CompletionPercentage = CompletionPercentage(countKnown(course, p.CompletedModules), len(course.Modules))
	return p
}

// countKnown counts completed ids that still belong to the course
func countKnown(course models.Course, completed []string) int {
	n := 0
	for _, id := range completed {
		if course.HasModule(id) {
			n++
		}
	}
	return n
}

func cloneProgress(p models.Progress) models.Progress {
	p.CompletedModules = slices.Clone(p.CompletedModules)
	if p.CompletedModules == nil {
		p.CompletedModules = []string{}
	}
	return p
}
