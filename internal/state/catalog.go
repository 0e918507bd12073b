package state

import (
	"sort"
	"strings"

	"github.com/learnledger/backend/internal/models"
)

// Catalog is the set of loaded courses keyed by ID
type Catalog struct {
	courses map[string]models.Course
}

// NewCatalog creates a catalog holding the given courses
func NewCatalog(courses ...models.Course) Catalog {
	c := Catalog{courses: make(map[string]models.Course, len(courses))}
	for _, course := range courses {
		c.courses[course.ID] = course
	}
	return c
}

// Get returns the course with the given ID
func (c Catalog) Get(id string) (models.Course, bool) {
	course, ok := c.courses[id]
	return course, ok
}

// Len returns the number of loaded courses
func (c Catalog) Len() int {
	return len(c.courses)
}

// With returns a catalog that also holds the given courses.
// Courses already loaded are kept as they are.
func (c Catalog) With(courses ...models.Course) Catalog {
	next := Catalog{courses: make(map[string]models.Course, len(c.courses)+len(courses))}
	for id, course := range c.courses {
		next.courses[id] = course
	}
	for _, course := range courses {
		if _, ok := next.courses[course.ID]; ok {
			continue
		}
		next.courses[course.ID] = course
	}
	return next
}

// List returns the courses matching filter ordered by ID
func (c Catalog) List(filter models.CourseFilter) []models.Course {
	result := make([]models.Course, 0, len(c.courses))
	for _, course := range c.courses {
		if matches(course, filter) {
			result = append(result, course)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func matches(course models.Course, filter models.CourseFilter) bool {
	if filter.Difficulty != nil && course.Difficulty != *filter.Difficulty {
		return false
	}
	if filter.Topic != "" {
		found := false
		for _, topic := range course.Topics {
			if strings.EqualFold(topic, filter.Topic) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.Search != "" && !strings.Contains(strings.ToLower(course.Title), strings.ToLower(filter.Search)) {
		return false
	}
	return true
}
