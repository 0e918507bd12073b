package models

// Difficulty represents the difficulty level of a course
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// DifficultyAbbreviation maps query abbreviations to difficulty levels
var DifficultyAbbreviation = map[string]Difficulty{
	"b": DifficultyBeginner,
	"i": DifficultyIntermediate,
	"a": DifficultyAdvanced,
}

// Valid reports whether d is one of the known difficulty levels
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// Course represents a course in the catalog. Courses are immutable once loaded.
type Course struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	Difficulty  Difficulty `json:"difficulty"`
	Topics      []string   `json:"topics"`
	Duration    int        `json:"duration"` // minutes
	Modules     []Module   `json:"modules"`
}

// HasModule reports whether the course contains a module with the given ID
func (c *Course) HasModule(moduleID string) bool {
	return c.Module(moduleID) != nil
}

// Module returns the module with the given ID or nil
func (c *Course) Module(moduleID string) *Module {
	for i := range c.Modules {
		if c.Modules[i].ID == moduleID {
			return &c.Modules[i]
		}
	}
	return nil
}

// Module represents an ordered unit of course content.
// Module IDs are unique within their course only.
type Module struct {
	ID        string     `json:"id"`
	CourseID  string     `json:"courseId,omitempty"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Order     int        `json:"order"`
	Exercises []Exercise `json:"exercises"`
}

// ExerciseType represents the answer format of an exercise
type ExerciseType string

const (
	ExerciseTypeMultipleChoice ExerciseType = "multiple-choice"
	ExerciseTypeText           ExerciseType = "text"
	ExerciseTypeCode           ExerciseType = "code"
)

// Exercise represents a question attached to a module
type Exercise struct {
	ID            string       `json:"id"`
	Question      string       `json:"question"`
	Type          ExerciseType `json:"type"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correctAnswer,omitempty"`
}

// CourseFilter narrows a catalog listing
type CourseFilter struct {
	Difficulty *Difficulty
	Topic      string
	Search     string
}
