package models

import "time"

// Progress is a user's completion record for one course
type Progress struct {
	UserID               string    `json:"userId"`
	CourseID             string    `json:"courseId"`
	CompletedModules     []string  `json:"completedModules"`
	StartedAt            time.Time `json:"startedAt"`
	LastActiveAt         time.Time `json:"lastActiveAt"`
	CompletionPercentage int       `json:"completionPercentage"`
}

// ProgressKey identifies a progress entry
type ProgressKey struct {
	UserID   string
	CourseID string
}

// Key returns the identifying key of the entry
func (p *Progress) Key() ProgressKey {
	return ProgressKey{UserID: p.UserID, CourseID: p.CourseID}
}

// ProgressResponse represents a progress lookup in API responses
type ProgressResponse struct {
	Started  bool      `json:"started"`
	Progress *Progress `json:"progress,omitempty"`
}
