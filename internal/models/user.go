package models

import "time"

// Role represents the access level of a user
type Role int

const (
	RoleUser  Role = 1
	RoleTutor Role = 2
	RoleAdmin Role = 3
)

// User represents a platform user
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}
