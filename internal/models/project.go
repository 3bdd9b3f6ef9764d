package models

import (
	"time"

	"github.com/google/uuid"
)

// Project is a user-owned collection of saved keywords.
type Project struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProjectKeyword is a scored keyword saved into a project.
type ProjectKeyword struct {
	ID          uuid.UUID `json:"id"`
	ProjectID   uuid.UUID `json:"project_id"`
	Keyword     string    `json:"keyword"`
	Competition int       `json:"competition"`
	Demand      int       `json:"demand"`
	AddedAt     time.Time `json:"added_at"`
}
