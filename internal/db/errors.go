package db

import "errors"

// Domain-level database error sentinels.
var (
	// Tracked video errors
	ErrTrackedVideoNotFound = errors.New("tracked video not found")
	ErrDuplicateVideo       = errors.New("video is already being tracked")
	ErrDuplicateKeyword     = errors.New("keyword is already tracked for this video")

	// Project errors
	ErrProjectNotFound         = errors.New("project not found")
	ErrDuplicateProjectKeyword = errors.New("keyword already exists in this project")
)
