package util

import "errors"

var (
	ErrInvalidAccessCode = errors.New("invalid access code")
	ErrLessonNotFound    = errors.New("lesson not found")
	ErrEmptyLessonTitle  = errors.New("lesson title must not be empty")
	ErrInvalidPlan       = errors.New("subscription plan must be pro or immersion")
	ErrInvalidActivity   = errors.New("unknown activity type")
	ErrNegativeScore     = errors.New("score must be non-negative")
	ErrUnsupportedMedia  = errors.New("unsupported media type")
)
