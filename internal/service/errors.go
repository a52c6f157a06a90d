package service

import (
	"errors"

	"learnmate/internal/validation"
)

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoActiveSession    = errors.New("no active session")
	ErrUnknownStyle       = errors.New("unknown learning style")
	ErrStyleNotSelected   = errors.New("learning style not selected")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrRoomNotFound       = errors.New("study room not found")

	// ErrMissingRequiredInput matches any validation failure for an empty field
	ErrMissingRequiredInput = validation.ErrMissingRequired
	ErrInvalidInput         = validation.ErrInvalid
)
