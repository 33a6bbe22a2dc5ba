package domain

import "errors"

// Sentinel errors shared by repositories, services and the HTTP layer.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrProfileRequired    = errors.New("profile required")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateUsername  = errors.New("username already in use")
	ErrAlreadyRated       = errors.New("conference already rated by this profile")
	ErrAlreadyRegistered  = errors.New("already registered for this conference")
	ErrConferenceFull     = errors.New("conference is full")
	ErrRequestNotPending  = errors.New("request is not pending")
	ErrInvalidReportType  = errors.New("invalid report type")
	ErrInvalidFormat      = errors.New("invalid export format")
)
