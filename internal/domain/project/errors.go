package project

import "errors"

var (
	// ErrInvalidTitle indicates a missing or blank project title.
	ErrInvalidTitle = errors.New("project title is required")
	// ErrDuplicateTitle indicates the user already has a project with that title.
	ErrDuplicateTitle = errors.New("a project with that title already exists")
	// ErrInvalidProject indicates a missing, unknown or unowned project id.
	ErrInvalidProject = errors.New("invalid project")
)
