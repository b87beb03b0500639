package domain

import "errors"

var (
	ErrNotFound      = errors.New("project not found")
	ErrTitleRequired = errors.New("project title is required")
	ErrTitleTooLong  = errors.New("project title exceeds 255 characters")
	ErrInvalidStatus = errors.New("invalid project status")
)

// MaxTitleLength is the maximum number of characters in a title.
const MaxTitleLength = 255
