package apperrors

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrEmailTaken     = errors.New("admin with this email already exists")
	ErrUnsupportedFmt = errors.New("unsupported image format")
)
