package binder

import "errors"

// Request source errors
var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMissingContentType   = errors.New("missing content type")
	ErrInvalidForm          = errors.New("failed to parse form data")
	ErrInvalidQuery         = errors.New("failed to parse query parameters")
	ErrInvalidPath          = errors.New("failed to parse path parameters")
)

// Coercion errors, carried by LoadingError.Err
var (
	ErrUnknownEnum   = errors.New("unknown enum constant")
	ErrInvalidChar   = errors.New("value is not a single character")
	ErrInvalidBool   = errors.New("invalid boolean")
	ErrTooManyValues = errors.New("too many values")
)
