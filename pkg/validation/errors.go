package validation

import "errors"

var (
	ErrUnknownGroup     = errors.New("unknown validation group")
	ErrDuplicateGroup   = errors.New("validation group already exists")
	ErrInvalidGroupName = errors.New("invalid validation group name")
	ErrNilRecord        = errors.New("nil record")
)
