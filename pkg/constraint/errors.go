package constraint

import "errors"

var (
	ErrCompilation = errors.New("constraint compilation failed")
	ErrDeclaration = errors.New("invalid constraint declaration")
)
