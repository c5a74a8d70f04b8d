package db

import "errors"

// Domain-level database error sentinels.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrAbstractNotFound = errors.New("abstract not found")
)
