package model

import "errors"

var (
	ErrInvalidInput     = errors.New("model: invalid input")
	ErrOutOfRange       = errors.New("model: index out of range")
	ErrNoTaskAvailable  = errors.New("model: no task available")
	ErrInvalidSleepKind = errors.New("model: invalid sleep kind")
)
