package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicateEmail  = errors.New("email already exists")
	ErrUnauthenticated = errors.New("not authenticated")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidInput    = errors.New("invalid input")
)
