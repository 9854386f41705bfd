package domain

import "errors"

var (
	ErrDuplicateVote     = errors.New("user has already voted")
	ErrDuplicateTopic    = errors.New("topic already attached")
	ErrNotFound          = errors.New("not found")
	ErrSelfFollow        = errors.New("user cannot follow themselves")
	ErrAlreadyFollowing  = errors.New("already following user")
	ErrNotFollowing      = errors.New("not following user")
	ErrDuplicateInterest = errors.New("topic already in interests")
	ErrUsernameTaken     = errors.New("username already taken")
	ErrInvalidInput      = errors.New("invalid input")
)
