package user

import (
	"errors"
	"fmt"
)

var (
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUsernameTaken     = fmt.Errorf("username is already taken: %w", ErrUserAlreadyExists)
	ErrEmailTaken        = fmt.Errorf("email is already in use: %w", ErrUserAlreadyExists)
)
