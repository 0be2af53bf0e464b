package ports

import (
	"context"

	"filevault-api/internal/domain/user"
)

type LoginResult struct {
	Token    string
	UserID   user.ID
	Username string
	Email    string
}

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*user.User, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}

type UserService interface {
	FindByUsername(ctx context.Context, username string) (*user.User, error)
}
