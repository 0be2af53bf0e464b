package ports

import (
	"filevault-api/internal/infrastructure/jwt"
)

type TokenManager interface {
	Generate(identity string, roles []string) (string, error)
	Validate(token string) (*jwt.Identity, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
