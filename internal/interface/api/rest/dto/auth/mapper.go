package auth

import (
	"filevault-api/internal/application/ports"
)

func ToLoginResponse(r ports.LoginResult) LoginResponse {
	return LoginResponse{
		Token:    r.Token,
		Type:     TokenType,
		ID:       int64(r.UserID),
		Username: r.Username,
		Email:    r.Email,
	}
}
