package auth

const TokenType = "Bearer"

type (
	LoginResponse struct {
		Token    string `json:"token"`
		Type     string `json:"type"`
		ID       int64  `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	MessageResponse struct {
		Message string `json:"message"`
	}
)
