package user

import (
	"time"
)

type (
	ID   int64
	User struct {
		ID           ID
		Username     string
		Email        string
		PasswordHash string

		CreatedAt time.Time
	}
)
