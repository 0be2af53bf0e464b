package user

const (
	SelectUserByUsername = `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE username = $1
	`
	ExistsUserByUsername = `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`
	ExistsUserByEmail    = `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`
	InsertUser           = `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING
		  id, username, email, password_hash, created_at
	`
)
