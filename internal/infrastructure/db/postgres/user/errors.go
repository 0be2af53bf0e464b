package user

const (
	constraintUsername = "users_username_key"
	constraintEmail    = "users_email_key"
)
