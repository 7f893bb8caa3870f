package models

// User is kept for account support; no HTTP route exposes it yet
type User struct {
	ID       int    `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
	Password string `json:"password" db:"password"`
}

// InsertUser holds the fields a client may supply when creating a user
type InsertUser struct {
	Username *string `json:"username" validate:"required"`
	Password *string `json:"password" validate:"required"`
}

// NewUser builds a User from a validated insert value
func NewUser(id int, in InsertUser) User {
	return User{
		ID:       id,
		Username: deref(in.Username),
		Password: deref(in.Password),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
