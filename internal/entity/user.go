package entity

import "time"

type User struct {
	ID        int64     `db:"id"`
	Username  string    `db:"username"`
	Email     string    `db:"email"`
	Name      string    `db:"name"`
	Password  string    `db:"password"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// UserLoginData is the identity resolved from an access token. ID is always
// a positive integer for an authenticated request.
type UserLoginData struct {
	ID       int64
	Username string
	Email    string
}
