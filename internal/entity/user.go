package entity

import "time"

type Role string

const (
	RoleTrainee Role = "trainee"
	RoleStaff   Role = "staff"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleTrainee, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// User represents the app_user table
type User struct {
	Id        string    `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UserInsert
}

type UserInsert struct {
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	Role         Role   `db:"role"`
}
