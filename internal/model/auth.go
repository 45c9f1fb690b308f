package model

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Token    string `json:"token"`
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     Role   `json:"role" binding:"required"`
}

// Identity is what a verified token proves about its bearer.
type Identity struct {
	Username  string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// User is a credential record. PasswordHash holds a bcrypt hash once the
// store has been bootstrapped; older JSON stores kept plaintext in the same
// field, which is why it is persisted under the "password" key.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password"`
	Role         Role   `json:"role"`
}

type UserResponse struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

func (u User) Public() UserResponse {
	return UserResponse{Username: u.Username, Role: u.Role}
}
