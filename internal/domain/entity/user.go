package entity

// UserStatus represents the account state of a user
type UserStatus string

const (
	StatusActive   UserStatus = "ACTIVE"
	StatusDisabled UserStatus = "DISABLED"
)

// User represents the centralized authentication record shared by all roles
type User struct {
	ID       int        `json:"user_id"`
	Username string     `json:"username"`
	Password string     `json:"password"`
	Role     Role       `json:"role"`
	Status   UserStatus `json:"status"`
}

// IsDisabled checks if the account has been disabled by an administrator
func (u *User) IsDisabled() bool {
	return u.Status == StatusDisabled
}

// Disable marks the account disabled without removing any data
func (u *User) Disable() {
	u.Status = StatusDisabled
}

// Enable restores a disabled account
func (u *User) Enable() {
	u.Status = StatusActive
}
