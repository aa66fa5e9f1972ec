package user

import "time"

// User is the minimal account record the authentication core reads. Owned by
// the external credential store; never written here.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	DisplayName  string     `json:"display_name"`
	PasswordHash string     `json:"-"`
	Email        string     `json:"email"`
	IsAdmin      bool       `json:"is_admin"`
	IsConfirmed  bool       `json:"is_confirmed"`
	IsDisabled   bool       `json:"is_disabled"`
	ErasedAt     *time.Time `json:"erased_at,omitempty"`
}

// Profile is the public view of a user returned on successful login
type Profile struct {
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name"`
	DisplayName string `json:"display_name"`
	IsAdmin     bool   `json:"is_admin"`
}
