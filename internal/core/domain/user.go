package domain

import "time"

// User models a registered account.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Phone        *string   `json:"phone,omitempty"`
	Email        *string   `json:"email,omitempty"`
	FullName     *string   `json:"full_name,omitempty"`
	ProfilePhoto *string   `json:"profile_photo,omitempty"`
	IsVerified   bool      `json:"is_verified"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the resolved caller attached to a request or realtime
// connection after its token has been verified. It is never persisted.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// ProfilePatch carries the profile attributes a caller asked to change.
type ProfilePatch struct {
	Email        Optional[string] `json:"email"`
	Phone        Optional[string] `json:"phone"`
	FullName     Optional[string] `json:"full_name"`
	ProfilePhoto Optional[string] `json:"profile_photo"`
}

// Empty reports whether the patch touches no attribute.
func (p ProfilePatch) Empty() bool {
	return !p.Email.Set && !p.Phone.Set && !p.FullName.Set && !p.ProfilePhoto.Set
}
