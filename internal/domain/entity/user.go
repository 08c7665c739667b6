package entity

import "time"

type User struct {
	ID        string    `json:"id" firestore:"id"`
	Name      string    `json:"name" firestore:"name"`
	Email     string    `json:"email" firestore:"email"`
	Phone     string    `json:"phone,omitempty" firestore:"phone,omitempty"`
	Bio       string    `json:"bio,omitempty" firestore:"bio,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty" firestore:"avatarUrl,omitempty"`
	Role      string    `json:"role" firestore:"role"` // "user", "admin"
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// DisplayName falls back to the mailbox part of the email when no name was
// set, matching how conversation lists label counterparties.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if u.Email != "" {
		for i := 0; i < len(u.Email); i++ {
			if u.Email[i] == '@' {
				return u.Email[:i]
			}
		}
		return u.Email
	}
	return "Unknown user"
}
