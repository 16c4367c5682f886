package entity

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleModerator || r == RoleAdmin
}

// ReservedUsername cannot be registered; it is the self-profile route.
const ReservedUsername = "me"

type User struct {
	ID            string    `json:"-"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Bio           string    `json:"bio"`
	Role          Role      `json:"role"`
	IsStaff       bool      `json:"-"`
	EmailVerified bool      `json:"-"`
	// ConfirmationCode holds the bcrypt hash of the last issued code,
	// never the plaintext.
	ConfirmationCode string    `json:"-"`
	CreatedAt        time.Time `json:"-"`
	UpdatedAt        time.Time `json:"-"`
}

func (u *User) Kind() Kind      { return KindUser }
func (u *User) OwnerID() string { return u.ID }
