package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Sagar-Ghorade/SmartEdu/core"
)

// Roles
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

type User struct {
	ID           int       `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	Role         string    `json:"role" db:"role"`
	PasswordHash []byte    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"` // UTC
	LastLogin    time.Time `json:"last_login" db:"last_login"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}

// NewUser contains information needed to register a new User.
// The role is fixed at creation: self-registration always yields a
// student; admins are provisioned via the admin CLI.
type NewUser struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (nu *NewUser) Validate(svc *Service) error {
	nu.Name = core.CleanString(nu.Name)
	nu.Email = core.CleanString(nu.Email, true /* lower */)

	if err := core.Validate.Struct(nu); err != nil {
		return err
	}
	return svc.checkEmailUniqueness(nu.Email)
}

type ResetUserPassword struct {
	Token           string `json:"token" validate:"required"`
	UID             string `json:"uid" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

func (rp ResetUserPassword) Validate() error { return core.Validate.Struct(rp) }

// GetFilter selects a single user; ID wins over Email when both are set.
type GetFilter struct {
	ID    int
	Email string
}
