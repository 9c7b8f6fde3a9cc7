package entity

import "time"

type AccountStatus string

const (
	StatusPending   AccountStatus = "pending"
	StatusActive    AccountStatus = "active"
	StatusSuspended AccountStatus = "suspended"
	StatusDeleted   AccountStatus = "deleted"
)

type Gender string

const (
	GenderMale      Gender = "male"
	GenderFemale    Gender = "female"
	GenderUndefined Gender = "undefined"
)

const (
	DefaultName     = "noNameAsigned"
	DefaultLastName = "undefinedLastName"
)

type Account struct {
	Base
	Email        string        `db:"email"`
	PasswordHash string        `db:"password"`
	Name         string        `db:"name"`
	LastName     string        `db:"last_name"`
	Birthdate    *time.Time    `db:"birthdate"`
	Gender       Gender        `db:"gender"`
	Status       AccountStatus `db:"status"`
	RoleID       *int64        `db:"role_id"`
	RoleName     string        `db:"role_name"`
	OTPCode      *string       `db:"otp_code"`
	OTPExpiresAt *time.Time    `db:"otp_expires_at"`
}

// SetOTP fills both halves of the OTP slot.
func (a *Account) SetOTP(code string, expiresAt time.Time) {
	a.OTPCode = &code
	a.OTPExpiresAt = &expiresAt
}

// ClearOTP empties both halves of the OTP slot.
func (a *Account) ClearOTP() {
	a.OTPCode = nil
	a.OTPExpiresAt = nil
}

// OTPMatches reports whether code equals the stored OTP and the OTP expires strictly after now.
func (a *Account) OTPMatches(code string, now time.Time) bool {
	if a.OTPCode == nil || a.OTPExpiresAt == nil {
		return false
	}
	if !constantTimeEqual(*a.OTPCode, code) {
		return false
	}
	return a.OTPExpiresAt.After(now)
}

func (a *Account) IsDeleted() bool {
	return a.Status == StatusDeleted
}

// DisplayName is what notifications greet the account holder with.
func (a *Account) DisplayName() string {
	if a.Name == "" || a.Name == DefaultName {
		return a.Email
	}
	return a.Name
}
