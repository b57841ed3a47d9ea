package models

import "time"

// User is one registrant row. OTP fields are NULL once the account is
// verified; an unverified row past its OTP expiry is eligible for sweeping.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	Name     string `json:"name"`
	Email    string `json:"email" gorm:"uniqueIndex"`
	Password string `json:"-"` // bcrypt hash, never serialize
	Phone    string `json:"phone"`
	Company  string `json:"company"`
	Role     string `json:"role"`

	Verified     bool       `json:"verified" gorm:"default:false;index"`
	OTPCode      *string    `json:"-"`
	OTPExpiresAt *time.Time `json:"-" gorm:"index"`
}
