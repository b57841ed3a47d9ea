package store

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"zynetra/backend/models"
)

var (
	// ErrDuplicateEmail is returned when the normalized email already has a row.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrNotFound is returned when no account matches the lookup.
	ErrNotFound = errors.New("account not found")
)

// Profile carries the opaque registrant fields. Presence is the only
// validation the store applies; the email is normalized here so the unique
// index always operates on trimmed, lowercased addresses.
type Profile struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Role    string
}

// Accounts owns all durable account state. Every mutation is a single-row
// statement, so SQLite's row-level atomicity is the only locking needed.
type Accounts struct {
	db *gorm.DB
}

func NewAccounts(db *gorm.DB) *Accounts {
	return &Accounts{db: db}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create inserts an unverified account with a pending OTP.
func (a *Accounts) Create(p Profile, hashedPassword, otpCode string, otpExpiresAt time.Time) (uint, error) {
	user := models.User{
		Name:         p.Name,
		Email:        normalizeEmail(p.Email),
		Password:     hashedPassword,
		Phone:        p.Phone,
		Company:      p.Company,
		Role:         p.Role,
		Verified:     false,
		OTPCode:      &otpCode,
		OTPExpiresAt: &otpExpiresAt,
	}
	if err := a.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, ErrDuplicateEmail
		}
		return 0, err
	}
	return user.ID, nil
}

// CreateVerified inserts an account that is born verified with no OTP.
// Used once, for the owner seed.
func (a *Accounts) CreateVerified(p Profile, hashedPassword string) error {
	user := models.User{
		Name:     p.Name,
		Email:    normalizeEmail(p.Email),
		Password: hashedPassword,
		Phone:    p.Phone,
		Company:  p.Company,
		Role:     p.Role,
		Verified: true,
	}
	if err := a.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (a *Accounts) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := a.db.Where("email = ?", normalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// MarkVerified flips the account to verified and clears the OTP columns in
// the same statement, keeping the verified-implies-no-code invariant.
// Idempotent.
func (a *Accounts) MarkVerified(id uint) error {
	return a.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]any{
		"verified":       true,
		"otp_code":       nil,
		"otp_expires_at": nil,
	}).Error
}

// DeleteExpiredUnverified removes every unverified account whose OTP expired
// before now and reports how many were removed. The predicate runs inside a
// single DELETE, so a concurrent registration of a not-yet-expired account
// can never be caught by it.
func (a *Accounts) DeleteExpiredUnverified(now time.Time) (int64, error) {
	res := a.db.Where("verified = ? AND otp_expires_at IS NOT NULL AND otp_expires_at < ?", false, now).
		Delete(&models.User{})
	return res.RowsAffected, res.Error
}
