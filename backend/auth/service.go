package auth

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"zynetra/backend/models"
	"zynetra/backend/notify"
	"zynetra/backend/otp"
	"zynetra/backend/store"
)

// Profile is the registrant-supplied part of an account.
type Profile struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Role    string
}

// Service orchestrates registration, verification and login over the
// account store. Per account the lifecycle is: unverified --(matching,
// unexpired code)--> verified, which is terminal; unverified rows whose
// code expired are removed by the sweeper.
type Service struct {
	accounts *store.Accounts
	issuer   *otp.Issuer
	notifier notify.Notifier
	now      func() time.Time
}

func NewService(accounts *store.Accounts, issuer *otp.Issuer, notifier notify.Notifier) *Service {
	return &Service{
		accounts: accounts,
		issuer:   issuer,
		notifier: notifier,
		now:      time.Now,
	}
}

// NormalizeEmail trims and lowercases an address the same way the store does.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an unverified account with a fresh code and hands the
// code to the notifier without blocking the response. The returned email is
// the normalized address the caller should key the verification step by.
func (s *Service) Register(p Profile, rawPassword string) (string, error) {
	email := NormalizeEmail(p.Email)

	hashed, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	code, expiresAt := s.issuer.Generate()

	_, err = s.accounts.Create(store.Profile{
		Name:    p.Name,
		Email:   email,
		Phone:   p.Phone,
		Company: p.Company,
		Role:    p.Role,
	}, string(hashed), code, expiresAt)
	if errors.Is(err, store.ErrDuplicateEmail) {
		slog.Warn("registration failed: email exists", "source", "auth", "email", email)
		return "", ErrDuplicateEmail
	}
	if err != nil {
		slog.Error("registration failed: store error", "source", "auth", "error", err.Error())
		return "", err
	}

	go s.deliver(email, code, p.Name)

	slog.Info("user registered", "source", "auth", "email", email)
	return email, nil
}

// deliver is best-effort: a dead mail transport must never abort a
// registration, so failures fall back to the operator log.
func (s *Service) deliver(email, code, name string) {
	if err := s.notifier.Send(email, code, name); err != nil {
		slog.Warn("otp email not delivered", "source", "notify",
			"email", email, "code", code, "error", err.Error())
	}
}

// Verify checks the submitted code and flips the account to verified,
// clearing the code so it can never be replayed. Unknown email, wrong code,
// expired code and already-verified all collapse into ErrInvalidCode.
func (s *Service) Verify(email, submittedCode string) (*models.User, error) {
	email = NormalizeEmail(email)

	user, err := s.accounts.FindByEmail(email)
	if err != nil {
		slog.Warn("verification failed", "source", "auth", "email", email)
		return nil, ErrInvalidCode
	}

	if user.OTPCode == nil || user.OTPExpiresAt == nil {
		return nil, ErrInvalidCode
	}
	if *user.OTPCode != submittedCode || !s.now().Before(*user.OTPExpiresAt) {
		slog.Warn("verification failed", "source", "auth", "email", email)
		return nil, ErrInvalidCode
	}

	if err := s.accounts.MarkVerified(user.ID); err != nil {
		slog.Error("verification failed: store error", "source", "auth", "error", err.Error())
		return nil, ErrInvalidCode
	}

	user.Verified = true
	user.OTPCode = nil
	user.OTPExpiresAt = nil

	slog.Info("account verified", "source", "auth", "user_id", user.ID, "email", email)
	return user, nil
}

// Login checks the credentials against the store. A missing account and a
// wrong password return the same ErrInvalidCredentials. A correct password
// on an unverified account returns ErrNotVerified, whether the account is
// still pending or was already swept.
func (s *Service) Login(email, rawPassword string) (*models.User, error) {
	email = NormalizeEmail(email)

	user, err := s.accounts.FindByEmail(email)
	if err != nil {
		slog.Warn("login failed", "source", "auth", "email", email)
		return nil, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(rawPassword)) != nil {
		slog.Warn("login failed", "source", "auth", "email", email)
		return nil, ErrInvalidCredentials
	}

	if !user.Verified {
		slog.Warn("login refused: account not verified", "source", "auth", "email", email)
		return nil, ErrNotVerified
	}

	slog.Info("user logged in", "source", "auth", "user_id", user.ID, "email", email)
	return user, nil
}
