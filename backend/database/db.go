package database

import (
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"zynetra/backend/config"
	"zynetra/backend/models"
	"zynetra/backend/store"
)

// Open connects to the SQLite database at path and migrates the schema.
// TranslateError turns the driver's unique-constraint failures into
// gorm.ErrDuplicatedKey, which the store relies on.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&models.User{}, &models.LogEntry{}); err != nil {
		return nil, err
	}
	return db, nil
}

// SeedOwner inserts the configured owner account pre-verified, once. A
// second startup finds the row and does nothing, so the owner is never
// duplicated. Seeding is skipped when no seed password is configured.
func SeedOwner(db *gorm.DB, owner config.OwnerConfig) error {
	if owner.Password == "" {
		slog.Warn("owner seed skipped: no password configured", "source", "database")
		return nil
	}

	accounts := store.NewAccounts(db)
	if _, err := accounts.FindByEmail(owner.Email); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(owner.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	err = accounts.CreateVerified(store.Profile{
		Name:    owner.Name,
		Email:   owner.Email,
		Phone:   owner.Phone,
		Company: owner.Company,
		Role:    owner.Role,
	}, string(hashed))
	if errors.Is(err, store.ErrDuplicateEmail) {
		// Lost a race with another startup path; the row exists, which is
		// all the seed guarantees.
		return nil
	}
	if err != nil {
		return err
	}

	slog.Info("owner account seeded", "source", "database", "email", owner.Email)
	return nil
}
