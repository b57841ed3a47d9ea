package sweeper

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"zynetra/backend/models"
	"zynetra/backend/store"
)

func newTestAccounts(t *testing.T) *store.Accounts {
	t.Helper()
	// A named shared-cache DSN keeps the sweeper goroutine and the test on
	// the same in-memory database across pooled connections.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return store.NewAccounts(db)
}

func seed(t *testing.T, accounts *store.Accounts, email string, expiresAt time.Time) {
	t.Helper()
	_, err := accounts.Create(store.Profile{Name: "Ada", Email: email}, "hash", "123456", expiresAt)
	require.NoError(t, err)
}

func TestSweep_RemovesOnlyExpiredUnverified(t *testing.T) {
	accounts := newTestAccounts(t)
	now := time.Now()

	seed(t, accounts, "expired@x.com", now.Add(-time.Second))
	seed(t, accounts, "pending@x.com", now.Add(10*time.Minute))
	require.NoError(t, accounts.CreateVerified(store.Profile{Name: "Owner", Email: "owner@x.com"}, "hash"))

	s := New(accounts, time.Minute)
	s.sweep(now)

	_, err := accounts.FindByEmail("expired@x.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = accounts.FindByEmail("pending@x.com")
	assert.NoError(t, err)
	_, err = accounts.FindByEmail("owner@x.com")
	assert.NoError(t, err)
}

func TestRun_PurgesOnTickAndStopsOnCancel(t *testing.T) {
	accounts := newTestAccounts(t)
	seed(t, accounts, "expired@x.com", time.Now().Add(-time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	s := New(accounts, 10*time.Millisecond)
	go func() {
		s.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		_, err := accounts.FindByEmail("expired@x.com")
		return err != nil
	}, 2*time.Second, 10*time.Millisecond, "expired account should be swept on a tick")

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
}

func TestNew_DefaultsToOneMinute(t *testing.T) {
	s := New(newTestAccounts(t), 0)
	assert.Equal(t, time.Minute, s.interval)
}
