package logger

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"gorm.io/gorm"

	"zynetra/backend/models"
)

// DBHandler tees every record to stdout as JSON and persists it as a
// LogEntry row. The "source" and "user_id" attrs become columns; everything
// else lands in the Data blob.
type DBHandler struct {
	db          *gorm.DB
	jsonHandler slog.Handler
	attrs       []slog.Attr
}

func NewDBHandler(db *gorm.DB) *DBHandler {
	return &DBHandler{
		db:          db,
		jsonHandler: slog.NewJSONHandler(os.Stdout, nil),
	}
}

func (h *DBHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return true
}

func (h *DBHandler) Handle(ctx context.Context, r slog.Record) error {
	_ = h.jsonHandler.Handle(ctx, r)

	entry := models.LogEntry{
		CreatedAt: time.Now(),
		Level:     r.Level.String(),
		Message:   r.Message,
	}

	extra := make(map[string]any)
	collect := func(a slog.Attr) {
		switch a.Key {
		case "source":
			entry.Source = a.Value.String()
		case "user_id":
			if id := attrUserID(a.Value); id > 0 {
				entry.UserID = &id
			}
		default:
			extra[a.Key] = a.Value.Any()
		}
	}
	for _, a := range h.attrs {
		collect(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		collect(a)
		return true
	})

	if len(extra) > 0 {
		if b, err := json.Marshal(extra); err == nil {
			entry.Data = string(b)
		}
	}

	return h.db.Create(&entry).Error
}

func attrUserID(v slog.Value) uint {
	switch v.Kind() {
	case slog.KindInt64:
		return uint(v.Int64())
	case slog.KindUint64:
		return uint(v.Uint64())
	default:
		return 0
	}
}

func (h *DBHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &DBHandler{db: h.db, jsonHandler: h.jsonHandler, attrs: merged}
}

func (h *DBHandler) WithGroup(name string) slog.Handler {
	return h
}

// CleanupOldLogs drops entries older than maxAge once an hour until ctx is
// cancelled.
func CleanupOldLogs(ctx context.Context, db *gorm.DB, maxAge time.Duration) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-maxAge)
			db.Where("created_at < ?", cutoff).Delete(&models.LogEntry{})
		}
	}
}
