package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zynetra/backend/auth"
	"zynetra/backend/config"
	"zynetra/backend/database"
	"zynetra/backend/handlers"
	"zynetra/backend/logger"
	"zynetra/backend/middleware"
	"zynetra/backend/notify"
	"zynetra/backend/otp"
	"zynetra/backend/session"
	"zynetra/backend/store"
	"zynetra/backend/sweeper"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatal("Failed to init database:", err)
	}

	// Structured logging into the same database
	slog.SetDefault(slog.New(logger.NewDBHandler(db)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go logger.CleanupOldLogs(ctx, db, cfg.Logs.Retention)

	if err := database.SeedOwner(db, cfg.Owner); err != nil {
		log.Fatal("Failed to seed owner account:", err)
	}

	sessions, err := session.NewManager(cfg.Session.Secret, cfg.Session.Timeout, cfg.Session.RememberTimeout, cfg.TLS.Enabled)
	if err != nil {
		log.Fatal("Failed to init sessions:", err)
	}

	var notifier notify.Notifier = notify.LogNotifier{}
	if cfg.SMTP.Host != "" {
		notifier = notify.NewSMTP(cfg.SMTP)
	}

	accounts := store.NewAccounts(db)
	authSvc := auth.NewService(accounts, otp.NewIssuer(), notifier)
	policy := auth.NewPolicy(cfg.Owner.Email)
	h := handlers.New(authSvc, sessions, policy)

	go sweeper.New(accounts, time.Minute).Run(ctx)

	// Rate limiter for auth endpoints (10 requests per minute)
	authRateLimiter := middleware.NewRateLimiter(10, time.Minute)
	requireAuth := middleware.RequireAuth(sessions)

	mux := http.NewServeMux()

	// Health check (unauthenticated, for load balancers)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("GET /api/session-status", h.SessionStatus)

	// Auth routes (public, rate limited)
	mux.HandleFunc("GET /login", h.LoginPage)
	mux.HandleFunc("POST /login", authRateLimiter.LimitFunc(h.Login))
	mux.HandleFunc("POST /register", authRateLimiter.LimitFunc(h.Register))
	mux.HandleFunc("GET /verify-otp", h.VerifyPage)
	mux.HandleFunc("POST /verify-code", authRateLimiter.LimitFunc(h.VerifyCode))
	mux.HandleFunc("GET /logout", h.Logout)

	// Post-auth views require an active session
	mux.HandleFunc("GET /loading", requireAuth(h.ProtectedPage))
	mux.HandleFunc("GET /dashboard", requireAuth(h.ProtectedPage))

	handler := middleware.RequestID(middleware.SecurityHeaders(mux))

	srv := &http.Server{Addr: cfg.Listen, Handler: handler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "source", "main", "listen", cfg.Listen)

	if cfg.TLS.Enabled {
		err = srv.ListenAndServeTLS(cfg.TLS.Cert, cfg.TLS.Key)
	} else {
		err = srv.ListenAndServe()
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
