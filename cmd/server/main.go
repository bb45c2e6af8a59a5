package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "github.com/lib/pq"

	authhandler "claimsys/internal/auth/handler"
	authservice "claimsys/internal/auth/service"
	authstore "claimsys/internal/auth/store"
	"claimsys/internal/claims"
	claimshandler "claimsys/internal/claims/handler"
	claimsservice "claimsys/internal/claims/service"
	claimsstore "claimsys/internal/claims/store"
	jwttoken "claimsys/internal/jwt_token"
	"claimsys/internal/platform/config"
	"claimsys/internal/platform/httpserver"
	"claimsys/internal/platform/logger"
	"claimsys/internal/platform/metrics"
	"claimsys/internal/platform/middleware"
	httptransport "claimsys/internal/transport/http"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Error("open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := claimsstore.InitSchema(ctx, db); err != nil {
		cancel()
		log.Error("init schema", "error", err)
		os.Exit(1)
	}
	cancel()

	m := metrics.New()

	validator := claims.NewValidator()
	records := claimsservice.New(
		claimsstore.NewPostgresTxRunner(db, claimsstore.WithTxMetrics(m)),
		validator,
		claimsservice.WithMetrics(m),
	)

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, "claimsys")
	auth := authservice.New(authstore.NewPostgres(db), jwtService)

	requireAuth := middleware.RequireAuth(&jwtValidatorAdapter{jwt: jwtService}, log)
	router := httptransport.NewRouter(
		authhandler.New(auth, log),
		claimshandler.New(records, log, requireAuth),
		log,
	)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting claimsys", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

// jwtValidatorAdapter bridges the token service to the middleware's
// validator interface.
type jwtValidatorAdapter struct {
	jwt *jwttoken.JWTService
}

func (a *jwtValidatorAdapter) ValidateToken(tokenString string) (*middleware.JWTClaims, error) {
	claims, err := a.jwt.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return &middleware.JWTClaims{Username: claims.Username}, nil
}
