package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campustrade/verify-api/internal/application/reaper"
	"github.com/campustrade/verify-api/internal/config"
	"github.com/campustrade/verify-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/campustrade/verify-api/internal/infrastructure/jwt"
	"github.com/campustrade/verify-api/internal/infrastructure/mail"
	transporthttp "github.com/campustrade/verify-api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	challengeRepo := dynamo.NewChallengeRepo(dynamoClient, cfg.DynamoTables.EmailOtps)
	debugOtpRepo := dynamo.NewDebugOtpRepo(dynamoClient, cfg.DynamoTables.EmailOtpsDebug)
	universityRepo := dynamo.NewUniversityRepo(dynamoClient, cfg.DynamoTables.Universities)

	// JWT provider (optional — verification tokens are omitted if keys are missing).
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		log.Printf("WARN: JWT provider not available: %v", err)
	}

	mailer := mail.NewMailer(cfg)

	deps := &transporthttp.Deps{
		ChallengeRepo:  challengeRepo,
		DebugOtpRepo:   debugOtpRepo,
		UniversityRepo: universityRepo,
		Mailer:         mailer,
		JWTProvider:    jwtProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	// Expiry sweep over both challenge tables.
	sweeper := reaper.NewService(map[string]reaper.ExpiryStore{
		"email_otps":       challengeRepo,
		"email_otps_debug": debugOtpRepo,
	})
	scheduler := reaper.NewScheduler(sweeper, slog.Default())
	if err := scheduler.Start(cfg.SweepSchedule); err != nil {
		log.Fatalf("could not schedule expiry sweep: %v", err)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	<-scheduler.Stop().Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
