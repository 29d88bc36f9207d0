package http

import (
	"net/http"

	"github.com/campustrade/verify-api/internal/application/otp"
	"github.com/campustrade/verify-api/internal/config"
	"github.com/campustrade/verify-api/internal/transport/http/handler"
	appmiddleware "github.com/campustrade/verify-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	svcDeps := otp.Deps{
		Challenges:    deps.ChallengeRepo,
		DebugOtps:     deps.DebugOtpRepo,
		Directory:     deps.UniversityRepo,
		Mailer:        deps.Mailer,
		Suffixes:      cfg.AcademicSuffixes,
		DebugFallback: cfg.DebugFallback,
	}
	if deps.JWTProvider != nil {
		svcDeps.Signer = deps.JWTProvider
	}
	otpSvc := otp.NewService(svcDeps)

	healthH := handler.NewHealthHandler()
	otpH := handler.NewOtpHandler(otpSvc)

	// 5 requests/second, burst of 10 — both OTP endpoints are public and
	// abuse-prone.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health-check/{action}", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/otp/request", otpH.Request)
		r.With(sensitiveRL.Limit).Post("/otp/verify", otpH.Verify)
	})

	return r
}
