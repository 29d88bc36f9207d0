package http

import (
	"github.com/campustrade/verify-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/campustrade/verify-api/internal/infrastructure/jwt"
	"github.com/campustrade/verify-api/internal/infrastructure/mail"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	ChallengeRepo  *dynamo.ChallengeRepo
	DebugOtpRepo   *dynamo.DebugOtpRepo
	UniversityRepo *dynamo.UniversityRepo
	Mailer         mail.Mailer
	JWTProvider    *jwtinfra.Provider
}
