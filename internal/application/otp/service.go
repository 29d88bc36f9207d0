package otp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/campustrade/verify-api/internal/domain"
	"github.com/campustrade/verify-api/internal/infrastructure/mail"
	"github.com/campustrade/verify-api/internal/pkg/fingerprint"
	"github.com/campustrade/verify-api/internal/pkg/id"
	"github.com/campustrade/verify-api/internal/pkg/otpcode"
)

type RequestChallengeRequest struct {
	Email        string `json:"email" validate:"required"`
	UniversityID string `json:"university_id" validate:"required"`
}

type VerifyChallengeRequest struct {
	Email string `json:"email" validate:"required"`
	Code  string `json:"otp" validate:"required"`
}

// RequestChallengeResult reports whether delivery was confirmed or the
// issuer degraded to the debug path.
type RequestChallengeResult struct {
	Delivered bool
	DebugHint string
}

// VerifyChallengeResult carries the optional signed verification token.
type VerifyChallengeResult struct {
	VerificationToken string
}

// ChallengeStore is the keyed record store for in-flight challenges.
// IncrementTries must be atomic and fail with domain.ErrTooManyAttempts
// once the counter reaches max, so racing submissions cannot both pass
// the budget.
type ChallengeStore interface {
	Put(ctx context.Context, c *domain.OtpChallenge) error
	Get(ctx context.Context, emailHash string) (*domain.OtpChallenge, error)
	IncrementTries(ctx context.Context, emailHash string, max int) (int, error)
	Delete(ctx context.Context, emailHash string) error
}

// DebugOtpStore persists plaintext codes for transport-less environments.
type DebugOtpStore interface {
	Put(ctx context.Context, d *domain.DebugOtp) error
	Delete(ctx context.Context, email string) error
}

// DirectoryStore looks up universities by id.
type DirectoryStore interface {
	Get(ctx context.Context, universityID string) (*domain.University, error)
}

// TokenSigner mints verified-email tokens. May be absent.
type TokenSigner interface {
	Sign(email, universityID string) (string, error)
}

type Service interface {
	RequestChallenge(ctx context.Context, req RequestChallengeRequest) (*RequestChallengeResult, error)
	VerifyChallenge(ctx context.Context, req VerifyChallengeRequest) (*VerifyChallengeResult, error)
}

// Deps wires the service. Now and GenerateCode default to the wall clock
// and crypto/rand when nil; tests inject both.
type Deps struct {
	Challenges    ChallengeStore
	DebugOtps     DebugOtpStore
	Directory     DirectoryStore
	Mailer        mail.Mailer
	Signer        TokenSigner // nil disables verification tokens
	Suffixes      []string    // accepted academic suffixes, e.g. ".edu"
	DebugFallback bool
	Now           func() time.Time
	GenerateCode  func() (string, error)
}

type service struct {
	challenges    ChallengeStore
	debugOtps     DebugOtpStore
	directory     DirectoryStore
	mailer        mail.Mailer
	signer        TokenSigner
	suffixes      []string
	debugFallback bool
	now           func() time.Time
	generateCode  func() (string, error)
}

func NewService(d Deps) Service {
	s := &service{
		challenges:    d.Challenges,
		debugOtps:     d.DebugOtps,
		directory:     d.Directory,
		mailer:        d.Mailer,
		signer:        d.Signer,
		suffixes:      d.Suffixes,
		debugFallback: d.DebugFallback,
		now:           d.Now,
		generateCode:  d.GenerateCode,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.generateCode == nil {
		s.generateCode = otpcode.Generate
	}
	if len(s.suffixes) == 0 {
		s.suffixes = []string{".edu"}
	}
	return s
}

func (s *service) RequestChallenge(ctx context.Context, req RequestChallengeRequest) (*RequestChallengeResult, error) {
	if req.Email == "" || req.UniversityID == "" {
		return nil, fmt.Errorf("email and university id are required: %w", domain.ErrInvalidArgument)
	}

	email := strings.ToLower(req.Email)
	if !strings.Contains(email, "@") || !s.hasAcademicSuffix(email) {
		return nil, fmt.Errorf("invalid academic email address: %w", domain.ErrInvalidArgument)
	}

	university, err := s.directory.Get(ctx, req.UniversityID)
	if err != nil {
		return nil, fmt.Errorf("university not found: %w", domain.ErrNotFound)
	}

	emailDomain := email[strings.LastIndex(email, "@")+1:]
	if !university.HasDomain(emailDomain) {
		return nil, fmt.Errorf("email domain does not match selected university: %w", domain.ErrInvalidArgument)
	}

	code, err := s.generateCode()
	if err != nil {
		return nil, fmt.Errorf("could not generate code: %w", domain.ErrInternal)
	}

	now := s.now()
	challenge := &domain.OtpChallenge{
		EmailHash:    fingerprint.Email(email),
		CodeHash:     fingerprint.Code(code),
		UniversityID: req.UniversityID,
		ExpiresAt:    now.Add(domain.ChallengeTTL).Unix(),
		Tries:        0,
		CreatedAt:    now,
		ChallengeID:  id.New(),
	}
	// Overwrites any outstanding challenge: a new code always supersedes
	// the old one.
	if err := s.challenges.Put(ctx, challenge); err != nil {
		slog.Error("could not store challenge", "challenge_id", challenge.ChallengeID, "err", err)
		return nil, fmt.Errorf("could not store challenge: %w", domain.ErrInternal)
	}

	result := &RequestChallengeResult{Delivered: true}
	delivered, sendErr := s.sendCode(ctx, email, code, university.Name)
	if sendErr != nil {
		slog.Warn("mail delivery failed", "challenge_id", challenge.ChallengeID, "err", sendErr)
	}
	if !delivered {
		// Delivery failure does not invalidate the stored challenge.
		result.Delivered = false
		if s.debugFallback {
			s.storeDebugCode(ctx, email, code, req.UniversityID, challenge.ExpiresAt, now)
			result.DebugHint = "mail transport not configured, code stored in debug table"
			slog.Warn("debug mode: code stored for manual retrieval",
				"challenge_id", challenge.ChallengeID, "email", email)
		}
	}
	return result, nil
}

func (s *service) sendCode(ctx context.Context, email, code, universityName string) (bool, error) {
	html, text, err := mail.RenderOtpEmail(code, universityName)
	if err != nil {
		return false, err
	}
	return s.mailer.Send(ctx, email, mail.Subject, text, html)
}

func (s *service) storeDebugCode(ctx context.Context, email, code, universityID string, expiresAt int64, now time.Time) {
	err := s.debugOtps.Put(ctx, &domain.DebugOtp{
		Email:        email,
		Code:         code,
		UniversityID: universityID,
		ExpiresAt:    expiresAt,
		CreatedAt:    now,
	})
	if err != nil {
		slog.Warn("could not store debug code", "email", email, "err", err)
	}
}

var codePattern = regexp.MustCompile(`^\d{6}$`)

func (s *service) VerifyChallenge(ctx context.Context, req VerifyChallengeRequest) (*VerifyChallengeResult, error) {
	if req.Email == "" || req.Code == "" {
		return nil, fmt.Errorf("email and code are required: %w", domain.ErrInvalidArgument)
	}
	if !codePattern.MatchString(req.Code) {
		return nil, fmt.Errorf("invalid code format: %w", domain.ErrInvalidArgument)
	}

	email := strings.ToLower(req.Email)
	emailHash := fingerprint.Email(email)

	challenge, err := s.challenges.Get(ctx, emailHash)
	if err != nil {
		return nil, fmt.Errorf("no code found for this email, request a new one: %w", domain.ErrNotFound)
	}

	if challenge.Expired(s.now()) {
		s.deleteChallenge(ctx, emailHash, challenge.ChallengeID)
		return nil, fmt.Errorf("code has expired, request a new one: %w", domain.ErrExpired)
	}

	if challenge.Tries >= domain.MaxTries {
		s.deleteChallenge(ctx, emailHash, challenge.ChallengeID)
		return nil, fmt.Errorf("too many failed attempts, request a new code: %w", domain.ErrTooManyAttempts)
	}

	if fingerprint.Code(req.Code) != challenge.CodeHash {
		newTries, incErr := s.challenges.IncrementTries(ctx, emailHash, domain.MaxTries)
		if errors.Is(incErr, domain.ErrTooManyAttempts) {
			// A racing submission consumed the budget first.
			s.deleteChallenge(ctx, emailHash, challenge.ChallengeID)
			return nil, fmt.Errorf("too many failed attempts, request a new code: %w", domain.ErrTooManyAttempts)
		}
		if incErr != nil {
			slog.Error("could not increment tries", "challenge_id", challenge.ChallengeID, "err", incErr)
			return nil, fmt.Errorf("could not record attempt: %w", domain.ErrInternal)
		}
		remaining := domain.MaxTries - newTries
		return nil, fmt.Errorf("invalid code, %d attempts remaining: %w", remaining, domain.ErrInvalidArgument)
	}

	// Single use: the challenge and any debug copy go away on success.
	s.deleteChallenge(ctx, emailHash, challenge.ChallengeID)
	if err := s.debugOtps.Delete(ctx, email); err != nil {
		slog.Warn("could not delete debug code", "challenge_id", challenge.ChallengeID, "err", err)
	}

	result := &VerifyChallengeResult{}
	if s.signer != nil {
		token, signErr := s.signer.Sign(email, challenge.UniversityID)
		if signErr != nil {
			slog.Warn("could not sign verification token", "challenge_id", challenge.ChallengeID, "err", signErr)
		} else {
			result.VerificationToken = token
		}
	}
	return result, nil
}

func (s *service) deleteChallenge(ctx context.Context, emailHash, challengeID string) {
	if err := s.challenges.Delete(ctx, emailHash); err != nil {
		slog.Warn("could not delete challenge", "challenge_id", challengeID, "err", err)
	}
}

func (s *service) hasAcademicSuffix(email string) bool {
	for _, suffix := range s.suffixes {
		if strings.HasSuffix(email, suffix) {
			return true
		}
	}
	return false
}
