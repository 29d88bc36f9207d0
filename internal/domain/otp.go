package domain

import "time"

// OtpChallenge is one in-flight email verification attempt.
// PK: email_hash (hex SHA-256 of the lower-cased email).
// The plaintext code is never stored here — only its SHA-256 hex digest.
// ExpiresAt is a Unix timestamp used as DynamoDB TTL.
type OtpChallenge struct {
	EmailHash    string    `json:"email_hash" dynamodbav:"email_hash"`
	CodeHash     string    `json:"code_hash" dynamodbav:"code_hash"`
	UniversityID string    `json:"university_id" dynamodbav:"university_id"`
	ExpiresAt    int64     `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
	Tries        int       `json:"tries" dynamodbav:"tries"`
	CreatedAt    time.Time `json:"created_at" dynamodbav:"created_at"`
	ChallengeID  string    `json:"challenge_id" dynamodbav:"challenge_id"` // ULID, log correlation only
}

// Expired reports whether the challenge's deadline has passed at the given instant.
func (c *OtpChallenge) Expired(now time.Time) bool {
	return c.ExpiresAt < now.Unix()
}

// DebugOtp holds a plaintext code for environments without a configured
// mail transport. PK: email (lower-cased). Never written when delivery
// succeeds, and only when the debug fallback is explicitly enabled.
type DebugOtp struct {
	Email        string    `json:"email" dynamodbav:"email"`
	Code         string    `json:"otp" dynamodbav:"otp"`
	UniversityID string    `json:"university_id" dynamodbav:"university_id"`
	ExpiresAt    int64     `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
	CreatedAt    time.Time `json:"created_at" dynamodbav:"created_at"`
}

// MaxTries is the attempt budget per challenge. The record is deleted once
// the budget is consumed; further submissions fail with ErrTooManyAttempts.
const MaxTries = 3

// ChallengeTTL is how long an issued code stays valid.
const ChallengeTTL = 5 * time.Minute
