package otp

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/campustrade/verify-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory stores mirroring the DynamoDB repos' contracts, used for
// full-flow scenarios that span multiple operations.

type memChallengeStore struct {
	records map[string]*domain.OtpChallenge
}

func newMemChallengeStore() *memChallengeStore {
	return &memChallengeStore{records: make(map[string]*domain.OtpChallenge)}
}

func (s *memChallengeStore) Put(_ context.Context, c *domain.OtpChallenge) error {
	cp := *c
	s.records[c.EmailHash] = &cp
	return nil
}

func (s *memChallengeStore) Get(_ context.Context, emailHash string) (*domain.OtpChallenge, error) {
	c, ok := s.records[emailHash]
	if !ok {
		return nil, fmt.Errorf("challenge not found: %w", domain.ErrNotFound)
	}
	cp := *c
	return &cp, nil
}

func (s *memChallengeStore) IncrementTries(_ context.Context, emailHash string, max int) (int, error) {
	c, ok := s.records[emailHash]
	if !ok || c.Tries >= max {
		return 0, fmt.Errorf("attempt budget consumed: %w", domain.ErrTooManyAttempts)
	}
	c.Tries++
	return c.Tries, nil
}

func (s *memChallengeStore) Delete(_ context.Context, emailHash string) error {
	delete(s.records, emailHash)
	return nil
}

type memDebugStore struct {
	records map[string]*domain.DebugOtp
}

func newMemDebugStore() *memDebugStore {
	return &memDebugStore{records: make(map[string]*domain.DebugOtp)}
}

func (s *memDebugStore) Put(_ context.Context, d *domain.DebugOtp) error {
	s.records[d.Email] = d
	return nil
}

func (s *memDebugStore) Delete(_ context.Context, email string) error {
	delete(s.records, email)
	return nil
}

type memDirectory struct {
	universities map[string]*domain.University
}

func (d *memDirectory) Get(_ context.Context, id string) (*domain.University, error) {
	u, ok := d.universities[id]
	if !ok {
		return nil, fmt.Errorf("university not found: %w", domain.ErrNotFound)
	}
	return u, nil
}

// capturingMailer records every send without delivering.
type capturingMailer struct {
	delivered bool
	sent      []string
}

func (m *capturingMailer) Send(_ context.Context, to, _, _, _ string) (bool, error) {
	m.sent = append(m.sent, to)
	return m.delivered, nil
}

type flowFixture struct {
	svc        Service
	challenges *memChallengeStore
	debug      *memDebugStore
	mailer     *capturingMailer
	codes      []string
	nextCode   string
}

func newFlowFixture(t *testing.T, debugFallback bool) *flowFixture {
	t.Helper()
	f := &flowFixture{
		challenges: newMemChallengeStore(),
		debug:      newMemDebugStore(),
		mailer:     &capturingMailer{delivered: true},
		nextCode:   "123456",
	}
	f.svc = NewService(Deps{
		Challenges:    f.challenges,
		DebugOtps:     f.debug,
		Directory:     &memDirectory{universities: map[string]*domain.University{"stanford": stanford()}},
		Mailer:        f.mailer,
		DebugFallback: debugFallback,
		Now:           func() time.Time { return testNow },
		GenerateCode: func() (string, error) {
			f.codes = append(f.codes, f.nextCode)
			return f.nextCode, nil
		},
	})
	return f
}

func TestFlow_RequestThenVerify_SingleUse(t *testing.T) {
	f := newFlowFixture(t, false)

	_, err := f.svc.RequestChallenge(context.Background(), RequestChallengeRequest{
		Email: "alice@stanford.edu", UniversityID: "stanford",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"alice@stanford.edu"}, f.mailer.sent)

	result, err := f.svc.VerifyChallenge(context.Background(), VerifyChallengeRequest{
		Email: "alice@stanford.edu", Code: "123456",
	})
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, f.challenges.records, "no residual record after success")

	// Replaying the same code hits nothing.
	_, err = f.svc.VerifyChallenge(context.Background(), VerifyChallengeRequest{
		Email: "alice@stanford.edu", Code: "123456",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestFlow_ReissueSupersedesPriorCode(t *testing.T) {
	f := newFlowFixture(t, false)

	_, err := f.svc.RequestChallenge(context.Background(), RequestChallengeRequest{
		Email: "alice@stanford.edu", UniversityID: "stanford",
	})
	require.NoError(t, err)

	f.nextCode = "777777"
	_, err = f.svc.RequestChallenge(context.Background(), RequestChallengeRequest{
		Email: "alice@stanford.edu", UniversityID: "stanford",
	})
	require.NoError(t, err)
	require.Len(t, f.challenges.records, 1, "second issuance overwrites the first")

	// The superseded code no longer verifies.
	_, err = f.svc.VerifyChallenge(context.Background(), VerifyChallengeRequest{
		Email: "alice@stanford.edu", Code: "123456",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))

	// The fresh one does.
	_, err = f.svc.VerifyChallenge(context.Background(), VerifyChallengeRequest{
		Email: "alice@stanford.edu", Code: "777777",
	})
	require.NoError(t, err)
}

func TestFlow_AttemptBudget(t *testing.T) {
	f := newFlowFixture(t, false)

	_, err := f.svc.RequestChallenge(context.Background(), RequestChallengeRequest{
		Email: "alice@stanford.edu", UniversityID: "stanford",
	})
	require.NoError(t, err)

	for i, want := range []string{"2 attempts remaining", "1 attempts remaining", "0 attempts remaining"} {
		_, err := f.svc.VerifyChallenge(context.Background(), VerifyChallengeRequest{
			Email: "alice@stanford.edu", Code: "000000",
		})
		require.Error(t, err, "attempt %d", i+1)
		assert.Contains(t, err.Error(), want)
	}

	// Budget consumed: even the correct code is refused and the record
	// is cleaned up so a fresh challenge can be issued.
	_, err = f.svc.VerifyChallenge(context.Background(), VerifyChallengeRequest{
		Email: "alice@stanford.edu", Code: "123456",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrTooManyAttempts))
	assert.Empty(t, f.challenges.records)
}

func TestFlow_DebugFallback_CleanedUpOnVerify(t *testing.T) {
	f := newFlowFixture(t, true)
	f.mailer.delivered = false

	result, err := f.svc.RequestChallenge(context.Background(), RequestChallengeRequest{
		Email: "alice@stanford.edu", UniversityID: "stanford",
	})
	require.NoError(t, err)
	assert.False(t, result.Delivered)
	require.Contains(t, f.debug.records, "alice@stanford.edu")
	assert.Equal(t, "123456", f.debug.records["alice@stanford.edu"].Code)

	_, err = f.svc.VerifyChallenge(context.Background(), VerifyChallengeRequest{
		Email: "alice@stanford.edu", Code: "123456",
	})
	require.NoError(t, err)
	assert.Empty(t, f.debug.records, "debug record removed on success")
}
