package usecase

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"patient-appointment-service/config"
	"patient-appointment-service/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memCodeRepo is an in-memory VerificationCodeRepository for tests.
type memCodeRepo struct {
	seq     uint
	records []*entity.VerificationCode
}

func (m *memCodeRepo) Create(_ context.Context, record *entity.VerificationCode) error {
	m.seq++
	record.ID = m.seq
	record.CreatedAt = time.Now()
	m.records = append(m.records, record)
	return nil
}

func (m *memCodeRepo) FindLiveByPhone(_ context.Context, phone string, now time.Time) (*entity.VerificationCode, error) {
	for i := len(m.records) - 1; i >= 0; i-- {
		r := m.records[i]
		if r.Phone == phone && r.ExpiresAt.After(now) {
			return r, nil
		}
	}
	return nil, nil
}

func (m *memCodeRepo) UpdateAttempts(_ context.Context, id uint, attempts int) error {
	for _, r := range m.records {
		if r.ID == id {
			r.Attempts = attempts
			return nil
		}
	}
	return nil
}

func (m *memCodeRepo) MarkVerified(_ context.Context, id uint) error {
	for _, r := range m.records {
		if r.ID == id {
			r.Verified = true
			return nil
		}
	}
	return nil
}

func (m *memCodeRepo) Delete(_ context.Context, id uint) error {
	kept := m.records[:0]
	for _, r := range m.records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	m.records = kept
	return nil
}

func (m *memCodeRepo) DeleteByPhone(_ context.Context, phone string) error {
	kept := m.records[:0]
	for _, r := range m.records {
		if r.Phone != phone {
			kept = append(kept, r)
		}
	}
	m.records = kept
	return nil
}

func (m *memCodeRepo) byPhone(phone string) []*entity.VerificationCode {
	var out []*entity.VerificationCode
	for _, r := range m.records {
		if r.Phone == phone {
			out = append(out, r)
		}
	}
	return out
}

// fakeSender captures outgoing SMS messages.
type fakeSender struct {
	bodies []string
	err    error
}

func (f *fakeSender) Send(_ context.Context, to, body string) error {
	if f.err != nil {
		return f.err
	}
	f.bodies = append(f.bodies, body)
	return nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestVerificationUsecase(repo *memCodeRepo, sender *fakeSender) *verificationUsecase {
	u := NewVerificationUsecase(testLogger(), repo, sender, config.VerificationConfig{
		CodeTTL:     10 * time.Minute,
		MaxAttempts: 5,
	})
	return u.(*verificationUsecase)
}

const testPhone = "+15551234567"

func TestSendCodeStoresSixDigitCode(t *testing.T) {
	repo := &memCodeRepo{}
	sender := &fakeSender{}
	u := newTestVerificationUsecase(repo, sender)

	require.NoError(t, u.SendCode(context.Background(), testPhone))

	records := repo.byPhone(testPhone)
	require.Len(t, records, 1)
	assert.Len(t, records[0].Code, 6)
	assert.Equal(t, 0, records[0].Attempts)
	assert.False(t, records[0].Verified)

	require.Len(t, sender.bodies, 1)
	assert.Contains(t, sender.bodies[0], records[0].Code)
}

func TestSendCodeReplacesPreviousCode(t *testing.T) {
	repo := &memCodeRepo{}
	sender := &fakeSender{}
	u := newTestVerificationUsecase(repo, sender)

	require.NoError(t, u.SendCode(context.Background(), testPhone))
	first := repo.byPhone(testPhone)[0].ID

	require.NoError(t, u.SendCode(context.Background(), testPhone))

	records := repo.byPhone(testPhone)
	require.Len(t, records, 1)
	assert.NotEqual(t, first, records[0].ID)
}

func TestSendCodeSenderFailure(t *testing.T) {
	repo := &memCodeRepo{}
	sender := &fakeSender{err: errors.New("provider down")}
	u := newTestVerificationUsecase(repo, sender)

	err := u.SendCode(context.Background(), testPhone)
	assert.ErrorIs(t, err, ErrSendFailed)
}

func TestCheckCodeSuccess(t *testing.T) {
	repo := &memCodeRepo{}
	u := newTestVerificationUsecase(repo, &fakeSender{})

	require.NoError(t, u.SendCode(context.Background(), testPhone))
	code := repo.byPhone(testPhone)[0].Code

	require.NoError(t, u.CheckCode(context.Background(), testPhone, code))

	verified, err := u.IsVerified(context.Background(), testPhone)
	require.NoError(t, err)
	assert.True(t, verified)
}

func TestCheckCodeVerifiedRecheckDoesNotCountAttempts(t *testing.T) {
	repo := &memCodeRepo{}
	u := newTestVerificationUsecase(repo, &fakeSender{})

	require.NoError(t, u.SendCode(context.Background(), testPhone))
	record := repo.byPhone(testPhone)[0]

	require.NoError(t, u.CheckCode(context.Background(), testPhone, record.Code))
	attempts := record.Attempts

	// Re-checking an already verified phone succeeds regardless of code.
	require.NoError(t, u.CheckCode(context.Background(), testPhone, "000000"))
	assert.Equal(t, attempts, record.Attempts)
}

func TestCheckCodeMismatchReportsRemainingAttempts(t *testing.T) {
	repo := &memCodeRepo{}
	u := newTestVerificationUsecase(repo, &fakeSender{})

	require.NoError(t, u.SendCode(context.Background(), testPhone))

	for want := 4; want >= 1; want-- {
		err := u.CheckCode(context.Background(), testPhone, "wrong0")
		var mismatch *CodeMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, want, mismatch.Remaining)
	}
}

func TestCheckCodeAttemptCeilingDestroysRecord(t *testing.T) {
	repo := &memCodeRepo{}
	u := newTestVerificationUsecase(repo, &fakeSender{})

	require.NoError(t, u.SendCode(context.Background(), testPhone))
	code := repo.byPhone(testPhone)[0].Code

	for i := 0; i < 4; i++ {
		err := u.CheckCode(context.Background(), testPhone, "wrong0")
		var mismatch *CodeMismatchError
		require.ErrorAs(t, err, &mismatch)
	}

	// The fifth attempt hits the ceiling even with the correct code.
	err := u.CheckCode(context.Background(), testPhone, code)
	assert.ErrorIs(t, err, ErrTooManyAttempts)
	assert.Empty(t, repo.byPhone(testPhone))

	err = u.CheckCode(context.Background(), testPhone, code)
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestCheckCodeExpired(t *testing.T) {
	repo := &memCodeRepo{}
	u := newTestVerificationUsecase(repo, &fakeSender{})

	require.NoError(t, u.SendCode(context.Background(), testPhone))
	code := repo.byPhone(testPhone)[0].Code

	u.now = func() time.Time { return time.Now().Add(11 * time.Minute) }

	err := u.CheckCode(context.Background(), testPhone, code)
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestCheckCodeUnknownPhone(t *testing.T) {
	repo := &memCodeRepo{}
	u := newTestVerificationUsecase(repo, &fakeSender{})

	err := u.CheckCode(context.Background(), "+15550000000", "123456")
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestIsVerifiedExpiresWithRecord(t *testing.T) {
	repo := &memCodeRepo{}
	u := newTestVerificationUsecase(repo, &fakeSender{})

	require.NoError(t, u.SendCode(context.Background(), testPhone))
	code := repo.byPhone(testPhone)[0].Code
	require.NoError(t, u.CheckCode(context.Background(), testPhone, code))

	u.now = func() time.Time { return time.Now().Add(11 * time.Minute) }

	verified, err := u.IsVerified(context.Background(), testPhone)
	require.NoError(t, err)
	assert.False(t, verified)
}
