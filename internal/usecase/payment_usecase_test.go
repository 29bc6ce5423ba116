package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"patient-appointment-service/config"
	"patient-appointment-service/internal/delivery/dto"
	"patient-appointment-service/internal/domain/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPaymentUsecase() PaymentUsecase {
	return NewPaymentUsecase(testLogger(), config.PaymentConfig{SimulatedDelay: 0})
}

func validCardRequest() *dto.PaymentRequest {
	return &dto.PaymentRequest{
		Method:     "card",
		CardNumber: "4242424242424242",
		CardExpiry: "12/30",
		CardCVC:    "123",
	}
}

func TestProcessCardPayment(t *testing.T) {
	u := newTestPaymentUsecase()

	payment, err := u.Process(context.Background(), validCardRequest(), decimal.NewFromInt(75))
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentMethodCard, payment.Method)
	assert.True(t, payment.Amount.Equal(decimal.NewFromInt(75)))
	assert.True(t, strings.HasPrefix(payment.Reference, "PAY-"))
}

func TestProcessInsurancePayment(t *testing.T) {
	u := newTestPaymentUsecase()

	payment, err := u.Process(context.Background(), &dto.PaymentRequest{
		Method:            "insurance",
		InsuranceProvider: "Acme Health",
		PolicyNumber:      "POL-44812",
	}, decimal.NewFromInt(50))
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentMethodInsurance, payment.Method)
}

func TestProcessInsuranceMissingInfo(t *testing.T) {
	u := newTestPaymentUsecase()

	_, err := u.Process(context.Background(), &dto.PaymentRequest{
		Method:            "insurance",
		InsuranceProvider: "Acme Health",
	}, decimal.NewFromInt(50))
	assert.ErrorIs(t, err, ErrMissingInsuranceInfo)
}

func TestProcessCardValidation(t *testing.T) {
	u := newTestPaymentUsecase()

	tests := []struct {
		name    string
		mutate  func(req *dto.PaymentRequest)
		wantErr error
	}{
		{
			name:    "luhn checksum failure",
			mutate:  func(req *dto.PaymentRequest) { req.CardNumber = "4242424242424241" },
			wantErr: ErrInvalidCardNumber,
		},
		{
			name:    "card number too short",
			mutate:  func(req *dto.PaymentRequest) { req.CardNumber = "42424242424" },
			wantErr: ErrInvalidCardNumber,
		},
		{
			name:    "card number with letters",
			mutate:  func(req *dto.PaymentRequest) { req.CardNumber = "4242abcd42424242" },
			wantErr: ErrInvalidCardNumber,
		},
		{
			name:    "expiry wrong shape",
			mutate:  func(req *dto.PaymentRequest) { req.CardExpiry = "1230" },
			wantErr: ErrInvalidCardExpiry,
		},
		{
			name:    "expiry month out of range",
			mutate:  func(req *dto.PaymentRequest) { req.CardExpiry = "13/30" },
			wantErr: ErrInvalidCardExpiry,
		},
		{
			name:    "cvc too short",
			mutate:  func(req *dto.PaymentRequest) { req.CardCVC = "12" },
			wantErr: ErrInvalidCardCVC,
		},
		{
			name:    "cvc non numeric",
			mutate:  func(req *dto.PaymentRequest) { req.CardCVC = "12a" },
			wantErr: ErrInvalidCardCVC,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCardRequest()
			tt.mutate(req)
			_, err := u.Process(context.Background(), req, decimal.NewFromInt(50))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestProcessExpiryShapeOnly(t *testing.T) {
	u := newTestPaymentUsecase()

	// Shape-only validation: a past date is accepted.
	req := validCardRequest()
	req.CardExpiry = "01/20"
	_, err := u.Process(context.Background(), req, decimal.NewFromInt(50))
	assert.NoError(t, err)
}

func TestProcessCancelledContext(t *testing.T) {
	u := NewPaymentUsecase(testLogger(), config.PaymentConfig{SimulatedDelay: time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := u.Process(ctx, validCardRequest(), decimal.NewFromInt(50))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLuhnValid(t *testing.T) {
	assert.True(t, luhnValid("4242424242424242"))
	assert.True(t, luhnValid("4111111111111111"))
	assert.False(t, luhnValid("4242424242424243"))
	assert.False(t, luhnValid(""))
}

func TestGeneratePaymentReferenceUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		ref := generatePaymentReference()
		assert.False(t, seen[ref], "duplicate reference %s", ref)
		seen[ref] = true
	}
}
