package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"patient-appointment-service/config"
	"patient-appointment-service/internal/delivery/dto"
	"patient-appointment-service/internal/domain/entity"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidCardNumber    = errors.New("card number failed validation")
	ErrInvalidCardExpiry    = errors.New("card expiry must be MM/YY")
	ErrInvalidCardCVC       = errors.New("card security code is invalid")
	ErrMissingInsuranceInfo = errors.New("insurance provider and policy number are required")
)

// PaymentUsecase simulates settlement of the consultation fee. Inputs are
// validated for shape only; nothing is charged. After a fixed artificial
// delay the call succeeds with a generated receipt reference. There is no
// retry or idempotency handling; this is an explicit placeholder for a real
// payment integration.
type PaymentUsecase interface {
	Process(ctx context.Context, req *dto.PaymentRequest, amount decimal.Decimal) (*entity.Payment, error)
}

type paymentUsecase struct {
	log *logrus.Logger
	cfg config.PaymentConfig
}

func NewPaymentUsecase(log *logrus.Logger, cfg config.PaymentConfig) PaymentUsecase {
	return &paymentUsecase{
		log: log,
		cfg: cfg,
	}
}

func (u *paymentUsecase) Process(ctx context.Context, req *dto.PaymentRequest, amount decimal.Decimal) (*entity.Payment, error) {
	method := entity.PaymentMethod(req.Method)

	switch method {
	case entity.PaymentMethodCard:
		if err := validateCard(req); err != nil {
			return nil, err
		}
	case entity.PaymentMethodInsurance:
		if req.InsuranceProvider == "" || req.PolicyNumber == "" {
			return nil, ErrMissingInsuranceInfo
		}
	}

	// Simulated processing time; the only failure mode is cancellation.
	select {
	case <-time.After(u.cfg.SimulatedDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	payment := &entity.Payment{
		Method:    method,
		Amount:    amount,
		Reference: generatePaymentReference(),
	}

	u.log.Infof("Simulated payment accepted: method=%s, amount=%s, ref=%s", method, amount.StringFixed(2), payment.Reference)
	return payment, nil
}

func validateCard(req *dto.PaymentRequest) error {
	if !luhnValid(req.CardNumber) {
		return ErrInvalidCardNumber
	}
	if !expiryValid(req.CardExpiry) {
		return ErrInvalidCardExpiry
	}
	if len(req.CardCVC) < 3 || len(req.CardCVC) > 4 {
		return ErrInvalidCardCVC
	}
	for _, r := range req.CardCVC {
		if r < '0' || r > '9' {
			return ErrInvalidCardCVC
		}
	}
	return nil
}

// luhnValid runs the standard Luhn checksum over a 12-19 digit card number.
func luhnValid(number string) bool {
	if len(number) < 12 || len(number) > 19 {
		return false
	}

	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		r := number[i]
		if r < '0' || r > '9' {
			return false
		}
		digit := int(r - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return sum%10 == 0
}

// expiryValid checks the MM/YY shape; it does not reject past dates, matching
// the shape-only validation contract.
func expiryValid(expiry string) bool {
	parts := strings.Split(expiry, "/")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return false
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return false
	}
	if _, err := strconv.Atoi(parts[1]); err != nil {
		return false
	}
	return true
}

// generatePaymentReference generates a receipt handle: PAY-YYYYMMDD-XXXXXX
func generatePaymentReference() string {
	randomBytes := make([]byte, 3)
	rand.Read(randomBytes)
	return fmt.Sprintf("PAY-%s-%06X", time.Now().UTC().Format("20060102"), randomBytes)
}
