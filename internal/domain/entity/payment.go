package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod discriminates how the consultation fee was settled
type PaymentMethod string

const (
	PaymentMethodCard      PaymentMethod = "card"
	PaymentMethodInsurance PaymentMethod = "insurance"
)

// Payment records the simulated settlement of a consultation fee. There is no
// real charge behind it; Reference is the receipt handle returned to the user.
type Payment struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AppointmentID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"appointment_id"`
	Method        PaymentMethod   `gorm:"type:varchar(20);not null" json:"method"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Reference     string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"reference"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (Payment) TableName() string {
	return "payments"
}
