package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Doctor represents a directory record managed by admins. Doctors do not log
// in; patients pick one when booking.
//
// AvailabilityStart/End are full timestamps anchored to the date the record
// was created. They describe a single day's consultation window, not a
// recurring weekly slot.
type Doctor struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name              string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Email             string          `gorm:"type:varchar(255);not null" json:"email"`
	Phone             string          `gorm:"type:varchar(20);not null" json:"phone"`
	Specialization    string          `gorm:"type:varchar(100);not null;index" json:"specialization"`
	Experience        string          `gorm:"type:varchar(100)" json:"experience,omitempty"`
	Rate              decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"rate"`
	AvailabilityStart time.Time       `gorm:"not null" json:"availability_start"`
	AvailabilityEnd   time.Time       `gorm:"not null" json:"availability_end"`
	ImageURL          string          `gorm:"type:text;not null" json:"image_url"`
	CreatedAt         time.Time       `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// DefaultRate is the consultation fee used when a doctor is created without
// an explicit rate, and when an appointment's physician has no directory record.
var DefaultRate = decimal.NewFromInt(50)
