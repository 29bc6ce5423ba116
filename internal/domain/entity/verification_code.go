package entity

import "time"

// VerificationCode is a one-time SMS code issued for a phone number.
//
// At most one unexpired row exists per phone: issuing a new code deletes any
// live predecessor first. Expired rows are never read (every lookup filters on
// expires_at) and are removed lazily; there is no background reaper.
type VerificationCode struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Phone     string    `gorm:"type:varchar(20);not null;index" json:"phone"`
	Code      string    `gorm:"type:char(6);not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	Attempts  int       `gorm:"not null;default:0" json:"attempts"`
	Verified  bool      `gorm:"not null;default:false" json:"verified"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (VerificationCode) TableName() string {
	return "verification_codes"
}
