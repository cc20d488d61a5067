package models

import (
	"time"
)

// QRCode is a single-use admission ticket. Its ID is printed as a QR code
// pointing at the participation page.
type QRCode struct {
	ID          string       `gorm:"primaryKey;type:varchar(64)" json:"id"`
	IsUsed      bool         `gorm:"not null;default:false" json:"isUsed"`
	UsedAt      *time.Time   `json:"usedAt"`                                               // nil until a participant registers with it
	CreatedAt   time.Time    `gorm:"index" json:"createdAt"`
	Participant *Participant `gorm:"foreignKey:QRCodeID;references:ID" json:"participant,omitempty"`
}

func (QRCode) TableName() string { return "qr_codes" }

// Participant is created once per QR code, at registration time.
type Participant struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	FirstName   string    `gorm:"not null" json:"firstName"`
	LastName    string    `gorm:"not null" json:"lastName"`
	Email       string    `gorm:"not null" json:"email"`
	PhoneNumber *string   `json:"phoneNumber"`
	QRCodeID    string    `gorm:"column:qr_code_id;type:varchar(64);uniqueIndex;not null" json:"qrCodeId"` // at most one participant per QR code
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
}

func (Participant) TableName() string { return "participants" }
