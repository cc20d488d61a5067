package models

import (
	"time"
)

type Winner struct {
	ID            string       `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ParticipantID string       `gorm:"type:varchar(36);uniqueIndex;not null" json:"participantId"` // a participant wins at most once
	Participant   *Participant `gorm:"foreignKey:ParticipantID;constraint:OnDelete:CASCADE" json:"participant,omitempty"`
	PrizeID       string       `gorm:"type:varchar(36);index;not null" json:"prizeId"`
	Prize         *Prize       `gorm:"foreignKey:PrizeID" json:"prize,omitempty"`
	DrawnBy       string       `json:"drawnBy"` // admin who performed the draw
	CreatedAt     time.Time    `gorm:"index" json:"createdAt"`
}

func (Winner) TableName() string { return "winners" }
