package models

import (
	"time"
)

type Prize struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description *string   `json:"description"`
	Quantity    int       `gorm:"not null;default:1;index" json:"quantity"` // only prizes with quantity > 0 are offered for a draw
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Prize) TableName() string { return "prizes" }
