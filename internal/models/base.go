package models

import "time"

// Base contains common columns for all tables. Primary keys are
// system-assigned monotonic integers.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
