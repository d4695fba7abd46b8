package model

import (
	"time"
)

// BaseEntity carries the audit timestamps shared by every table.
// GORM fills CreatedAt and UpdatedAt automatically.
type BaseEntity struct {
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}
