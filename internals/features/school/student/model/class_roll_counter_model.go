package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClassRollCounterModel reserves roll ordinals per (year, class) partition.
// The unique index makes the increment-and-read inside a transaction the
// single atomic step that hands out the next ordinal, so two concurrent
// assignments to the same class can never see the same count.
type ClassRollCounterModel struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Year  int       `gorm:"not null;uniqueIndex:uq_class_roll_counters_year_class" json:"year"`
	Class string    `gorm:"type:varchar(10);not null;uniqueIndex:uq_class_roll_counters_year_class" json:"class"`
	Count int       `gorm:"not null;default:0" json:"count"`

	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ClassRollCounterModel) TableName() string { return "class_roll_counters" }

func (m *ClassRollCounterModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
