package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Expense struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key"`

	Date        time.Time `gorm:"index;not null"`
	Category    string    `gorm:"type:varchar(40)"`
	Description string
	Amount      float64 `gorm:"type:decimal(12,2);not null"`
	Currency    string  `gorm:"type:varchar(10);default:'USD'"`

	gorm.Model
}

func (e *Expense) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}

// FXRate is a manually maintained conversion rate into the base currency.
type FXRate struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key"`

	Currency string    `gorm:"type:varchar(10);not null;index"`
	Rate     float64   `gorm:"not null"`
	Date     time.Time `gorm:"not null"`
}

func (r *FXRate) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
