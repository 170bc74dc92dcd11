package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Exhibition is referenced by customers through their Tags list by name, not
// by id. Renaming one must cascade through every customer's tag list.
type Exhibition struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key"`

	Name        string `gorm:"not null;uniqueIndex"`
	Date        *time.Time
	Location    string
	Link        string
	EventSeries StringList `gorm:"type:text"`
	Summary     string     `gorm:"type:text"`

	gorm.Model
}

func (e *Exhibition) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}
