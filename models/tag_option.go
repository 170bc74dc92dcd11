package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TagOption kinds.
const (
	TagKindCategory = "category"
	TagKindSeries   = "series"
)

// TagOption is a runtime-added tag. Built-in tags live in utils/tags.go;
// users can extend the category and event-series spaces freely, so
// unrecognized tags always pass through canonicalization unchanged.
type TagOption struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key"`

	Kind    string `gorm:"type:varchar(20);not null;index"`
	Key     string `gorm:"not null"`
	LabelEN string
	LabelZH string
}

func (t *TagOption) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
