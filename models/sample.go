package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sample workflow status keys.
const (
	SampleStatusPreparing = "preparing"
	SampleStatusShipped   = "shipped"
	SampleStatusReceived  = "received"
	SampleStatusFeedback  = "feedback"
)

// Test status keys.
const (
	TestStatusOngoing    = "ongoing"
	TestStatusFinished   = "finished"
	TestStatusTerminated = "terminated"
)

type Sample struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key"`

	// uuid.Nil means the owning customer could not be resolved at import
	// time; the row is kept so the operator can re-link it later.
	CustomerID   uuid.UUID `gorm:"type:uuid;index"`
	CustomerName string    // denormalized, rewritten when the customer is renamed
	SampleIndex  int       `gorm:"not null"` // per-customer counter, max+1 on creation

	// Name constituents. SampleName has no independent truth: it is
	// recomputed from these whenever any of them changes.
	SampleName    string `gorm:"index"`
	CrystalType   string
	Categories    StringList `gorm:"type:text"`
	Form          string
	OriginalSize  string
	ProcessedSize string
	Nickname      string

	Status         string `gorm:"type:varchar(40);default:'preparing'"`
	TestStatus     string `gorm:"type:varchar(20);default:'ongoing'"`
	LastStatusDate *time.Time

	NextActionDate *time.Time
	UpcomingPlan   string `gorm:"type:text"`

	// Newest-first dated history entries, encoded with the " ||| " and
	// 【date】 grammar from utils/history.go.
	StatusDetails string `gorm:"type:text"`

	Fee       *SampleFee     `gorm:"foreignKey:SampleID;constraint:OnDelete:CASCADE"`
	Documents []DocumentLink `gorm:"foreignKey:SampleID;constraint:OnDelete:CASCADE"`

	gorm.Model
}

func (s *Sample) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// DeriveName rebuilds the composite sample name from its constituent fields:
// "<crystal> <categories...> <form> - <original> > <processed> (<nickname>)".
// Empty constituents drop together with their separators.
func (s *Sample) DeriveName() string {
	var parts []string
	if s.CrystalType != "" {
		parts = append(parts, s.CrystalType)
	}
	for _, cat := range s.Categories {
		if cat != "" {
			parts = append(parts, cat)
		}
	}
	if s.Form != "" {
		parts = append(parts, s.Form)
	}
	name := strings.Join(parts, " ")

	var size string
	switch {
	case s.OriginalSize != "" && s.ProcessedSize != "":
		size = s.OriginalSize + " > " + s.ProcessedSize
	case s.OriginalSize != "":
		size = s.OriginalSize
	case s.ProcessedSize != "":
		size = s.ProcessedSize
	}
	if size != "" {
		if name == "" {
			name = size
		} else {
			name += " - " + size
		}
	}

	if s.Nickname != "" {
		if name == "" {
			name = "(" + s.Nickname + ")"
		} else {
			name += " (" + s.Nickname + ")"
		}
	}
	return name
}

type SampleFee struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	SampleID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`

	PaymentCategory string
	PaymentType     string
	SamplePrice     float64 `gorm:"type:decimal(12,2);default:0"`
	ShippingPrice   float64 `gorm:"type:decimal(12,2);default:0"`
	Currency        string  `gorm:"type:varchar(10);default:'USD'"`
	Balance         float64 `gorm:"type:decimal(12,2);default:0"`
	InvoiceDate     *time.Time
	PaymentDate     *time.Time
	PaymentStatus   string `gorm:"type:varchar(20);default:'unpaid'"`
	Comment         string `gorm:"type:text"`
}

func (f *SampleFee) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return
}

type DocumentLink struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	SampleID uuid.UUID `gorm:"type:uuid;index;not null"`

	Title string
	URL   string `gorm:"not null"`
}

func (d *DocumentLink) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return
}
