package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Canonical customer status keys. Display labels (English/Chinese) live in
// utils/tags.go; the database only ever stores these keys.
const (
	CustomerStatusPotential = "potential"
	CustomerStatusContacted = "contacted"
	CustomerStatusSampling  = "sampling"
	CustomerStatusTesting   = "testing"
	CustomerStatusOrdered   = "ordered"
	CustomerStatusPaused    = "paused"
)

// Canonical follow-up status keys (whose turn it is to act next).
const (
	FollowUpWaitingReply = "waitingReply"
	FollowUpNeedFollowUp = "needFollowUp"
	FollowUpNoAction     = "noAction"
)

type Customer struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key"`

	Name           string     `gorm:"not null;index"`
	Region         StringList `gorm:"type:text"`
	Rank           int        `gorm:"default:3"` // 1 = highest priority, 5 = lowest
	Status         string     `gorm:"type:varchar(40);default:'potential'"`
	FollowUpStatus string     `gorm:"type:varchar(40);default:'noAction'"`

	ProductSummary   string `gorm:"type:text"`
	LastStatusUpdate *time.Time

	// Exhibition names. Soft reference by name: renaming an exhibition must
	// rewrite these lists, deleting one leaves them as-is.
	Tags StringList `gorm:"type:text"`

	// Caches over the interaction log. Recomputed after every interaction
	// mutation; see services.ComputeDerivedDates.
	LastContactDate       *time.Time
	LastCustomerReplyDate *time.Time
	LastMyReplyDate       *time.Time

	Contacts     []Contact     `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	Interactions []Interaction `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`

	gorm.Model
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

type Contact struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name      string `gorm:"not null"`
	Role      string
	Email     string
	Phone     string
	WeChat    string
	IsPrimary bool `gorm:"default:false"`
}

func (c *Contact) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

// Interaction is one entry of a customer's interaction log. Summary keeps the
// legacy encoded form "(STAR)<TYPE>{EFFECT}content"; structured access goes
// through utils.EncodeSummary / utils.DecodeSummary.
type Interaction struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null"`

	Date    time.Time `gorm:"index;not null"`
	Summary string    `gorm:"type:text"`
}

func (i *Interaction) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}
