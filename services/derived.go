// services/derived.go
package services

import (
	"sort"
	"time"

	"crm-master-backend/models"
	"crm-master-backend/utils"
)

// DerivedDates are the three caches computed from a customer's interaction
// log. A nil field means the log contained no matching interaction, which is
// distinct from "no date": ApplyDerivedDates decides whether that preserves
// or clears the stored value.
type DerivedDates struct {
	LastContact       *time.Time
	LastCustomerReply *time.Time
	LastMyReply       *time.Time
}

// ComputeDerivedDates scans an interaction log. Last contact is the maximum
// date regardless of tags; last customer reply and last my reply come from
// the most recent interaction whose decoded effect tag matches (bothReply
// counts toward both). Input order is not trusted; the log is re-sorted by
// date descending first. Same-day duplicates all participate; max wins.
func ComputeDerivedDates(interactions []models.Interaction) DerivedDates {
	sorted := make([]models.Interaction, len(interactions))
	copy(sorted, interactions)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	var d DerivedDates
	for i := range sorted {
		date := sorted[i].Date
		if d.LastContact == nil {
			d.LastContact = &date
		}
		switch utils.DecodeSummary(sorted[i].Summary).Effect {
		case utils.EffectCustomerReply:
			if d.LastCustomerReply == nil {
				d.LastCustomerReply = &date
			}
		case utils.EffectMyReply:
			if d.LastMyReply == nil {
				d.LastMyReply = &date
			}
		case utils.EffectBothReply:
			if d.LastCustomerReply == nil {
				d.LastCustomerReply = &date
			}
			if d.LastMyReply == nil {
				d.LastMyReply = &date
			}
		}
		if d.LastCustomerReply != nil && d.LastMyReply != nil {
			break
		}
	}
	return d
}

// ApplyDerivedDates writes a computation result onto the customer's cached
// fields. Non-authoritative mode keeps the stored value wherever the
// computation found nothing; authoritative mode copies the result verbatim,
// clearing fields the log no longer supports. Every interaction mutation and
// the default refresh are non-authoritative; authoritative is an explicit
// resync the caller opts into.
func ApplyDerivedDates(customer *models.Customer, d DerivedDates, authoritative bool) {
	if authoritative {
		customer.LastContactDate = d.LastContact
		customer.LastCustomerReplyDate = d.LastCustomerReply
		customer.LastMyReplyDate = d.LastMyReply
		return
	}
	if d.LastContact != nil {
		customer.LastContactDate = d.LastContact
	}
	if d.LastCustomerReply != nil {
		customer.LastCustomerReplyDate = d.LastCustomerReply
	}
	if d.LastMyReply != nil {
		customer.LastMyReplyDate = d.LastMyReply
	}
}
