// services/merge.go
package services

import (
	"strings"

	"crm-master-backend/models"

	"github.com/google/uuid"
)

// UnknownCustomerID marks a sample whose customer name did not resolve at
// import time.
var UnknownCustomerID = uuid.Nil

// NormalizeName is the dedup key for customer reconciliation.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// MergeCustomers reconciles an imported batch against the existing set.
// An incoming record whose normalized name matches an existing customer
// replaces that customer's fields wholesale but keeps the existing id:
// samples reference customers by id, so identity must survive a re-import.
// Everything else is appended with a fresh id. Pure: both inputs are left
// untouched.
func MergeCustomers(existing, incoming []models.Customer) []models.Customer {
	merged := make([]models.Customer, len(existing))
	copy(merged, existing)

	byName := make(map[string]int, len(merged))
	for i := range merged {
		byName[NormalizeName(merged[i].Name)] = i
	}

	for _, in := range incoming {
		key := NormalizeName(in.Name)
		if i, ok := byName[key]; ok {
			id := merged[i].ID
			merged[i] = in
			merged[i].ID = id
		} else {
			in.ID = uuid.New()
			byName[key] = len(merged)
			merged = append(merged, in)
		}
	}
	return merged
}

// ReplaceCustomers discards the existing set entirely and returns the
// incoming batch with fresh ids. Irreversible; the API boundary gates it
// behind an explicit confirmation.
func ReplaceCustomers(incoming []models.Customer) []models.Customer {
	replaced := make([]models.Customer, len(incoming))
	copy(replaced, incoming)
	for i := range replaced {
		replaced[i].ID = uuid.New()
	}
	return replaced
}

// ResolveCustomerID looks a sample row's customer name up against the
// current customer set, case-insensitively. Unresolved names map to the
// uuid.Nil sentinel: the row is kept orphaned, not dropped, so the operator
// can fix it afterwards.
func ResolveCustomerID(customerName string, customers []models.Customer) uuid.UUID {
	key := NormalizeName(customerName)
	for i := range customers {
		if NormalizeName(customers[i].Name) == key {
			return customers[i].ID
		}
	}
	return UnknownCustomerID
}

// NextSampleIndex returns max+1 over the customer's existing samples.
func NextSampleIndex(samples []models.Sample, customerID uuid.UUID) int {
	max := 0
	for i := range samples {
		if samples[i].CustomerID == customerID && samples[i].SampleIndex > max {
			max = samples[i].SampleIndex
		}
	}
	return max + 1
}

// AttachSamples resolves and numbers an imported sample batch against the
// current customer and sample sets. Imported samples always append; there
// is no dedup key for samples.
func AttachSamples(incoming []models.Sample, customers []models.Customer, existing []models.Sample) []models.Sample {
	attached := make([]models.Sample, len(incoming))
	copy(attached, incoming)

	// running per-customer counters seeded from the existing set
	next := make(map[uuid.UUID]int)
	for i := range attached {
		s := &attached[i]
		s.ID = uuid.New()
		s.CustomerID = ResolveCustomerID(s.CustomerName, customers)
		if _, ok := next[s.CustomerID]; !ok {
			next[s.CustomerID] = NextSampleIndex(existing, s.CustomerID)
		}
		s.SampleIndex = next[s.CustomerID]
		next[s.CustomerID]++
		s.SampleName = s.DeriveName()
	}
	return attached
}
