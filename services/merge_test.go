package services

import (
	"testing"

	"crm-master-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeCustomersPreservesIdentity(t *testing.T) {
	id := uuid.New()
	existing := []models.Customer{
		{ID: id, Name: "Acme Materials", Rank: 3, Status: models.CustomerStatusPotential},
	}
	incoming := []models.Customer{
		// same normalized name, different case/padding and fields
		{Name: "  acme materials ", Rank: 1, Status: models.CustomerStatusOrdered},
	}

	merged := MergeCustomers(existing, incoming)
	require.Len(t, merged, 1)
	assert.Equal(t, id, merged[0].ID, "sample foreign keys depend on the id surviving")
	assert.Equal(t, 1, merged[0].Rank)
	assert.Equal(t, models.CustomerStatusOrdered, merged[0].Status)
	// inputs untouched
	assert.Equal(t, 3, existing[0].Rank)
}

func TestMergeCustomersInsertsNewNames(t *testing.T) {
	existing := []models.Customer{{ID: uuid.New(), Name: "Acme"}}
	incoming := []models.Customer{{Name: "Borealis"}}

	merged := MergeCustomers(existing, incoming)
	require.Len(t, merged, 2)
	assert.Equal(t, "Borealis", merged[1].Name)
	assert.NotEqual(t, uuid.Nil, merged[1].ID)
	assert.NotEqual(t, existing[0].ID, merged[1].ID)
}

func TestMergeCustomersNoDuplicateNames(t *testing.T) {
	merged := MergeCustomers(nil, []models.Customer{
		{Name: "Acme", Rank: 2},
		{Name: "ACME", Rank: 5},
	})
	require.Len(t, merged, 1)
	assert.Equal(t, 5, merged[0].Rank, "later incoming row wins")
}

func TestReplaceCustomersGeneratesFreshIDs(t *testing.T) {
	original := uuid.New()
	replaced := ReplaceCustomers([]models.Customer{{ID: original, Name: "Acme"}})
	require.Len(t, replaced, 1)
	assert.NotEqual(t, original, replaced[0].ID)
	assert.NotEqual(t, uuid.Nil, replaced[0].ID)
}

func TestResolveCustomerID(t *testing.T) {
	id := uuid.New()
	customers := []models.Customer{{ID: id, Name: "Acme Materials"}}

	assert.Equal(t, id, ResolveCustomerID("acme materials", customers))
	assert.Equal(t, id, ResolveCustomerID("  ACME MATERIALS ", customers))
	// unresolved names get the sentinel, the row is never rejected
	assert.Equal(t, UnknownCustomerID, ResolveCustomerID("nobody", customers))
}

func TestNextSampleIndex(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	samples := []models.Sample{
		{CustomerID: a, SampleIndex: 1},
		{CustomerID: a, SampleIndex: 4},
		{CustomerID: b, SampleIndex: 2},
	}
	assert.Equal(t, 5, NextSampleIndex(samples, a))
	assert.Equal(t, 3, NextSampleIndex(samples, b))
	assert.Equal(t, 1, NextSampleIndex(samples, uuid.New()))
}

func TestAttachSamples(t *testing.T) {
	id := uuid.New()
	customers := []models.Customer{{ID: id, Name: "Acme"}}
	existing := []models.Sample{{CustomerID: id, SampleIndex: 2}}

	attached := AttachSamples([]models.Sample{
		{CustomerName: "Acme", CrystalType: "CVD", Form: "powder"},
		{CustomerName: "acme", CrystalType: "HPHT"},
		{CustomerName: "Unknown Co", CrystalType: "CVD"},
	}, customers, existing)

	require.Len(t, attached, 3)
	assert.Equal(t, id, attached[0].CustomerID)
	assert.Equal(t, 3, attached[0].SampleIndex)
	assert.Equal(t, id, attached[1].CustomerID)
	assert.Equal(t, 4, attached[1].SampleIndex)
	assert.Equal(t, UnknownCustomerID, attached[2].CustomerID)
	assert.Equal(t, "Unknown Co", attached[2].CustomerName, "raw name kept for re-linking")
	assert.Equal(t, "CVD powder", attached[0].SampleName)
}
