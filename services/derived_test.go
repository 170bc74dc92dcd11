package services

import (
	"testing"
	"time"

	"crm-master-backend/models"
	"crm-master-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func interaction(date, effect string) models.Interaction {
	return models.Interaction{
		Date: day(date),
		Summary: utils.EncodeSummary(utils.SummaryParts{
			Effect:  effect,
			Content: "note",
		}),
	}
}

func TestComputeDerivedDates(t *testing.T) {
	d := ComputeDerivedDates([]models.Interaction{
		interaction("2024-01-01", utils.EffectCustomerReply),
		interaction("2024-01-10", utils.EffectMyReply),
	})

	require.NotNil(t, d.LastContact)
	require.NotNil(t, d.LastCustomerReply)
	require.NotNil(t, d.LastMyReply)
	assert.True(t, d.LastContact.Equal(day("2024-01-10")))
	assert.True(t, d.LastCustomerReply.Equal(day("2024-01-01")))
	assert.True(t, d.LastMyReply.Equal(day("2024-01-10")))
}

func TestComputeDerivedDatesIgnoresInputOrder(t *testing.T) {
	d := ComputeDerivedDates([]models.Interaction{
		interaction("2024-01-10", utils.EffectMyReply),
		interaction("2024-03-02", utils.TagNone),
		interaction("2024-01-01", utils.EffectCustomerReply),
	})
	assert.True(t, d.LastContact.Equal(day("2024-03-02")))
	assert.True(t, d.LastCustomerReply.Equal(day("2024-01-01")))
	assert.True(t, d.LastMyReply.Equal(day("2024-01-10")))
}

func TestComputeDerivedDatesBothReplyCountsTwice(t *testing.T) {
	d := ComputeDerivedDates([]models.Interaction{
		interaction("2024-02-02", utils.EffectBothReply),
	})
	assert.True(t, d.LastCustomerReply.Equal(day("2024-02-02")))
	assert.True(t, d.LastMyReply.Equal(day("2024-02-02")))
}

func TestComputeDerivedDatesEmptyLog(t *testing.T) {
	d := ComputeDerivedDates(nil)
	assert.Nil(t, d.LastContact)
	assert.Nil(t, d.LastCustomerReply)
	assert.Nil(t, d.LastMyReply)
}

func TestApplyDerivedDatesPreservePolicy(t *testing.T) {
	stored := day("2023-12-01")
	customer := models.Customer{
		LastContactDate:       &stored,
		LastCustomerReplyDate: &stored,
		LastMyReplyDate:       &stored,
	}

	// computation found a contact but no replies: replies keep stored values
	contact := day("2024-01-05")
	ApplyDerivedDates(&customer, DerivedDates{LastContact: &contact}, false)
	assert.True(t, customer.LastContactDate.Equal(contact))
	assert.True(t, customer.LastCustomerReplyDate.Equal(stored))
	assert.True(t, customer.LastMyReplyDate.Equal(stored))
}

func TestApplyDerivedDatesAuthoritativeClears(t *testing.T) {
	stored := day("2023-12-01")
	customer := models.Customer{
		LastContactDate:       &stored,
		LastCustomerReplyDate: &stored,
		LastMyReplyDate:       &stored,
	}

	contact := day("2024-01-05")
	ApplyDerivedDates(&customer, DerivedDates{LastContact: &contact}, true)
	assert.True(t, customer.LastContactDate.Equal(contact))
	assert.Nil(t, customer.LastCustomerReplyDate)
	assert.Nil(t, customer.LastMyReplyDate)
}
