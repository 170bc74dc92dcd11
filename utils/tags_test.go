package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalTagMatchesKeysAndLabels(t *testing.T) {
	// already canonical
	assert.Equal(t, "sampling", CanonicalTag("sampling"))
	// canonical key, different case and padding
	assert.Equal(t, "waitingReply", CanonicalTag("  WAITINGREPLY "))
	// English label
	assert.Equal(t, "needFollowUp", CanonicalTag("Need Follow-up"))
	// Chinese label
	assert.Equal(t, "sampling", CanonicalTag("寄样中"))
	assert.Equal(t, EffectCustomerReply, CanonicalTag("客户回复"))
}

func TestCanonicalTagPassthrough(t *testing.T) {
	// unrecognized tags pass through trimmed, not rejected
	assert.Equal(t, "Graphene 2026", CanonicalTag("  Graphene 2026 "))
	assert.Equal(t, "", CanonicalTag("   "))
}

func TestCanonicalTagIdempotent(t *testing.T) {
	inputs := []string{
		"sampling", "Sampling", "寄样中", "已成交", "Need Follow-up",
		"Graphene 2026", "totally made up", "", " spaced ",
	}
	for _, in := range inputs {
		once := CanonicalTag(in)
		assert.Equal(t, once, CanonicalTag(once), "input %q", in)
	}
}

func TestTagLabels(t *testing.T) {
	zh := TagLabels(LangZH)
	assert.Equal(t, "寄样中", zh["sampling"])
	assert.Equal(t, "已成交", zh["ordered"])

	en := TagLabels(LangEN)
	assert.Equal(t, "Sampling", en["sampling"])
	assert.Len(t, en, len(zh), "every built-in key renders in both languages")
}

func TestTagLabel(t *testing.T) {
	assert.Equal(t, "Sampling", TagLabel("sampling", LangEN))
	assert.Equal(t, "寄样中", TagLabel("sampling", LangZH))
	// unknown key falls back to the key itself
	assert.Equal(t, "Graphene 2026", TagLabel("Graphene 2026", LangEN))
	// unknown language falls back to the key
	assert.Equal(t, "sampling", TagLabel("sampling", "fr"))
}
