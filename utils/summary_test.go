package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummaryRoundTrip(t *testing.T) {
	cases := []SummaryParts{
		{Starred: true, Type: "email", Effect: EffectCustomerReply, Content: "sent updated quote"},
		{Starred: false, Type: "meeting", Effect: EffectMyReply, Content: ""},
		{Starred: false, Type: TagNone, Effect: TagNone, Content: "plain note"},
		// content may legally contain delimiter characters
		{Starred: true, Type: "wechat", Effect: EffectBothReply, Content: "sizes {10um} > <5um> (ok)"},
		{Starred: false, Type: "phone", Effect: TagNone, Content: "{}{}<><>"},
	}
	for _, p := range cases {
		assert.Equal(t, p, DecodeSummary(EncodeSummary(p)), "round trip for %q", p.Content)
	}
}

func TestEncodeSummaryDefaultsEmptyTags(t *testing.T) {
	encoded := EncodeSummary(SummaryParts{Content: "hello"})
	assert.Equal(t, "(☆)<none>{none}hello", encoded)

	decoded := DecodeSummary(encoded)
	assert.False(t, decoded.Starred)
	assert.Equal(t, TagNone, decoded.Type)
	assert.Equal(t, TagNone, decoded.Effect)
	assert.Equal(t, "hello", decoded.Content)
}

func TestDecodeSummaryStarredLiteral(t *testing.T) {
	decoded := DecodeSummary("(★)<email>{customerReply}they want a sample")
	assert.True(t, decoded.Starred)
	assert.Equal(t, "email", decoded.Type)
	assert.Equal(t, EffectCustomerReply, decoded.Effect)
	assert.Equal(t, "they want a sample", decoded.Content)
}

func TestDecodeSummaryMalformedFallsBack(t *testing.T) {
	for _, raw := range []string{
		"just a legacy free-text note",
		"(★)<email>missing effect block",
		"(★<email>{x}broken star",
		"(weird)<email>{x}unknown star marker",
		"",
	} {
		decoded := DecodeSummary(raw)
		assert.False(t, decoded.Starred, "input %q", raw)
		assert.Equal(t, TagNone, decoded.Type, "input %q", raw)
		assert.Equal(t, TagNone, decoded.Effect, "input %q", raw)
		assert.Equal(t, raw, decoded.Content, "input %q", raw)
	}
}
