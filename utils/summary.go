// utils/summary.go
package utils

import "strings"

// Star marker literals. Historical records use exactly these two tokens, so
// they must never change.
const (
	StarMarkerOn  = "★"
	StarMarkerOff = "☆"
)

// TagNone is the sentinel for an unset type or effect tag.
const TagNone = "none"

// Effect tag keys. BothReply counts as both a customer reply and a follow-up
// from our side.
const (
	EffectCustomerReply = "customerReply"
	EffectMyReply       = "myReply"
	EffectBothReply     = "bothReply"
)

// SummaryParts is the structured form of an interaction summary.
type SummaryParts struct {
	Starred bool
	Type    string
	Effect  string
	Content string
}

// EncodeSummary writes the fixed grammar "(STAR)<TYPE>{EFFECT}content".
// Empty type/effect encode as the "none" sentinel.
func EncodeSummary(p SummaryParts) string {
	star := StarMarkerOff
	if p.Starred {
		star = StarMarkerOn
	}
	typeTag := p.Type
	if typeTag == "" {
		typeTag = TagNone
	}
	effect := p.Effect
	if effect == "" {
		effect = TagNone
	}
	return "(" + star + ")<" + typeTag + ">{" + effect + "}" + p.Content
}

// DecodeSummary is the inverse of EncodeSummary. The three leading groups are
// matched by the first occurrence of their closing delimiter; everything
// after the first "{...}" block is content, even if it contains more
// delimiter characters. A string not matching the grammar decodes to
// unstarred, "none" tags, and the whole string as content, never an error.
func DecodeSummary(s string) SummaryParts {
	fallback := SummaryParts{Type: TagNone, Effect: TagNone, Content: s}

	if !strings.HasPrefix(s, "(") {
		return fallback
	}
	starEnd := strings.Index(s, ")")
	if starEnd < 0 {
		return fallback
	}
	star := s[1:starEnd]
	if star != StarMarkerOn && star != StarMarkerOff {
		return fallback
	}

	rest := s[starEnd+1:]
	if !strings.HasPrefix(rest, "<") {
		return fallback
	}
	typeEnd := strings.Index(rest, ">")
	if typeEnd < 0 {
		return fallback
	}
	typeTag := rest[1:typeEnd]

	rest = rest[typeEnd+1:]
	if !strings.HasPrefix(rest, "{") {
		return fallback
	}
	effectEnd := strings.Index(rest, "}")
	if effectEnd < 0 {
		return fallback
	}

	return SummaryParts{
		Starred: star == StarMarkerOn,
		Type:    typeTag,
		Effect:  rest[1:effectEnd],
		Content: rest[effectEnd+1:],
	}
}
