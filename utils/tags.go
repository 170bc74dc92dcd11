// utils/tags.go
package utils

import "strings"

// Supported display languages.
const (
	LangEN = "en"
	LangZH = "zh"
)

// tagLabels maps every built-in canonical key to its display labels.
// The database stores keys only; the UI translates through TagLabel.
var tagLabels = map[string]map[string]string{
	// customer status
	"potential": {LangEN: "Potential", LangZH: "潜在客户"},
	"contacted": {LangEN: "Contacted", LangZH: "已联系"},
	"sampling":  {LangEN: "Sampling", LangZH: "寄样中"},
	"testing":   {LangEN: "Testing", LangZH: "测试中"},
	"ordered":   {LangEN: "Ordered", LangZH: "已成交"},
	"paused":    {LangEN: "Paused", LangZH: "暂停跟进"},

	// follow-up status
	"waitingReply": {LangEN: "Waiting Reply", LangZH: "等待回复"},
	"needFollowUp": {LangEN: "Need Follow-up", LangZH: "需要跟进"},
	"noAction":     {LangEN: "No Action", LangZH: "无需行动"},

	// sample status
	"preparing": {LangEN: "Preparing", LangZH: "制样中"},
	"shipped":   {LangEN: "Shipped", LangZH: "已寄出"},
	"received":  {LangEN: "Received", LangZH: "已签收"},
	"feedback":  {LangEN: "Feedback", LangZH: "已反馈"},

	// test status
	"ongoing":    {LangEN: "Ongoing", LangZH: "进行中"},
	"finished":   {LangEN: "Finished", LangZH: "已完成"},
	"terminated": {LangEN: "Terminated", LangZH: "已终止"},

	// interaction type
	"email":      {LangEN: "Email", LangZH: "邮件"},
	"phone":      {LangEN: "Phone", LangZH: "电话"},
	"meeting":    {LangEN: "Meeting", LangZH: "会议"},
	"wechat":     {LangEN: "WeChat", LangZH: "微信"},
	"exhibition": {LangEN: "Exhibition", LangZH: "展会"},

	// interaction effect
	EffectCustomerReply: {LangEN: "Customer Replied", LangZH: "客户回复"},
	EffectMyReply:       {LangEN: "Followed Up", LangZH: "我方跟进"},
	EffectBothReply:     {LangEN: "Both Replied", LangZH: "双方往来"},
	TagNone:             {LangEN: "None", LangZH: "无"},
}

// CanonicalTag maps a user-entered or imported label to its stable internal
// key. Matching is case-insensitive on the trimmed input: first against the
// canonical keys themselves, then against every built-in label in either
// language. Anything unrecognized passes through trimmed; users add new
// category and series tags at runtime, so free-form tags are legal.
func CanonicalTag(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}
	lower := strings.ToLower(trimmed)
	for key := range tagLabels {
		if strings.ToLower(key) == lower {
			return key
		}
	}
	for key, labels := range tagLabels {
		for _, label := range labels {
			if strings.ToLower(label) == lower {
				return key
			}
		}
	}
	return trimmed
}

// TagLabels renders every built-in canonical key in the given language.
// Runtime-added tag options are merged in by the handler, not here.
func TagLabels(lang string) map[string]string {
	out := make(map[string]string, len(tagLabels))
	for key := range tagLabels {
		out[key] = TagLabel(key, lang)
	}
	return out
}

// TagLabel renders a canonical key in the given language, falling back to
// the raw key for unknown tags or languages.
func TagLabel(key, lang string) string {
	labels, ok := tagLabels[key]
	if !ok {
		return key
	}
	if label, ok := labels[lang]; ok && label != "" {
		return label
	}
	return key
}
