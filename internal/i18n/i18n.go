// Package i18n provides the en/ja string table and localized field
// resolution for preset and item display fields.
package i18n

import (
	"golang.org/x/text/language"
)

// Lang identifies a supported UI language.
type Lang string

const (
	LangEN Lang = "en"
	LangJA Lang = "ja"
)

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Japanese,
})

// Detect maps a configured language preference (a BCP 47 tag such as
// "en", "ja", "ja-JP") onto a supported Lang. Unknown or empty input
// falls back to English.
func Detect(pref string) Lang {
	if pref == "" {
		return LangEN
	}
	tag, err := language.Parse(pref)
	if err != nil {
		return LangEN
	}
	_, idx, _ := matcher.Match(tag)
	if idx == 1 {
		return LangJA
	}
	return LangEN
}

// Field picks the localized variant of a display field: the "_ja"
// value when the language is Japanese and the variant is present,
// otherwise the base value.
func Field(base, ja string, lang Lang) string {
	if lang == LangJA && ja != "" {
		return ja
	}
	return base
}

// Notes picks the localized variant of a legality-notes map.
func Notes(base, ja map[string]string, lang Lang) map[string]string {
	if lang == LangJA && ja != nil {
		return ja
	}
	return base
}

var messages = map[Lang]map[string]string{
	LangEN: {
		"msg.newChecklist":  "New Checklist",
		"msg.unnamed":       "Unnamed",
		"optgroup.saved":    "Saved",
		"optgroup.evasion":  "Evasion/Escape",
		"optgroup.edc":      "EDC/Personal",
		"optgroup.rescue":   "Rescue/Fire",
		"optgroup.security": "Security",
		"optgroup.disaster": "Disaster",
		"optgroup.hacker":   "Hacker/IT",
		"freq.never":        "Never",
		"freq.daily":        "Daily",
		"freq.weekly":       "Weekly",
		"freq.monthly":      "Monthly",
		"total.weight":      "Total Weight:",
		"total.volume":      "Volume:",
		"badge.dualUse":     "Dual-use",
		"badge.hazard":      "Hazard",
	},
	LangJA: {
		"msg.newChecklist":  "新規チェックリスト",
		"msg.unnamed":       "名称未設定",
		"optgroup.saved":    "保存済み",
		"optgroup.evasion":  "脱出・回避系 (Evasion/Escape)",
		"optgroup.edc":      "日常携行系 (EDC/Personal)",
		"optgroup.rescue":   "救助・消防系 (Rescue/Fire)",
		"optgroup.security": "警備・防犯系 (Security)",
		"optgroup.disaster": "災害対応系 (Disaster)",
		"optgroup.hacker":   "ハッカー・IT系 (Hacker/IT)",
		"freq.never":        "なし",
		"freq.daily":        "毎日",
		"freq.weekly":       "毎週",
		"freq.monthly":      "毎月",
		"total.weight":      "総重量:",
		"total.volume":      "容積:",
		"badge.dualUse":     "軍民両用",
		"badge.hazard":      "危険物",
	},
}

// T looks up a message key for the given language, falling back to
// English and finally to the key itself.
func T(lang Lang, key string) string {
	if m, ok := messages[lang]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	if s, ok := messages[LangEN][key]; ok {
		return s
	}
	return key
}
