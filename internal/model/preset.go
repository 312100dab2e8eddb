package model

// Preset categories, in display order.
const (
	CategoryEvasion  = "evasion"
	CategoryEDC      = "edc"
	CategoryRescue   = "rescue"
	CategorySecurity = "security"
	CategoryDisaster = "disaster"
	CategoryHacker   = "hacker"
)

// PresetCategories is the fixed enumeration order used when grouping
// catalog entries.
var PresetCategories = []string{
	CategoryEvasion,
	CategoryEDC,
	CategoryRescue,
	CategorySecurity,
	CategoryDisaster,
	CategoryHacker,
}

// PresetMeta is the index entry for a preset: enough to show it in a
// picker without loading its payload.
type PresetMeta struct {
	Category  string `json:"category"`
	Name      string `json:"name"`
	NameJA    string `json:"name_ja,omitempty"`
	ItemCount int    `json:"item_count"`
	File      string `json:"file"`
}

// PresetPayload is the stored form of a preset: the template name plus
// its raw item list. Items stay raw until they are resolved into a
// session, where they pass through Normalize.
type PresetPayload struct {
	Name     string    `json:"name"`
	NameJA   string    `json:"name_ja,omitempty"`
	Category string    `json:"category"`
	Items    []RawItem `json:"items"`
}

// Preset is a resolved, ready-to-use template: normalized items,
// deep-copied away from any catalog cache.
type Preset struct {
	Key      string
	Name     string
	NameJA   string
	Category string
	Items    []Item
}
