package model

// Language tags used across the site. Czech is the primary language of the
// sanctuary; English is the fallback for international visitors.
const (
	LangCS = "cs"
	LangEN = "en"
)

// DefaultLanguage is assumed whenever a submission omits a preference.
const DefaultLanguage = LangCS

// LocalizedText maps a language tag to a translated string.
//
// The database keeps parallel *_cs/*_en columns; repositories fold them into
// a LocalizedText so the rest of the code never branches on column names.
type LocalizedText map[string]string

// Resolve returns the text for the requested language, falling back to
// Czech, then English, then any non-empty translation.
func (t LocalizedText) Resolve(lang string) string {
	if s, ok := t[lang]; ok && s != "" {
		return s
	}
	if s, ok := t[LangCS]; ok && s != "" {
		return s
	}
	if s, ok := t[LangEN]; ok && s != "" {
		return s
	}
	for _, s := range t {
		if s != "" {
			return s
		}
	}
	return ""
}

// NormalizeLanguage collapses unknown or empty tags to the default.
func NormalizeLanguage(lang string) string {
	switch lang {
	case LangCS, LangEN:
		return lang
	default:
		return DefaultLanguage
	}
}
