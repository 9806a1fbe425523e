package transcription

// languageNames maps API language codes to the names the recognizer
// expects. Unknown codes pass through unchanged.
var languageNames = map[string]string{
	"ar": "arabic",
	"en": "english",
	"tr": "turkish",
	"fr": "french",
	"es": "spanish",
	"de": "german",
}

// CanonicalLanguage resolves an API language code to the recognizer's
// language name.
func CanonicalLanguage(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}

// SupportedLanguages returns the API language codes with first-class
// support.
func SupportedLanguages() []string {
	return []string{"ar", "en", "tr", "fr", "es", "de"}
}
