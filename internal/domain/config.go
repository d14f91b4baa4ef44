package domain

// KeyPrefix namespaces every key this service writes to a shared store.
const KeyPrefix = "onimo:"

// AssistantConfig holds persona and language settings, not exposed to clients.
type AssistantConfig struct {
	CreatorName         string
	DefaultLanguage     Language
	TranscriptLanguages []Language
	MaxQueryRunes       int
}

// DefaultAssistantConfig returns the stock persona.
func DefaultAssistantConfig() AssistantConfig {
	return AssistantConfig{
		CreatorName:         "Alamin",
		DefaultLanguage:     LanguageEnglish,
		TranscriptLanguages: []Language{LanguageEnglish, LanguageBangla},
		MaxQueryRunes:       2000,
	}
}
