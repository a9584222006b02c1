package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Language is a programming language accepted by the code tasks.
type Language string

const (
	LanguagePython     Language = "Python"
	LanguageJavaScript Language = "JavaScript"
	LanguageTypeScript Language = "TypeScript"
	LanguageJava       Language = "Java"
	LanguageGo         Language = "Go"
	LanguageC          Language = "C"
	LanguageCPP        Language = "C++"
	LanguageCSharp     Language = "C#"
	LanguageRust       Language = "Rust"
	LanguageKotlin     Language = "Kotlin"
	LanguageRuby       Language = "Ruby"
	LanguagePHP        Language = "PHP"
	LanguageSwift      Language = "Swift"
)

var ErrUnsupportedLanguage = errors.New("unsupported language")

var supportedLanguages = []Language{
	LanguagePython,
	LanguageJavaScript,
	LanguageTypeScript,
	LanguageJava,
	LanguageGo,
	LanguageC,
	LanguageCPP,
	LanguageCSharp,
	LanguageRust,
	LanguageKotlin,
	LanguageRuby,
	LanguagePHP,
	LanguageSwift,
}

var languageAliases = map[string]Language{
	"golang": LanguageGo,
	"js":     LanguageJavaScript,
	"ts":     LanguageTypeScript,
	"cpp":    LanguageCPP,
	"csharp": LanguageCSharp,
}

func SupportedLanguages() []Language {
	out := make([]Language, len(supportedLanguages))
	copy(out, supportedLanguages)
	return out
}

// ParseLanguage resolves a case-insensitive language name to its canonical form.
func ParseLanguage(raw string) (Language, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	for _, lang := range supportedLanguages {
		if strings.ToLower(string(lang)) == normalized {
			return lang, nil
		}
	}
	if lang, ok := languageAliases[normalized]; ok {
		return lang, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, raw)
}
