package i18n

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Language is a supported display language.
type Language string

const (
	Korean  Language = "ko"
	English Language = "en"

	// Default is used until a persisted choice is found.
	Default = Korean
)

// ErrUnsupportedLanguage is returned for any value other than ko or en.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Languages lists every supported language in display order.
func Languages() []Language {
	return []Language{Korean, English}
}

var matcher = language.NewMatcher([]language.Tag{language.Korean, language.English})

// ParseLanguage accepts "ko"/"en" and any BCP 47 tag whose base is one of
// them ("en-US", "ko-KR").
func ParseLanguage(s string) (Language, error) {
	s = strings.TrimSpace(s)
	switch Language(strings.ToLower(s)) {
	case Korean:
		return Korean, nil
	case English:
		return English, nil
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
	}
	base, _ := tag.Base()
	switch base.String() {
	case "ko":
		return Korean, nil
	case "en":
		return English, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
}

// MatchAcceptLanguage picks the best supported language for an HTTP
// Accept-Language header, falling back to Default.
func MatchAcceptLanguage(header string) Language {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default
	}
	return Languages()[idx]
}

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	return l == Korean || l == English
}

// Tag returns the regional tag used for number formatting.
func (l Language) Tag() language.Tag {
	if l == English {
		return language.AmericanEnglish
	}
	return language.Korean
}
