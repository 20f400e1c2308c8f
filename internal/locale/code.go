// Package locale holds the portal's closed set of languages, their message
// catalogs and the per session provider that picks the active one.
package locale

import (
	"fmt"
	"strings"

	gerr "github.com/jekabolt/edupath/internal/errors"
	"golang.org/x/text/language"
)

// Code is one of the supported locales.
type Code string

const (
	French  Code = "fr"
	Arabic  Code = "ar"
	English Code = "en"
)

// Codes lists the supported locales, the first one is the reference catalog.
var Codes = []Code{French, Arabic, English}

// Default is used when nothing else selects a locale.
const Default = Arabic

type Direction string

const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

func (c Code) Direction() Direction {
	if c == Arabic {
		return RTL
	}
	return LTR
}

func (c Code) Valid() bool {
	for _, s := range Codes {
		if s == c {
			return true
		}
	}
	return false
}

func (c Code) Tag() language.Tag {
	return language.Make(string(c))
}

func (c Code) String() string {
	return string(c)
}

// ParseCode accepts any BCP 47 tag whose base language is supported,
// so "fr-FR" and "AR" resolve to fr and ar.
func ParseCode(s string) (Code, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("empty locale: %w", gerr.ErrUnsupportedLocale)
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", fmt.Errorf("locale %q: %w", s, gerr.ErrUnsupportedLocale)
	}
	base, _ := tag.Base()
	c := Code(base.String())
	if !c.Valid() {
		return "", fmt.Errorf("locale %q: %w", s, gerr.ErrUnsupportedLocale)
	}
	return c, nil
}

var matcher = language.NewMatcher([]language.Tag{
	language.French,
	language.Arabic,
	language.English,
})

// MatchAcceptLanguage picks the best supported locale for an
// Accept-Language header value.
func MatchAcceptLanguage(header string) (Code, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return "", false
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return "", false
	}
	return Codes[idx], true
}
