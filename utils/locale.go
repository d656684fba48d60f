package utils

import (
	"golang.org/x/text/language"
)

// supported content languages, English first as fallback.
var localeMatcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Arabic,
	language.Turkish,
})

// ResolveLocale picks the content language for a request. An explicit
// ?lang= value wins over the Accept-Language header; anything unsupported
// falls back to English.
func ResolveLocale(queryLang, acceptLanguage string) string {
	if queryLang != "" {
		switch queryLang {
		case "en", "ar", "tr":
			return queryLang
		}
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return "en"
	}
	tag, _, _ := localeMatcher.Match(tags...)
	base, _ := tag.Base()
	switch base.String() {
	case "ar":
		return "ar"
	case "tr":
		return "tr"
	}
	return "en"
}
