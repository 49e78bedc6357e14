package i18n

import (
	"golang.org/x/text/language"
)

// Message keys
const (
	UserStateReset = "user_state_reset"
	ModuleNotFound = "module_not_found"
	PointsWord     = "points_word"
)

const DefaultLocale = "en"

var catalogs = map[string]map[string]string{
	"en": {
		UserStateReset: "User state has been reset.",
		ModuleNotFound: "Module for the specified user does not exist.",
		PointsWord:     "points",
	},
	"ru": {
		UserStateReset: "Состояние пользователя сброшено.",
		ModuleNotFound: "Модуль для указанного пользователя не существует.",
		PointsWord:     "баллов",
	},
}

// supported is ordered; the first entry is the matcher's fallback
var supported = []string{"en", "ru"}

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Russian,
})

// IsSupported reports whether a catalog exists for locale
func IsSupported(locale string) bool {
	_, ok := catalogs[locale]
	return ok
}

// Negotiate picks a supported locale for an Accept-Language header value.
// An empty or unparsable header, or one without any match, yields fallback.
func Negotiate(acceptLanguage, fallback string) string {
	if !IsSupported(fallback) {
		fallback = DefaultLocale
	}
	if acceptLanguage == "" {
		return fallback
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}

	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return fallback
	}
	return supported[index]
}

// T returns the message for key in locale, falling back to English and then to the key
func T(locale, key string) string {
	if msg, ok := catalogs[locale][key]; ok {
		return msg
	}
	if msg, ok := catalogs[DefaultLocale][key]; ok {
		return msg
	}
	return key
}
