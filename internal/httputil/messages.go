package httputil

import (
	"golang.org/x/text/language"
)

// Message keys for localized error responses
const (
	MsgNotFound            = "notFound"
	MsgInternalServerError = "internalServerError"
)

// Supported response locales; the first is the fallback
var supportedLocales = []language.Tag{
	language.English,
	language.Chinese,
}

var localeMatcher = language.NewMatcher(supportedLocales)

var translations = map[string]map[string]string{
	"en": {
		MsgNotFound:            "Not found",
		MsgInternalServerError: "Internal Server Error",
	},
	"zh": {
		MsgNotFound:            "未找到",
		MsgInternalServerError: "服务器内部错误",
	},
}

// ResolveLocale picks "en" or "zh" from an Accept-Language header
func ResolveLocale(acceptLanguage string) string {
	if acceptLanguage == "" {
		return "en"
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return "en"
	}
	_, index, _ := localeMatcher.Match(tags...)
	base, _ := supportedLocales[index].Base()
	return base.String()
}

// Localize returns the message for key in locale, falling back to English
func Localize(locale, key string) string {
	if msg, ok := translations[locale][key]; ok {
		return msg
	}
	return translations["en"][key]
}
