package notebook

import (
	"strings"
	"unicode"
)

// SanitizeQuery turns free-form user input into a to_tsquery expression. Quotes and
// tsquery operators are dropped, remaining terms are ANDed and the last term gets a
// prefix wildcard so results update while the user is still typing. An input with no
// usable terms yields "".
func SanitizeQuery(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '"', '\'':
			return -1
		case '&', '|', '!', '(', ')', ':', '*', '<', '>', '\\', '-', '+', '~', '^', '@':
			return ' '
		}
		if unicode.IsControl(r) || (unicode.IsPunct(r) && r != '_') {
			return ' '
		}
		return unicode.ToLower(r)
	}, raw)

	terms := strings.Fields(cleaned)
	if len(terms) == 0 {
		return ""
	}

	terms[len(terms)-1] += ":*"
	return strings.Join(terms, " & ")
}
