package parser

import (
	"regexp"
	"strings"
)

var separatorRe = regexp.MustCompile(`[\s_\-]+`)

// Normalize canonicalizes a column name for matching: trim, lower-case,
// and collapse runs of whitespace, underscores and hyphens to one space.
// "  RTU l/r  Switch_Status " and "rtu l/r switch status" normalize alike.
func Normalize(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ToLower(name)
	name = separatorRe.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// ContainsAll reports whether text contains every one of the given tokens.
func ContainsAll(text string, tokens ...string) bool {
	for _, tok := range tokens {
		if !strings.Contains(text, tok) {
			return false
		}
	}
	return true
}

// ContainsAny reports whether text contains at least one of the tokens.
func ContainsAny(text string, tokens ...string) bool {
	for _, tok := range tokens {
		if strings.Contains(text, tok) {
			return true
		}
	}
	return false
}
