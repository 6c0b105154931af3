// Package langcode normalizes the language codes used as language-pack keys.
//
// Packs are keyed by short codes ("fr", "en", "pt-BR"); documents written by
// earlier tooling mix cases and occasionally carry full tags. Normalize folds
// everything onto a canonical lowercase form before a code becomes a key so
// "FR" and "fr" cannot coexist as two packs.
package langcode

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Normalize returns the canonical form of a language code: the lowercase base
// language, keeping an explicit region suffix when the input carried one
// ("fr", "pt-BR"). Unrecognized input is rejected.
func Normalize(code string) (string, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "", fmt.Errorf("language code is empty")
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("language code %q: %w", code, err)
	}
	base, confidence := tag.Base()
	if confidence == language.No {
		return "", fmt.Errorf("language code %q: unrecognized base language", code)
	}
	normalized := base.String()
	if strings.ContainsAny(trimmed, "-_") {
		if region, regionConfidence := tag.Region(); regionConfidence == language.Exact {
			normalized += "-" + region.String()
		}
	}
	return normalized, nil
}

// Name returns a human-readable English name for a code ("fr" -> "French"),
// falling back to the uppercased input when the tag is unknown.
func Name(code string) string {
	tag, err := language.Parse(strings.TrimSpace(code))
	if err != nil {
		return strings.ToUpper(strings.TrimSpace(code))
	}
	return display.English.Languages().Name(tag)
}
