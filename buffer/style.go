package buffer

import (
	"fmt"
	"strings"
)

// StyleTag classifies a whole block. The set is open: hosts may register
// additional tags as long as they are lower-case identifiers.
type StyleTag string

const (
	StyleUnstyled  StyleTag = "unstyled"
	StyleHeader    StyleTag = "header"
	StyleBold      StyleTag = "bold"
	StyleRed       StyleTag = "red"
	StyleUnderline StyleTag = "underline"
)

// KnownStyles lists the built-in tags in display order.
func KnownStyles() []StyleTag {
	return []StyleTag{StyleUnstyled, StyleHeader, StyleBold, StyleRed, StyleUnderline}
}

func (t StyleTag) String() string { return string(t.Normalize()) }

// Normalize canonicalizes a tag: trimmed, lower-case, and StyleUnstyled
// when empty. It is the same folding ParseStyleTag applies.
func (t StyleTag) Normalize() StyleTag {
	s := strings.ToLower(strings.TrimSpace(string(t)))
	if s == "" {
		return StyleUnstyled
	}
	return StyleTag(s)
}

// Valid reports whether ParseStyleTag accepts t.
func (t StyleTag) Valid() bool {
	_, err := ParseStyleTag(string(t))
	return err == nil
}

// ParseStyleTag validates a tag name. Empty input is StyleUnstyled.
func ParseStyleTag(raw string) (StyleTag, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return StyleUnstyled, nil
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-' || r == '_'):
		default:
			return "", fmt.Errorf("invalid style tag %q", raw)
		}
	}
	return StyleTag(s), nil
}
