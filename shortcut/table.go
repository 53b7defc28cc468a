package shortcut

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/iw2rmb/blockpad/buffer"
)

// Rule maps block text to a style. Match decides; Trigger is kept for
// display and change reporting.
type Rule struct {
	Trigger string
	Match   func(blockText string) bool
	Style   buffer.StyleTag
}

// Exact returns a rule that matches only when the block text equals trigger.
func Exact(trigger string, style buffer.StyleTag) Rule {
	return Rule{
		Trigger: trigger,
		Match:   func(text string) bool { return text == trigger },
		Style:   style.Normalize(),
	}
}

// Table is an ordered rule list. The first matching rule wins.
type Table struct {
	rules []Rule
}

// NewTable builds a table from rules in order.
func NewTable(rules ...Rule) Table {
	return Table{rules: append([]Rule(nil), rules...)}
}

// DefaultTable is the built-in trigger set.
func DefaultTable() Table {
	return NewTable(
		Exact("#", buffer.StyleHeader),
		Exact("*", buffer.StyleBold),
		Exact("**", buffer.StyleRed),
		Exact("***", buffer.StyleUnderline),
	)
}

// With returns a copy of t with rules placed ahead of the existing ones, so
// configured triggers can override built-ins.
func (t Table) With(rules ...Rule) Table {
	out := make([]Rule, 0, len(rules)+len(t.rules))
	out = append(out, rules...)
	out = append(out, t.rules...)
	return Table{rules: out}
}

// Rules returns a copy of the rule list.
func (t Table) Rules() []Rule {
	return append([]Rule(nil), t.rules...)
}

func (t Table) Len() int { return len(t.rules) }

// Lookup returns the first rule matching blockText.
func (t Table) Lookup(blockText string) (Rule, bool) {
	for _, r := range t.rules {
		if r.Match != nil && r.Match(blockText) {
			return r, true
		}
	}
	return Rule{}, false
}

// Binding is a configured trigger before validation.
type Binding struct {
	Prefix string
	Style  string
}

// ParseRules validates bindings into exact rules, keeping their order.
func ParseRules(bindings []Binding) ([]Rule, error) {
	rules := make([]Rule, 0, len(bindings))
	for _, b := range bindings {
		if err := validateTrigger(b.Prefix); err != nil {
			return nil, err
		}
		style, err := buffer.ParseStyleTag(b.Style)
		if err != nil {
			return nil, fmt.Errorf("trigger %q: %w", b.Prefix, err)
		}
		rules = append(rules, Exact(b.Prefix, style))
	}
	return rules, nil
}

func validateTrigger(prefix string) error {
	if prefix == "" {
		return errors.New("trigger prefix must not be empty")
	}
	if strings.ContainsFunc(prefix, unicode.IsSpace) {
		return fmt.Errorf("trigger %q must not contain whitespace", prefix)
	}
	return nil
}
