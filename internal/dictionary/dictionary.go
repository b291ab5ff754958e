// Package dictionary reads and writes substitution rule lists.
//
// Two forms are supported. The editable text form has one
// "pattern => replacement" per line. The persisted form has one
// "pattern,replacement" per line, split on the first comma, so a pattern
// containing a comma does not survive a save.
package dictionary

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shirerpeton/srtReflow/internal/common"
)

const (
	DefaultPath = "./replace_terms.csv"

	textSep  = "=>"
	tableSep = ","
)

var (
	ErrNoSeparator  = errors.New("'=>' separator not found")
	ErrEmptyPattern = errors.New("pattern is empty")
)

// Default is used when no persisted dictionary exists yet.
func Default() []common.Rule {
	return []common.Rule{{Pattern: `\bteh\b`, Replacement: "the"}}
}

// ParseText parses the text form. Blank lines are skipped, any other line
// must contain "=>" and a non-empty pattern.
func ParseText(text string) ([]common.Rule, error) {
	rules := make([]common.Rule, 0)
	for idx, line := range strings.Split(strings.TrimSpace(text), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		pattern, replacement, found := strings.Cut(line, textSep)
		if !found {
			return nil, fmt.Errorf("line %d: %w", idx+1, ErrNoSeparator)
		}
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			return nil, fmt.Errorf("line %d: %w", idx+1, ErrEmptyPattern)
		}
		rules = append(rules, common.Rule{Pattern: pattern, Replacement: strings.TrimSpace(replacement)})
	}
	return rules, nil
}

func FormatText(rules []common.Rule) string {
	var sb strings.Builder
	for _, rule := range rules {
		fmt.Fprintf(&sb, "%s %s %s\n", rule.Pattern, textSep, rule.Replacement)
	}
	return sb.String()
}

// ParseTable parses the persisted form. A line without a comma is a rule
// with an empty replacement.
func ParseTable(data string) []common.Rule {
	rules := make([]common.Rule, 0)
	for _, line := range strings.Split(strings.TrimSpace(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		pattern, replacement, _ := strings.Cut(line, tableSep)
		rules = append(rules, common.Rule{
			Pattern:     strings.TrimSpace(pattern),
			Replacement: strings.TrimSpace(replacement),
		})
	}
	return rules
}

func FormatTable(rules []common.Rule) string {
	lines := make([]string, len(rules))
	for i, rule := range rules {
		lines[i] = rule.Pattern + tableSep + rule.Replacement
	}
	return strings.Join(lines, "\n")
}

// Load reads the persisted dictionary at path, falling back to Default when
// the file does not exist.
func Load(path string) ([]common.Rule, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read dictionary: %w", err)
	}
	return ParseTable(strings.ReplaceAll(string(data), "\r\n", "\n")), nil
}

func Save(path string, rules []common.Rule) error {
	if err := os.WriteFile(path, []byte(FormatTable(rules)), 0644); err != nil {
		return fmt.Errorf("unable to write dictionary: %w", err)
	}
	return nil
}

// LoadText reads a dictionary in the text form.
func LoadText(path string) ([]common.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read dictionary: %w", err)
	}
	rules, err := ParseText(strings.ReplaceAll(string(data), "\r\n", "\n"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rules, nil
}
