// Package substitute rewrites a character stream with an ordered list of
// regular expression rules while keeping every character timed.
//
// Rules are applied one after another, each one to the output of the
// previous. Within a rule the text is scanned left to right for
// non-overlapping leftmost matches. Characters outside of matches keep their
// timestamps, replacement characters are spread evenly between the timestamps
// of the first and the last matched character.
package substitute

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/shirerpeton/srtReflow/internal/common"
)

// Options tune pattern compilation.
type Options struct {
	IgnoreCase bool
	// RE2Syntax restricts patterns to RE2 compatible syntax.
	RE2Syntax bool
	// MatchTimeout bounds a single match attempt, zero means no limit.
	MatchTimeout time.Duration
}

func (o Options) regexOptions() regexp2.RegexOptions {
	opts := regexp2.None
	if o.IgnoreCase {
		opts |= regexp2.IgnoreCase
	}
	if o.RE2Syntax {
		opts |= regexp2.RE2
	}
	return opts
}

type compiledRule struct {
	re          *regexp2.Regexp
	rule        common.Rule
	replacement []rune
}

// Engine holds a compiled rule list. It keeps no per-run state and may be
// shared by concurrent conversions.
type Engine struct {
	rules []compiledRule
	log   *zap.Logger
}

// Compile compiles every rule before anything is applied. All invalid
// patterns are reported together, each as *common.InvalidPatternError.
func Compile(rules []common.Rule, opts Options, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var errs error
	compiled := make([]compiledRule, 0, len(rules))
	for i, rule := range rules {
		re, err := regexp2.Compile(rule.Pattern, opts.regexOptions())
		if err != nil {
			errs = multierr.Append(errs, &common.InvalidPatternError{Index: i, Pattern: rule.Pattern, Err: err})
			continue
		}
		if opts.MatchTimeout > 0 {
			re.MatchTimeout = opts.MatchTimeout
		}
		compiled = append(compiled, compiledRule{
			re:          re,
			rule:        rule,
			replacement: []rune(rule.Replacement),
		})
	}
	if errs != nil {
		return nil, errs
	}
	return &Engine{rules: compiled, log: log}, nil
}

func (e *Engine) Len() int {
	return len(e.rules)
}

// Apply folds all rules over tokens and returns the rewritten stream. The
// input slice is not modified.
func (e *Engine) Apply(tokens []common.CharToken) ([]common.CharToken, error) {
	for i := range e.rules {
		rule := &e.rules[i]
		out, matches, err := rule.apply(tokens)
		if err != nil {
			return nil, fmt.Errorf("rule #%d '%s': %w", i+1, rule.rule.Pattern, err)
		}
		e.log.Debug("Rule applied",
			zap.String("pattern", rule.rule.Pattern),
			zap.Int("matches", matches),
			zap.Int("before", len(tokens)),
			zap.Int("after", len(out)))
		tokens = out
	}
	return tokens, nil
}

func (r *compiledRule) apply(tokens []common.CharToken) ([]common.CharToken, int, error) {
	text := make([]rune, len(tokens))
	for i, token := range tokens {
		text[i] = token.Char
	}

	out := make([]common.CharToken, 0, len(tokens))
	matches := 0
	index := 0
	for index < len(text) {
		m, err := r.re.FindRunesMatchStartingAt(text, index)
		if err != nil {
			return nil, 0, err
		}
		if m == nil {
			out = append(out, tokens[index:]...)
			break
		}
		start, end := m.Index, m.Index+m.Length
		out = append(out, tokens[index:start]...)
		if start == end {
			// empty match: keep the character under it and move on
			if start < len(tokens) {
				out = append(out, tokens[start])
			}
			index = start + 1
			continue
		}
		matches++
		out = append(out, Retime(r.replacement, tokens[start].Timestamp, tokens[end-1].Timestamp)...)
		index = end
	}
	return out, matches, nil
}

// Retime spreads replacement over [start, end]: character j is stamped
// start + j*(end-start)/len(replacement).
func Retime(replacement []rune, start, end float64) []common.CharToken {
	if len(replacement) == 0 {
		return nil
	}
	delta := (end - start) / float64(len(replacement))
	tokens := make([]common.CharToken, len(replacement))
	for j, ch := range replacement {
		tokens[j] = common.CharToken{Timestamp: start + float64(j)*delta, Char: ch}
	}
	return tokens
}
