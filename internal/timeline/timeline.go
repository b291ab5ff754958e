// Package timeline flattens cues into one stream of timestamped characters.
package timeline

import (
	"fmt"
	"strings"

	"github.com/shirerpeton/srtReflow/internal/common"
	"github.com/shirerpeton/srtReflow/internal/parser"
)

// Expand spreads the characters of text evenly over span, the first
// character starting at span.Start. Line breaks are removed before timing.
func Expand(span common.TimeSpan, text string) []common.CharToken {
	chars := []rune(strings.ReplaceAll(text, "\n", ""))
	if len(chars) == 0 {
		return nil
	}
	charDuration := (span.End - span.Start) / float64(len(chars))
	tokens := make([]common.CharToken, len(chars))
	for i, ch := range chars {
		tokens[i] = common.CharToken{
			Timestamp: span.Start + float64(i)*charDuration,
			Char:      ch,
		}
	}
	return tokens
}

// Build returns the tokens of all blocks in order. Blocks whose text is empty
// once line breaks are removed contribute nothing, so their timing is lost.
func Build(blocks []common.SourceBlock) ([]common.CharToken, error) {
	tokens := make([]common.CharToken, 0)
	for _, block := range blocks {
		span, err := parser.ParseTimeRange(block.Timing)
		if err != nil {
			return nil, fmt.Errorf("block %s: %w", block.ID, err)
		}
		tokens = append(tokens, Expand(span, block.Text)...)
	}
	return tokens, nil
}
