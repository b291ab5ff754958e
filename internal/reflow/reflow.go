// Package reflow wraps a timed character stream into display rows and groups
// the rows into numbered blocks.
package reflow

import (
	"github.com/shirerpeton/srtReflow/internal/common"
)

// Layout is the shape of output blocks.
type Layout struct {
	Columns int
	Rows    int
}

func (l Layout) Validate() error {
	if l.Columns < 1 {
		return &common.ConfigError{Field: "columns", Value: l.Columns}
	}
	if l.Rows < 1 {
		return &common.ConfigError{Field: "rows per block", Value: l.Rows}
	}
	return nil
}

// Row is one displayed line. It is never empty.
type Row []common.CharToken

func (r Row) Text() string {
	return common.Text(r)
}

func isASCIILetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// SplitRows takes up to columns tokens per row and then keeps extending the
// row while it would otherwise end between two ASCII letters. A run of ASCII
// letters longer than columns ends up in a single oversized row.
func SplitRows(tokens []common.CharToken, columns int) []Row {
	rows := make([]Row, 0)
	n := len(tokens)
	for i := 0; i < n; {
		end := min(i+columns, n)
		for end < n && isASCIILetter(tokens[end-1].Char) && isASCIILetter(tokens[end].Char) {
			end++
		}
		rows = append(rows, Row(tokens[i:end:end]))
		i = end
	}
	return rows
}

// GroupRows packs consecutive rows into blocks of at most rowsPerBlock rows,
// numbered from 1. A block spans from the first token of its first row to
// the last token of its last row.
func GroupRows(rows []Row, rowsPerBlock int) []common.OutputBlock {
	blocks := make([]common.OutputBlock, 0, (len(rows)+rowsPerBlock-1)/rowsPerBlock)
	for i := 0; i < len(rows); i += rowsPerBlock {
		group := rows[i:min(i+rowsPerBlock, len(rows))]
		first, last := group[0], group[len(group)-1]
		lines := make([]string, len(group))
		for j, row := range group {
			lines[j] = row.Text()
		}
		blocks = append(blocks, common.OutputBlock{
			ID:    len(blocks) + 1,
			Span:  common.TimeSpan{Start: first[0].Timestamp, End: last[len(last)-1].Timestamp},
			Lines: lines,
		})
	}
	return blocks
}

// Reflow runs SplitRows and GroupRows with the given layout.
func Reflow(tokens []common.CharToken, layout Layout) ([]common.OutputBlock, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	return GroupRows(SplitRows(tokens, layout.Columns), layout.Rows), nil
}
