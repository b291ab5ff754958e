package parser

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shirerpeton/srtReflow/internal/common"
)

const timeRangeSep = "-->"

// blockSeparator matches a line holding only whitespace, Unicode spaces included.
var blockSeparator = regexp.MustCompile(`\n[\s\v\x{1c}-\x{1f}\x{85}\p{Z}]*\n`)

func timestampField(timestamp, name, field string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(field))
	if err != nil {
		return 0, &common.FormatError{Text: timestamp, Err: fmt.Errorf("error in %s: %w", name, err)}
	}
	return value, nil
}

// ParseTimestamp converts "HH:MM:SS,mmm" into seconds. A dot is accepted in
// place of the comma.
func ParseTimestamp(timestamp string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(timestamp), ":")
	if len(parts) != 3 {
		return 0, &common.FormatError{Text: timestamp, Err: errors.New("expected HH:MM:SS,mmm")}
	}
	hours, err := timestampField(timestamp, "hours", parts[0])
	if err != nil {
		return 0, err
	}
	minutes, err := timestampField(timestamp, "minutes", parts[1])
	if err != nil {
		return 0, err
	}
	var sep string
	if strings.Contains(parts[2], ",") {
		sep = ","
	} else if strings.Contains(parts[2], ".") {
		sep = "."
	} else {
		return 0, &common.FormatError{Text: timestamp, Err: errors.New("missing milliseconds separator")}
	}
	parts = strings.SplitN(parts[2], sep, 2)
	seconds, err := timestampField(timestamp, "seconds", parts[0])
	if err != nil {
		return 0, err
	}
	miliseconds, err := timestampField(timestamp, "miliseconds", parts[1])
	if err != nil {
		return 0, err
	}
	return float64(hours*3600+minutes*60+seconds) + float64(miliseconds)/1000, nil
}

// FormatTimestamp renders seconds as "HH:MM:SS,mmm". Whole seconds are
// truncated, the fraction is rounded to milliseconds (half to even) and
// carried into the seconds when it reaches 1000.
func FormatTimestamp(seconds float64) string {
	whole := math.Trunc(seconds)
	miliseconds := int(math.RoundToEven((seconds - whole) * 1000))
	total := int(whole)
	if miliseconds >= 1000 {
		total++
		miliseconds -= 1000
	}
	return fmt.Sprintf("%02d:%02d:%02d,%03d", total/3600, (total%3600)/60, total%60, miliseconds)
}

// ParseTimeRange parses "<start> --> <end>".
func ParseTimeRange(timing string) (common.TimeSpan, error) {
	start, end, found := strings.Cut(timing, timeRangeSep)
	if !found {
		return common.TimeSpan{}, &common.FormatError{Text: timing, Err: errors.New("missing '-->'")}
	}
	var (
		span common.TimeSpan
		err  error
	)
	if span.Start, err = ParseTimestamp(start); err != nil {
		return common.TimeSpan{}, err
	}
	if span.End, err = ParseTimestamp(end); err != nil {
		return common.TimeSpan{}, err
	}
	return span, nil
}

func FormatTimeRange(span common.TimeSpan) string {
	return FormatTimestamp(span.Start) + " " + timeRangeSep + " " + FormatTimestamp(span.End)
}

// ParseBlocks splits document into cues. Sub-units with fewer than three
// lines (id, timing, text) are dropped without error.
func ParseBlocks(document string) []common.SourceBlock {
	document = strings.ReplaceAll(document, "\r\n", "\n")
	document = strings.ReplaceAll(document, "\r", "\n")
	document = strings.TrimSpace(document)

	blocks := make([]common.SourceBlock, 0)
	if document == "" {
		return blocks
	}
	for _, chunk := range blockSeparator.Split(document, -1) {
		lines := strings.Split(chunk, "\n")
		if len(lines) < 3 {
			continue
		}
		blocks = append(blocks, common.SourceBlock{
			ID:     lines[0],
			Timing: lines[1],
			Text:   strings.Join(lines[2:], "\n"),
		})
	}
	return blocks
}

// SerializeBlocks writes id, timing, text and a blank line for every block.
func SerializeBlocks(blocks []common.SourceBlock) string {
	var sb strings.Builder
	for _, block := range blocks {
		sb.WriteString(block.ID)
		sb.WriteByte('\n')
		sb.WriteString(block.Timing)
		sb.WriteByte('\n')
		sb.WriteString(block.Text)
		sb.WriteString("\n\n")
	}
	return sb.String()
}
