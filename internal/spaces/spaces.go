// Package spaces removes whitespace from cue text, for subtitles produced by
// speech services that put spaces between every word of scripts that do not
// use them.
package spaces

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

const DefaultOutputDir = "./outputs/elevenlabs/"

// isTimecode reports whether line starts with two digits and a colon.
func isTimecode(line string) bool {
	return len(line) >= 3 && isDigit(line[0]) && isDigit(line[1]) && line[2] == ':'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func removeSpaces(line string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, line)
}

// Strip copies r to w line by line. Timecode lines are passed unchanged, all
// whitespace is removed from other lines and each of them ends with a newline.
func Strip(r io.Reader, w io.Writer) error {
	rd := bufio.NewReader(r)
	bw := bufio.NewWriter(w)
	for {
		line, err := rd.ReadString('\n')
		if len(line) > 0 {
			if isTimecode(line) {
				_, _ = bw.WriteString(line)
			} else {
				_, _ = bw.WriteString(removeSpaces(strings.TrimRight(line, "\n")))
				_ = bw.WriteByte('\n')
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

// StripFile writes the stripped copy of input into outputDir under the same
// base name and returns its path.
func StripFile(input, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", err
	}
	output := filepath.Join(outputDir, filepath.Base(input))
	if filepath.Clean(output) == filepath.Clean(input) {
		return "", errors.New("output would overwrite input")
	}

	in, err := os.Open(input)
	if err != nil {
		return "", err
	}
	defer in.Close()

	out, err := os.Create(output)
	if err != nil {
		return "", err
	}
	if err := Strip(in, out); err != nil {
		out.Close()
		return "", err
	}
	return output, out.Close()
}
