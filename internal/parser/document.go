package parser

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/dimchansky/utfbom"
	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

// chardet reports a few charsets under names IANA does not know
var detectedAliases = map[string]string{
	"GB-18030": "GB18030",
}

func encodingFromBOM(bom utfbom.Encoding) encoding.Encoding {
	switch bom {
	case utfbom.UTF16BigEndian:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case utfbom.UTF16LittleEndian:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case utfbom.UTF32BigEndian:
		return utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM)
	case utfbom.UTF32LittleEndian:
		return utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM)
	}
	return nil
}

func isUTF8(charset string) bool {
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8":
		return true
	}
	return false
}

// LookupEncoding resolves charset for data. It returns nil when data can be
// used as is. "auto" detects the charset unless data is already valid UTF-8.
func LookupEncoding(data []byte, charset string) (encoding.Encoding, error) {
	if strings.EqualFold(charset, "auto") {
		if utf8.Valid(data) {
			return nil, nil
		}
		res, err := chardet.NewTextDetector().DetectBest(data)
		if err != nil {
			return nil, fmt.Errorf("unable to detect charset: %w", err)
		}
		charset = res.Charset
		if alias, ok := detectedAliases[charset]; ok {
			charset = alias
		}
	}
	if isUTF8(charset) {
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q: %w", charset, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", charset)
	}
	return enc, nil
}

// DecodeDocument strips a byte order mark and converts data to UTF-8 text.
func DecodeDocument(data []byte, charset string) (string, error) {
	rd, bom := utfbom.Skip(bytes.NewReader(data))
	data, err := io.ReadAll(rd)
	if err != nil {
		return "", err
	}
	enc := encodingFromBOM(bom)
	if enc == nil && bom != utfbom.UTF8 {
		if enc, err = LookupEncoding(data, charset); err != nil {
			return "", err
		}
	}
	if enc == nil {
		return string(data), nil
	}
	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), enc.NewDecoder()))
	if err != nil {
		return "", fmt.Errorf("unable to decode document: %w", err)
	}
	return string(decoded), nil
}

func ReadDocument(path string, charset string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return DecodeDocument(content, charset)
}
