package converter

import (
	"errors"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/shirerpeton/srtReflow/internal/common"
	"github.com/shirerpeton/srtReflow/internal/reflow"
)

const sampleDoc = `1
00:00:00,000 --> 00:00:04,000
ab c

2
00:00:10,000 --> 00:00:14,000
d ef
`

func newConverter(t *testing.T, columns, rows int, rules ...common.Rule) *Converter {
	t.Helper()
	conv, err := New(rules, Options{Layout: reflow.Layout{Columns: columns, Rows: rows}}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return conv
}

func TestConvert_SingleCue(t *testing.T) {
	conv := newConverter(t, 35, 2, common.Rule{Pattern: "a", Replacement: "X"})
	res, err := conv.Convert("1\n00:00:00,000 --> 00:00:02,000\nab\n")
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if want := "1\n00:00:00,000 --> 00:00:01,000\nXb\n\n"; res.Document != want {
		t.Errorf("Convert() = %q, want %q", res.Document, want)
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name string
		rows int
		want string
	}{
		{
			name: "one row per block",
			rows: 1,
			want: "1\n00:00:00,000 --> 00:00:02,000\nab \n\n2\n00:00:03,000 --> 00:00:13,000\nY ef\n\n",
		},
		{
			name: "two rows per block",
			rows: 2,
			want: "1\n00:00:00,000 --> 00:00:13,000\nab \nY ef\n\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv := newConverter(t, 3, tt.rows, common.Rule{Pattern: "cd", Replacement: "Y"})
			res, err := conv.Convert(sampleDoc)
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			if res.Document != tt.want {
				t.Errorf("Convert() = %q, want %q", res.Document, tt.want)
			}
			if res.SourceBlocks != 2 || res.CharsBefore != 8 || res.CharsAfter != 7 {
				t.Errorf("Convert() stats = %s", res)
			}
		})
	}
}

func TestConvert_CrossesCueBoundaries(t *testing.T) {
	// "c" ends the first cue and "d" starts the second one, the match
	// joins them because cue boundaries are gone once the timeline is built
	conv := newConverter(t, 35, 2, common.Rule{Pattern: "cd", Replacement: "CD"})
	res, err := conv.Convert(sampleDoc)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if len(res.Blocks) != 1 || res.Blocks[0].Lines[0] != "ab CD ef" {
		t.Fatalf("Convert() blocks = %+v", res.Blocks)
	}
	if span := res.Blocks[0].Span; span.Start != 0 || span.End != 13 {
		t.Errorf("Convert() span = %+v", span)
	}
}

func TestConvert_Empty(t *testing.T) {
	conv := newConverter(t, 10, 2)
	res, err := conv.Convert("")
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if res.Document != "" || len(res.Blocks) != 0 {
		t.Errorf("Convert() of empty document = %+v", res)
	}
}

func TestConvert_FormatError(t *testing.T) {
	conv := newConverter(t, 10, 2)
	res, err := conv.Convert("1\n00:00:00 --> 00:00:01,000\ntext\n")
	var fe *common.FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("Convert() error = %v, want *FormatError", err)
	}
	if res != nil {
		t.Error("Convert() returned a partial result")
	}
}

func TestNew_Errors(t *testing.T) {
	var ce *common.ConfigError
	if _, err := New(nil, Options{Layout: reflow.Layout{Columns: 0, Rows: 2}}, nil); !errors.As(err, &ce) {
		t.Errorf("New() with zero columns error = %v, want *ConfigError", err)
	}
	if _, err := New(nil, Options{Layout: reflow.Layout{Columns: 10, Rows: -1}}, nil); !errors.As(err, &ce) {
		t.Errorf("New() with negative rows error = %v, want *ConfigError", err)
	}

	var pe *common.InvalidPatternError
	rules := []common.Rule{{Pattern: "a", Replacement: "b"}, {Pattern: "(unclosed", Replacement: ""}}
	if _, err := New(rules, Options{Layout: reflow.Layout{Columns: 10, Rows: 2}}, nil); !errors.As(err, &pe) {
		t.Errorf("New() with invalid pattern error = %v, want *InvalidPatternError", err)
	} else if pe.Index != 1 {
		t.Errorf("InvalidPatternError.Index = %d, want 1", pe.Index)
	}
}

func TestSerialize(t *testing.T) {
	blocks := []common.OutputBlock{
		{ID: 1, Span: common.TimeSpan{Start: 0.5, End: 1.25}, Lines: []string{"one", "two"}},
		{ID: 2, Span: common.TimeSpan{Start: 61, End: 3600}, Lines: []string{"three"}},
	}
	want := "1\n00:00:00,500 --> 00:00:01,250\none\ntwo\n\n2\n00:01:01,000 --> 01:00:00,000\nthree\n\n"
	if got := Serialize(blocks); got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}
