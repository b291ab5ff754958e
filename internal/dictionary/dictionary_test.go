package dictionary

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/shirerpeton/srtReflow/internal/common"
)

func TestParseText(t *testing.T) {
	text := "\\bteh\\b => the\n\n  colou?r=>color  \nfoo =>\na => b => c\n"
	want := []common.Rule{
		{Pattern: `\bteh\b`, Replacement: "the"},
		{Pattern: "colou?r", Replacement: "color"},
		{Pattern: "foo", Replacement: ""},
		{Pattern: "a", Replacement: "b => c"},
	}
	got, err := ParseText(text)
	if err != nil {
		t.Fatalf("ParseText() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseText() = %#v\nwant %#v", got, want)
	}
}

func TestParseText_Errors(t *testing.T) {
	tests := []struct {
		text string
		want error
		line string
	}{
		{"a => b\nno separator", ErrNoSeparator, "line 2"},
		{"  => b", ErrEmptyPattern, "line 1"},
	}
	for _, tt := range tests {
		_, err := ParseText(tt.text)
		if !errors.Is(err, tt.want) {
			t.Errorf("ParseText(%q) error = %v, want %v", tt.text, err, tt.want)
			continue
		}
		if !strings.Contains(err.Error(), tt.line) {
			t.Errorf("ParseText(%q) error %q does not name %s", tt.text, err, tt.line)
		}
	}
}

func TestFormatText(t *testing.T) {
	rules := []common.Rule{{Pattern: "a", Replacement: "b"}, {Pattern: "x+", Replacement: ""}}
	got := FormatText(rules)
	if want := "a => b\nx+ => \n"; got != want {
		t.Errorf("FormatText() = %q, want %q", got, want)
	}
	back, err := ParseText(got)
	if err != nil || !reflect.DeepEqual(back, rules) {
		t.Errorf("ParseText(FormatText()) = %#v, %v", back, err)
	}
}

func TestTable(t *testing.T) {
	rules := ParseTable("a,b\n\n x+ , y \nalone\nk,v,w\n")
	want := []common.Rule{
		{Pattern: "a", Replacement: "b"},
		{Pattern: "x+", Replacement: "y"},
		{Pattern: "alone", Replacement: ""},
		{Pattern: "k", Replacement: "v,w"},
	}
	if !reflect.DeepEqual(rules, want) {
		t.Errorf("ParseTable() = %#v", rules)
	}
	if got := FormatTable(want[:2]); got != "a,b\nx+,y" {
		t.Errorf("FormatTable() = %q", got)
	}
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "terms.csv")

	rules, err := Load(path)
	if err != nil {
		t.Fatalf("Load() of missing file error = %v", err)
	}
	if !reflect.DeepEqual(rules, Default()) {
		t.Errorf("Load() of missing file = %#v, want default", rules)
	}

	saved := []common.Rule{{Pattern: "foo", Replacement: "bar"}, {Pattern: `\s+`, Replacement: ""}}
	if err := Save(path, saved); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(loaded, saved) {
		t.Errorf("Load() = %#v, want %#v", loaded, saved)
	}

	if err := Save(filepath.Join(dir, "missing", "terms.csv"), saved); err == nil {
		t.Error("Save() into missing directory should fail")
	}
}

func TestLoadText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.txt")
	if err := os.WriteFile(path, []byte("a => b\r\nc => d\r\n"), 0644); err != nil {
		t.Fatal(err)
	}
	rules, err := LoadText(path)
	if err != nil {
		t.Fatalf("LoadText() error = %v", err)
	}
	if len(rules) != 2 || rules[1] != (common.Rule{Pattern: "c", Replacement: "d"}) {
		t.Errorf("LoadText() = %#v", rules)
	}

	if err := os.WriteFile(path, []byte("broken"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadText(path); !errors.Is(err, ErrNoSeparator) {
		t.Errorf("LoadText() error = %v, want ErrNoSeparator", err)
	}
}
