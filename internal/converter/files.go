package converter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/shirerpeton/srtReflow/internal/common"
	"github.com/shirerpeton/srtReflow/internal/parser"
)

const SubtitleExt = ".srt"

// OutputPath places "<stem><suffix>.srt" into dir.
func OutputPath(input, dir, suffix string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, base+suffix+SubtitleExt)
}

// GetFiles pairs input subtitles with output paths. When input is a directory
// every *.srt file directly inside it is taken, in natural order.
func GetFiles(input, outputDir, suffix string) ([]*common.ConvertFile, error) {
	stat, err := os.Stat(input)
	if err != nil {
		return nil, err
	}
	if !stat.IsDir() {
		files := []*common.ConvertFile{{Input: input, Output: OutputPath(input, outputDir, suffix)}}
		return files, checkOutputs(files)
	}

	entries, err := os.ReadDir(input)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entr := range entries {
		if entr.IsDir() || !strings.EqualFold(filepath.Ext(entr.Name()), SubtitleExt) {
			continue
		}
		names = append(names, entr.Name())
	}
	if len(names) == 0 {
		return nil, errors.New("no input subtitles")
	}
	sort.Sort(natural.StringSlice(names))

	files := make([]*common.ConvertFile, 0, len(names))
	for _, name := range names {
		path := filepath.Join(input, name)
		files = append(files, &common.ConvertFile{Input: path, Output: OutputPath(path, outputDir, suffix)})
	}
	return files, checkOutputs(files)
}

// checkOutputs refuses outputs that would replace an input or be written by
// more than one conversion. Names are compared ignoring case since a.srt and
// a.SRT may be the same file.
func checkOutputs(files []*common.ConvertFile) error {
	seen := make(map[string]string, len(files)*2)
	for _, file := range files {
		seen[strings.ToLower(filepath.Clean(file.Input))] = file.Input
	}
	for _, file := range files {
		key := strings.ToLower(filepath.Clean(file.Output))
		if other, ok := seen[key]; ok {
			return fmt.Errorf("output %s of %s would overwrite %s", file.Output, file.Input, other)
		}
		seen[key] = file.Input
	}
	return nil
}

// ProcessFile converts file.Input into file.Output and records statistics on
// file. Nothing is written when conversion fails.
func (c *Converter) ProcessFile(file *common.ConvertFile, charset string) error {
	if filepath.Clean(file.Output) == filepath.Clean(file.Input) {
		return fmt.Errorf("%s: output would overwrite input", file.Input)
	}
	document, err := parser.ReadDocument(file.Input, charset)
	if err != nil {
		return err
	}
	res, err := c.Convert(document)
	if err != nil {
		return fmt.Errorf("%s: %w", file.Input, err)
	}
	outputDir := filepath.Dir(file.Output)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}
	if err := os.WriteFile(file.Output, []byte(res.Document), 0644); err != nil {
		return err
	}
	file.SourceBlocks = res.SourceBlocks
	file.OutputBlocks = len(res.Blocks)
	file.CharsBefore = res.CharsBefore
	file.CharsAfter = res.CharsAfter
	c.log.Debug("File converted", zap.String("input", file.Input), zap.String("output", file.Output), zap.Stringer("result", res))
	return nil
}

// ProcessFiles converts files concurrently. Each conversion owns its token
// buffers so the shared Converter is only read.
func (c *Converter) ProcessFiles(ctx context.Context, files []*common.ConvertFile, charset string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return c.ProcessFile(file, charset)
		})
	}
	return g.Wait()
}
