package converter

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/shirerpeton/srtReflow/internal/common"
	"github.com/shirerpeton/srtReflow/internal/parser"
	"github.com/shirerpeton/srtReflow/internal/reflow"
	"github.com/shirerpeton/srtReflow/internal/substitute"
	"github.com/shirerpeton/srtReflow/internal/timeline"
)

type Options struct {
	Layout reflow.Layout
	Regex  substitute.Options
}

// Converter is the whole pipeline for one rule list and layout. It is
// immutable after New and safe for concurrent use.
type Converter struct {
	engine *substitute.Engine
	layout reflow.Layout
	log    *zap.Logger
}

type Result struct {
	Document     string
	Blocks       []common.OutputBlock
	SourceBlocks int
	CharsBefore  int
	CharsAfter   int
}

// New validates the layout and compiles every rule, nothing is applied if
// any of it is invalid.
func New(rules []common.Rule, opts Options, log *zap.Logger) (*Converter, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := opts.Layout.Validate(); err != nil {
		return nil, err
	}
	engine, err := substitute.Compile(rules, opts.Regex, log)
	if err != nil {
		return nil, err
	}
	return &Converter{engine: engine, layout: opts.Layout, log: log}, nil
}

// Convert rewrites and reflows document. Either the whole document is
// converted or an error is returned.
func (c *Converter) Convert(document string) (*Result, error) {
	blocks := parser.ParseBlocks(document)
	tokens, err := timeline.Build(blocks)
	if err != nil {
		return nil, err
	}
	rewritten, err := c.engine.Apply(tokens)
	if err != nil {
		return nil, err
	}
	out, err := reflow.Reflow(rewritten, c.layout)
	if err != nil {
		return nil, err
	}
	c.log.Debug("Document converted",
		zap.Int("source blocks", len(blocks)),
		zap.Int("rules", c.engine.Len()),
		zap.Int("chars before", len(tokens)),
		zap.Int("chars after", len(rewritten)),
		zap.Int("output blocks", len(out)))
	return &Result{
		Document:     Serialize(out),
		Blocks:       out,
		SourceBlocks: len(blocks),
		CharsBefore:  len(tokens),
		CharsAfter:   len(rewritten),
	}, nil
}

// Serialize renders output blocks in the subtitle document format.
func Serialize(blocks []common.OutputBlock) string {
	source := make([]common.SourceBlock, len(blocks))
	for i, block := range blocks {
		source[i] = common.SourceBlock{
			ID:     strconv.Itoa(block.ID),
			Timing: parser.FormatTimeRange(block.Span),
			Text:   strings.Join(block.Lines, "\n"),
		}
	}
	return parser.SerializeBlocks(source)
}

func (r *Result) String() string {
	return fmt.Sprintf("%d -> %d blocks, %d -> %d chars", r.SourceBlocks, len(r.Blocks), r.CharsBefore, r.CharsAfter)
}
