package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/shirerpeton/srtReflow/internal/common"
	"github.com/shirerpeton/srtReflow/internal/config"
	"github.com/shirerpeton/srtReflow/internal/converter"
	"github.com/shirerpeton/srtReflow/internal/dictionary"
	"github.com/shirerpeton/srtReflow/internal/spaces"
	"github.com/shirerpeton/srtReflow/internal/state"
	"github.com/shirerpeton/srtReflow/internal/substitute"
)

func rulesFlag() cli.Flag {
	return &cli.StringFlag{Name: "rules", Aliases: []string{"r"}, Usage: "persisted dictionary `FILE` (pattern,replacement per line)"}
}

func dictionaryPath(cmd *cli.Command, cfg *config.Config) string {
	if path := cmd.String("rules"); len(path) > 0 {
		return path
	}
	return cfg.Dictionary.Path
}

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:   "convert",
		Usage:  "Applies the dictionary to subtitle text and reflows it into new blocks",
		Action: runConvert,
		Flags: []cli.Flag{
			rulesFlag(),
			&cli.StringFlag{Name: "dict", Usage: "dictionary `FILE` in text form (pattern => replacement per line), overrides --rules"},
			&cli.IntFlag{Name: "columns", Usage: "maximum characters per row"},
			&cli.IntFlag{Name: "rows", Usage: "maximum rows per block"},
			&cli.BoolFlag{Name: "ignore-case", Aliases: []string{"i"}, Usage: "match patterns case-insensitively"},
		},
		ArgsUsage: "SOURCE [DESTINATION]",
	}
}

func loadRules(cmd *cli.Command, cfg *config.Config) ([]common.Rule, error) {
	if path := cmd.String("dict"); len(path) > 0 {
		return dictionary.LoadText(path)
	}
	return dictionary.Load(dictionaryPath(cmd, cfg))
}

func runConvert(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		dst = env.Cfg.Output.Directory
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	if cmd.IsSet("columns") {
		env.Cfg.Reflow.Columns = int(cmd.Int("columns"))
	}
	if cmd.IsSet("rows") {
		env.Cfg.Reflow.Rows = int(cmd.Int("rows"))
	}
	if cmd.Bool("ignore-case") {
		env.Cfg.Regex.IgnoreCase = true
	}

	rules, err := loadRules(cmd, env.Cfg)
	if err != nil {
		return err
	}
	conv, err := converter.New(rules, converter.Options{Layout: env.Cfg.Layout(), Regex: env.Cfg.RegexOptions()}, log)
	if err != nil {
		return fmt.Errorf("unable to prepare conversion: %w", err)
	}
	files, err := converter.GetFiles(src, dst, env.Cfg.Output.Suffix)
	if err != nil {
		return err
	}

	log.Info("Processing starting",
		zap.String("source", src),
		zap.String("destination", dst),
		zap.Int("files", len(files)),
		zap.Int("rules", len(rules)),
		zap.Int("columns", env.Cfg.Reflow.Columns),
		zap.Int("rows", env.Cfg.Reflow.Rows))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	if err := conv.ProcessFiles(ctx, files, env.Cfg.Input.Encoding); err != nil {
		return err
	}
	if cmd.IsSet("dict") {
		// a text dictionary that converted cleanly replaces the persisted one
		path := dictionaryPath(cmd, env.Cfg)
		if err := dictionary.Save(path, rules); err != nil {
			return err
		}
		log.Info("Dictionary saved", zap.String("path", path), zap.Int("rules", len(rules)))
	}
	printStats(files)
	return nil
}

func rulesCommand() *cli.Command {
	return &cli.Command{
		Name:  "rules",
		Usage: "Manages the substitution dictionary",
		Flags: []cli.Flag{rulesFlag()},
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Prints the dictionary as a table",
				Action: showRules,
			},
			{
				Name:      "import",
				Usage:     "Validates a text form dictionary and saves it as the persisted dictionary",
				Action:    importRules,
				ArgsUsage: "TEXTFILE",
			},
			{
				Name:      "export",
				Usage:     "Writes the persisted dictionary in text form",
				Action:    exportRules,
				ArgsUsage: "[DESTINATION]",
			},
		},
	}
}

func showRules(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	rules, err := dictionary.Load(dictionaryPath(cmd, env.Cfg))
	if err != nil {
		return err
	}
	fmt.Println(renderRules(rules))
	return nil
}

func importRules(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no dictionary file has been specified")
	}
	rules, err := dictionary.LoadText(src)
	if err != nil {
		return err
	}
	if _, err := substitute.Compile(rules, env.Cfg.RegexOptions(), env.Log); err != nil {
		return err
	}
	dst := dictionaryPath(cmd, env.Cfg)
	if err := dictionary.Save(dst, rules); err != nil {
		return err
	}
	env.Log.Info("Dictionary saved", zap.String("file", dst), zap.Int("rules", len(rules)))
	return nil
}

func exportRules(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	rules, err := dictionary.Load(dictionaryPath(cmd, env.Cfg))
	if err != nil {
		return err
	}
	return writeOutput(cmd.Args().Get(0), []byte(dictionary.FormatText(rules)))
}

func stripSpacesCommand() *cli.Command {
	return &cli.Command{
		Name:      "strip-spaces",
		Usage:     "Removes all whitespace from subtitle text lines, timecode lines are kept",
		Action:    runStripSpaces,
		ArgsUsage: "SOURCE [DESTINATION]",
	}
}

func runStripSpaces(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		dst = spaces.DefaultOutputDir
	}
	out, err := spaces.StripFile(src, dst)
	if err != nil {
		return err
	}
	env.Log.Info("Spaces removed", zap.String("source", src), zap.String("output", out))
	return nil
}
