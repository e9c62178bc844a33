package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/tagforest/internal/configloader"
	"github.com/yaklabco/tagforest/internal/logging"
	"github.com/yaklabco/tagforest/pkg/config"
	"github.com/yaklabco/tagforest/pkg/reporter"
	"github.com/yaklabco/tagforest/pkg/runner"
)

// ErrIssuesFound is matched by the error parse returns when the analysis
// should exit non-zero. It carries no message worth logging.
var ErrIssuesFound = errors.New("markup issues found")

// stdinPath selects standard input as the only source.
const stdinPath = "-"

type parseFlags struct {
	format     string
	recovery   string
	ignore     []string
	extensions []string
	jobs       int
	strict     bool
	noContext  bool
	noSummary  bool
	compact    bool
	forest     bool
}

func newParseCommand() *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse [paths...]",
		Short: "Parse markup files and report diagnostics",
		Long:  parseLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, tree, summary")
	cmd.Flags().StringVar(&flags.recovery, "recovery", "", "end tag recovery: pop-until-match, reject")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "file extensions to analyze (default .html, .htm, .xhtml)")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as failures for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "omit the summary line")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
	cmd.Flags().BoolVar(&flags.forest, "forest", false, "include the run forest in JSON output")

	return cmd
}

const parseLongDescription = `Parse markup files into run forests and report diagnostics.

By default, analyzes all .html, .htm and .xhtml files under the current
directory. Files named explicitly are analyzed whatever their extension.
Pass "-" to read a single document from standard input.

Examples:
  tagforest parse                      # Analyze current directory
  tagforest parse site/                # Analyze a directory
  tagforest parse page.tpl             # Analyze a single file
  tagforest parse --format tree a.html # Print the run forest
  cat a.html | tagforest parse -       # Analyze standard input
  tagforest parse --format json --forest --compact`

func runParse(cmd *cobra.Command, args []string, flags *parseFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	cliCfg := &config.Config{
		Recovery:   flags.recovery,
		Jobs:       flags.jobs,
		Strict:     flags.strict,
		Ignore:     flags.ignore,
		Extensions: flags.extensions,
	}
	if cmd.Flags().Changed("format") {
		cliCfg.Format = config.OutputFormat(flags.format)
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldConfigFiles, loadResult.LoadedFrom,
		logging.FieldRecovery, cfg.Recovery,
		logging.FieldFormat, cfg.Format,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldStrict, cfg.Strict,
	)

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	parseRunner := runner.New(runner.NewAnalyzer(cfg))

	var result *runner.Result
	if len(args) == 1 && args[0] == stdinPath {
		result, err = parseRunner.RunReader(ctx, "<stdin>", cmd.InOrStdin())
	} else {
		logger.Debug("starting run",
			logging.FieldPaths, args,
			logging.FieldWorkingDir, workDir,
		)
		result, err = parseRunner.Run(ctx, runner.Options{
			Paths:        args,
			WorkingDir:   workDir,
			Extensions:   cfg.Extensions,
			ExcludeGlobs: cfg.Ignore,
			Jobs:         cfg.Jobs,
		})
	}
	if err != nil {
		return errors.Join(errors.New("parse run failed"), err)
	}

	logger.Debug("run finished",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
	)

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:        cmd.OutOrStdout(),
		ErrorWriter:   cmd.ErrOrStderr(),
		Format:        format,
		Color:         colorMode,
		ShowContext:   !flags.noContext,
		ShowSummary:   !flags.noSummary,
		GroupByFile:   true,
		Compact:       flags.compact,
		IncludeForest: flags.forest,
		WorkingDir:    workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if code := ExitCodeFromResult(result, cfg.Strict); code != ExitSuccess {
		return &issuesError{code: code}
	}

	return nil
}
