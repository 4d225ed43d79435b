package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/utkarsh5026/filebatch/fileproc"
	"github.com/utkarsh5026/filebatch/internal/config"
	"github.com/utkarsh5026/filebatch/internal/logging"
)

type runFlags struct {
	configPath string
	workers    int
	processor  string
	rateLimit  float64
	rateBurst  int
	retries    int
	retryDelay time.Duration
	quiet      bool
	jsonOut    bool
}

func newRunCommand() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run <dir>",
		Short: "Run the configured processor over every regular file in <dir>",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "Configuration file path")
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 0, "Number of parallel workers")
	cmd.Flags().StringVarP(&flags.processor, "processor", "p", "", "Per-file processor (lines, words, checksum)")
	cmd.Flags().Float64Var(&flags.rateLimit, "rate", 0, "Maximum files started per second (0 = unlimited)")
	cmd.Flags().IntVar(&flags.rateBurst, "burst", 0, "Rate limiter burst size")
	cmd.Flags().IntVar(&flags.retries, "retries", 0, "Total attempts per file")
	cmd.Flags().DurationVar(&flags.retryDelay, "retry-delay", 0, "Initial delay before the first retry")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "Suppress progress output and non-error logs")
	cmd.Flags().BoolVar(&flags.jsonOut, "json", false, "Emit the report as JSON")

	return cmd
}

func runBatch(cmd *cobra.Command, dir string, flags runFlags) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}
	mergeFlags(cmd, &cfg, flags)
	if err := cfg.Validate(); err != nil {
		return err
	}

	proc, err := fileproc.ByName(cfg.Processor)
	if err != nil {
		return err
	}

	logLevel := cfg.LogLevel
	if flags.quiet || flags.jsonOut {
		logLevel = "error"
	}
	logger, err := logging.New(cmd.ErrOrStderr(), logging.Options{
		Level:  logLevel,
		Format: cfg.LogFormat,
	})
	if err != nil {
		return err
	}

	retryDelay, err := cfg.ParsedRetryDelay()
	if err != nil {
		return err
	}
	if flags.retryDelay > 0 {
		retryDelay = flags.retryDelay
	}

	var bar *progressbar.ProgressBar
	if !flags.quiet && !flags.jsonOut {
		items, err := fileproc.Enumerate(dir)
		if err != nil {
			return err
		}
		bar = makeProgressBar(len(items))
	}

	eng, err := fileproc.NewEngine(fileproc.Options{
		Dir:        dir,
		Processor:  proc,
		Workers:    cfg.Workers,
		Logger:     logger,
		RateLimit:  cfg.RateLimit,
		RateBurst:  cfg.RateBurst,
		Retries:    cfg.Retries,
		RetryDelay: retryDelay,
		OnItemEnd: func(item fileproc.Item, result fileproc.Result, err error) {
			if bar != nil {
				_ = bar.Add(1)
			}
		},
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	report, err := eng.Run(ctx)
	if err != nil {
		return err
	}

	if bar != nil {
		_ = bar.Finish()
	}

	if flags.jsonOut {
		if err := renderJSON(cmd.OutOrStdout(), report); err != nil {
			return err
		}
	} else {
		renderReport(cmd.OutOrStdout(), report, cfg.Processor)
	}

	if !report.Ok() {
		return fmt.Errorf("%d of %d files did not complete successfully",
			report.Failed+report.Cancelled, len(report.Items))
	}
	return nil
}

// mergeFlags lets explicitly-set flags win over config-file values.
func mergeFlags(cmd *cobra.Command, cfg *config.Config, flags runFlags) {
	set := cmd.Flags().Changed

	if set("workers") {
		cfg.Workers = flags.workers
	}
	if set("processor") {
		cfg.Processor = flags.processor
	}
	if set("rate") {
		cfg.RateLimit = flags.rateLimit
	}
	if set("burst") {
		cfg.RateBurst = flags.rateBurst
	}
	if set("retries") {
		cfg.Retries = flags.retries
	}
}

func makeProgressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Processing files"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
	)
}
