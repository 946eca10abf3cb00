package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/petrarca/mavenizer/internal/config"
	"github.com/petrarca/mavenizer/internal/jarsource"
	"github.com/petrarca/mavenizer/internal/metadata"
	"github.com/petrarca/mavenizer/internal/model"
	"github.com/petrarca/mavenizer/internal/pipeline"
	"github.com/petrarca/mavenizer/internal/progress"
	"github.com/petrarca/mavenizer/internal/repocheck"
	"github.com/petrarca/mavenizer/internal/report"
	"github.com/petrarca/mavenizer/internal/selector"
	"github.com/petrarca/mavenizer/internal/ui"
)

// shutdownGrace bounds how long analyze waits for in-flight online
// resolution to finish once a shutdown signal arrives, per spec §5.
const shutdownGrace = 5 * time.Second

var (
	settings       *config.Settings
	scanConfigPath string
	verbose        bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze jar files and identify their Maven coordinates",
	Long: `analyze reads one or more jar files (or directories of jars),
runs the offline evidence analyzers against each, verifies the most
likely coordinates against the configured Maven repositories, and
writes a JSON report.

Examples:
  mavenizer analyze --jars ./lib
  mavenizer analyze --jars a.jar --jars b.jar --offline
  mavenizer analyze --jars ./lib --report-file out.json --skip-not-found`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	settings = config.LoadSettingsFromEnvironment()

	analyzeCmd.Flags().StringSliceVar(&settings.Jars, "jars", nil, "Jar file or directory paths to analyze (can be specified multiple times)")
	analyzeCmd.Flags().StringVar(&settings.ReportFile, "report-file", settings.ReportFile, "Report output path; {datetime} is substituted with the run's UTC timestamp")
	analyzeCmd.Flags().BoolVar(&settings.Offline, "offline", settings.Offline, "Skip online verification; report only offline evidence")
	analyzeCmd.Flags().IntVar(&settings.Limit, "limit", settings.Limit, "Limit the number of jars analyzed (0 = no limit)")
	analyzeCmd.Flags().BoolVar(&settings.SkipNotFound, "skip-not-found", settings.SkipNotFound, "Skip jars that don't auto-resolve, instead of prompting")
	analyzeCmd.Flags().BoolVar(&settings.ForceDetailedOutput, "force-detailed-output", settings.ForceDetailedOutput, "Print every candidate considered for each jar, not just the final pick")
	analyzeCmd.Flags().StringSliceVar(&settings.ExtraRepositories, "extra-repositories", settings.ExtraRepositories, "Extra Maven repository base URLs to check ahead of the discovered list")
	analyzeCmd.Flags().IntVar(&settings.SelectorTopK, "selector-top-k", settings.SelectorTopK, "Per-component candidate cap before forming the cartesian product")
	analyzeCmd.Flags().IntVar(&settings.SelectorScoreFloor, "selector-score-floor", settings.SelectorScoreFloor, "Minimum candidate score to be considered")

	analyzeCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show progress for each jar as it is analyzed")
	analyzeCmd.Flags().String("log-level", settings.LogLevel.String(), "Log level: debug, info, warn, error")
	analyzeCmd.Flags().String("log-format", settings.LogFormat, "Log format: text or json")
	analyzeCmd.Flags().String("log-file", settings.LogFile, "Log file path (default: stderr)")

	analyzeCmd.Flags().StringVar(&scanConfigPath, "config", "", "Project config file path (.mavenizer.yml) or inline JSON")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	logger := configureLogging(cmd)

	scanConfig, err := config.LoadScanConfig(scanConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	scanConfig.MergeWithSettings(settings)

	if err := settings.Validate(); err != nil {
		return err
	}

	paths, err := jarsource.Expand(settings.Jars)
	if err != nil {
		return fmt.Errorf("expand jar paths: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no jar files found among %v", settings.Jars)
	}

	prog := progress.New(verbose, nil)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var checker *repocheck.Checker
	var repos []report.Repository
	if !settings.Offline {
		checker, err = repocheck.New(ctx, repocheck.Options{
			ExtraRepos: settings.ExtraRepositories,
			Logger:     logger,
		})
		if err != nil {
			return fmt.Errorf("initialize repository checker: %w", err)
		}
		for _, url := range checker.Repositories() {
			repos = append(repos, report.Repository{Name: url, URL: url})
		}
		prog.Info(fmt.Sprintf("%d remote repositories configured", len(repos)))
	}

	manualSelector := ui.NewTerminalSelector(os.Stdin, os.Stdout, os.Stdin.Fd(), os.Stdout.Fd())
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		logger.Debug("stdout is not a terminal; manual prompts will auto-skip")
	}

	pl := pipeline.New(pipeline.Options{
		Offline:        settings.Offline,
		SkipNotFound:   settings.SkipNotFound,
		Limit:          settings.Limit,
		Logger:         logger,
		Progress:       prog,
		Selector:       &selector.Selector{TopK: settings.SelectorTopK, ScoreFloor: settings.SelectorScoreFloor},
		Checker:        checker,
		ManualSelector: manualSelector,
	})

	run := metadata.NewRunMetadata(len(paths), !settings.Offline)

	done := make(chan struct{})
	var reports []model.JarReport
	var runErr error
	go func() {
		reports, runErr = pl.Run(ctx, paths)
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		select {
		case <-done:
		case <-time.After(shutdownGrace):
			logger.Warn("shutdown grace period elapsed without pipeline completion, exiting")
			os.Exit(1)
		}
	}
	if runErr != nil {
		return fmt.Errorf("pipeline run: %w", runErr)
	}
	analyzed := len(paths)
	if settings.Limit > 0 && analyzed > settings.Limit {
		analyzed = settings.Limit
	}
	run.Finish(analyzed, len(reports))

	if settings.ForceDetailedOutput {
		ui.PrintDetailedCandidates(os.Stdout, reports)
	}

	doc := report.Build(reports, !settings.Offline, repos)
	if err := report.Write(doc, settings.ReportFile, time.Now()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	outPath := report.ResolvePath(settings.ReportFile, time.Now())
	fmt.Fprintf(os.Stderr, "Analyzed %d/%d jars (%d reported) in %dms. Report: %s\n",
		run.JarsAnalyzed, run.JarsRequested, run.JarsReported, run.DurationMs, outPath)
	return nil
}

func configureLogging(cmd *cobra.Command) *slog.Logger {
	logLevel, _ := cmd.Flags().GetString("log-level")
	logFormat, _ := cmd.Flags().GetString("log-format")
	logFile, _ := cmd.Flags().GetString("log-file")

	if level, err := parseLogLevel(logLevel); err == nil {
		settings.LogLevel = level
	}
	settings.LogFormat = logFormat
	settings.LogFile = logFile

	return settings.ConfigureLogger()
}

func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s", level)
	}
}
