package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/abdul-hamid-achik/hitassert/packages/cases"
	"github.com/abdul-hamid-achik/hitassert/packages/core/config"
	"github.com/abdul-hamid-achik/hitassert/packages/core/runner"
	"github.com/abdul-hamid-achik/hitassert/packages/export/metrics"
	"github.com/abdul-hamid-achik/hitassert/packages/output"
	"github.com/abdul-hamid-achik/hitassert/packages/snapshot"
	charmlog "github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <file|directory>",
	Short: "Run assertion cases from case files",
	Long: `Run assertion cases defined in *.hitassert.yaml, *.hitassert.yml or
*.hitassert.json files.

Examples:
  hitassert run arrays.hitassert.yaml
  hitassert run ./cases/ --tags smoke
  hitassert run ./cases/ --name "ends with*"
  hitassert run ./cases/ --output junit --output-file report.xml
  hitassert run ./cases/ --watch`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCommand,
}

const (
	// WatchDebounceDelay is the debounce delay for file watch events
	WatchDebounceDelay = 300 * time.Millisecond
)

var (
	nameFlag        string
	tagsFlag        string
	verboseFlag     int // 0=off, 1=-v, 2=-vv
	quietFlag       bool
	bailFlag        bool
	noColorFlag     bool
	dryRunFlag      bool
	outputFlag      string
	outputFileFlag  string
	parallelFlag    bool
	concurrencyFlag int
	watchFlag       bool
	configFlag      string
	metricsFlag     string
	metricsFileFlag string

	updateSnapshotsFlag bool
)

func init() {
	runCmd.Flags().StringVar(&configFlag, "config", getEnvString("HITASSERT_CONFIG", ""), "Path to config file (env: HITASSERT_CONFIG)")
	runCmd.Flags().StringVarP(&nameFlag, "name", "n", "", "Run only cases matching name pattern")
	runCmd.Flags().StringVarP(&tagsFlag, "tags", "t", getEnvString("HITASSERT_TAGS", ""), "Run only cases with specified tags (comma-separated) (env: HITASSERT_TAGS)")

	runCmd.Flags().CountVarP(&verboseFlag, "verbose", "v", "Verbose output (-v, -vv for more detail)")
	runCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", getEnvBool("HITASSERT_QUIET", false), "Suppress all output except errors (env: HITASSERT_QUIET)")
	runCmd.Flags().BoolVar(&noColorFlag, "no-color", getEnvBool("HITASSERT_NO_COLOR", false), "Disable colored output (env: HITASSERT_NO_COLOR)")
	runCmd.Flags().StringVarP(&outputFlag, "output", "o", getEnvString("HITASSERT_OUTPUT", "console"), "Output format: console, json, junit, tap (env: HITASSERT_OUTPUT)")
	runCmd.Flags().StringVar(&outputFileFlag, "output-file", getEnvString("HITASSERT_OUTPUT_FILE", ""), "Write output to file (default: stdout) (env: HITASSERT_OUTPUT_FILE)")

	runCmd.Flags().BoolVar(&bailFlag, "bail", getEnvBool("HITASSERT_BAIL", false), "Stop on first failure (env: HITASSERT_BAIL)")
	runCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Parse and show what would run without evaluating")
	runCmd.Flags().BoolVarP(&parallelFlag, "parallel", "p", getEnvBool("HITASSERT_PARALLEL", false), "Evaluate cases in parallel (env: HITASSERT_PARALLEL)")
	runCmd.Flags().IntVar(&concurrencyFlag, "concurrency", getEnvInt("HITASSERT_CONCURRENCY", runner.DefaultConcurrency), "Number of concurrent cases when running in parallel (env: HITASSERT_CONCURRENCY)")
	runCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch files for changes and re-run cases")
	runCmd.Flags().BoolVar(&updateSnapshotsFlag, "update-snapshots", false, "Write message snapshots instead of comparing them")

	runCmd.Flags().StringVar(&metricsFlag, "metrics", getEnvString("HITASSERT_METRICS", ""), "Metrics export format: prometheus, json (env: HITASSERT_METRICS)")
	runCmd.Flags().StringVar(&metricsFileFlag, "metrics-file", getEnvString("HITASSERT_METRICS_FILE", ""), "Output file for metrics (default: stdout) (env: HITASSERT_METRICS_FILE)")
}

// Environment variable helpers
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// flagOverrides collects the settings given on the command line or through
// the environment so they take precedence over the config file.
func flagOverrides(cmd *cobra.Command) *config.Config {
	flags := cmd.Flags()
	set := func(name, env string) bool {
		return flags.Changed(name) || os.Getenv(env) != ""
	}

	overrides := &config.Config{}
	if set("output", "HITASSERT_OUTPUT") {
		overrides.Output = outputFlag
	}
	if set("output-file", "HITASSERT_OUTPUT_FILE") {
		overrides.OutputFile = outputFileFlag
	}
	if set("concurrency", "HITASSERT_CONCURRENCY") {
		overrides.Concurrency = concurrencyFlag
	}
	if set("parallel", "HITASSERT_PARALLEL") {
		overrides.Parallel = config.BoolPtr(parallelFlag)
	}
	if set("bail", "HITASSERT_BAIL") {
		overrides.Bail = config.BoolPtr(bailFlag)
	}
	if set("no-color", "HITASSERT_NO_COLOR") || quietFlag {
		overrides.NoColor = config.BoolPtr(noColorFlag || quietFlag)
	}
	if verboseFlag > 0 {
		overrides.Verbose = config.BoolPtr(true)
	}
	if tags := splitTags(tagsFlag); len(tags) > 0 {
		overrides.Tags = tags
	}
	return overrides
}

func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func runCommand(cmd *cobra.Command, args []string) error {
	fileConfig, err := config.LoadConfig(configFlag)
	if err != nil {
		return withExitCode(ExitConfigError, fmt.Errorf("loading config: %w", err))
	}
	settings := fileConfig.Merge(flagOverrides(cmd))

	switch {
	case quietFlag:
		logger.SetLevel(charmlog.ErrorLevel)
	case verboseFlag > 1:
		logger.SetLevel(charmlog.DebugLevel)
	default:
		logger.SetLevel(charmlog.InfoLevel)
	}

	var outWriter io.Writer = cmd.OutOrStdout()
	if settings.OutputFile != "" {
		f, err := os.Create(settings.OutputFile)
		if err != nil {
			return withExitCode(ExitUsageError, fmt.Errorf("cannot create output file: %w", err))
		}
		defer f.Close()
		outWriter = f
	}

	newFormatter := func() (output.Formatter, error) {
		return output.New(settings.Output, output.Options{
			Writer:  outWriter,
			Verbose: settings.GetVerbose(),
			NoColor: settings.GetNoColor(),
		})
	}

	formatter, err := newFormatter()
	if err != nil {
		return withExitCode(ExitUsageError, err)
	}

	files, err := collectFiles(args)
	if err != nil {
		formatter.FormatError(err)
		return withExitCode(ExitUsageError, err)
	}

	if len(files) == 0 {
		err := fmt.Errorf("no case files found (expected %s)", strings.Join(cases.Extensions, ", "))
		formatter.FormatError(err)
		return withExitCode(ExitUsageError, err)
	}

	if !quietFlag {
		formatter.FormatHeader(version)
	}

	collector, err := newMetricsCollector(metricsFlag, metricsFileFlag, cmd.OutOrStdout())
	if err != nil {
		return withExitCode(ExitUsageError, err)
	}

	r := runner.NewRunner(&runner.Config{
		Verbose:     settings.GetVerbose(),
		Bail:        settings.GetBail(),
		NameFilter:  nameFlag,
		TagsFilter:  settings.Tags,
		Parallel:    settings.GetParallel(),
		Concurrency: settings.Concurrency,
		Snapshots:   snapshot.NewManager(updateSnapshotsFlag),
	})

	runAll := func(formatter output.Formatter) (failed int, parseErrors int) {
		startTime := time.Now()

		for _, file := range files {
			if dryRunFlag {
				fmt.Fprintf(cmd.OutOrStdout(), "Would run: %s\n", file)
				continue
			}

			logger.Debug("running case file", "file", file)
			result, err := r.RunFile(file)
			if err != nil {
				formatter.FormatError(err)
				parseErrors++
				if settings.GetBail() {
					break
				}
				continue
			}

			formatter.FormatResult(result)
			if collector != nil {
				collector.RecordRun(result)
			}
			failed += result.Failed
			logger.Debug("case file done", "file", file, "run", result.ID, "passed", result.Passed, "failed", result.Failed, "skipped", result.Skipped)

			if settings.GetBail() && result.Failed > 0 {
				break
			}
		}

		if flushable, ok := formatter.(output.Flushable); ok {
			if err := flushable.Flush(time.Since(startTime)); err != nil {
				logger.Error("writing output", "err", err)
			}
		}
		return failed, parseErrors
	}

	failed, parseErrors := runAll(formatter)

	if collector != nil {
		if err := collector.Flush(); err != nil {
			logger.Warn("failed to export metrics", "err", err)
		}
		if err := collector.Close(); err != nil {
			logger.Warn("failed to close metrics exporters", "err", err)
		}
	}

	if watchFlag {
		return watchFiles(cmd, args, files, func() {
			f, err := newFormatter()
			if err != nil {
				logger.Error("creating formatter", "err", err)
				return
			}
			runAll(f)
		})
	}

	if parseErrors > 0 {
		return withExitCode(ExitParseError, fmt.Errorf("%d case file(s) could not be parsed", parseErrors))
	}
	if failed > 0 {
		return withExitCode(ExitTestFailure, fmt.Errorf("%d case(s) failed", failed))
	}
	return nil
}

// newMetricsCollector builds a collector for the comma-separated formats, or
// returns nil when no format is requested.
func newMetricsCollector(formats, file string, stdout io.Writer) (*metrics.Collector, error) {
	if formats == "" {
		return nil, nil
	}

	var exporters []metrics.Exporter
	for _, format := range strings.Split(formats, ",") {
		switch strings.TrimSpace(strings.ToLower(format)) {
		case "prometheus":
			if file != "" {
				exporters = append(exporters, metrics.NewPrometheusExporter(metrics.WithPrometheusFile(file)))
			} else {
				exporters = append(exporters, metrics.NewPrometheusExporter(metrics.WithPrometheusWriter(stdout)))
			}
		case "json":
			if file != "" {
				exporters = append(exporters, metrics.NewJSONExporter(metrics.WithJSONFile(file)))
			} else {
				exporters = append(exporters, metrics.NewJSONExporter(metrics.WithJSONWriter(stdout)))
			}
		default:
			return nil, fmt.Errorf("unknown metrics format %q (use prometheus or json)", format)
		}
	}
	return metrics.NewCollector(exporters...), nil
}

// watchFiles re-runs rerun whenever a case file under the watched paths is
// written, until the command is interrupted.
func watchFiles(cmd *cobra.Command, args, files []string, rerun func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	watchedDirs := make(map[string]bool)
	for _, file := range files {
		dir := filepath.Dir(file)
		if !watchedDirs[dir] {
			if err := watcher.Add(dir); err != nil {
				logger.Warn("cannot watch directory", "dir", dir, "err", err)
			}
			watchedDirs[dir] = true
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err == nil && info.IsDir() {
			_ = filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if info.IsDir() && !watchedDirs[path] {
					_ = watcher.Add(path)
					watchedDirs[path] = true
				}
				return nil
			})
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n\n")

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Has(fsnotify.Write) && cases.IsCaseFile(event.Name) {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				name := event.Name
				debounceTimer = time.AfterFunc(WatchDebounceDelay, func() {
					logger.Info("file changed, re-running cases", "file", name)
					rerun()
					fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n")
				})
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "err", err)
		}
	}
}

func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}

		if info.IsDir() {
			err := filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if !info.IsDir() && cases.IsCaseFile(path) {
					files = append(files, path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		} else if cases.IsCaseFile(arg) {
			files = append(files, arg)
		}
	}

	return files, nil
}
