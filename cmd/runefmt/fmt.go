package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"runefmt/internal/config"
	"runefmt/internal/diag"
	"runefmt/internal/diagfmt"
	"runefmt/internal/driver"
	"runefmt/internal/observ"
	"runefmt/internal/ui"
)

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	writeToStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	if writeToStdout && check {
		return fmt.Errorf("runefmt: --stdout cannot be used with --check")
	}
	if writeToStdout && outputFormat != "text" {
		return fmt.Errorf("runefmt: --stdout is only supported with text output")
	}

	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	var cache *driver.Cache
	if !noCache {
		cache, err = driver.OpenCache("runefmt")
		if err != nil {
			// деградируем до прогона без кэша
			if !quiet {
				fmt.Fprintf(os.Stderr, "runefmt: cache unavailable: %v\n", err)
			}
			cache = nil
		}
	}

	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}
	timer := observ.NewTimer()

	showProgress, err := cmd.Flags().GetBool("progress")
	if err != nil {
		return err
	}
	showProgress = showProgress && !writeToStdout && outputFormat == "text" && isTerminal(os.Stdout)

	opts := driver.Options{
		Config:         cfg,
		Check:          check,
		Stdout:         writeToStdout,
		Jobs:           jobs,
		Cache:          cache,
		MaxDiagnostics: maxDiagnostics,
	}

	formatPhase := timer.Begin("format")
	var results []driver.Result
	if showProgress {
		results, err = formatWithProgress(cmd, args, opts)
	} else {
		results, err = driver.FormatPaths(cmd.Context(), args, opts)
	}
	timer.End(formatPhase, fmt.Sprintf("%d files", len(results)))
	if err != nil {
		return err
	}

	var hasErrors bool
	var hasChanges bool

	renderPhase := timer.Begin("render")
	switch outputFormat {
	case "text":
		if writeToStdout {
			renderFmtStdout(results, &hasErrors)
		} else {
			renderFmtText(results, check, quiet, &hasErrors, &hasChanges)
		}
	case "json":
		if err := renderFmtJSON(results, check, &hasErrors, &hasChanges); err != nil {
			return err
		}
	default:
		return fmt.Errorf("runefmt: unsupported output format %q", outputFormat)
	}
	timer.End(renderPhase, "")

	if showTimings {
		fmt.Fprint(os.Stderr, timer.Summary())
	}

	if hasErrors {
		return fmt.Errorf("runefmt: failed to format some files")
	}
	if !writeToStdout && check && hasChanges {
		return fmt.Errorf("runefmt: formatting changes required")
	}
	return nil
}

// formatWithProgress runs the formatter behind a live per-file progress view.
// Канал событий закрываем мы, после возврата FormatPaths.
func formatWithProgress(cmd *cobra.Command, args []string, opts driver.Options) ([]driver.Result, error) {
	files, err := driver.CollectSourceFiles(cmd.Context(), args)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, driver.ErrNoSourceFiles
	}

	// два события на файл (working + итог), чтобы драйвер не блокировался,
	// если прогресс-бар завершился раньше времени
	events := make(chan driver.Event, 2*len(files))
	opts.Events = events

	var results []driver.Result
	var runErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer close(events)
		results, runErr = driver.FormatPaths(cmd.Context(), args, opts)
	}()

	model := ui.NewProgressModel("runefmt", files, events)
	prog := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, _ = prog.Run()
	// добираем хвост событий: канал закрывается после FormatPaths
	for range events {
	}
	<-done
	return results, runErr
}

// resolveConfig loads the manifest: explicit --config wins, otherwise the
// search walks up from the first path argument. --max-width перекрывает
// значение из манифеста.
func resolveConfig(cmd *cobra.Command, args []string) (config.Config, error) {
	explicit, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}

	var cfg config.Config
	if explicit != "" {
		cfg, err = config.Load(explicit)
	} else {
		startDir := args[0]
		if info, statErr := os.Stat(startDir); statErr != nil || !info.IsDir() {
			startDir = filepath.Dir(startDir)
		}
		cfg, err = config.LoadForDir(startDir)
	}
	if err != nil {
		return config.Config{}, err
	}

	if cmd.Flags().Changed("max-width") {
		width, widthErr := cmd.Flags().GetUint("max-width")
		if widthErr != nil {
			return config.Config{}, widthErr
		}
		cfg.MaxWidth = width
		if validateErr := cfg.Validate(); validateErr != nil {
			return config.Config{}, validateErr
		}
	}
	return cfg, nil
}

// renderDiagnostics prints a file's collected diagnostics to stderr.
func renderDiagnostics(res driver.Result) {
	if res.Bag == nil || res.Bag.Len() == 0 {
		return
	}
	res.Bag.Sort()
	diagfmt.Pretty(os.Stderr, res.Bag, res.FileSet, diagfmt.PrettyOpts{
		Color:     !color.NoColor,
		Context:   true,
		PathMode:  diagfmt.PathModeRelative,
		ShowNotes: true,
	})
}

func renderFmtStdout(results []driver.Result, hasErrors *bool) {
	for _, res := range results {
		if res.Err != nil {
			*hasErrors = true
			fmt.Fprintf(os.Stderr, "runefmt: %s: %v\n", res.Path, res.Err)
			renderDiagnostics(res)
			continue
		}
		_, _ = os.Stdout.Write(res.Formatted)
	}
}

func renderFmtText(results []driver.Result, check, quiet bool, hasErrors, hasChanges *bool) {
	for _, res := range results {
		if res.Err != nil {
			*hasErrors = true
			fmt.Fprintf(os.Stderr, "runefmt: %s: %v\n", res.Path, res.Err)
			renderDiagnostics(res)
			continue
		}

		if check {
			if res.Changed {
				*hasChanges = true
				if !quiet {
					fmt.Fprintln(os.Stdout, res.Path)
				}
			}
			continue
		}

		if res.Changed && !quiet {
			fmt.Fprintf(os.Stdout, "reformatted %s\n", res.Path)
		}
	}
}

func renderFmtJSON(results []driver.Result, check bool, hasErrors, hasChanges *bool) error {
	type jsonResult struct {
		Path        string                    `json:"path"`
		Changed     bool                      `json:"changed"`
		Rewrites    int                       `json:"rewrites"`
		Skipped     int                       `json:"skipped"`
		Error       string                    `json:"error,omitempty"`
		CheckRun    bool                      `json:"check"`
		Diagnostics diagfmt.DiagnosticsOutput `json:"diagnostics"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{Path: res.Path, Changed: res.Changed, CheckRun: check}
		if res.Bag != nil {
			res.Bag.Sort()
			for _, d := range res.Bag.Items() {
				switch d.Code {
				case diag.FmtRewriteApplied:
					jr.Rewrites++
				case diag.FmtRewriteSkipped:
					jr.Skipped++
				}
			}
		}
		jr.Diagnostics = diagfmt.Collect(res.Bag, res.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeRelative,
			IncludeNotes:     true,
		})
		if res.Err != nil {
			jr.Error = res.Err.Error()
			*hasErrors = true
		}
		if res.Changed {
			*hasChanges = true
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
