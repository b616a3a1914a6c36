package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"runefmt/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "runefmt [flags] <path> [path...]",
	Short: "Format rune source files",
	Long:  `runefmt rewrites .rn files into the canonical style described by runefmt.toml`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

func main() {
	// версия для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(versionCmd)

	rootCmd.Flags().Bool("check", false, "exit non-zero if any file would change, without rewriting")
	rootCmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	rootCmd.Flags().String("format", "text", "output format (text|json)")
	rootCmd.Flags().String("config", "", "explicit runefmt.toml path (default: walk up from each argument)")
	rootCmd.Flags().Uint("max-width", 0, "override max_width from the manifest")
	rootCmd.Flags().Int("jobs", 0, "number of files formatted in parallel (0 = all CPUs)")
	rootCmd.Flags().Bool("no-cache", false, "skip the formatted-output disk cache")
	rootCmd.Flags().Bool("progress", false, "show a live per-file progress view")

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics per file")

	cobra.OnInitialize(applyColorMode)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func applyColorMode() {
	mode, err := rootCmd.PersistentFlags().GetString("color")
	if err != nil {
		return
	}
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		color.NoColor = !isTerminal(os.Stdout)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
