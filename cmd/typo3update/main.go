package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"typo3update/internal/version"
)

// errProblemsFound makes the process exit with status 1 without printing
// anything beyond the report itself.
var errProblemsFound = errors.New("problems found")

var rootCmd = &cobra.Command{
	Use:   "typo3update",
	Short: "Find and fix legacy TYPO3 ObjectManager calls in PHP token dumps",
	Long: `typo3update runs the ObjectManager sniff over token dumps produced by PHP's
tokenizer: it warns about ObjectManager->create() and rewrites legacy class
names passed to get()/create() to their namespaced equivalents.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupCommand,
}

// cleanupCommand is set by setupCommand and run after Execute returns.
var cleanupCommand = func() {}

func setupCommand(cmd *cobra.Command, _ []string) error {
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	stopTracing, err := setupTracing(cmd)
	if err != nil {
		stopProfiling()
		return err
	}
	cleanupCommand = func() {
		stopTracing()
		stopProfiling()
	}
	return nil
}

func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Get().Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	flags := rootCmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Int("max-diagnostics", 0, "maximum number of diagnostics per file (0 = config or 500)")
	flags.String("config", "", "path to typo3update.toml (default: discovered from the target)")
	flags.String("ui", "auto", "progress UI for directories (auto|on|off)")
	flags.String("trace", "", "trace output file (\"-\" for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	flags.Int("trace-ring-size", 4096, "ring buffer capacity for --trace-mode=ring")
	flags.Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 = off)")
	flags.Bool("timings", false, "print phase timings to stderr")
	flags.String("cpu-profile", "", "write a CPU profile to this file")
	flags.String("mem-profile", "", "write a heap profile to this file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to this file")

	err := rootCmd.Execute()
	cleanupCommand()
	if err != nil {
		if !errors.Is(err, errProblemsFound) {
			fmt.Fprintf(os.Stderr, "typo3update: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
