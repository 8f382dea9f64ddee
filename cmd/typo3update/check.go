package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"typo3update/internal/diag"
	"typo3update/internal/diagfmt"
	"typo3update/internal/runner"
	"typo3update/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <dump|directory>",
	Short: "Report legacy ObjectManager usage in token dumps",
	Long: `Run the ObjectManager sniff over a token dump (*.tokens.json, *.tokmp) or
every dump inside a directory. Exits with status 1 when errors are found.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|sarif|short)")
	checkCmd.Flags().String("paths", "auto", "how to print file paths (auto|absolute|relative|basename)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	checkCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	checkCmd.Flags().Bool("preview", false, "show the replaced token for each suggestion")
	checkCmd.Flags().Bool("qualified", false, "print sniff-qualified codes")
}

type checkOptions struct {
	settings
	noWarnings       bool
	warningsAsErrors bool
	withNotes        bool
	suggest          bool
	preview          bool
	qualified        bool
	args             []string
}

func runCheck(cmd *cobra.Command, args []string) error {
	target := args[0]
	s, err := resolveSettings(cmd, target)
	if err != nil {
		return err
	}
	opts := checkOptions{settings: s, args: os.Args[1:]}
	flags := cmd.Flags()
	opts.noWarnings, _ = flags.GetBool("no-warnings")
	opts.warningsAsErrors, _ = flags.GetBool("warnings-as-errors")
	opts.withNotes, _ = flags.GetBool("with-notes")
	opts.suggest, _ = flags.GetBool("suggest")
	opts.preview, _ = flags.GetBool("preview")
	opts.qualified, _ = flags.GetBool("qualified")
	if opts.noWarnings && opts.warningsAsErrors {
		return fmt.Errorf("--no-warnings and --warnings-as-errors are mutually exclusive")
	}
	return executeCheck(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), target, opts)
}

// executeCheck runs the sniffs over target and writes the report to out.
// It returns errProblemsFound when the report contains errors.
func executeCheck(ctx context.Context, out, errOut io.Writer, target string, opts checkOptions) error {
	baseDir, files, err := collectTargets(target)
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}
	fs, results, err := process(ctx, "checking "+target, opts.settings, baseDir, files)
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}
	loadFailures := reportLoadErrors(errOut, results)

	items := runner.Diagnostics(results)
	items = applySeverityPolicy(items, opts.noWarnings, opts.warningsAsErrors)

	reportOpts := diagfmt.ReportOpts{
		Format: opts.format,
		Pretty: diagfmt.PrettyOpts{
			Color:       opts.color,
			PathMode:    opts.paths,
			ShowNotes:   opts.withNotes,
			ShowFixes:   opts.suggest,
			ShowPreview: opts.preview,
			ShowSummary: !opts.quiet,
			Qualified:   opts.qualified,
		},
		JSON: diagfmt.JSONOpts{
			PathMode:        opts.paths,
			IncludeNotes:    opts.withNotes,
			IncludeFixes:    opts.suggest,
			IncludePreviews: opts.preview,
		},
		Sarif: diagfmt.SarifRunMeta{
			ToolName:       "typo3update",
			ToolVersion:    version.Get().Version,
			InvocationArgs: opts.args,
		},
	}
	done := opts.timer.Start("report")
	err = diagfmt.Report(out, items, fs, reportOpts)
	done(string(opts.format))
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}
	printTimings(errOut, opts.settings)

	if loadFailures > 0 || diagfmt.Summarize(items).Errors > 0 {
		return errProblemsFound
	}
	return nil
}

// applySeverityPolicy drops or promotes warnings. The input is not modified.
func applySeverityPolicy(items []*diag.Diagnostic, noWarnings, warningsAsErrors bool) []*diag.Diagnostic {
	if !noWarnings && !warningsAsErrors {
		return items
	}
	out := make([]*diag.Diagnostic, 0, len(items))
	for _, d := range items {
		if d.Severity != diag.SevWarning {
			out = append(out, d)
			continue
		}
		if noWarnings {
			continue
		}
		promoted := *d
		promoted.Severity = diag.SevError
		out = append(out, &promoted)
	}
	return out
}
