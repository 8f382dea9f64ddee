package main

// todo: интерактивный режим
// флаг --interactive показывает превью и спрашивает подтверждение на каждую замену

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"typo3update/internal/fix"
	"typo3update/internal/runner"
	"typo3update/internal/source"
	"typo3update/internal/tokfile"
	"typo3update/internal/trace"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <dump|directory>",
	Short: "Rewrite legacy class names in token dumps",
	Long: `Run the sniffs, select fixes according to --mode and write the updated
token streams back into their dump files.`,
	Args: cobra.ExactArgs(1),
	RunE: runFix,
}

func init() {
	fixCmd.Flags().String("mode", "once", "which fixes to apply (once|all|id)")
	fixCmd.Flags().String("id", "", "apply the fix with this identifier (implies --mode=id)")
	fixCmd.Flags().Bool("dry-run", false, "report what would change without writing files")
	fixCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
}

type fixOptions struct {
	settings
	apply  fix.ApplyOptions
	dryRun bool
}

func runFix(cmd *cobra.Command, args []string) error {
	target := args[0]

	modeStr, err := cmd.Flags().GetString("mode")
	if err != nil {
		return err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}

	mode, err := fix.ParseMode(modeStr)
	if err != nil {
		return err
	}
	if targetID != "" {
		if cmd.Flags().Changed("mode") && mode != fix.ApplyModeID {
			return fmt.Errorf("--id cannot be combined with --mode=%s", modeStr)
		}
		mode = fix.ApplyModeID
	}
	if mode == fix.ApplyModeID && targetID == "" {
		return fmt.Errorf("--mode=id requires --id")
	}

	s, err := resolveSettings(cmd, target)
	if err != nil {
		return err
	}
	opts := fixOptions{
		settings: s,
		apply:    fix.ApplyOptions{Mode: mode, TargetID: targetID},
		dryRun:   dryRun,
	}
	return executeFix(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), target, opts)
}

func executeFix(ctx context.Context, out, errOut io.Writer, target string, opts fixOptions) error {
	baseDir, files, err := collectTargets(target)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	// прогресс не нужен: вывод fix короткий
	opts.ui = uiModeOff
	fs, results, err := process(ctx, "fixing "+target, opts.settings, baseDir, files)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	if reportLoadErrors(errOut, results) > 0 {
		return errProblemsFound
	}

	_, span := trace.StartSpan(ctx, trace.ScopeCommand, "fix")
	done := opts.timer.Start("fix")
	res, applyErr := fix.Apply(fs, runner.Diagnostics(results), opts.apply)
	done(fmt.Sprintf("%d applied", len(res.Applied)))
	span.End(opts.apply.TargetID)

	if applyErr == nil && !opts.dryRun {
		done := opts.timer.Start("write")
		err := writeChanges(fs, res.FileChanges)
		done(fmt.Sprintf("%d file(s)", len(res.FileChanges)))
		if err != nil {
			return fmt.Errorf("fix: %w", err)
		}
	}
	defer printTimings(errOut, opts.settings)
	return handleApplyResult(out, res, applyErr, opts.dryRun)
}

// writeChanges stores modified streams back into their dump files.
func writeChanges(fs *source.FileSet, changes []fix.FileChange) error {
	for _, change := range changes {
		file := fs.Get(change.File)
		if file == nil || file.Flags&source.FileModified == 0 || file.Flags&source.FileVirtual != 0 {
			continue
		}
		if err := tokfile.Write(file.Path, &tokfile.Dump{Path: file.Origin, Tokens: file.Tokens}); err != nil {
			return err
		}
	}
	return nil
}

func handleApplyResult(out io.Writer, res *fix.ApplyResult, applyErr error, dryRun bool) error {
	if res == nil {
		return applyErr
	}

	if len(res.Applied) > 0 {
		verb := "Applied"
		if dryRun {
			verb = "Would apply"
		}
		fmt.Fprintf(out, "%s %d fix(es):\n", verb, len(res.Applied))
		for _, item := range res.Applied {
			location := item.PrimaryPath
			if location == "" {
				location = "(unknown location)"
			}
			fmt.Fprintf(out, "  %s [%s] at %s (%d edits, %s)\n",
				item.Title, item.ID, location, item.EditCount, item.Applicability)
		}
	}

	if len(res.FileChanges) > 0 {
		header := "Updated files:"
		if dryRun {
			header = "Files that would change:"
		}
		fmt.Fprintln(out, header)
		for _, change := range res.FileChanges {
			fmt.Fprintf(out, "  %s (%d edits)\n", change.Path, change.EditCount)
		}
	}

	if len(res.Skipped) > 0 {
		fmt.Fprintln(out, "Skipped fixes:")
		for _, skip := range res.Skipped {
			id := skip.ID
			if id == "" {
				id = "(unnamed)"
			}
			if skip.Title != "" {
				fmt.Fprintf(out, "  %s [%s]: %s\n", skip.Title, id, skip.Reason)
			} else {
				fmt.Fprintf(out, "  [%s]: %s\n", id, skip.Reason)
			}
		}
	}

	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) && len(res.Applied) == 0 {
			fmt.Fprintln(out, "No applicable fixes found.")
			return nil
		}
		return applyErr
	}
	return nil
}
