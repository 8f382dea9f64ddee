package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"typo3update/internal/runner"
	"typo3update/internal/source"
	"typo3update/internal/ui"
)

type processOutcome struct {
	fs      *source.FileSet
	results []*runner.Result
	err     error
}

// runWithUI processes files while a bubbletea program renders per-file progress.
func runWithUI(ctx context.Context, title string, factory runner.Factory, opts runner.Options, baseDir string, files []string) (*source.FileSet, []*runner.Result, error) {
	events := make(chan runner.Event, 256)
	outcomeCh := make(chan processOutcome, 1)

	go func() {
		opts.Progress = runner.ChannelSink{Ch: events}
		fs, results, err := runner.New(factory, opts).ProcessFiles(ctx, baseDir, files)
		outcomeCh <- processOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// если UI упал раньше времени, раннер не должен висеть на канале
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
