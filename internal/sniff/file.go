package sniff

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"typo3update/internal/diag"
	"typo3update/internal/source"
	"typo3update/internal/token"
)

// File is the host handle a sniff receives: the tokens of one file and the
// sink for diagnostics.
type File struct {
	ID       source.FileID
	Path     string
	Tokens   token.Stream
	reporter diag.Reporter
	sniff    string
}

// NewFile binds a token stream to a reporter.
func NewFile(id source.FileID, path string, tokens token.Stream, reporter diag.Reporter) *File {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &File{ID: id, Path: path, Tokens: tokens, reporter: reporter}
}

// For returns a view of the file whose diagnostics are attributed to sniff.
func (f *File) For(sniff string) *File {
	view := *f
	view.sniff = sniff
	return &view
}

// Pos converts a token index into a source position.
func (f *File) Pos(pos int) source.Pos {
	idx, err := safecast.Conv[uint32](pos)
	if err != nil {
		idx = 0
	}
	return source.Pos{File: f.ID, Token: idx}
}

// AddWarning reports a non-fixable warning at pos. msg may contain %s
// placeholders filled from data, in order.
func (f *File) AddWarning(pos int, msg string, code diag.Code, data ...string) {
	f.report(diag.SevWarning, pos, msg, code, data, nil)
}

// AddError reports a non-fixable error at pos.
func (f *File) AddError(pos int, msg string, code diag.Code, data ...string) {
	f.report(diag.SevError, pos, msg, code, data, nil)
}

// AddFixableError reports an error at pos that carries fix. Whether the fix
// is ever applied is up to the host.
func (f *File) AddFixableError(pos int, msg string, code diag.Code, fix diag.Fix, data ...string) {
	f.report(diag.SevError, pos, msg, code, data, &fix)
}

func (f *File) report(sev diag.Severity, pos int, msg string, code diag.Code, data []string, fix *diag.Fix) {
	b := diag.NewReportBuilder(f.reporter, sev, code, f.Pos(pos), formatMessage(msg, data)).
		WithSniff(f.sniff).
		WithData(data...)
	if fix != nil {
		b.WithFixSuggestion(*fix)
	}
	b.Emit()
}

func formatMessage(msg string, data []string) string {
	if len(data) == 0 || !strings.Contains(msg, "%") {
		return msg
	}
	args := make([]any, len(data))
	for i, d := range data {
		args[i] = d
	}
	return fmt.Sprintf(msg, args...)
}
