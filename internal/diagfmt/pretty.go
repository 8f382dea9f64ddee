package diagfmt

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"

	"typo3update/internal/diag"
	"typo3update/internal/source"
)

type palette struct {
	err, warn, info, code, path, dim, add, del func(a ...any) string
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		if !enabled {
			return fmt.Sprint
		}
		c := color.New(attrs...)
		c.EnableColor()
		return c.SprintFunc()
	}
	return palette{
		err:  mk(color.FgRed, color.Bold),
		warn: mk(color.FgYellow, color.Bold),
		info: mk(color.FgCyan),
		code: mk(color.FgMagenta),
		path: mk(color.Bold),
		dim:  mk(color.Faint),
		add:  mk(color.FgGreen),
		del:  mk(color.FgRed),
	}
}

func (p palette) severity(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return p.err(sev.String())
	case diag.SevWarning:
		return p.warn(sev.String())
	default:
		return p.info(sev.String())
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Ожидается bag.Sort() заранее.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	PrettyDiagnostics(w, bag.Items(), fs, opts)
	if opts.ShowSummary && bag.Dropped() > 0 {
		fmt.Fprintf(w, "%d more diagnostics dropped (%s)\n", bag.Dropped(), diag.InternalLimit.Title())
	}
}

// PrettyDiagnostics prints, for each diagnostic:
//
//	<path>:<line>:<col>: <SEV> <code>: <message> [fixable]
//
// followed by notes and fixes when enabled.
func PrettyDiagnostics(w io.Writer, items []*diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	ctx := diag.FixBuildContext{FileSet: fs}

	for _, d := range items {
		if d == nil {
			continue
		}
		code := d.Code.ID()
		if opts.Qualified {
			code = d.Code.Qualified(d.Sniff)
		}
		fmt.Fprintf(w, "%s: %s %s: %s", p.path(location(fs, d.Primary, opts.PathMode)), p.severity(d.Severity), p.code(code), d.Message)
		if d.Fixable() {
			fmt.Fprint(w, p.dim(" [fixable]"))
		}
		fmt.Fprintln(w)

		if opts.ShowNotes {
			for _, note := range d.Notes {
				fmt.Fprintf(w, "  note: %s: %s\n", location(fs, note.Pos, opts.PathMode), note.Msg)
			}
		}

		if opts.ShowFixes {
			for i, f := range sortedFixes(d.Fixes) {
				resolved, err := f.Resolve(ctx)
				if err != nil {
					fmt.Fprintf(w, "  fix #%d: %s (unavailable: %v)\n", i+1, f.Title, err)
					continue
				}
				fmt.Fprintf(w, "  fix #%d: %s [%s]", i+1, resolved.Title, resolved.Applicability)
				if resolved.ID != "" {
					fmt.Fprintf(w, " id=%s", resolved.ID)
				}
				fmt.Fprintln(w)
				for _, edit := range resolved.Edits {
					fmt.Fprintf(w, "    %s: apply=%q", location(fs, edit.Pos, opts.PathMode), edit.NewText)
					if edit.OldText != "" {
						fmt.Fprintf(w, " expect=%q", edit.OldText)
					}
					fmt.Fprintln(w)
					if !opts.ShowPreview {
						continue
					}
					preview, err := buildFixEditPreview(fs, edit)
					if err != nil {
						continue
					}
					fmt.Fprintln(w, "    preview:")
					for _, line := range preview.before {
						fmt.Fprintf(w, "      %s\n", p.del("- "+line))
					}
					for _, line := range preview.after {
						fmt.Fprintf(w, "      %s\n", p.add("+ "+line))
					}
				}
			}
		}
	}

	if opts.ShowSummary {
		fmt.Fprintln(w, summaryLine(Summarize(items)))
	}
}

func location(fs *source.FileSet, pos source.Pos, mode PathMode) string {
	lc := resolve(fs, pos)
	return fmt.Sprintf("%s:%d:%d", filePath(fs, pos.File, mode), lc.Line, lc.Col)
}

func sortedFixes(fixes []diag.Fix) []diag.Fix {
	out := append([]diag.Fix(nil), fixes...)
	sort.SliceStable(out, func(i, j int) bool {
		fi, fj := out[i], out[j]
		if fi.IsPreferred != fj.IsPreferred {
			return fi.IsPreferred && !fj.IsPreferred
		}
		if fi.Applicability != fj.Applicability {
			return fi.Applicability < fj.Applicability
		}
		return fi.Title < fj.Title
	})
	return out
}

// Summary counts diagnostics by severity.
type Summary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
	Fixable  int `json:"fixable"`
}

// Summarize counts items.
func Summarize(items []*diag.Diagnostic) Summary {
	var s Summary
	for _, d := range items {
		if d == nil {
			continue
		}
		switch d.Severity {
		case diag.SevError:
			s.Errors++
		case diag.SevWarning:
			s.Warnings++
		default:
			s.Infos++
		}
		if d.Fixable() {
			s.Fixable++
		}
	}
	return s
}

func summaryLine(s Summary) string {
	if s.Errors == 0 && s.Warnings == 0 && s.Infos == 0 {
		return "no problems found"
	}
	return fmt.Sprintf("%s, %s (%d fixable)", plural(s.Errors, "error"), plural(s.Warnings, "warning"), s.Fixable)
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
