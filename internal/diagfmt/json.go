package diagfmt

import (
	"encoding/json"
	"io"

	"typo3update/internal/diag"
	"typo3update/internal/source"
)

// LocationJSON представляет местоположение токена для JSON
type LocationJSON struct {
	File   string `json:"file"`
	Token  uint32 `json:"token"`
	Line   uint32 `json:"line,omitempty"`
	Column uint32 `json:"column,omitempty"`
}

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// FixEditJSON представляет одно редактирование для JSON
type FixEditJSON struct {
	Location    LocationJSON `json:"location"`
	NewText     string       `json:"new_text"`
	OldText     string       `json:"old_text,omitempty"`
	BeforeLines []string     `json:"before_lines,omitempty"`
	AfterLines  []string     `json:"after_lines,omitempty"`
}

// FixJSON представляет предложение по исправлению для JSON
type FixJSON struct {
	ID            string        `json:"id,omitempty"`
	Title         string        `json:"title"`
	Kind          string        `json:"kind"`
	Applicability string        `json:"applicability"`
	IsPreferred   bool          `json:"is_preferred,omitempty"`
	BuildError    string        `json:"build_error,omitempty"`
	Edits         []FixEditJSON `json:"edits,omitempty"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Source   string       `json:"source,omitempty"` // <sniff>.<code>
	Message  string       `json:"message"`
	Data     []string     `json:"data,omitempty"`
	Fixable  bool         `json:"fixable"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
	Fixes    []FixJSON    `json:"fixes,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Summary     Summary          `json:"summary"`
}

func makeLocation(pos source.Pos, fs *source.FileSet, pathMode PathMode) LocationJSON {
	lc := resolve(fs, pos)
	return LocationJSON{
		File:   filePath(fs, pos.File, pathMode),
		Token:  pos.Token,
		Line:   lc.Line,
		Column: lc.Col,
	}
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
// Summary всегда считается по всем items, даже при обрезке через Max.
func BuildDiagnosticsOutput(items []*diag.Diagnostic, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	diagnostics := make([]DiagnosticJSON, 0, len(items))

	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}

	ctx := diag.FixBuildContext{FileSet: fs}
	for _, d := range items[:maxItems] {
		if d == nil {
			continue
		}
		diagJSON := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Data:     d.Data,
			Fixable:  d.Fixable(),
			Location: makeLocation(d.Primary, fs, opts.PathMode),
		}
		if d.Sniff != "" {
			diagJSON.Source = d.Code.Qualified(d.Sniff)
		}

		if opts.IncludeNotes && len(d.Notes) > 0 {
			diagJSON.Notes = make([]NoteJSON, len(d.Notes))
			for j, note := range d.Notes {
				diagJSON.Notes[j] = NoteJSON{
					Message:  note.Msg,
					Location: makeLocation(note.Pos, fs, opts.PathMode),
				}
			}
		}

		if opts.IncludeFixes && len(d.Fixes) > 0 {
			fixes := sortedFixes(d.Fixes)
			diagJSON.Fixes = make([]FixJSON, 0, len(fixes))
			for _, f := range fixes {
				resolved, err := f.Resolve(ctx)
				if err != nil {
					diagJSON.Fixes = append(diagJSON.Fixes, FixJSON{
						Title:         f.Title,
						Kind:          f.Kind.String(),
						Applicability: f.Applicability.String(),
						BuildError:    err.Error(),
					})
					continue
				}
				fixJSON := FixJSON{
					ID:            resolved.ID,
					Title:         resolved.Title,
					Kind:          resolved.Kind.String(),
					Applicability: resolved.Applicability.String(),
					IsPreferred:   resolved.IsPreferred,
					Edits:         make([]FixEditJSON, len(resolved.Edits)),
				}
				for k, edit := range resolved.Edits {
					editJSON := FixEditJSON{
						Location: makeLocation(edit.Pos, fs, opts.PathMode),
						NewText:  edit.NewText,
						OldText:  edit.OldText,
					}
					if opts.IncludePreviews {
						if preview, err := buildFixEditPreview(fs, edit); err == nil {
							editJSON.BeforeLines = preview.before
							editJSON.AfterLines = preview.after
						}
					}
					fixJSON.Edits[k] = editJSON
				}
				diagJSON.Fixes = append(diagJSON.Fixes, fixJSON)
			}
		}

		diagnostics = append(diagnostics, diagJSON)
	}

	return DiagnosticsOutput{
		Diagnostics: diagnostics,
		Count:       len(diagnostics),
		Summary:     Summarize(items),
	}
}

// JSON форматирует диагностики bag в JSON.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	var items []*diag.Diagnostic
	if bag != nil {
		items = bag.Items()
	}
	return JSONDiagnostics(w, items, fs, opts)
}

// JSONDiagnostics форматирует произвольный список диагностик в JSON.
func JSONDiagnostics(w io.Writer, items []*diag.Diagnostic, fs *source.FileSet, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(BuildDiagnosticsOutput(items, fs, opts))
}
