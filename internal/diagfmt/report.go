package diagfmt

import (
	"fmt"
	"io"

	"typo3update/internal/diag"
	"typo3update/internal/source"
)

// ReportOpts bundles the options of every renderer.
type ReportOpts struct {
	Format Format
	Pretty PrettyOpts
	JSON   JSONOpts
	Sarif  SarifRunMeta
}

// Report renders items in the selected format.
func Report(w io.Writer, items []*diag.Diagnostic, fs *source.FileSet, opts ReportOpts) error {
	switch opts.Format {
	case FormatPretty, "":
		PrettyDiagnostics(w, items, fs, opts.Pretty)
		return nil
	case FormatJSON:
		return JSONDiagnostics(w, items, fs, opts.JSON)
	case FormatSarif:
		return Sarif(w, items, fs, opts.Sarif)
	case FormatShort:
		out := diag.FormatGoldenDiagnostics(items, fs, opts.Pretty.ShowNotes)
		if out == "" {
			return nil
		}
		_, err := io.WriteString(w, out+"\n")
		return err
	}
	return fmt.Errorf("unknown report format %q", opts.Format)
}
