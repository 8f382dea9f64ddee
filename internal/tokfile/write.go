package tokfile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"typo3update/internal/token"
)

// Encode writes dump in the given format.
func Encode(w io.Writer, dump *Dump, format Format) error {
	if dump == nil {
		return fmt.Errorf("encode: nil dump")
	}
	doc := fromStream(dump.Path, dump.Tokens)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(doc)
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(&doc)
	default:
		return ErrUnknownFormat
	}
}

// Write replaces the dump at path atomically, keeping the file mode.
func Write(path string, dump *Dump) error {
	format := DetectFormat(path)
	if format == FormatUnknown {
		return fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}

	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, ".tokfile-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if err := Encode(f, dump, format); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := f.Chmod(mode); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Render reproduces the PHP source from a token stream.
func Render(s token.Stream) string {
	return s.Source()
}
