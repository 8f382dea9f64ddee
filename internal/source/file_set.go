package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"

	"typo3update/internal/token"
	"typo3update/internal/tokfile"
)

// FileSet manages a collection of token files.
type FileSet struct {
	files   []File
	index   map[string]FileID // path -> id
	baseDir string
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0),
		index: make(map[string]FileID),
	}
}

// NewFileSetWithBase creates a FileSet that formats relative paths against baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	fs := NewFileSet()
	fs.baseDir = baseDir
	return fs
}

// SetBaseDir sets the directory relative paths are computed against.
func (fileSet *FileSet) SetBaseDir(dir string) {
	fileSet.baseDir = dir
}

// BaseDir returns the base directory, defaulting to the working directory.
func (fileSet *FileSet) BaseDir() string {
	if fileSet.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return fileSet.baseDir
}

// Add stores a token stream and returns a new FileID.
// It always creates a new FileID even if a file with the same path already exists.
func (fileSet *FileSet) Add(path, origin string, tokens token.Stream, flags FileFlags) FileID {
	normalizedPath := normalizePath(path)

	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	fileSet.files = append(fileSet.files, File{
		ID:     id,
		Path:   normalizedPath,
		Origin: origin,
		Tokens: tokens,
		Hash:   sha256.Sum256([]byte(tokens.Source())),
		Flags:  flags,
	})
	fileSet.index[normalizedPath] = id
	return id
}

// Load reads a token dump from disk and calls Add.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	dump, err := tokfile.Read(path)
	if err != nil {
		return 0, err
	}
	return fileSet.Add(path, dump.Path, dump.Tokens, 0), nil
}

// AddVirtual adds an in-memory stream with the FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name string, tokens token.Stream) FileID {
	return fileSet.Add(name, "", tokens, FileVirtual)
}

// Len returns the number of files.
func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}

// Get returns the file for the given ID, or nil when it is unknown.
func (fileSet *FileSet) Get(id FileID) *File {
	if int(id) >= len(fileSet.files) {
		return nil
	}
	return &fileSet.files[id]
}

// GetByPath returns the latest file loaded from path.
func (fileSet *FileSet) GetByPath(path string) (*File, bool) {
	if id, ok := fileSet.index[normalizePath(path)]; ok {
		return &fileSet.files[id], true
	}
	return nil, false
}

// Replace swaps the token stream of a file and marks it modified.
func (fileSet *FileSet) Replace(id FileID, tokens token.Stream) {
	f := fileSet.Get(id)
	if f == nil {
		return
	}
	f.Tokens = tokens
	f.Hash = sha256.Sum256([]byte(tokens.Source()))
	f.Flags |= FileModified
}

// Resolve converts a token position into a line/column pair.
// Unknown files or tokens resolve to the zero LineCol.
func (fileSet *FileSet) Resolve(pos Pos) LineCol {
	f := fileSet.Get(pos.File)
	if f == nil || !f.Tokens.Valid(int(pos.Token)) {
		return LineCol{}
	}
	tok := f.Tokens[pos.Token]
	line, err := safecast.Conv[uint32](tok.Line)
	if err != nil {
		return LineCol{}
	}
	col, err := safecast.Conv[uint32](tok.Column)
	if err != nil {
		return LineCol{}
	}
	return LineCol{Line: line, Col: col}
}

// FormatPath formats the file path according to mode:
// "absolute", "relative", "basename" or "auto".
// When the dump names its PHP origin, that path is used instead of the dump's.
func (f *File) FormatPath(mode, baseDir string) string {
	p := f.Path
	if f.Origin != "" {
		p = f.Origin
	}
	switch mode {
	case "absolute":
		if abs, err := AbsolutePath(p); err == nil {
			return abs
		}
		return p

	case "relative":
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		if rel, err := RelativePath(p, baseDir); err == nil {
			return rel
		}
		return p

	case "basename":
		return BaseName(p)

	case "auto":
		if len(p) < 40 || !filepath.IsAbs(p) {
			return p
		}
		return BaseName(p)

	default:
		return p
	}
}
