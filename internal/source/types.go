package source

import "typo3update/internal/token"

type (
	// FileID uniquely identifies a token file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the tokens were added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	// FileModified marks a file whose tokens were replaced after loading.
	FileModified
)

// File captures metadata and tokens for a single dump.
type File struct {
	ID FileID
	// Path is the dump location on disk.
	Path string
	// Origin is the PHP file the dump was produced from, when known.
	Origin string
	Tokens token.Stream
	Hash   [32]byte
	Flags  FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
