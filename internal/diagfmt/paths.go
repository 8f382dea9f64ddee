package diagfmt

import (
	"typo3update/internal/source"
)

func filePath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	if fs == nil {
		return ""
	}
	f := fs.Get(id)
	if f == nil {
		return ""
	}
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}

func resolve(fs *source.FileSet, pos source.Pos) source.LineCol {
	if fs == nil {
		return source.LineCol{}
	}
	return fs.Resolve(pos)
}
