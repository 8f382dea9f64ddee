package source

import "fmt"

// Pos addresses one token of one file.
type Pos struct {
	File  FileID
	Token uint32
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:#%d", p.File, p.Token)
}

// Less orders positions by file, then token index.
func (p Pos) Less(other Pos) bool {
	if p.File != other.File {
		return p.File < other.File
	}
	return p.Token < other.Token
}
