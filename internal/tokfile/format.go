package tokfile

import (
	"fmt"
	"strings"
)

// Format identifies a dump encoding.
type Format uint8

const (
	FormatUnknown Format = iota
	FormatJSON
	FormatMsgpack
)

// JSONSuffix and MsgpackSuffix are the file name suffixes recognised as dumps.
const (
	JSONSuffix    = ".tokens.json"
	MsgpackSuffix = ".tokmp"
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatMsgpack:
		return "msgpack"
	default:
		return "unknown"
	}
}

// ParseFormat converts a user supplied name ("json", "msgpack") to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "msgpack", "mp", "tokmp":
		return FormatMsgpack, nil
	default:
		return FormatUnknown, fmt.Errorf("unsupported dump format %q (expected json|msgpack)", s)
	}
}

// DetectFormat picks the encoding from the file name.
func DetectFormat(path string) Format {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, MsgpackSuffix), strings.HasSuffix(lower, ".msgpack"):
		return FormatMsgpack
	case strings.HasSuffix(lower, ".json"):
		return FormatJSON
	default:
		return FormatUnknown
	}
}

// IsDump reports whether path looks like a token dump.
func IsDump(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, JSONSuffix) || strings.HasSuffix(lower, MsgpackSuffix)
}
