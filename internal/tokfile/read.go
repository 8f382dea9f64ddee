package tokfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrUnknownFormat is returned when the encoding cannot be derived from the path.
var ErrUnknownFormat = errors.New("unknown token dump format")

// Read loads a dump from disk, choosing the decoder by file name.
func Read(path string) (*Dump, error) {
	format := DetectFormat(path)
	if format == FormatUnknown {
		return nil, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
	// #nosec G304 -- path is provided by the caller
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dump, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return dump, nil
}

// Decode reads a dump in the given format.
func Decode(r io.Reader, format Format) (*Dump, error) {
	switch format {
	case FormatJSON:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return decodeJSON(data)
	case FormatMsgpack:
		var doc document
		if err := msgpack.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode msgpack: %w", err)
		}
		return fromDocument(doc)
	default:
		return nil, ErrUnknownFormat
	}
}

func fromDocument(doc document) (*Dump, error) {
	stream, err := toStream(doc.Tokens)
	if err != nil {
		return nil, err
	}
	return &Dump{Path: doc.Path, Tokens: stream}, nil
}

func decodeJSON(data []byte) (*Dump, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("decode json: empty input")
	}
	if trimmed[0] == '[' {
		records, err := decodeTokenGetAll(trimmed)
		if err != nil {
			return nil, err
		}
		return fromDocument(document{Tokens: records})
	}
	var doc document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return fromDocument(doc)
}

// decodeTokenGetAll accepts the token_get_all shape: every element is either
// "c" or ["T_NAME", "content", line].
func decodeTokenGetAll(data []byte) ([]record, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	records := make([]record, 0, len(raw))
	for i, elem := range raw {
		elem = bytes.TrimSpace(elem)
		if len(elem) > 0 && elem[0] == '"' {
			var s string
			if err := json.Unmarshal(elem, &s); err != nil {
				return nil, fmt.Errorf("decode json: token %d: %w", i, err)
			}
			records = append(records, record{Content: s})
			continue
		}
		var tuple []json.RawMessage
		if err := json.Unmarshal(elem, &tuple); err != nil {
			return nil, fmt.Errorf("decode json: token %d: %w", i, err)
		}
		if len(tuple) < 2 {
			return nil, fmt.Errorf("decode json: token %d: expected [kind, content, line]", i)
		}
		var rec record
		if err := json.Unmarshal(tuple[0], &rec.Kind); err != nil {
			return nil, fmt.Errorf("decode json: token %d kind: %w", i, err)
		}
		if err := json.Unmarshal(tuple[1], &rec.Content); err != nil {
			return nil, fmt.Errorf("decode json: token %d content: %w", i, err)
		}
		if len(tuple) > 2 {
			if err := json.Unmarshal(tuple[2], &rec.Line); err != nil {
				return nil, fmt.Errorf("decode json: token %d line: %w", i, err)
			}
		}
		records = append(records, rec)
	}
	return records, nil
}
