package document

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a document encoding.
type Format int

const (
	FormatXML Format = iota + 1
	FormatYAML
	FormatJSON
	FormatCBOR
	FormatSnapshot
)

var ErrUnknownFormat = errors.New("document: unknown format")

func (f Format) String() string {
	switch f {
	case FormatXML:
		return "xml"
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	case FormatCBOR:
		return "cbor"
	case FormatSnapshot:
		return "snapshot"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		return FormatXML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json", ".jsonc":
		return FormatJSON, nil
	case ".cbor":
		return FormatCBOR, nil
	case ".snap", ".snapshot":
		return FormatSnapshot, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// Parse reads data in the given format.
func Parse(f Format, data []byte) (*Node, error) {
	switch f {
	case FormatXML:
		return ParseXML(data)
	case FormatYAML:
		return ParseYAML(data)
	case FormatJSON:
		return ParseJSON(data)
	case FormatCBOR:
		return ParseCBOR(data)
	case FormatSnapshot:
		return ParseSnapshot(data)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}
}

// Encode renders the tree in the given format. XML output is indented with
// two spaces and snapshots are zstd-compressed.
func Encode(f Format, n *Node) ([]byte, error) {
	switch f {
	case FormatXML:
		return EncodeXML(n, "  "), nil
	case FormatYAML:
		return EncodeYAML(n)
	case FormatJSON:
		return EncodeJSON(n)
	case FormatCBOR:
		return EncodeCBOR(n)
	case FormatSnapshot:
		return EncodeSnapshot(n, CompressionZstd)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}
}
