package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"ctor-binder/document"
)

func runConvert(e *env, args []string) error {
	var from, to, compression string

	fs := subcommand(e, "convert", "[--from <format>] --to <format> <file|->")
	fs.StringVar(&from, "from", "", "input format: xml, yaml, json, cbor or snapshot (default: from the file extension)")
	fs.StringVar(&to, "to", "", "output format: xml, yaml, json, cbor or snapshot")
	fs.StringVar(&compression, "compression", "zstd", "snapshot compression: none, lz4 or zstd")

	if ok, err := parse(fs, args); !ok {
		return err
	}

	if fs.NArg() != 1 {
		return errors.New("convert: expected one input file, or - for stdin")
	}
	input := fs.Arg(0)

	inFormat, err := pickFormat(from, input)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	outFormat, err := pickFormat(to, "")
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	data, err := readInput(input)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	tree, err := document.Parse(inFormat, data)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	e.logger.Debug("document parsed", "format", inFormat.String(), "root", tree.Name)

	out, err := encode(outFormat, compression, tree)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	if _, err := e.stdout.Write(out); err != nil {
		return err
	}

	if !isBinary(outFormat) && len(out) > 0 && out[len(out)-1] != '\n' {
		_, err = io.WriteString(e.stdout, "\n")
	}

	return err
}

func encode(f document.Format, compression string, tree *document.Node) ([]byte, error) {
	if f != document.FormatSnapshot {
		return document.Encode(f, tree)
	}

	c, err := document.ParseCompression(compression)
	if err != nil {
		return nil, err
	}

	return document.EncodeSnapshot(tree, c)
}

func isBinary(f document.Format) bool {
	return f == document.FormatCBOR || f == document.FormatSnapshot
}

// pickFormat reads an explicit format name, falling back to the extension
// of path.
func pickFormat(name, path string) (document.Format, error) {
	if name == "" {
		if path == "" || path == "-" {
			return 0, errors.New("format is required")
		}
		return document.FormatFromPath(path)
	}

	return document.FormatFromPath("." + strings.ToLower(name))
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}

	return os.ReadFile(path)
}
