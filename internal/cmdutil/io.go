package cmdutil

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// OpenInput opens path for reading, or returns os.Stdin for "" or "-".
func OpenInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cmdutil: open input %s: %w", path, err)
	}
	return f, nil
}

// OpenOutput opens path for writing, or returns os.Stdout for "" or "-".
func OpenOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("cmdutil: open output %s: %w", path, err)
	}
	return f, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// Encode writes value to w in one of the engine-agnostic formats
// (json/yaml/cbor, selected via `--format`), or calls renderText for the
// engine-specific native formats (dot/text).
func Encode(w io.Writer, format string, value any, renderText func() string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(value)
	case "cbor":
		data, err := cbor.Marshal(value)
		if err != nil {
			return fmt.Errorf("cmdutil: cbor encode: %w", err)
		}
		_, err = w.Write(data)
		return err
	case "dot", "text":
		_, err := fmt.Fprintln(w, renderText())
		return err
	default:
		return fmt.Errorf("cmdutil: unknown output format %q", format)
	}
}
