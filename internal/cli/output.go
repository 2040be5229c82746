package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// writeResult encodes v in the selected format to --output or stdout.
func (a *app) writeResult(v any) error {
	if a.flags.output == "" {
		return encode(a.stdout, a.flags.format, v)
	}

	f, err := os.Create(a.flags.output)
	if err != nil {
		return err
	}
	if err := encode(f, a.flags.format, v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
