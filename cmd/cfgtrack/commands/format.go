package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"go.trai.ch/cfgtrack/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatText = "text"
)

// ErrUnknownFormat is returned for an unsupported --format value.
var ErrUnknownFormat = zerr.New("unknown output format, expected 'json', 'yaml' or 'text'")

type resultView struct {
	FilePath string `json:"filePath"`
	Contents any    `json:"contents"`
}

type resolveView struct {
	Found  bool                  `json:"found"`
	Result *resultView           `json:"result,omitempty"`
	Record domain.RecordSnapshot `json:"record"`
}

func validateFormat(format string) error {
	switch format {
	case formatJSON, formatYAML, formatText:
		return nil
	default:
		return zerr.With(zerr.Wrap(ErrUnknownFormat, "invalid flag"), "format", format)
	}
}

// writeDocument renders v in the requested format. YAML output goes through the
// JSON encoding so both formats share field names.
func writeDocument(w io.Writer, format string, v any) error {
	if format == formatText {
		return writeText(w, v)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to encode output")
	}

	if format == formatJSON {
		_, err := w.Write(append(data, '\n'))
		return err
	}

	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return zerr.Wrap(err, "failed to encode output")
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return zerr.Wrap(err, "failed to encode output")
	}
	return enc.Close()
}

func writeText(w io.Writer, v any) error {
	t := newTextWriter(w)
	switch view := v.(type) {
	case resolveView:
		t.resolve(view)
	case *domain.RecordSnapshot:
		t.record(*view)
	default:
		return zerr.With(zerr.New("no text rendering for value"), "type", fmt.Sprintf("%T", v))
	}
	return t.flush(w)
}
