// Package translate renders config documents in the formats accepted by
// `sheaf show`.
package translate

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is an output format name.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ErrUnknownFormat indicates an unsupported format name.
var ErrUnknownFormat = errors.New("unknown format")

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatTOML, FormatYAML, FormatJSON}
}

// ParseFormat validates a format name, case-insensitively.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(name))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownFormat, "%q", name)
}

// TOMLToYAML converts TOML data to YAML data.
func TOMLToYAML(tomlData []byte) ([]byte, error) {
	var data any
	if err := toml.Unmarshal(tomlData, &data); err != nil {
		return nil, errors.Wrap(err, "unmarshaling toml")
	}
	out, err := yaml.Marshal(data)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling yaml")
	}
	return out, nil
}

// TOMLToJSON converts TOML data to indented JSON with a trailing newline.
func TOMLToJSON(tomlData []byte) ([]byte, error) {
	var data any
	if err := toml.Unmarshal(tomlData, &data); err != nil {
		return nil, errors.Wrap(err, "unmarshaling toml")
	}
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshaling json")
	}
	return append(out, '\n'), nil
}

// FromTOML converts a TOML document to f.
func FromTOML(tomlData []byte, f Format) ([]byte, error) {
	switch f {
	case FormatTOML:
		return tomlData, nil
	case FormatYAML:
		return TOMLToYAML(tomlData)
	case FormatJSON:
		return TOMLToJSON(tomlData)
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", f)
	}
}
