// FILE: lixenwraith/treeconfig/format.go
package treeconfig

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Format names a structured data format.
type Format string

const (
	// FormatAuto selects the format from the file extension
	FormatAuto Format = ""
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
	FormatHCL  Format = "hcl"
)

// Parser turns raw file content into a nested mapping.
type Parser interface {
	Parse(data []byte) (map[string]any, error)
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(data []byte) (map[string]any, error)

// Parse calls f(data).
func (f ParserFunc) Parse(data []byte) (map[string]any, error) {
	return f(data)
}

// formatRegistry maps formats to parsers and file extensions to formats
type formatRegistry struct {
	mu         sync.RWMutex
	parsers    map[Format]Parser
	extensions map[string]Format
}

var formats = &formatRegistry{
	parsers: map[Format]Parser{
		FormatYAML: ParserFunc(parseYAML),
		FormatTOML: ParserFunc(parseTOML),
		FormatJSON: ParserFunc(parseJSON),
		FormatHCL:  ParserFunc(parseHCL),
	},
	extensions: map[string]Format{
		".yaml": FormatYAML,
		".yml":  FormatYAML,
		".toml": FormatTOML,
		".tml":  FormatTOML,
		".json": FormatJSON,
		".hcl":  FormatHCL,
	},
}

// Extensions whose format is sniffed from content
var ambiguousExtensions = map[string]bool{
	".conf":   true,
	".config": true,
}

// Extensions of executable configuration, never evaluated
var scriptExtensions = map[string]bool{
	".rb":  true,
	".lua": true,
	".js":  true,
}

// RegisterFormat installs a parser for format and maps the given file
// extensions (with leading dot) to it. It replaces any existing registration.
func RegisterFormat(format Format, parser Parser, extensions ...string) {
	formats.mu.Lock()
	defer formats.mu.Unlock()

	formats.parsers[format] = parser
	for _, ext := range extensions {
		formats.extensions[strings.ToLower(ext)] = format
	}
}

func parserFor(format Format) (Parser, bool) {
	formats.mu.RLock()
	defer formats.mu.RUnlock()

	p, ok := formats.parsers[format]
	return p, ok
}

// FormatFromPath returns the format registered for the file extension of
// path, or FormatAuto if the extension is unknown.
func FormatFromPath(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))

	formats.mu.RLock()
	defer formats.mu.RUnlock()

	return formats.extensions[ext]
}

// resolveFormat picks the parser for a file: explicit format first, then the
// extension, then content sniffing for ambiguous extensions.
func resolveFormat(path string, explicit Format, data []byte) (Format, error) {
	if explicit != FormatAuto {
		if _, ok := parserFor(explicit); !ok {
			return "", errors.Wrapf(ErrUnsupportedFormat, "format %q", explicit)
		}
		return explicit, nil
	}

	if format := FormatFromPath(path); format != FormatAuto {
		return format, nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case scriptExtensions[ext]:
		return "", errors.WithHint(
			errors.Wrapf(ErrUnsupportedFormat, "script configuration file '%s'", path),
			"script files are not evaluated; build the tree with Configure or use a data format")
	case ambiguousExtensions[ext]:
		if format := detectFormatFromContent(data); format != FormatAuto {
			return format, nil
		}
	}
	return "", errors.Wrapf(ErrUnsupportedFormat, "unable to determine format for file '%s'", path)
}

// detectFormatFromContent attempts to detect format by parsing
func detectFormatFromContent(data []byte) Format {
	// Strict formats first; YAML accepts most JSON
	for _, format := range []Format{FormatJSON, FormatYAML, FormatTOML, FormatHCL} {
		p, ok := parserFor(format)
		if !ok {
			continue
		}
		if _, err := p.Parse(data); err == nil {
			return format
		}
	}
	return FormatAuto
}

func parseYAML(data []byte) (map[string]any, error) {
	var out map[string]any
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = make(map[string]any)
	}
	return out, nil
}

func parseTOML(data []byte) (map[string]any, error) {
	out := make(map[string]any)
	if err := toml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func parseJSON(data []byte) (map[string]any, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber() // Preserve number precision
	var out map[string]any
	if err := decoder.Decode(&out); err != nil {
		return nil, err
	}
	// A document is exactly one JSON value
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, errors.New("unexpected data after top-level JSON value")
		}
		return nil, errors.Wrap(err, "unexpected data after top-level JSON value")
	}
	if out == nil {
		out = make(map[string]any)
	}
	return out, nil
}

// encode serializes a nested map in the given format.
func encode(format Format, data map[string]any) ([]byte, error) {
	switch format {
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(data); err != nil {
			return nil, errors.Wrap(err, "failed to marshal config data to TOML")
		}
		return buf.Bytes(), nil
	case FormatYAML:
		out, err := yaml.Marshal(data)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal config data to YAML")
		}
		return out, nil
	case FormatJSON:
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal config data to JSON")
		}
		return append(out, '\n'), nil
	case FormatHCL:
		return encodeHCL(data)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "cannot encode format %q", format)
	}
}
