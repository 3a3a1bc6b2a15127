package board

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/quizboard/internal/model"
)

// Format is a board file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat maps a user supplied name to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unknown board format %q (want json, yaml or toml)", name)
	}
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// Parse decodes and validates a board. The filename extension selects the
// format; an unknown extension tries JSON, then TOML, then YAML.
func Parse(content []byte, filename string) (Result, error) {
	if f, ok := formatFromName(filename); ok {
		raw, err := decode(content, f)
		if err != nil {
			return Result{}, err
		}
		return Validate(raw)
	}

	var firstErr error
	for _, f := range []Format{FormatJSON, FormatTOML, FormatYAML} {
		raw, err := decode(content, f)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		return Validate(raw)
	}
	return Result{}, fmt.Errorf("board is not JSON, TOML or YAML: %w", firstErr)
}

// LoadFile reads and parses a board file.
func LoadFile(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read board: %w", err)
	}
	return Parse(data, path)
}

func decode(content []byte, f Format) (map[string]any, error) {
	var raw map[string]any
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(content))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(content, &raw); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
	case FormatTOML:
		if _, err := toml.Decode(string(content), &raw); err != nil {
			return nil, fmt.Errorf("invalid TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown board format %q", f)
	}
	if raw == nil {
		return nil, fmt.Errorf("board %s document is empty", f)
	}
	return raw, nil
}

// Export encodes a configuration in the given format.
func Export(cfg model.Configuration, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode JSON: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, fmt.Errorf("encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode YAML: %w", err)
		}
		return buf.Bytes(), nil
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, fmt.Errorf("encode TOML: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown board format %q", f)
	}
}

// Slug turns a title into a file name stem.
func Slug(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	if b.Len() == 0 {
		return "board"
	}
	return b.String()
}

func formatFromName(name string) (Format, bool) {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".json"):
		return FormatJSON, true
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return FormatYAML, true
	case strings.HasSuffix(lower, ".toml"):
		return FormatTOML, true
	default:
		return "", false
	}
}
