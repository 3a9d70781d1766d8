// Package loader decodes a document from external bytes into the parsed
// value tree the engine operates on: map[string]any objects, []any arrays,
// and string/json.Number/bool/nil scalars. JSON is the primary format and
// is decoded with number fidelity; YAML and TOML inputs are auto-detected
// and normalized to the same value shapes.
package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/go-logr/logr"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a file and parses it into a single document root.
func LoadFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadBytes(data)
}

// LoadFileWithLogger is LoadFile with format-dispatch logging.
func LoadFileWithLogger(path string, lgr logr.Logger) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadBytesWithLogger(data, lgr)
}

// LoadBytes parses input bytes into a single document root.
func LoadBytes(data []byte) (any, error) {
	return LoadBytesWithLogger(data, logr.Discard())
}

// LoadBytesWithLogger parses input bytes into a single document root,
// recording which decoder handled the input.
func LoadBytesWithLogger(data []byte, lgr logr.Logger) (any, error) {
	input := strings.TrimSpace(string(data))
	if input == "" {
		return nil, fmt.Errorf("empty input")
	}

	// JSON first: it is the primary format, and only the JSON decoder keeps
	// exact number text via json.Number.
	if strings.HasPrefix(input, "{") || strings.HasPrefix(input, "[") {
		lgr.V(1).Info("decoding document", "format", "json")
		return loadJSON(input)
	}

	// TOML before YAML: [section] headers parse as YAML strings otherwise.
	if isLikelyTOML(input) {
		lgr.V(1).Info("decoding document", "format", "toml")
		return loadTOML(input)
	}

	lgr.V(1).Info("decoding document", "format", "yaml")
	return loadYAML(input)
}

// loadJSON decodes a single JSON value keeping canonical number text.
func loadJSON(input string) (any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(input)))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	// A trailing second value means the input is not a single document.
	if dec.More() {
		return nil, fmt.Errorf("invalid JSON: trailing data after document")
	}
	return doc, nil
}

func loadYAML(input string) (any, error) {
	var doc any
	if err := yaml.Unmarshal([]byte(input), &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return normalizeKeys(doc)
}

func loadTOML(input string) (any, error) {
	var doc any
	if err := toml.Unmarshal([]byte(input), &doc); err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}
	return normalizeKeys(doc)
}

// normalizeKeys rewrites decoder-specific container types into the
// map[string]any / []any shapes the engine expects. Non-string object keys
// are rejected: the document model is JSON-typed.
func normalizeKeys(v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			n, err := normalizeKeys(val)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string object key %v", k)
			}
			n, err := normalizeKeys(val)
			if err != nil {
				return nil, err
			}
			out[ks] = n
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			n, err := normalizeKeys(val)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	default:
		return v, nil
	}
}

var (
	// TOML section headers: [server], [[items]], [database.credentials].
	tomlSectionPattern = regexp.MustCompile(`^\s*\[{1,2}(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\]{1,2}\s*$`)
	// TOML key = value (not the key: value form, which is YAML).
	tomlKeyValuePattern = regexp.MustCompile(`^\s*(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\s*=\s*.+$`)
)

func isLikelyTOML(input string) bool {
	sectionCount := 0
	keyValueCount := 0
	nonEmptyCount := 0
	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		nonEmptyCount++
		if tomlSectionPattern.MatchString(line) {
			sectionCount++
		}
		if tomlKeyValuePattern.MatchString(line) {
			keyValueCount++
		}
	}
	if sectionCount > 0 {
		return true
	}
	return nonEmptyCount > 0 && keyValueCount > nonEmptyCount/2
}
