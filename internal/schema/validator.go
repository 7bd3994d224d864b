// Package schema validates configuration documents (YAML or JSON) against
// JSON Schema documents, folding every failure mode into a structured
// verdict instead of an error.
package schema

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/ancients-collective/upcheck/internal/types"
)

// printer renders jsonschema violation messages.
var printer = message.NewPrinter(language.English)

// ValidateConfig validates the document at configPath against the JSON
// Schema at schemaPath. The serialization format of the config is chosen
// by filename suffix only: .yaml/.yml → YAML, .json → JSON. The schema is
// always JSON. Never panics; every failure yields an invalid verdict with
// diagnostics.
func ValidateConfig(configPath, schemaPath string) types.ValidationVerdict {
	doc, verdict, ok := loadDocument(configPath)
	if !ok {
		return verdict
	}

	sch, verdict, ok := compileSchema(schemaPath)
	if !ok {
		return verdict
	}

	if err := sch.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return types.ValidationVerdict{Diagnostics: flattenViolations(ve)}
		}
		return invalid(fmt.Sprintf("validation failed: %v", err))
	}

	return types.ValidationVerdict{Valid: true}
}

// loadDocument reads and parses the configuration document, dispatching
// on the filename suffix. ok is false when the verdict should be returned.
func loadDocument(path string) (any, types.ValidationVerdict, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml", ".json":
	default:
		return nil, invalid("unsupported configuration file type."), false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, invalid(fmt.Sprintf("cannot read configuration file %s: %v", path, err)), false
	}

	if ext == ".json" {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			return nil, invalid(fmt.Sprintf("cannot parse JSON in %s: %v", path, err)), false
		}
		return doc, types.ValidationVerdict{}, true
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, invalid(fmt.Sprintf("cannot parse YAML in %s: %v", path, err)), false
	}
	return normalizeYAML(doc), types.ValidationVerdict{}, true
}

// compileSchema reads, parses, and compiles the JSON Schema document.
// ok is false when the verdict should be returned.
func compileSchema(path string) (*jsonschema.Schema, types.ValidationVerdict, bool) {
	f, err := os.Open(path)
	if err != nil {
		return nil, invalid(fmt.Sprintf("cannot read schema file %s: %v", path, err)), false
	}
	defer f.Close()

	raw, err := jsonschema.UnmarshalJSON(f)
	if err != nil {
		return nil, invalid(fmt.Sprintf("cannot parse JSON schema in %s: %v", path, err)), false
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", raw); err != nil {
		return nil, invalid(fmt.Sprintf("invalid schema %s: %v", path, err)), false
	}

	sch, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, invalid(fmt.Sprintf("invalid schema %s: %v", path, err)), false
	}

	return sch, types.ValidationVerdict{}, true
}

// flattenViolations collects the leaf causes of a validation error tree
// into one diagnostic per violated constraint, each naming the failing
// instance path.
func flattenViolations(ve *jsonschema.ValidationError) []string {
	var diags []string
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := "/" + strings.Join(e.InstanceLocation, "/")
			diags = append(diags, fmt.Sprintf("at %q: %s", loc, e.ErrorKind.LocalizedString(printer)))
			return
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(ve)
	return diags
}

// normalizeYAML converts a yaml.v3 document tree into the JSON-compatible
// shape the jsonschema package validates: string-keyed maps, []any slices,
// and scalar types. Timestamps become RFC 3339 strings.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[k] = normalizeYAML(item)
		}
		return m
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[fmt.Sprint(k)] = normalizeYAML(item)
		}
		return m
	case []any:
		s := make([]any, len(val))
		for i, item := range val {
			s[i] = normalizeYAML(item)
		}
		return s
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return val
	}
}

// invalid builds a failing verdict with a single diagnostic.
func invalid(diag string) types.ValidationVerdict {
	return types.ValidationVerdict{Diagnostics: []string{diag}}
}
