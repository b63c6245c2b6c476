package todo

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/tudu/internal/utils"
)

const builtinSchemaURL = "tudu:///todos.schema.json"

// BuiltinSchema is the JSON Schema every task file must satisfy.
const BuiltinSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "tudu task list",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["title", "completed"],
    "properties": {
      "title": {"type": "string"},
      "completed": {"type": "boolean"}
    }
  }
}`

var (
	builtinOnce     sync.Once
	builtinCompiled *jsonschema.Schema
)

func builtinSchema() *jsonschema.Schema {
	builtinOnce.Do(func() {
		builtinCompiled = jsonschema.MustCompileString(builtinSchemaURL, BuiltinSchema)
	})
	return builtinCompiled
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // JSON path to the error location
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationOptions controls validation behavior.
type ValidationOptions struct {
	// SchemaPath is the path to a JSON Schema file.
	// If empty, the built-in schema is used.
	SchemaPath string
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid      bool
	Errors     []error
	Warnings   []string
	UsedSchema bool // true if JSON Schema validation was performed
}

// CompileSchema compiles the schema file at path. An empty path returns the
// built-in schema.
func CompileSchema(path string) (*jsonschema.Schema, error) {
	if path == "" {
		return builtinSchema(), nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid schema path: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	schema, err := compiler.Compile(absPath)
	if err != nil {
		return nil, fmt.Errorf("invalid schema file: %w", err)
	}
	return schema, nil
}

// Validate checks raw task file contents. A schema file that cannot be
// compiled is reported as a warning and the minimal checks are used instead.
func Validate(data []byte, opts ValidationOptions) *ValidationResult {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return &ValidationResult{
			Valid:  false,
			Errors: []error{&ValidationError{Err: fmt.Errorf("parse: %w", err)}},
		}
	}

	schema, err := CompileSchema(opts.SchemaPath)
	if err != nil {
		result := validateValue(raw, nil)
		result.Warnings = append(result.Warnings,
			err.Error(),
			"JSON Schema validation not available, using minimal checks")
		return result
	}
	return validateValue(raw, schema)
}

func validateValue(raw interface{}, schema *jsonschema.Schema) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	if schema == nil {
		validateMinimal(raw, result)
		return result
	}

	result.UsedSchema = true
	if err := schema.Validate(raw); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
	}
	return result
}

// validateMinimal performs the built-in schema's checks without JSON Schema.
func validateMinimal(raw interface{}, result *ValidationResult) {
	items, ok := raw.([]interface{})
	if !ok {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Err: fmt.Errorf("expected array, got %s", jsonKind(raw)),
		})
		return
	}

	for i, item := range items {
		path := fmt.Sprintf("[%d]", i)
		if err := validateTaskMinimal(item, path); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, err)
		}
	}
}

func validateTaskMinimal(item interface{}, path string) *ValidationError {
	obj, ok := item.(map[string]interface{})
	if !ok {
		return &ValidationError{
			Path: path,
			Err:  fmt.Errorf("expected object, got %s", jsonKind(item)),
		}
	}

	title, ok := obj["title"]
	if !ok {
		return &ValidationError{
			Path: path + ".title",
			Err:  fmt.Errorf("missing required field"),
		}
	}
	if _, ok := title.(string); !ok {
		return &ValidationError{
			Path: path + ".title",
			Err:  fmt.Errorf("expected string, got %s", jsonKind(title)),
		}
	}

	completed, ok := obj["completed"]
	if !ok {
		return &ValidationError{
			Path: path + ".completed",
			Err:  fmt.Errorf("missing required field"),
		}
	}
	if _, ok := completed.(bool); !ok {
		return &ValidationError{
			Path: path + ".completed",
			Err:  fmt.Errorf("expected boolean, got %s", jsonKind(completed)),
		}
	}

	return nil
}

func jsonKind(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64, json.Number:
		return "number"
	case string:
		return "string"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func appendSchemaErrors(result *ValidationResult, err error) {
	if err == nil {
		return
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		result.Errors = append(result.Errors, err)
		return
	}

	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: utils.JSONPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}
