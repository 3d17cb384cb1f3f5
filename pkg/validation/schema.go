// Package validation structurally and semantically validates pack manifests
// and content items. It is pure and total: every malformed input yields a
// structured report, never an error or a panic.
package validation

import (
	"fmt"
	"math"
	"regexp"
	"slices"

	"github.com/prepstack/packman/pkg/model"
)

// Schema is a declarative description of an expected JSON shape. The four
// variants mirror the node types the pack formats use: objects, arrays,
// strings and numbers. A schema is walked by Check against a decoded JSON
// value (map[string]any / []any / string / float64 ...).
type Schema interface {
	check(value any, path string) []model.Issue
}

// Object describes a JSON object with per-key schemas and a required-key list.
type Object struct {
	Required   []string
	Properties map[string]Schema
}

// Array describes a JSON array with an element schema and a minimum length.
type Array struct {
	MinItems int
	Items    Schema
}

// String describes a JSON string with length bounds, an optional pattern and
// an optional enum.
type String struct {
	MinLen  int
	MaxLen  int // 0 means unbounded
	Pattern *regexp.Regexp
	Enum    []string
}

// Number describes a JSON number with optional bounds.
type Number struct {
	Min     *float64
	Max     *float64
	Integer bool
}

// Bound is a convenience constructor for Number bounds.
func Bound(v float64) *float64 { return &v }

// Check validates a decoded JSON value against the schema and returns all
// structural issues found. An empty slice means the value conforms.
func Check(s Schema, value any, path string) []model.Issue {
	return s.check(value, path)
}

func (o Object) check(value any, path string) []model.Issue {
	obj, ok := value.(map[string]any)
	if !ok {
		return []model.Issue{issue(path, fmt.Sprintf("expected object, got %s", typeName(value)))}
	}

	var issues []model.Issue
	for _, key := range o.Required {
		if _, present := obj[key]; !present {
			issues = append(issues, issue(joinPath(path, key), "required field is missing"))
		}
	}
	for key, sub := range o.Properties {
		val, present := obj[key]
		if !present {
			continue
		}
		issues = append(issues, sub.check(val, joinPath(path, key))...)
	}
	return issues
}

func (a Array) check(value any, path string) []model.Issue {
	arr, ok := value.([]any)
	if !ok {
		return []model.Issue{issue(path, fmt.Sprintf("expected array, got %s", typeName(value)))}
	}

	var issues []model.Issue
	if len(arr) < a.MinItems {
		issues = append(issues, issue(path, fmt.Sprintf("expected at least %d items, got %d", a.MinItems, len(arr))))
	}
	if a.Items != nil {
		for i, elem := range arr {
			issues = append(issues, a.Items.check(elem, fmt.Sprintf("%s[%d]", path, i))...)
		}
	}
	return issues
}

func (s String) check(value any, path string) []model.Issue {
	str, ok := value.(string)
	if !ok {
		return []model.Issue{issue(path, fmt.Sprintf("expected string, got %s", typeName(value)))}
	}

	var issues []model.Issue
	if len(str) < s.MinLen {
		issues = append(issues, issue(path, fmt.Sprintf("must be at least %d characters, got %d", s.MinLen, len(str))))
	}
	if s.MaxLen > 0 && len(str) > s.MaxLen {
		issues = append(issues, issue(path, fmt.Sprintf("must be at most %d characters, got %d", s.MaxLen, len(str))))
	}
	if s.Pattern != nil && !s.Pattern.MatchString(str) {
		issues = append(issues, issue(path, fmt.Sprintf("must match pattern %s", s.Pattern)))
	}
	if len(s.Enum) > 0 && !slices.Contains(s.Enum, str) {
		issues = append(issues, issue(path, fmt.Sprintf("must be one of %v, got %q", s.Enum, str)))
	}
	return issues
}

func (n Number) check(value any, path string) []model.Issue {
	num, ok := toFloat(value)
	if !ok {
		return []model.Issue{issue(path, fmt.Sprintf("expected number, got %s", typeName(value)))}
	}

	var issues []model.Issue
	if n.Integer && num != math.Trunc(num) {
		issues = append(issues, issue(path, fmt.Sprintf("must be an integer, got %v", num)))
	}
	if n.Min != nil && num < *n.Min {
		issues = append(issues, issue(path, fmt.Sprintf("must be >= %v, got %v", *n.Min, num)))
	}
	if n.Max != nil && num > *n.Max {
		issues = append(issues, issue(path, fmt.Sprintf("must be <= %v, got %v", *n.Max, num)))
	}
	return issues
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func typeName(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case float64, float32, int, int64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", value)
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func issue(field, message string) model.Issue {
	return model.Issue{Field: field, Message: message}
}
