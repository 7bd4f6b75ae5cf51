package tools

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// ValidateInput checks a JSON document against the schema's input
// definition. Failures wrap ErrInvalidInput with field detail.
func ValidateInput(schema Schema, doc json.RawMessage) error {
	return validate(schema.Input, doc, ErrInvalidInput)
}

// ValidateOutput checks a JSON document against the schema's output
// definition. Failures wrap ErrInvalidOutput with field detail.
func ValidateOutput(schema Schema, doc json.RawMessage) error {
	return validate(schema.Output, doc, ErrInvalidOutput)
}

func validate(def Definition, doc json.RawMessage, sentinel error) error {
	var obj map[string]any
	if err := json.Unmarshal(doc, &obj); err != nil {
		return fmt.Errorf("%w: not a JSON object: %v", sentinel, err)
	}

	// Field names are checked in sorted order so failures are
	// deterministic.
	for _, name := range slices.Sorted(maps.Keys(def)) {
		field := def[name]

		value, present := obj[name]
		if !present {
			if field.Required {
				return fmt.Errorf("%w: missing required field %q", sentinel, name)
			}
			continue
		}

		if !matchesKind(value, field.Kind) {
			return fmt.Errorf("%w: field %q is not a %s", sentinel, name, field.Kind)
		}
	}

	return nil
}

func matchesKind(value any, kind Kind) bool {
	switch kind {
	case KindString:
		_, ok := value.(string)
		return ok
	case KindNumber:
		_, ok := value.(float64)
		return ok
	case KindBoolean:
		_, ok := value.(bool)
		return ok
	case KindObject:
		_, ok := value.(map[string]any)
		return ok
	case KindArray:
		_, ok := value.([]any)
		return ok
	default:
		return false
	}
}
