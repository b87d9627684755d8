package ltl

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/logicforge/logicforge/internal/diag"
)

// automatonSchema is the embedded JSON Schema an Automaton's JSON
// serialization must satisfy before the CLI emits it. Grounded on
// core/types/validation.go's compile-then-validate shape
// (jsonschema.NewCompiler + AddResource + Compile), trimmed to a single
// embedded resource with no $ref resolution.
const automatonSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["num_states", "atoms", "closure", "initial", "transitions", "accepting_sets"],
  "properties": {
    "num_states": {"type": "integer", "minimum": 0},
    "atoms": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "x_count"],
        "properties": {
          "name": {"type": "string"},
          "x_count": {"type": "integer", "minimum": 0}
        }
      }
    },
    "initial": {"type": "array", "items": {"type": "integer", "minimum": 0}},
    "transitions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["from", "to"],
        "properties": {
          "from": {"type": "integer", "minimum": 0},
          "to": {"type": "integer", "minimum": 0},
          "label": {"type": "array", "items": {"type": "string"}}
        }
      }
    },
    "accepting_sets": {
      "type": "array",
      "items": {"type": "array", "items": {"type": "integer", "minimum": 0}}
    }
  }
}`

var automatonValidator *jsonschema.Schema

func init() {
	compiler := jsonschema.NewCompiler()
	const url = "schema://automaton.json"
	if err := compiler.AddResource(url, strings.NewReader(automatonSchema)); err != nil {
		panic(fmt.Sprintf("ltl: embedded automaton schema is invalid: %v", err))
	}
	schema, err := compiler.Compile(url)
	if err != nil {
		panic(fmt.Sprintf("ltl: embedded automaton schema failed to compile: %v", err))
	}
	automatonValidator = schema
}

// ValidateOutput checks a's JSON serialization against the embedded
// automaton schema, catching an internal invariant violation (e.g. an
// accepting set referencing a state index out of range of num_states)
// before it reaches the CLI's output writer.
func ValidateOutput(a Automaton) error {
	encoded, err := json.Marshal(a)
	if err != nil {
		return diag.Wrap(diag.Invariant, "automaton failed to encode for schema validation", err)
	}
	var doc any
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return diag.Wrap(diag.Invariant, "automaton JSON failed to decode for schema validation", err)
	}
	if err := automatonValidator.Validate(doc); err != nil {
		return diag.Wrap(diag.Invariant, "automaton output violates its schema", err)
	}
	for _, set := range a.AcceptingSets {
		for _, idx := range set {
			if idx < 0 || idx >= a.NumStates {
				return diag.New(diag.Invariant, "accepting set references a nonexistent state").
					WithContext("state_index", idx).WithContext("num_states", a.NumStates)
			}
		}
	}
	for _, idx := range a.Initial {
		if idx < 0 || idx >= a.NumStates {
			return diag.New(diag.Invariant, "initial state set references a nonexistent state").
				WithContext("state_index", idx).WithContext("num_states", a.NumStates)
		}
	}
	return nil
}
