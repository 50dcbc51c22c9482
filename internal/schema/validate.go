// Package schema validates tool arguments against their declared
// JSON Schemas before any network call is attempted.
package schema

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var schemaCache sync.Map // key -> *jsonschema.Schema

func cacheKey(toolName string, schema json.RawMessage) string {
	sum := sha256.Sum256(schema)
	return toolName + ":" + hex.EncodeToString(sum[:])
}

func compile(toolName string, schema json.RawMessage) (*jsonschema.Schema, error) {
	key := cacheKey(toolName, schema)
	if v, ok := schemaCache.Load(key); ok {
		return v.(*jsonschema.Schema), nil
	}
	s, err := jsonschema.CompileString(toolName+".json", string(schema))
	if err != nil {
		return nil, err
	}
	schemaCache.Store(key, s)
	return s, nil
}

func collectLeaves(err *jsonschema.ValidationError, out *[]string) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		loc := err.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		msg := err.Message
		if msg == "" {
			msg = err.Error()
		}
		*out = append(*out, fmt.Sprintf("%s: %s", loc, msg))
		return
	}
	for _, c := range err.Causes {
		collectLeaves(c, out)
	}
}

// ValidateArgs checks args against the tool's input schema. All leaf
// violations are aggregated into one error message.
func ValidateArgs(toolName string, schema json.RawMessage, args any) error {
	if len(schema) == 0 {
		return nil
	}
	s, err := compile(toolName, schema)
	if err != nil {
		return fmt.Errorf("invalid inputSchema for %s: %w", toolName, err)
	}
	if err := s.Validate(args); err != nil {
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			var leaves []string
			collectLeaves(ve, &leaves)
			return fmt.Errorf("invalid arguments for %s: %s", toolName, strings.Join(leaves, "; "))
		}
		return fmt.Errorf("invalid arguments for %s: %v", toolName, err)
	}
	return nil
}

// ValidateRawArgs decodes raw JSON arguments and validates them. An
// empty argument bag is treated as an empty object.
func ValidateRawArgs(toolName string, schema json.RawMessage, args json.RawMessage) error {
	if len(args) == 0 {
		args = json.RawMessage(`{}`)
	}
	var v any
	if err := json.Unmarshal(args, &v); err != nil {
		return fmt.Errorf("invalid arguments for %s: %w", toolName, err)
	}
	return ValidateArgs(toolName, schema, v)
}
