package assist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const solveResponseSchemaURL = "schema://solve-response.json"

// solveResponseSchema requires a solution with at least one non-space
// character.
const solveResponseSchema = `{
	"type": "object",
	"properties": {
		"solution": {"type": "string", "pattern": "\\S"},
		"error": {"type": "string"}
	},
	"required": ["solution"]
}`

var (
	compiledOnce   sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func solveSchema() (*jsonschema.Schema, error) {
	compiledOnce.Do(func() {
		var def any
		if err := json.Unmarshal([]byte(solveResponseSchema), &def); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(solveResponseSchemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(solveResponseSchemaURL)
	})
	return compiledSchema, compileErr
}

// validateSolveResponse checks a 2xx body and returns the decoded reply.
func validateSolveResponse(body []byte) (SolveResponse, error) {
	var out SolveResponse

	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return out, fmt.Errorf("invalid JSON: %w", err)
	}

	sch, err := solveSchema()
	if err != nil {
		return out, fmt.Errorf("compile schema: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return out, fmt.Errorf("schema validation failed: %w", err)
	}

	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("decode solve response: %w", err)
	}
	return out, nil
}
