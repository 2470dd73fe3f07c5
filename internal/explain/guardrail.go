package explain

import (
	"embed"
	"fmt"
	"sort"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/dshills/contractcheck/internal/prompt"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var (
	schemaOnce sync.Once
	schemas    map[Shape]*gojsonschema.Schema
	schemaErr  error
)

func loadSchemas() {
	schemas = make(map[Shape]*gojsonschema.Schema, 2)
	for shape, name := range map[Shape]string{
		prompt.ShapeA: "schemas/shape_a.json",
		prompt.ShapeB: "schemas/shape_b.json",
	} {
		data, err := schemaFS.ReadFile(name)
		if err != nil {
			schemaErr = fmt.Errorf("explain: read %s: %w", name, err)
			return
		}
		s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
		if err != nil {
			schemaErr = fmt.Errorf("explain: compile %s: %w", name, err)
			return
		}
		schemas[shape] = s
	}
}

// OutputSchema returns the JSON Schema text for a shape.
func OutputSchema(shape Shape) ([]byte, error) {
	if shape == prompt.ShapeB {
		return schemaFS.ReadFile("schemas/shape_b.json")
	}
	return schemaFS.ReadFile("schemas/shape_a.json")
}

// Check validates a decoded response object against the shape's output
// schema. It returns the sorted list of violations, empty when obj conforms.
func Check(obj any, shape Shape) ([]string, error) {
	schemaOnce.Do(loadSchemas)
	if schemaErr != nil {
		return nil, schemaErr
	}
	s, ok := schemas[shape]
	if !ok {
		return nil, fmt.Errorf("explain: unknown shape %q", shape)
	}

	res, err := s.Validate(gojsonschema.NewGoLoader(obj))
	if err != nil {
		return nil, fmt.Errorf("explain: validate: %w", err)
	}
	if res.Valid() {
		return nil, nil
	}
	violations := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		violations = append(violations, e.String())
	}
	sort.Strings(violations)
	return violations, nil
}
