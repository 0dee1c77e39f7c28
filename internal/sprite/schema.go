package sprite

import (
	_ "embed"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/sprite.schema.json
var schemaJSON string

const schemaURL = "https://github.com/vovakirdan/maenggu/schemas/sprite.schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
)

// manifestSchema compiles the embedded schema once. The schema ships with the
// binary, so a compile failure is a programming error.
func manifestSchema() *jsonschema.Schema {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
			panic("sprite: add schema: " + err.Error())
		}
		s, err := c.Compile(schemaURL)
		if err != nil {
			panic("sprite: compile schema: " + err.Error())
		}
		compiledSchema = s
	})
	return compiledSchema
}
