package har

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	reflector "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// shapeDocument is the minimal structure every HAR must have.
// Everything below log.entries is checked leniently during extraction.
type shapeDocument struct {
	Log shapeLog `json:"log"`
}

type shapeLog struct {
	Entries []any `json:"entries"`
}

const shapeResource = "har-shape.json"

var printer = message.NewPrinter(language.English)

var (
	shapeOnce   sync.Once
	shapeSchema *jsonschema.Schema
	shapeErr    error
)

// compileShape reflects the shape types into a JSON schema and compiles it
func compileShape() (*jsonschema.Schema, error) {
	shapeOnce.Do(func() {
		r := &reflector.Reflector{
			Anonymous:                 true,
			DoNotReference:            true,
			AllowAdditionalProperties: true,
		}
		doc, err := json.Marshal(r.Reflect(&shapeDocument{}))
		if err != nil {
			shapeErr = fmt.Errorf("marshaling shape schema: %w", err)
			return
		}

		var value any
		if err := json.Unmarshal(doc, &value); err != nil {
			shapeErr = fmt.Errorf("unmarshaling shape schema: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(shapeResource, value); err != nil {
			shapeErr = fmt.Errorf("adding shape schema: %w", err)
			return
		}
		shapeSchema, shapeErr = compiler.Compile(shapeResource)
	})
	return shapeSchema, shapeErr
}

// validateShape checks that data holds an object with a log.entries array
func validateShape(value any) error {
	schema, err := compileShape()
	if err != nil {
		return err
	}

	err = schema.Validate(value)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if errors.As(err, &verr) {
		return errors.New(describeValidation(verr))
	}
	return err
}

// describeValidation flattens leaf validation errors into one message
func describeValidation(verr *jsonschema.ValidationError) string {
	seen := make(map[string]bool)
	var collect func(e *jsonschema.ValidationError)
	collect = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			path := "/" + strings.Join(e.InstanceLocation, "/")
			msg := e.Error()
			if e.ErrorKind != nil {
				msg = fmt.Sprintf("%s: %s", path, e.ErrorKind.LocalizedString(printer))
			}
			seen[msg] = true
			return
		}
		for _, cause := range e.Causes {
			collect(cause)
		}
	}
	collect(verr)

	msgs := make([]string, 0, len(seen))
	for msg := range seen {
		msgs = append(msgs, msg)
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}
