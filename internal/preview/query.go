package preview

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/itchyny/gojq"

	"github.com/cnharrison/harview/internal/body"
)

// ErrNotJSON is returned by Query for bodies that do not parse as JSON
var ErrNotJSON = errors.New("body is not JSON")

// Query runs a jq expression over a JSON body and returns each result as
// indented JSON.
func Query(d *body.Decoded, expression string) ([]string, error) {
	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}

	if d == nil {
		return nil, ErrNotJSON
	}
	var input any
	if err := json.Unmarshal([]byte(d.Text), &input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotJSON, err)
	}

	var results []string
	iter := code.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			var haltErr *gojq.HaltError
			if errors.As(err, &haltErr) && haltErr.Value() == nil {
				break
			}
			return results, fmt.Errorf("jq: %w", err)
		}
		out, err := gojq.Marshal(v)
		if err != nil {
			return results, err
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, out, "", "  "); err != nil {
			return results, err
		}
		results = append(results, buf.String())
	}
	return results, nil
}
