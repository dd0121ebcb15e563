package task

import (
	"bytes"
	"encoding/json"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const listSchemaURL = "ltodo://task-list.schema.json"

const listSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "text", "completed"],
    "properties": {
      "id": {"type": "integer"},
      "text": {"type": "string"},
      "completed": {"type": "boolean"},
      "dueDate": {"type": "string"}
    }
  }
}`

var listSchema = jsonschema.MustCompileString(listSchemaURL, listSchemaJSON)

// Encode serializes tasks as a JSON array. A nil list encodes as [].
func Encode(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("encode task list: %w", err)
	}
	return data, nil
}

// Decode parses a stored task list. Empty input and JSON null decode to an
// empty list. Anything that is not an array of task objects with distinct
// ids is an error.
func Decode(data []byte) ([]Task, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []Task{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse task list: %w", err)
	}
	if doc == nil {
		return []Task{}, nil
	}
	if err := listSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("validate task list: %w", err)
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("decode task list: %w", err)
	}

	seen := make(map[int64]struct{}, len(tasks))
	for i, t := range tasks {
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("validate task list: [%d].id: duplicate id %d", i, t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}
