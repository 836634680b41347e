package protocol

import (
	"github.com/streamforge/flowsync/jsonrs"
)

// taggedJSON marshals v and injects a "type" discriminator, so that
// variant types serialize as {"type": <tag>, ...fields}. Callers must
// pass an alias type that does not itself implement json.Marshaler.
func taggedJSON(typeTag string, v any) ([]byte, error) {
	raw, err := jsonrs.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := jsonrs.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	m["type"] = typeTag
	return jsonrs.Marshal(m)
}
