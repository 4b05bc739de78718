package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type Record map[string]any

func (r Record) ID() string {
	id, _ := r["id"].(string)
	return id
}

// Merge returns a copy of r with patch applied on top. Nested maps are
// replaced, not merged.
func (r Record) Merge(patch Record) Record {
	out := make(Record, len(r)+len(patch))
	for k, v := range r {
		out[k] = v
	}
	for k, v := range patch {
		out[k] = v
	}
	return out
}

func ToRecord(v any) (Record, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	return decodeRecord(raw)
}

func FromRecord(r Record, dst any) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("failed to decode record %s: %w", r.ID(), err)
	}
	return nil
}

func decodeRecord(raw []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	if r == nil {
		r = Record{}
	}
	return r, nil
}

// sameValue compares two values by their JSON encoding so that a float64
// read back from storage matches an int passed by a caller.
func sameValue(a, b any) bool {
	ra, err := json.Marshal(a)
	if err != nil {
		return false
	}
	rb, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(ra, rb)
}
