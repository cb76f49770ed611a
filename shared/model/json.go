package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

var errUnsupportedJSONSource = errors.New("unsupported source type for json column")

// JSON maps a JSON/JSONB column onto a typed Go value.
type JSON[T any] struct {
	Val T
}

func NewJSON[T any](val T) JSON[T] {
	return JSON[T]{Val: val}
}

// Scan implements sql.Scanner.
func (j *JSON[T]) Scan(src any) error {
	var raw []byte

	switch v := src.(type) {
	case nil:
		var zero T
		j.Val = zero

		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("%w: %T", errUnsupportedJSONSource, src)
	}

	if err := json.Unmarshal(raw, &j.Val); err != nil {
		return fmt.Errorf("failed to unmarshal json column: %w", err)
	}

	return nil
}

// Value implements driver.Valuer. It returns text since lib/pq sends []byte as bytea.
func (j JSON[T]) Value() (driver.Value, error) {
	raw, err := json.Marshal(j.Val)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal json column: %w", err)
	}

	return string(raw), nil
}

func (j JSON[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(j.Val)
}

func (j *JSON[T]) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &j.Val)
}
