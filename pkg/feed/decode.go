package feed

import (
	json "github.com/goccy/go-json"

	"github.com/sekaitools/promotrack/pkg/errors"
)

// Decode projects raw upstream JSON into the tracked schema for T.
// Unknown keys are dropped by the decode itself; undecodable content
// surfaces as a ParseError so callers can abort the affected feed.
func Decode[T any](data []byte, source string) ([]T, error) {
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.WrapParse("json", source, err)
	}
	return records, nil
}

// Canonical renders a record in its stable comparable string form.
// Struct field order is fixed, so equal records always render identically.
func Canonical[T any](record T) string {
	data, err := json.Marshal(record)
	if err != nil {
		// Feed records are plain data structs; marshaling cannot fail for them.
		return ""
	}
	return string(data)
}
