package storage

import (
	"bytes"
	"strings"

	"github.com/goccy/go-json"

	pkgerrors "github.com/sekaitools/promotrack/pkg/errors"
)

// Render produces the persisted form of a record array: one object per
// block, every key on its own line at one-space-per-level indent, and every
// array inlined on a single line. The format keeps catalog diffs readable
// while card-id lists stay compact.
func Render[T any](records []T) ([]byte, error) {
	if len(records) == 0 {
		return []byte("[]"), nil
	}

	var buf bytes.Buffer
	buf.WriteString("[\n")
	for i, record := range records {
		raw, err := json.Marshal(record)
		if err != nil {
			return nil, pkgerrors.WrapParse("json", "render", err)
		}
		if err := formatValue(&buf, raw, 1); err != nil {
			return nil, err
		}
		if i < len(records)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// formatValue writes one JSON value: objects expand with keys at the given
// level, arrays inline, scalars pass through.
func formatValue(buf *bytes.Buffer, raw json.RawMessage, level int) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}

	switch trimmed[0] {
	case '{':
		return formatObject(buf, trimmed, level)
	case '[':
		return formatArray(buf, trimmed)
	default:
		buf.Write(trimmed)
		return nil
	}
}

func formatObject(buf *bytes.Buffer, raw json.RawMessage, level int) error {
	keys, values, err := objectPairs(raw)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		buf.WriteString("{}")
		return nil
	}

	indent := strings.Repeat(" ", level)
	buf.WriteString("{\n")
	for i, key := range keys {
		buf.WriteString(indent)
		encoded, err := json.Marshal(key)
		if err != nil {
			return pkgerrors.WrapParse("json", "render", err)
		}
		buf.Write(encoded)
		buf.WriteString(": ")
		if err := formatValue(buf, values[i], level+1); err != nil {
			return err
		}
		if i < len(keys)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString(strings.Repeat(" ", level-1))
	buf.WriteByte('}')
	return nil
}

func formatArray(buf *bytes.Buffer, raw json.RawMessage) error {
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return pkgerrors.WrapParse("json", "render", err)
	}
	if len(elements) == 0 {
		buf.WriteString("[]")
		return nil
	}

	buf.WriteByte('[')
	for i, el := range elements {
		if i > 0 {
			buf.WriteString(", ")
		}
		trimmed := bytes.TrimSpace(el)
		if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
			var compact bytes.Buffer
			if err := json.Compact(&compact, trimmed); err != nil {
				return pkgerrors.WrapParse("json", "render", err)
			}
			buf.Write(compact.Bytes())
			continue
		}
		buf.Write(trimmed)
	}
	buf.WriteByte(']')
	return nil
}

// objectPairs decodes an object's keys and raw values preserving the
// marshaled key order, which follows struct field order.
func objectPairs(raw json.RawMessage) ([]string, []json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	if _, err := dec.Token(); err != nil {
		return nil, nil, pkgerrors.WrapParse("json", "render", err)
	}

	var keys []string
	var values []json.RawMessage
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, pkgerrors.WrapParse("json", "render", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, pkgerrors.WrapParse("json", "render", errUnexpectedToken)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, nil, pkgerrors.WrapParse("json", "render", err)
		}
		keys = append(keys, key)
		values = append(values, value)
	}
	return keys, values, nil
}

var errUnexpectedToken = &pkgerrors.ParseError{Format: "json", Message: "unexpected token in object"}
