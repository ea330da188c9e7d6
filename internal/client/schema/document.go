package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Document is a stored record decoded without a Go type, so steps can see
// fields that no longer exist on the current structs. Numbers decode as
// json.Number and keep their exact text.
type Document map[string]any

func decodeDocument(data []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var d Document
	if err := dec.Decode(&d); err != nil {
		return nil, err
	}
	if d == nil {
		d = Document{}
	}
	return d, nil
}

// Clone returns a deep copy.
func (d Document) Clone() Document {
	return cloneValue(map[string]any(d)).(map[string]any)
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case Document:
		return cloneValue(map[string]any(t))
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

func (d Document) Has(field string) bool {
	_, ok := d[field]
	return ok
}

// SetDefault assigns v to field when the field is missing or null. It
// reports whether it assigned.
func (d Document) SetDefault(field string, v any) bool {
	if cur, ok := d[field]; ok && cur != nil {
		return false
	}
	d[field] = v
	return true
}

func (d Document) Set(field string, v any) { d[field] = v }

// String returns field as a string; non-strings yield "".
func (d Document) String(field string) string {
	s, _ := d[field].(string)
	return s
}

func (d Document) Bool(field string) bool {
	b, _ := d[field].(bool)
	return b
}

// Int returns field as an integer. ok is false for missing or non-integral
// values.
func (d Document) Int(field string) (int64, bool) {
	switch n := d[field].(type) {
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), float64(int64(n)) == n
	default:
		return 0, false
	}
}

// Docs returns the objects held in an array field. The returned documents
// share storage with d, so changes to them are changes to d.
func (d Document) Docs(field string) []Document {
	arr, _ := d[field].([]any)
	out := make([]Document, 0, len(arr))
	for _, e := range arr {
		if m, ok := e.(map[string]any); ok {
			out = append(out, Document(m))
		}
	}
	return out
}

// keyOf renders the primary key held in field.
func keyOf(d Document, field string) (string, bool) {
	switch v := d[field].(type) {
	case string:
		return v, v != ""
	case json.Number:
		return v.String(), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case nil:
		return "", false
	default:
		return fmt.Sprint(v), true
	}
}
