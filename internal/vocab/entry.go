// Package vocab extracts the inline vocabulary array of a flashcard page
// into a standalone JSON data file.
package vocab

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Field is one name/value pair of a vocabulary entry.
type Field struct {
	Key   string
	Value any
}

// Entry is one flashcard record. Field order is preserved from the source.
// Nested object values are decoded as Entry too, so their order survives.
type Entry struct {
	Fields []Field
}

// Get returns the value stored under key.
func (e Entry) Get(key string) (any, bool) {
	for _, f := range e.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Keys returns the field names in order.
func (e Entry) Keys() []string {
	keys := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		keys = append(keys, f.Key)
	}
	return keys
}

// set replaces the value of an existing key in place or appends a new field.
func (e *Entry) set(key string, value any) {
	for i := range e.Fields {
		if e.Fields[i].Key == key {
			e.Fields[i].Value = value
			return
		}
	}
	e.Fields = append(e.Fields, Field{Key: key, Value: value})
}

// MarshalJSON writes the entry as an object with its fields in order.
func (e Entry) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range e.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := encodeValue(f.Key)
		if err != nil {
			return nil, err
		}
		val, err := encodeValue(f.Value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encodeValue marshals v without HTML escaping.
func encodeValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Normalize lower-cases every field name. Values and order are unchanged;
// when two names collapse to the same lowercase key the later value wins and
// keeps the position of the first.
func Normalize(entries []Entry) []Entry {
	normalized := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		var n Entry
		for _, f := range entry.Fields {
			n.set(strings.ToLower(f.Key), f.Value)
		}
		if n.Fields == nil {
			n.Fields = []Field{}
		}
		normalized = append(normalized, n)
	}
	return normalized
}

// DecodeEntries parses data as a JSON array of objects, keeping key order.
// Anything after the closing bracket is an error.
func DecodeEntries(data string) ([]Entry, error) {
	dec := json.NewDecoder(strings.NewReader(data))
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}

	entries := []Entry{}
	for dec.More() {
		entry, err := decodeEntry(dec, len(entries))
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	if tok, err := dec.Token(); err != io.EOF {
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("unexpected trailing data %v", tok)
	}

	return entries, nil
}

func decodeEntry(dec *json.Decoder, index int) (Entry, error) {
	tok, err := dec.Token()
	if err != nil {
		return Entry{}, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return Entry{}, fmt.Errorf("entry %d is not an object", index)
	}

	entry, err := decodeObject(dec)
	if err != nil {
		return Entry{}, fmt.Errorf("entry %d: %w", index, err)
	}
	return entry, nil
}

// decodeObject reads the fields of an object whose opening brace has already
// been consumed.
func decodeObject(dec *json.Decoder) (Entry, error) {
	entry := Entry{Fields: []Field{}}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Entry{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Entry{}, fmt.Errorf("expected field name, got %v", tok)
		}

		value, err := decodeValue(dec)
		if err != nil {
			return Entry{}, fmt.Errorf("field %q: %w", key, err)
		}
		entry.set(key, value)
	}

	if err := expectDelim(dec, '}'); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// decodeValue reads one value. Objects become Entry, arrays []any, numbers
// json.Number.
func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	d, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch d {
	case '{':
		return decodeObject(dec)
	case '[':
		values := []any{}
		for dec.More() {
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		if err := expectDelim(dec, ']'); err != nil {
			return nil, err
		}
		return values, nil
	default:
		return nil, fmt.Errorf("unexpected %v", d)
	}
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}
