package doc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
)

var fieldsType = reflect.TypeOf(&Fields{})

// DecodeValue decodes a single JSON value from d. Objects decode to *Fields
// with their key order intact and numbers decode to json.Number.
func DecodeValue(d []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("trailing data after value")
		}
		return nil, err
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '{':
		f := NewFields()
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return nil, err
			}
			k, ok := kt.(string)
			if !ok {
				return nil, fmt.Errorf("object key is %T, not string", kt)
			}
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			f.Set(k, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return f, nil
	case '[':
		arr := []any{}
		for dec.More() {
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", delim)
	}
}

// Normalize converts v to the JSON value set used by Fields. Values that
// are already normal are returned as is; anything else is round tripped
// through encoding/json.
func Normalize(v any) (any, error) {
	if isNormal(v) {
		return v, nil
	}
	d, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("normalizing %T: %w", v, err)
	}
	return DecodeValue(d)
}

func isNormal(v any) bool {
	switch x := v.(type) {
	case nil, bool, string, json.Number:
		return true
	case *Fields:
		if x == nil {
			return false
		}
		for _, fv := range x.vals {
			if !isNormal(fv) {
				return false
			}
		}
		return true
	case []any:
		for i := range x {
			if !isNormal(x[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// ParseValue interprets s as JSON, falling back to the plain string when s
// is not a JSON value.
func ParseValue(s string) any {
	v, err := DecodeValue([]byte(s))
	if err != nil {
		return s
	}
	return v
}

// FormatValue renders v for human readable notes. Strings appear without
// quotes, everything else as compact JSON.
func FormatValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	buf := bytes.NewBuffer(nil)
	if err := writeCompact(buf, v); err != nil {
		return fmt.Sprintf("%v", v)
	}
	return buf.String()
}

func writeCompact(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode terminates with a newline
	buf.Truncate(buf.Len() - 1)
	return nil
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case json.Number:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case *Fields:
		return "object"
	default:
		return strings.TrimPrefix(fmt.Sprintf("%T", v), "*")
	}
}
