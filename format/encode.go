package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signadot/notelog/doc"

	"github.com/goccy/go-yaml"
)

// EncodeDocument writes d to w in format f.
func EncodeDocument(w io.Writer, d *doc.Document, f Format) error {
	if f.IsJSON() {
		return d.Encode(w)
	}
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	v, err := doc.DecodeValue(data)
	if err != nil {
		return err
	}
	return Encode(w, v, f)
}

// Encode writes the document value v to w in format f. Strings are
// quoted JSON in JSON output.
func Encode(w io.Writer, v any, f Format) error {
	switch f {
	case JSONFormat:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case YAMLFormat:
		d, err := yaml.Marshal(toYAML(v))
		if err != nil {
			return err
		}
		_, err = w.Write(d)
		return err
	default:
		return fmt.Errorf("%w: %d", ErrBadFormat, f)
	}
}

func toYAML(v any) any {
	switch x := v.(type) {
	case *doc.Fields:
		res := make(yaml.MapSlice, 0, x.Len())
		for k, fv := range x.All() {
			res = append(res, yaml.MapItem{Key: k, Value: toYAML(fv)})
		}
		return res
	case []any:
		res := make([]any, len(x))
		for i := range x {
			res[i] = toYAML(x[i])
		}
		return res
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if !strings.ContainsAny(x.String(), ".eE") {
			if u, err := strconv.ParseUint(x.String(), 10, 64); err == nil {
				return u
			}
			// beyond 64 bits the digits are kept as text
			return x.String()
		}
		if fl, err := x.Float64(); err == nil {
			return fl
		}
		return x.String()
	default:
		return v
	}
}
