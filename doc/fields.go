package doc

import (
	"bytes"
	"encoding/json"
	"iter"
	"slices"
)

// Fields is an insertion ordered mapping from string keys to JSON values.
//
// The zero value is not usable, use NewFields.
type Fields struct {
	keys []string
	vals map[string]any
}

func NewFields() *Fields {
	return &Fields{vals: map[string]any{}}
}

// FromMap builds Fields from m, normalizing every value. Go maps carry no
// order so keys are laid out in sorted order.
func FromMap(m map[string]any) (*Fields, error) {
	f := NewFields()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		v, err := Normalize(m[k])
		if err != nil {
			return nil, err
		}
		f.Set(k, v)
	}
	return f, nil
}

func (f *Fields) Len() int {
	if f == nil {
		return 0
	}
	return len(f.keys)
}

// Keys returns a copy of the keys in order.
func (f *Fields) Keys() []string {
	if f == nil {
		return nil
	}
	return slices.Clone(f.keys)
}

// All iterates over the key/value pairs in order.
func (f *Fields) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if f == nil {
			return
		}
		for _, k := range f.keys {
			if !yield(k, f.vals[k]) {
				return
			}
		}
	}
}

func (f *Fields) Get(k string) (any, bool) {
	if f == nil {
		return nil, false
	}
	v, ok := f.vals[k]
	return v, ok
}

func (f *Fields) Has(k string) bool {
	_, ok := f.Get(k)
	return ok
}

// Set sets k to v. A new key is appended, an existing key keeps its
// position. v is stored as given; callers holding arbitrary Go values
// should pass them through Normalize first.
func (f *Fields) Set(k string, v any) {
	if _, ok := f.vals[k]; !ok {
		f.keys = append(f.keys, k)
	}
	f.vals[k] = v
}

// Delete removes k, returning the value it held.
func (f *Fields) Delete(k string) (any, bool) {
	v, ok := f.vals[k]
	if !ok {
		return nil, false
	}
	delete(f.vals, k)
	f.keys = slices.DeleteFunc(f.keys, func(x string) bool { return x == k })
	return v, true
}

// Clone returns a deep copy of f.
func (f *Fields) Clone() *Fields {
	if f == nil {
		return nil
	}
	res := &Fields{
		keys: slices.Clone(f.keys),
		vals: make(map[string]any, len(f.vals)),
	}
	for k, v := range f.vals {
		res.vals[k] = cloneValue(v)
	}
	return res
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case *Fields:
		return x.Clone()
	case []any:
		res := make([]any, len(x))
		for i := range x {
			res[i] = cloneValue(x[i])
		}
		return res
	default:
		return v
	}
}

// Equal reports whether f and o hold structurally equal values for the same
// set of keys. Key order is not significant.
func (f *Fields) Equal(o *Fields) bool {
	if f.Len() != o.Len() {
		return false
	}
	for k, v := range f.All() {
		ov, ok := o.Get(k)
		if !ok || !Equal(v, ov) {
			return false
		}
	}
	return true
}

func (f *Fields) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	buf.WriteByte('{')
	for i, k := range f.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeCompact(buf, k); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeCompact(buf, f.vals[k]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (f *Fields) UnmarshalJSON(d []byte) error {
	v, err := DecodeValue(d)
	if err != nil {
		return err
	}
	res, ok := v.(*Fields)
	if !ok {
		return &json.UnmarshalTypeError{Value: typeName(v), Type: fieldsType}
	}
	*f = *res
	return nil
}
