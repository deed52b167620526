package xgelf

import (
	"bytes"

	"github.com/segmentio/encoding/json"
)

// Pair is one resolved name/value. Valid is false when the value is absent.
type Pair struct {
	Name  string
	Value string
	Valid bool
}

// Values is an ordered name/value collector. The zero value is empty and
// ready to use. Names may repeat; resolvers in this package never emit a
// name twice for a single field.
type Values struct {
	pairs []Pair
}

func NewValues() Values { return Values{} }

// SingleValue returns Values holding exactly one pair.
func SingleValue(name, value string, valid bool) Values {
	return Values{pairs: []Pair{{Name: name, Value: value, Valid: valid}}}
}

// Set appends a present value.
func (v *Values) Set(name, value string) {
	v.pairs = append(v.pairs, Pair{Name: name, Value: value, Valid: true})
}

// SetNull appends an absent value.
func (v *Values) SetNull(name string) {
	v.pairs = append(v.pairs, Pair{Name: name})
}

func (v *Values) Add(p Pair) { v.pairs = append(v.pairs, p) }

func (v Values) Len() int { return len(v.pairs) }

// Pairs returns a copy in insertion order.
func (v Values) Pairs() []Pair {
	if len(v.pairs) == 0 {
		return nil
	}
	out := make([]Pair, len(v.pairs))
	copy(out, v.pairs)
	return out
}

// Get returns the first pair named name.
func (v Values) Get(name string) (Pair, bool) {
	for _, p := range v.pairs {
		if p.Name == name {
			return p, true
		}
	}
	return Pair{}, false
}

func (v Values) Names() []string {
	if len(v.pairs) == 0 {
		return nil
	}
	out := make([]string, len(v.pairs))
	for i, p := range v.pairs {
		out[i] = p.Name
	}
	return out
}

// Merge appends every pair of other.
func (v *Values) Merge(other Values) {
	v.pairs = append(v.pairs, other.pairs...)
}

// Map returns present values keyed by name; a later pair wins.
func (v Values) Map() map[string]string {
	m := make(map[string]string, len(v.pairs))
	for _, p := range v.pairs {
		if p.Valid {
			m[p.Name] = p.Value
		}
	}
	return m
}

// MarshalJSON encodes the pairs as an object in insertion order, with
// null for absent values.
func (v Values) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range v.pairs {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(p.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		if !p.Valid {
			buf.WriteString("null")
			continue
		}
		s, err := json.Marshal(p.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(s)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
