package core

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Meta is an ordered dictionary of arbitrary application data attached
// to a State or an Event.  Keys enumerate in insertion order.  Values
// are opaque to the engine.
//
// A Meta should not be modified after the Spec that owns it is in use.
type Meta struct {
	keys []string
	vals map[string]interface{}
}

// NewMeta makes an empty Meta.
func NewMeta() *Meta {
	return &Meta{
		vals: make(map[string]interface{}),
	}
}

// Set adds or replaces the value for the given key.  A new key goes to
// the end of the enumeration order.  Returns the Meta for chaining.
func (m *Meta) Set(key string, val interface{}) *Meta {
	if m.vals == nil {
		m.vals = make(map[string]interface{})
	}
	if _, have := m.vals[key]; !have {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = val
	return m
}

// Get returns the value for the key or nil.
func (m *Meta) Get(key string) interface{} {
	if m == nil {
		return nil
	}
	return m.vals[key]
}

// Lookup returns the value for the key and whether the key is present.
func (m *Meta) Lookup(key string) (interface{}, bool) {
	if m == nil {
		return nil, false
	}
	v, have := m.vals[key]
	return v, have
}

// Len returns the number of pairs.
func (m *Meta) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Meta) Keys() []string {
	if m == nil {
		return nil
	}
	acc := make([]string, len(m.keys))
	copy(acc, m.keys)
	return acc
}

// Each calls f on every pair in insertion order, stopping at the first
// error, which is returned.
func (m *Meta) Each(f func(key string, val interface{}) error) error {
	if m == nil {
		return nil
	}
	for _, k := range m.keys {
		if err := f(k, m.vals[k]); err != nil {
			return err
		}
	}
	return nil
}

// Map returns the pairs as a plain (unordered) map.  Handy for handing
// meta to interpreters and templates.
func (m *Meta) Map() map[string]interface{} {
	if m == nil {
		return nil
	}
	acc := make(map[string]interface{}, len(m.keys))
	for _, k := range m.keys {
		acc[k] = m.vals[k]
	}
	return acc
}

// Copy makes a copy with the same order.  Values are not copied.
func (m *Meta) Copy() *Meta {
	if m == nil {
		return nil
	}
	acc := NewMeta()
	for _, k := range m.keys {
		acc.Set(k, m.vals[k])
	}
	return acc
}

// MarshalJSON renders the Meta as a list of single-pair objects so that
// the enumeration order survives serialization.
func (m *Meta) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, k := range m.keys {
		if 0 < i {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads either the list-of-pairs form written by
// MarshalJSON or a plain object (with no order guarantee for the
// latter).
func (m *Meta) UnmarshalJSON(bs []byte) error {
	m.keys = nil
	m.vals = make(map[string]interface{})

	var pairs []map[string]interface{}
	if err := json.Unmarshal(bs, &pairs); err == nil {
		for _, pair := range pairs {
			if len(pair) != 1 {
				return errors.New("meta pair should have exactly one key")
			}
			for k, v := range pair {
				m.Set(k, v)
			}
		}
		return nil
	}

	var obj map[string]interface{}
	if err := json.Unmarshal(bs, &obj); err != nil {
		return err
	}
	for k, v := range obj {
		m.Set(k, v)
	}
	return nil
}
