package models

import (
	"bytes"
	"encoding/json"
)

// Value is a generic type to represent any parsed JSON value.
// This can be a string, int64, float64, bool, nil, *Object, or Array.
type Value interface{}

// Array represents a JSON array, which is a slice of Values.
type Array []Value

// Object represents a JSON object with keys kept in insertion order.
// Setting an existing key overwrites its value in place without moving it.
type Object struct {
	keys   []string
	values map[string]Value
}

// NewObject creates an empty Object.
func NewObject() *Object {
	return &Object{values: make(map[string]Value)}
}

// Set stores a value under key, appending the key if it is new.
func (o *Object) Set(key string, v Value) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Len returns the number of keys.
func (o *Object) Len() int {
	return len(o.keys)
}

// Keys returns the keys in insertion order. The returned slice is shared;
// callers must not modify it.
func (o *Object) Keys() []string {
	return o.keys
}

// MarshalJSON encodes the object with keys in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(o.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Result is the outcome of a parse: the recovered value and the unconsumed
// suffix of the input. The zero Result means no parse was performed (no
// input was supplied); Parsed is false and the other fields carry no
// meaning in that case.
type Result struct {
	Value     Value
	Remainder string
	Parsed    bool
}

// Complete reports whether a parse ran and consumed the whole input.
func (r Result) Complete() bool {
	return r.Parsed && r.Remainder == ""
}
