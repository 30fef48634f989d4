package convert

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"
)

// WKTKey is the record field holding the encoded geometry.
const WKTKey = "wkt"

// Record is a feature flattened into one ordered mapping: the "wkt" field
// first, then the feature's properties sorted by key. A property named "wkt"
// is overwritten by the encoded geometry.
type Record struct {
	keys   []string
	values map[string]interface{}
}

// NewRecord merges properties with the encoded geometry text.
func NewRecord(text string, properties map[string]interface{}) Record {
	r := Record{
		keys:   make([]string, 0, len(properties)+1),
		values: make(map[string]interface{}, len(properties)+1),
	}
	r.keys = append(r.keys, WKTKey)

	for _, k := range sortedKeys(properties) {
		if k == WKTKey {
			continue
		}
		r.keys = append(r.keys, k)
		r.values[k] = properties[k]
	}
	r.values[WKTKey] = text
	return r
}

// WKT returns the encoded geometry.
func (r Record) WKT() string {
	s, _ := r.values[WKTKey].(string)
	return s
}

// Get returns the value stored under key.
func (r Record) Get(key string) (interface{}, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the field names in output order.
func (r Record) Keys() []string {
	return slices.Clone(r.keys)
}

// Map returns the record as a plain map.
func (r Record) Map() map[string]interface{} {
	return maps.Clone(r.values)
}

// MarshalJSON writes the fields in order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML writes the fields in order.
func (r Record) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range r.keys {
		var value yaml.Node
		if err := value.Encode(r.values[k]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&value)
	}
	return node, nil
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
