package urlmap

import (
	"maps"
	"net/url"
	"slices"
	"strings"
)

// Params is an ordered, multi-valued parameter collection. Keys keep their
// first insertion order so encoded query strings are deterministic.
//
// The zero value is ready to use. Params is not safe for concurrent
// mutation; each request owns its own collection.
type Params struct {
	keys   []string
	values map[string][]string
}

// NewParams returns a collection holding the given key/value pairs in order.
// Repeated keys accumulate values.
func NewParams(pairs ...Pair) *Params {
	p := &Params{}
	for _, kv := range pairs {
		p.Add(kv.Key, kv.Value)
	}
	return p
}

// FromValues builds a collection from url.Values. Keys are sorted because
// url.Values carries no order.
func FromValues(v url.Values) *Params {
	p := &Params{}
	for _, k := range slices.Sorted(maps.Keys(v)) {
		p.Set(k, v[k]...)
	}
	return p
}

// ParseQuery parses a raw query string, keeping key order as it appears.
func ParseQuery(raw string) (*Params, error) {
	p := &Params{}
	var firstErr error
	for raw != "" {
		var part string
		part, raw, _ = strings.Cut(raw, "&")
		if part == "" {
			continue
		}
		k, v, _ := strings.Cut(part, "=")
		key, err := url.QueryUnescape(k)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		val, err := url.QueryUnescape(v)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		p.Add(key, val)
	}
	return p, firstErr
}

// Len returns the number of distinct keys.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Keys returns the keys in insertion order.
func (p *Params) Keys() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Has reports whether key is present.
func (p *Params) Has(key string) bool {
	if p == nil {
		return false
	}
	_, ok := p.values[key]
	return ok
}

// Get returns the first value for key, or "" when absent.
func (p *Params) Get(key string) string {
	if p == nil {
		return ""
	}
	if vs := p.values[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// Values returns a copy of all values for key.
func (p *Params) Values(key string) []string {
	if p == nil {
		return nil
	}
	vs, ok := p.values[key]
	if !ok {
		return nil
	}
	out := make([]string, len(vs))
	copy(out, vs)
	return out
}

// Set replaces all values for key. The key keeps its position when it was
// already present.
func (p *Params) Set(key string, values ...string) {
	if p.values == nil {
		p.values = make(map[string][]string)
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	vs := make([]string, len(values))
	copy(vs, values)
	p.values[key] = vs
}

// Add appends value to key.
func (p *Params) Add(key, value string) {
	if p.values == nil {
		p.values = make(map[string][]string)
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = append(p.values[key], value)
}

// Del removes key.
func (p *Params) Del(key string) {
	if p == nil {
		return
	}
	if _, ok := p.values[key]; !ok {
		return
	}
	delete(p.values, key)
	for i, k := range p.keys {
		if k == key {
			p.keys = append(p.keys[:i], p.keys[i+1:]...)
			break
		}
	}
}

// Clone returns a deep copy. Cloning nil yields an empty collection.
func (p *Params) Clone() *Params {
	out := &Params{}
	if p == nil {
		return out
	}
	out.keys = make([]string, len(p.keys))
	copy(out.keys, p.keys)
	out.values = make(map[string][]string, len(p.values))
	for k, vs := range p.values {
		cp := make([]string, len(vs))
		copy(cp, vs)
		out.values[k] = cp
	}
	return out
}

// Merge appends every value of other, in other's key order.
func (p *Params) Merge(other *Params) {
	if other == nil {
		return
	}
	for _, k := range other.keys {
		for _, v := range other.values[k] {
			p.Add(k, v)
		}
	}
}

// ToValues converts the collection into url.Values.
func (p *Params) ToValues() url.Values {
	v := make(url.Values, p.Len())
	if p == nil {
		return v
	}
	for _, k := range p.keys {
		v[k] = p.Values(k)
	}
	return v
}

// Encode encodes the collection as a query string in key insertion order.
func (p *Params) Encode() string {
	if p.Len() == 0 {
		return ""
	}
	var b strings.Builder
	for _, k := range p.keys {
		ek := url.QueryEscape(k)
		for _, v := range p.values[k] {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(ek)
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(v))
		}
	}
	return b.String()
}

// single returns the only value of key. ok is false when the key is absent
// or carries more than one value.
func (p *Params) single(key string) (string, bool) {
	if p == nil {
		return "", false
	}
	vs := p.values[key]
	if len(vs) != 1 {
		return "", false
	}
	return vs[0], true
}
