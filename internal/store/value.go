// Package store implements the per-shard keyspace: the GString/GInteger/
// Value data model, the single-writer hash map, the storage actor that
// owns it, and the clonable handle used to reach that actor from another
// goroutine. Everything in this package assumes it is driven by exactly
// one shard -- the map itself is never safe for concurrent mutation, which
// is precisely why it is wrapped in an Actor instead of a mutex.
package store

import "strconv"

// GString is the canonical key/string-value type: an immutable byte
// sequence compared and hashed bytewise. A Go string already is an
// immutable, copy-by-header value -- exactly the "reference-counted,
// cheaply cloneable" shape the wire protocol needs -- so GString is
// defined directly on top of it rather than hand-rolling refcounting.
type GString string

// NewGString copies b into a GString. The caller's b may be reused or
// mutated afterwards without affecting the returned value.
func NewGString(b []byte) GString { return GString(b) }

// Bytes returns a copy of the string's bytes.
func (g GString) Bytes() []byte { return []byte(g) }

// GInteger is a signed 64-bit value paired with its canonical ASCII
// decimal rendering.
type GInteger struct {
	n int64
}

// NewGInteger wraps n.
func NewGInteger(n int64) GInteger { return GInteger{n: n} }

// Int64 returns the underlying value.
func (g GInteger) Int64() int64 { return g.n }

// String renders the canonical ASCII decimal form.
func (g GInteger) String() string { return strconv.FormatInt(g.n, 10) }

// ValueKind distinguishes the two Value variants.
type ValueKind int

const (
	KindString ValueKind = iota
	KindInteger
)

// Value is the tagged union stored for every key: either a String or an
// Integer. Only the field matching Kind is meaningful.
type Value struct {
	Kind ValueKind
	Str  GString
	Int  GInteger
}

// NewStringValue inspects the ASCII form of a written SET payload: if it
// parses as a signed 64-bit integer it is stored as Integer, otherwise as
// String.
func NewStringValue(b []byte) Value {
	if n, ok := parseCanonicalInt(b); ok {
		return Value{Kind: KindInteger, Int: NewGInteger(n)}
	}
	return Value{Kind: KindString, Str: NewGString(b)}
}

// NewIntValue wraps n directly as an Integer value, used by INCR.
func NewIntValue(n int64) Value {
	return Value{Kind: KindInteger, Int: NewGInteger(n)}
}

func parseCanonicalInt(b []byte) (int64, bool) {
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Bytes renders the value the way GET returns it: String payloads
// verbatim, Integer payloads as their decimal ASCII form.
func (v Value) Bytes() []byte {
	if v.Kind == KindInteger {
		return []byte(v.Int.String())
	}
	return v.Str.Bytes()
}
