// Package frame implements the wire-level sum type and codec shared by
// every shard: a six-variant RESP-style frame, an incremental parser that
// tolerates partial reads, and a duplex stream wrapper over a byte
// transport. Frames are value types -- a parsed frame never shares backing
// storage with the parser's internal buffer.
package frame

import "bytes"

// Kind identifies which of the six wire variants a Frame holds.
type Kind int

const (
	SimpleString Kind = iota
	SimpleError
	Integer
	BulkString
	Array
	Null
)

// Frame is the wire-level sum type. Only the fields relevant to Kind are
// populated; the zero Frame is not a valid frame of any kind.
type Frame struct {
	Kind  Kind
	Str   []byte  // SimpleString / SimpleError payload, never containing CR or LF
	Int   int64   // Integer payload
	Bulk  []byte  // BulkString payload, raw bytes, never nil for a parsed frame
	Items []Frame // Array elements, in order
}

// SimpleStr builds a SimpleString frame.
func SimpleStr(s string) Frame { return Frame{Kind: SimpleString, Str: []byte(s)} }

// ErrStr builds a SimpleError frame from plain text.
func ErrStr(s string) Frame { return Frame{Kind: SimpleError, Str: []byte(s)} }

// Int64 builds an Integer frame.
func Int64(n int64) Frame { return Frame{Kind: Integer, Int: n} }

// Bulk builds a BulkString frame. A nil b is encoded the same as an empty
// one; use NullFrame for the RESP null.
func Bulk(b []byte) Frame { return Frame{Kind: BulkString, Bulk: b} }

// Arr builds an Array frame from its elements.
func Arr(items ...Frame) Frame { return Frame{Kind: Array, Items: items} }

// NullFrame builds the RESP null frame.
func NullFrame() Frame { return Frame{Kind: Null} }

// Equal reports whether two frames are structurally identical, treating a
// nil and empty byte/item slice as equal (both encode identically).
func Equal(a, b Frame) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case SimpleString, SimpleError:
		return bytes.Equal(a.Str, b.Str)
	case Integer:
		return a.Int == b.Int
	case BulkString:
		return bytes.Equal(a.Bulk, b.Bulk)
	case Array:
		if len(a.Items) != len(b.Items) {
			return false
		}
		for i := range a.Items {
			if !Equal(a.Items[i], b.Items[i]) {
				return false
			}
		}
		return true
	case Null:
		return true
	default:
		return false
	}
}
