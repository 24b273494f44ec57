package frame

import "strconv"

var crlf = []byte("\r\n")

// Encode renders f to its wire bytes. Encoding never fails: payload bytes
// are copied verbatim and never re-escaped, so whatever Parser.Parse
// produced round-trips byte for byte.
func Encode(f Frame) []byte {
	return AppendTo(nil, f)
}

// AppendTo appends the wire encoding of f to dst and returns the grown
// slice, in the style of strconv.AppendInt -- callers that encode many
// frames into one outbound buffer should prefer this over Encode.
func AppendTo(dst []byte, f Frame) []byte {
	switch f.Kind {
	case SimpleString:
		dst = append(dst, '+')
		dst = append(dst, f.Str...)
		return append(dst, crlf...)
	case SimpleError:
		dst = append(dst, '-')
		dst = append(dst, f.Str...)
		return append(dst, crlf...)
	case Integer:
		dst = append(dst, ':')
		dst = strconv.AppendInt(dst, f.Int, 10)
		return append(dst, crlf...)
	case BulkString:
		dst = append(dst, '$')
		dst = strconv.AppendInt(dst, int64(len(f.Bulk)), 10)
		dst = append(dst, crlf...)
		dst = append(dst, f.Bulk...)
		return append(dst, crlf...)
	case Array:
		dst = append(dst, '*')
		dst = strconv.AppendInt(dst, int64(len(f.Items)), 10)
		dst = append(dst, crlf...)
		for _, item := range f.Items {
			dst = AppendTo(dst, item)
		}
		return dst
	case Null:
		dst = append(dst, '_')
		return append(dst, crlf...)
	default:
		return dst
	}
}
