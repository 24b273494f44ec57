package frame

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func roundTripCases() []Frame {
	return []Frame{
		SimpleStr("OK"),
		SimpleStr(""),
		ErrStr("ERR something bad"),
		Int64(0),
		Int64(-1),
		Int64(9223372036854775807),
		Bulk([]byte("hello")),
		Bulk([]byte{}),
		Bulk([]byte{0x00, 0xff, '\r', '\n'}), // binary-unsafe bytes must survive
		NullFrame(),
		Arr(),
		Arr(SimpleStr("a"), Int64(1), Bulk([]byte("b"))),
		Arr(Arr(Int64(1), Int64(2)), NullFrame()),
	}
}

func TestEncodeParseRoundTrip(t *testing.T) {
	for _, f := range roundTripCases() {
		encoded := Encode(f)
		var p Parser
		p.Feed(encoded)
		got, ok, err := p.Parse()
		require.NoError(t, err)
		require.True(t, ok)
		require.True(t, Equal(f, got), "round trip mismatch for %+v: got %+v", f, got)
	}
}

func TestParsePartialFeedEquivalence(t *testing.T) {
	f := Arr(SimpleStr("a"), Bulk([]byte("hello world")), Int64(42))
	encoded := Encode(f)

	for k := 0; k <= len(encoded); k++ {
		var p Parser
		p.Feed(encoded[:k])
		got, ok, err := p.Parse()
		require.NoError(t, err)
		if k < len(encoded) {
			require.False(t, ok, "split at %d should be incomplete", k)
			continue
		}
		require.True(t, ok)
		require.True(t, Equal(f, got))
	}

	// Feeding in two pieces at any split point matches feeding it whole.
	for k := 0; k <= len(encoded); k++ {
		var p Parser
		p.Feed(encoded[:k])
		_, ok, err := p.Parse()
		require.NoError(t, err)
		require.Equal(t, k == len(encoded), ok)
		p.Feed(encoded[k:])
		got, ok, err := p.Parse()
		require.NoError(t, err)
		require.True(t, ok)
		require.True(t, Equal(f, got))
	}
}

func TestParseDrainsMultipleFrames(t *testing.T) {
	f1 := SimpleStr("PONG")
	f2 := Bulk([]byte("hello"))
	var p Parser
	p.Feed(Encode(f1))
	p.Feed(Encode(f2))

	got1, ok, err := p.Parse()
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, Equal(f1, got1))

	got2, ok, err := p.Parse()
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, Equal(f2, got2))

	_, ok, err = p.Parse()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestParseArrayRetriesWholeOnPartialChild(t *testing.T) {
	f := Arr(Bulk([]byte("k")), Bulk([]byte("v")))
	encoded := Encode(f)

	var p Parser
	// Feed everything except the last byte: the array's second child is
	// incomplete, so the whole array must report "need more", not a
	// partial array with one consumed child.
	p.Feed(encoded[:len(encoded)-1])
	_, ok, err := p.Parse()
	require.NoError(t, err)
	require.False(t, ok)

	p.Feed(encoded[len(encoded)-1:])
	got, ok, err := p.Parse()
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, Equal(f, got))
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		err  error
	}{
		{"invalid first byte", []byte("X\r\n"), ErrInvalidFirstByte},
		{"invalid integer", []byte(":abc\r\n"), ErrInvalidInteger},
		{"invalid bulk length", []byte("$abc\r\n"), ErrInvalidBulkLen},
		{"invalid array length", []byte("*abc\r\n"), ErrInvalidArrayLen},
		{"invalid null", []byte("_XY"), ErrInvalidNull},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var p Parser
			p.Feed(tc.in)
			_, ok, err := p.Parse()
			require.False(t, ok)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestParseTruncatedNeverErrors(t *testing.T) {
	cases := [][]byte{
		{'+'},
		{'+', 'O', 'K'},
		{'$', '3'},
		{'$', '3', '\r', '\n', 'a'},
		{'*', '1', '\r', '\n'},
		{':'},
	}
	for _, in := range cases {
		var p Parser
		p.Feed(in)
		_, ok, err := p.Parse()
		require.NoError(t, err)
		require.False(t, ok)
	}
}

type chunkedConn struct {
	chunks [][]byte
	i      int
	out    bytes.Buffer
}

func (c *chunkedConn) Read(p []byte) (int, error) {
	if c.i >= len(c.chunks) {
		return 0, io.EOF
	}
	n := copy(p, c.chunks[c.i])
	c.i++
	return n, nil
}

func (c *chunkedConn) Write(p []byte) (int, error) {
	return c.out.Write(p)
}

func TestStreamNextAcrossReads(t *testing.T) {
	full := Encode(Arr(SimpleStr("GET"), Bulk([]byte("k"))))
	conn := &chunkedConn{chunks: [][]byte{full[:3], full[3:]}}
	s := NewStream(conn)

	got, err := s.Next()
	require.NoError(t, err)
	require.True(t, Equal(Arr(SimpleStr("GET"), Bulk([]byte("k"))), got))

	_, err = s.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestStreamNextUnexpectedEOF(t *testing.T) {
	conn := &chunkedConn{chunks: [][]byte{[]byte("$5\r\nhel")}}
	s := NewStream(conn)
	_, err := s.Next()
	require.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestStreamQueueFlush(t *testing.T) {
	conn := &chunkedConn{}
	s := NewStream(conn)
	s.Queue(SimpleStr("OK"))
	s.Queue(Int64(7))
	require.NoError(t, s.Flush())
	require.Equal(t, "+OK\r\n:7\r\n", conn.out.String())
}
