package frame

import (
	"errors"
	"io"
)

// ErrUnexpectedEOF is returned from Stream.Next when the peer closes the
// connection while a frame is only partially received.
var ErrUnexpectedEOF = errors.New("frame: unexpected EOF mid-frame")

const scratchSize = 1024

// Stream is a duplex wrapper around a byte-oriented transport. It presents
// a frame source (Next) that feeds a Parser from a fixed scratch buffer,
// and a frame sink (Queue/Flush) that accumulates encoded frames into an
// outbound buffer and flushes them with partial-write handling. A Stream
// owns its parser buffer exclusively; it is not safe for concurrent use by
// more than one reader or more than one writer.
type Stream struct {
	rw      io.ReadWriter
	parser  Parser
	scratch [scratchSize]byte
	out     []byte
}

// NewStream wraps rw as a frame source/sink.
func NewStream(rw io.ReadWriter) *Stream {
	return &Stream{rw: rw}
}

// Next returns the next complete frame, reading from the underlying
// transport as needed. On a clean EOF with nothing left half-parsed it
// returns io.EOF; on EOF with an incomplete frame still buffered it
// returns ErrUnexpectedEOF. Any other read error is returned as-is.
func (s *Stream) Next() (Frame, error) {
	for {
		f, ok, err := s.parser.Parse()
		if err != nil {
			return Frame{}, err
		}
		if ok {
			return f, nil
		}
		n, err := s.rw.Read(s.scratch[:])
		if n > 0 {
			s.parser.Feed(s.scratch[:n])
			// A Read may legally return n > 0 together with io.EOF;
			// try to drain what we just fed before honoring the error.
			continue
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				if len(s.parser.buf) == 0 {
					return Frame{}, io.EOF
				}
				return Frame{}, ErrUnexpectedEOF
			}
			return Frame{}, err
		}
	}
}

// Queue appends the encoding of f to the outbound buffer without writing
// to the transport yet, so a handler can batch several reply frames (e.g.
// a future multi-frame push) before one Flush.
func (s *Stream) Queue(f Frame) {
	s.out = AppendTo(s.out, f)
}

// Flush writes the queued bytes to the transport, retrying on partial
// writes, and resets the outbound buffer.
func (s *Stream) Flush() error {
	for len(s.out) > 0 {
		n, err := s.rw.Write(s.out)
		if err != nil {
			return err
		}
		s.out = s.out[n:]
	}
	s.out = s.out[:0]
	return nil
}
