package upkr

import (
	"fmt"
	"io"
)

// Reader decompresses a upkr stream through the io.Reader interface.
// The compressed input is held in memory: the entropy coder gives no
// way to bound how much of it one operation consumes, and the format
// targets payloads of at most a few hundred kilobytes.
type Reader struct {
	dec *Decoder

	readPos       int
	isEndOfStream bool
}

// NewReader buffers the compressed stream from inStream and returns a
// Reader decoding it.
func NewReader(inStream io.Reader) (*Reader, error) {
	if inStream == nil {
		return nil, ErrNilReader
	}

	src, err := io.ReadAll(inStream)
	if err != nil {
		return nil, fmt.Errorf("read compressed stream: %w", err)
	}

	return NewReaderBytes(src), nil
}

// NewReaderBytes returns a Reader decoding the compressed bytes in src.
func NewReaderBytes(src []byte) *Reader {
	return &Reader{
		dec: newDecoder(src, newGrowingWindow(4*len(src)+64)),
	}
}

func (r *Reader) Read(p []byte) (n int, err error) {
	for {
		if pending := r.dec.w.Bytes()[r.readPos:]; len(pending) > 0 {
			k := copy(p[n:], pending)
			n += k
			r.readPos += k

			if n >= len(p) {
				return n, nil
			}
		}

		if r.isEndOfStream {
			if n > 0 {
				return n, nil
			}

			return 0, io.EOF
		}

		done, err := r.dec.decodeOp()
		if err != nil {
			return n, err
		}
		if done {
			r.isEndOfStream = true
		}
	}
}
