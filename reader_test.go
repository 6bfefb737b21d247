package upkr

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReaderReadsWholePayload(t *testing.T) {
	r := require.New(t)

	payload := []byte(strings.Repeat("stream me through io.Reader. ", 64))
	packed, err := Pack(payload, nil)
	r.NoError(err)

	rd, err := NewReader(bytes.NewReader(packed))
	r.NoError(err)

	got, err := io.ReadAll(rd)
	r.NoError(err)
	r.Equal(payload, got)

	// Re-reading past the end keeps returning EOF.
	n, err := rd.Read(make([]byte, 16))
	r.Equal(0, n)
	r.ErrorIs(err, io.EOF)
}

func TestReaderSmallDestination(t *testing.T) {
	r := require.New(t)

	payload := []byte("byte by byte by byte")
	packed, err := Pack(payload, nil)
	r.NoError(err)

	rd := NewReaderBytes(packed)

	var got bytes.Buffer

	buf := make([]byte, 1)
	for {
		n, err := rd.Read(buf)
		got.Write(buf[:n])

		if err == io.EOF {
			break
		}
		r.NoError(err)
	}

	r.Equal(payload, got.Bytes())
}

func TestReaderEmptyPayload(t *testing.T) {
	r := require.New(t)

	packed, err := Pack(nil, nil)
	r.NoError(err)

	rd := NewReaderBytes(packed)

	n, err := rd.Read(make([]byte, 8))
	r.Equal(0, n)
	r.ErrorIs(err, io.EOF)
}

func TestReaderZeroLengthRead(t *testing.T) {
	r := require.New(t)

	packed, err := Pack([]byte("zzz"), nil)
	r.NoError(err)

	rd := NewReaderBytes(packed)

	n, err := rd.Read(nil)
	r.NoError(err)
	r.Equal(0, n)

	got, err := io.ReadAll(rd)
	r.NoError(err)
	r.Equal([]byte("zzz"), got)
}

func TestNewReaderNilSource(t *testing.T) {
	r := require.New(t)

	_, err := NewReader(nil)
	r.ErrorIs(err, ErrNilReader)
}

func TestReaderPropagatesDecodeError(t *testing.T) {
	r := require.New(t)

	src := buildStream(func(e *Encoder) {
		e.encodeBit(ctxIsMatch, 1)
		e.encodeBit(ctxHasOffset, 1)
		e.encodeLength(ctxOffset, 100)
		e.encodeLength(ctxLength, 4)
		e.encodeEOS()
	})

	rd := NewReaderBytes(src)

	_, err := io.ReadAll(rd)
	r.ErrorIs(err, ErrInvalidOffset)
}

func TestReaderAgainstUnpack(t *testing.T) {
	r := require.New(t)

	payload := testPayloads()["mixed"]
	packed, err := Pack(payload, &PackOptions{Level: 3})
	r.NoError(err)

	want, err := Unpack(packed)
	r.NoError(err)

	var got bytes.Buffer

	rd := NewReaderBytes(packed)
	_, err = io.Copy(&got, rd)
	r.NoError(err)

	r.Equal(want, got.Bytes())
}
