package upkr

import "errors"

// Errors reported by the decoder, the encoder and the frame layer.
// Decode errors signal malformed or truncated streams; conforming
// streams never produce them.
var (
	ErrTruncatedInput = errors.New("upkr: unexpected end of compressed data")
	ErrOutputOverflow = errors.New("upkr: decompressed data exceeds destination buffer")
	ErrInvalidCode    = errors.New("upkr: length code exceeds 32 bit positions")
	ErrInvalidOffset  = errors.New("upkr: match offset outside written output")
	ErrInvalidLevel   = errors.New("upkr: compression level out of range")
	ErrNilReader      = errors.New("upkr: reader is nil")
	ErrBadMagic       = errors.New("upkr: not a upkr frame")
	ErrChecksum       = errors.New("upkr: frame checksum mismatch")
	ErrFrameSize      = errors.New("upkr: unpacked size does not match frame header")
)
