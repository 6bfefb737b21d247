package upkr

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
)

// Frame layout: 4 magic bytes, the unpacked length and an IEEE CRC-32
// of the unpacked data as little-endian uint32, then the raw stream.
const (
	frameMagic      = "UPK1"
	frameHeaderSize = 12
)

// FrameHeader describes a framed stream without decoding it.
type FrameHeader struct {
	UnpackedLen uint32
	Checksum    uint32
}

// ReadFrameHeader parses the frame header at the start of src.
func ReadFrameHeader(src []byte) (FrameHeader, error) {
	if len(src) < frameHeaderSize {
		return FrameHeader{}, ErrTruncatedInput
	}

	if string(src[:4]) != frameMagic {
		return FrameHeader{}, ErrBadMagic
	}

	return FrameHeader{
		UnpackedLen: binary.LittleEndian.Uint32(src[4:8]),
		Checksum:    binary.LittleEndian.Uint32(src[8:12]),
	}, nil
}

// PackFrame compresses src and wraps the stream in a frame carrying
// the unpacked length and checksum.
func PackFrame(src []byte, opts *PackOptions) ([]byte, error) {
	packed, err := Pack(src, opts)
	if err != nil {
		return nil, err
	}

	out := make([]byte, frameHeaderSize, frameHeaderSize+len(packed))
	copy(out, frameMagic)
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(src)))
	binary.LittleEndian.PutUint32(out[8:12], crc32.ChecksumIEEE(src))

	return append(out, packed...), nil
}

// UnpackFrame decodes a framed stream and verifies the unpacked data
// against the header.
func UnpackFrame(src []byte) ([]byte, error) {
	hdr, err := ReadFrameHeader(src)
	if err != nil {
		return nil, err
	}

	dst := make([]byte, hdr.UnpackedLen)

	n, err := UnpackInto(dst, src[frameHeaderSize:])
	if err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	if uint32(n) != hdr.UnpackedLen {
		return nil, ErrFrameSize
	}

	if crc32.ChecksumIEEE(dst) != hdr.Checksum {
		return nil, ErrChecksum
	}

	return dst, nil
}
