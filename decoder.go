package upkr

import (
	"fmt"
)

// Decoder reconstructs one payload from a raw compressed stream. All
// state is per-call: probabilities start uniform for every stream and
// nothing persists between decodes, so separate Decoder instances are
// independent and safe to run concurrently.
type Decoder struct {
	rd *ransDecoder
	w  *window

	probs [numContexts]byte

	prevWasMatch bool
	offset       uint32
}

func newDecoder(src []byte, w *window) *Decoder {
	d := &Decoder{
		rd: newRansDecoder(src),
		w:  w,
	}

	initProbs(&d.probs)

	return d
}

func (d *Decoder) decodeBit(ctx int) (uint32, error) {
	return d.rd.DecodeBit(&d.probs[ctx])
}

// decodeLength reads one self-terminating variable-length value of at
// least 1: pairs of (continue, value) bits, one context pair per bit
// position, with an implicit leading one bit at the final position.
// A code still continuing at position 32 would address contexts
// outside the 64-slot window reserved for base, so it is rejected;
// the largest decodable value is 1<<32 - 1.
func (d *Decoder) decodeLength(base int) (uint32, error) {
	var value uint32

	ctx := base

	for pos := 0; pos < lengthBitMax; pos++ {
		more, err := d.decodeBit(ctx)
		if err != nil {
			return 0, err
		}

		if more == 0 {
			return value | 1<<pos, nil
		}

		bit, err := d.decodeBit(ctx + 1)
		if err != nil {
			return 0, err
		}

		value |= bit << pos
		ctx += 2
	}

	return 0, ErrInvalidCode
}

// decodeLiteral walks the byte trie top-down. The node id accumulates
// the decoded high bits behind a marker bit and doubles as the context
// index, so statistics are scoped per bit position and prefix.
func (d *Decoder) decodeLiteral() (byte, error) {
	node := uint32(1)

	for node < 256 {
		bit, err := d.decodeBit(int(node))
		if err != nil {
			return 0, err
		}

		node = node<<1 + bit
	}

	return byte(node - 256), nil
}

// decodeOp decodes one operation: a literal byte, a match copy, or the
// stream terminator. It reports done=true on the terminator, which is
// a match whose offset code decodes to exactly 0. After a match the
// next match always re-decodes its offset with no flag bit; after a
// literal, context ctxHasOffset decides between a new offset and
// reusing the current one.
func (d *Decoder) decodeOp() (done bool, err error) {
	isMatch, err := d.decodeBit(ctxIsMatch)
	if err != nil {
		return false, err
	}

	if isMatch == 0 {
		b, err := d.decodeLiteral()
		if err != nil {
			return false, fmt.Errorf("decode literal: %w", err)
		}

		if err = d.w.PutByte(b); err != nil {
			return false, err
		}

		d.prevWasMatch = false

		return false, nil
	}

	newOffset := uint32(1)
	if !d.prevWasMatch {
		newOffset, err = d.decodeBit(ctxHasOffset)
		if err != nil {
			return false, err
		}
	}

	if newOffset != 0 {
		v, err := d.decodeLength(ctxOffset)
		if err != nil {
			return false, fmt.Errorf("decode offset: %w", err)
		}

		offset := v - 1
		if offset == 0 {
			return true, nil
		}

		if !d.w.CheckDistance(offset) {
			return false, ErrInvalidOffset
		}

		d.offset = offset
	} else if d.offset == 0 {
		return false, ErrInvalidOffset
	}

	length, err := d.decodeLength(ctxLength)
	if err != nil {
		return false, fmt.Errorf("decode match length: %w", err)
	}

	if err = d.w.CopyMatch(d.offset, length); err != nil {
		return false, err
	}

	d.prevWasMatch = true

	return false, nil
}

func (d *Decoder) unpack() error {
	for {
		done, err := d.decodeOp()
		if err != nil {
			return err
		}

		if done {
			return nil
		}
	}
}

// Unpack decompresses a raw stream into a new buffer, growing it as
// needed until the terminator. The stream carries no size header, so
// the output of a malformed stream is bounded only by what its bits
// can encode; use UnpackInto to enforce a hard output cap.
func Unpack(src []byte) ([]byte, error) {
	w := newGrowingWindow(4*len(src) + 64)

	d := newDecoder(src, w)
	if err := d.unpack(); err != nil {
		return nil, err
	}

	return w.Bytes(), nil
}

// UnpackInto decompresses a raw stream into dst, filling it strictly
// forward from its start, and returns the number of bytes written. If
// the payload does not fit in len(dst) it returns the bytes written so
// far and ErrOutputOverflow. Input bytes past the terminator are left
// unconsumed.
func UnpackInto(dst, src []byte) (int, error) {
	w := newWindow(dst)

	d := newDecoder(src, w)
	if err := d.unpack(); err != nil {
		return w.Len(), err
	}

	return w.Len(), nil
}
