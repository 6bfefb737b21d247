package upkr

import "math/bits"

// Compression levels. The level selects match-search effort only; the
// wire format is identical at every level.
const (
	MinLevel     = 0
	MaxLevel     = 9
	DefaultLevel = 6
)

// PackOptions configures Pack. The zero Level is a valid (fastest)
// level; use DefaultPackOptions for the default.
type PackOptions struct {
	// Level selects match-search effort, MinLevel..MaxLevel.
	Level int
}

// DefaultPackOptions returns options with the default compression level.
func DefaultPackOptions() *PackOptions {
	return &PackOptions{
		Level: DefaultLevel,
	}
}

// Encoder emits the binary decisions of one stream in decode order,
// maintaining the same adaptive probability table as the decoder.
type Encoder struct {
	re ransEncoder

	probs [numContexts]byte

	prevWasMatch bool
	offset       uint32
}

func newEncoder() *Encoder {
	e := &Encoder{}
	initProbs(&e.probs)

	return e
}

func (e *Encoder) encodeBit(ctx int, bit uint32) {
	p := e.probs[ctx]
	e.re.push(p, bit)
	e.probs[ctx] = nextProb(p, bit)
}

// encodeLength emits v (>= 1) as (continue, value) bit pairs with an
// implicit leading one: the inverse of Decoder.decodeLength. Values up
// to 1<<32 - 1 fit the 32 reserved bit positions.
func (e *Encoder) encodeLength(base int, v uint32) {
	top := bits.Len32(v) - 1
	ctx := base

	for pos := 0; pos < top; pos++ {
		e.encodeBit(ctx, 1)
		e.encodeBit(ctx+1, v>>pos&1)
		ctx += 2
	}

	e.encodeBit(ctx, 0)
}

func (e *Encoder) encodeLiteral(b byte) {
	e.encodeBit(ctxIsMatch, 0)

	node := uint32(1)

	for i := 7; i >= 0; i-- {
		bit := uint32(b>>i) & 1
		e.encodeBit(int(node), bit)
		node = node<<1 + bit
	}

	e.prevWasMatch = false
}

// encodeMatch emits a copy of length bytes from dist back. The offset
// code is skipped when dist equals the current offset and the previous
// operation was a literal; after a match the decoder re-reads the
// offset unconditionally, so it is always coded then.
func (e *Encoder) encodeMatch(dist, length uint32) {
	e.encodeBit(ctxIsMatch, 1)

	if e.prevWasMatch {
		e.encodeLength(ctxOffset, dist+1)
	} else if dist == e.offset {
		e.encodeBit(ctxHasOffset, 0)
	} else {
		e.encodeBit(ctxHasOffset, 1)
		e.encodeLength(ctxOffset, dist+1)
	}

	e.encodeLength(ctxLength, length)

	e.offset = dist
	e.prevWasMatch = true
}

// encodeEOS terminates the stream: a match operation whose offset code
// is exactly 1 (offset 0), after which the decoder stops without
// reading a length.
func (e *Encoder) encodeEOS() {
	e.encodeBit(ctxIsMatch, 1)

	if !e.prevWasMatch {
		e.encodeBit(ctxHasOffset, 1)
	}

	e.encodeLength(ctxOffset, 1)
}

// Pack compresses src into a raw stream. A nil opts means
// DefaultPackOptions. Packing an empty payload produces a valid
// terminator-only stream.
func Pack(src []byte, opts *PackOptions) ([]byte, error) {
	if opts == nil {
		opts = DefaultPackOptions()
	}

	if opts.Level < MinLevel || opts.Level > MaxLevel {
		return nil, ErrInvalidLevel
	}

	e := newEncoder()

	pos := 0
	for _, m := range findMatches(src, opts.Level) {
		for end := pos + m.unmatched; pos < end; pos++ {
			e.encodeLiteral(src[pos])
		}

		if m.length > 0 {
			e.encodeMatch(uint32(m.distance), uint32(m.length))
			pos += m.length
		}
	}

	e.encodeEOS()

	return e.re.finish(), nil
}
