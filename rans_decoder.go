package upkr

// ransRenormBound is the lower bound of the decoder state between bit
// decodes. Renormalization shifts in whole input bytes until the state
// is at least this value, which keeps the low byte usable as the
// probability interval sample. With byte renormalization and 8-bit
// probabilities the state always stays below 1<<20.
const ransRenormBound = 4096

type ransDecoder struct {
	src []byte
	pos int

	state uint32
}

func newRansDecoder(src []byte) *ransDecoder {
	return &ransDecoder{src: src}
}

// DecodeBit extracts one binary decision coded against *prob and
// adapts *prob toward the decoded outcome.
func (d *ransDecoder) DecodeBit(prob *byte) (uint32, error) {
	state := d.state

	for state < ransRenormBound {
		if d.pos == len(d.src) {
			return 0, ErrTruncatedInput
		}

		state = state<<8 | uint32(d.src[d.pos])
		d.pos++
	}

	p := uint32(*prob)

	var bit uint32

	if state&255 < p {
		state = p*(state>>8) + (state & 255)
		bit = 1
	} else {
		state = (256-p)*(state>>8) + (state & 255) - p
	}

	*prob = nextProb(byte(p), bit)
	d.state = state

	return bit, nil
}

// Consumed reports how many input bytes have been shifted into the
// state so far. Bytes after the terminator are never consumed.
func (d *ransDecoder) Consumed() int {
	return d.pos
}
