package upkr

// codedBit is one recorded binary decision: the probability the model
// held when the bit was coded, and the bit itself.
type codedBit struct {
	prob byte
	bit  byte
}

// ransEncoder turns a trace of adaptively coded decisions into a raw
// stream. Encoding runs in two passes because rANS emits in reverse:
// the model pass records (probability, bit) in decode order, then
// finish walks the trace backwards building the byte stream the
// decoder consumes forwards.
type ransEncoder struct {
	trace []codedBit
}

func (e *ransEncoder) push(prob byte, bit uint32) {
	e.trace = append(e.trace, codedBit{prob: prob, bit: byte(bit)})
}

// finish encodes the recorded trace and returns the stream. The state
// is kept in [4096, 1<<20) between decisions, mirroring the decoder's
// renormalization invariant: emit low bytes while state >= freq<<12,
// then map the state into the outcome's slice of the byte interval.
// The final state is flushed big-endian; any proper prefix of the
// flush is below 4096, so the decoder's initial renormalization
// consumes exactly these bytes.
func (e *ransEncoder) finish() []byte {
	state := uint32(ransRenormBound)

	tail := make([]byte, 0, len(e.trace)/4+8)

	for i := len(e.trace) - 1; i >= 0; i-- {
		cb := e.trace[i]

		freq := uint32(cb.prob)
		start := uint32(0)

		if cb.bit == 0 {
			freq = 256 - uint32(cb.prob)
			start = uint32(cb.prob)
		}

		for state >= freq<<12 {
			tail = append(tail, byte(state))
			state >>= 8
		}

		state = (state/freq)<<8 | (state%freq + start)
	}

	flush := 2
	if state >= 1<<16 {
		flush = 3
	}

	out := make([]byte, 0, flush+len(tail))

	for i := flush - 1; i >= 0; i-- {
		out = append(out, byte(state>>(8*i)))
	}

	for i := len(tail) - 1; i >= 0; i-- {
		out = append(out, tail[i])
	}

	return out
}
