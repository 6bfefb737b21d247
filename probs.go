package upkr

// Context index layout. Every binary decision in the stream is coded
// against one adaptive probability, addressed by its context index.
// The literal trie occupies 1..255 because the partially decoded byte
// (with its marker bit) doubles as the context index. Each length code
// owns 32 (continue, value) context pairs, one pair per bit position.
const (
	ctxIsMatch   = 0
	ctxLiteral   = 1
	ctxHasOffset = 256
	ctxOffset    = 257
	ctxLength    = ctxOffset + 2*lengthBitMax

	lengthBitMax = 32

	numContexts = ctxLength + 2*lengthBitMax
)

// probInit is the uniform starting estimate: P(bit=1) = 128/256.
const probInit = 128

func initProbs(probs *[numContexts]byte) {
	for i := range probs {
		probs[i] = probInit
	}
}

// nextProb adapts a probability after coding bit against it, moving
// 1/16th (rounded) of the remaining distance toward the observed
// outcome. Starting from 128 the estimate never reaches 0 or 256, so
// neither outcome ever becomes undecodable. The encoder must apply the
// exact same rule to stay in sync with the decoder.
func nextProb(p byte, bit uint32) byte {
	if bit != 0 {
		return p + byte((256-uint32(p)+8)>>4)
	}

	return p - byte((uint32(p)+8)>>4)
}
