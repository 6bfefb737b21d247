package upkr

import "math/bits"

// match is one parse step: unmatched literal bytes from the current
// position, then (when length > 0) a copy of length bytes from
// distance back.
type match struct {
	unmatched int
	length    int
	distance  int
}

const (
	matchHashLen  = 3
	matchHashBits = 15

	// literalCost is the coded decisions per literal: the operation
	// flag plus eight trie bits.
	literalCost = 9
)

type levelParams struct {
	chain int
	nice  int
	lazy  bool
}

// packLevels maps Level to search effort. chain is the number of
// candidates tried per position and nice is the match length at which
// the search stops early; lazy enables one-position lookahead.
var packLevels = [MaxLevel + 1]levelParams{
	{chain: 1, nice: 8},
	{chain: 2, nice: 16},
	{chain: 4, nice: 24},
	{chain: 8, nice: 32},
	{chain: 16, nice: 48, lazy: true},
	{chain: 32, nice: 64, lazy: true},
	{chain: 64, nice: 96, lazy: true},
	{chain: 128, nice: 128, lazy: true},
	{chain: 512, nice: 256, lazy: true},
	{chain: 4096, nice: 1024, lazy: true},
}

// lengthCodeCost is the coded decisions for one length-code value:
// a (continue, value) pair per explicit bit plus the terminating
// continue bit.
func lengthCodeCost(v uint32) int {
	return 2*(bits.Len32(v)-1) + 1
}

// matchCost is the coded decisions for one match operation. hasFlag is
// true when the previous operation is a literal (the has-offset flag
// is present), newOffset when the offset code itself is emitted.
func matchCost(dist, length uint32, hasFlag, newOffset bool) int {
	c := 1

	if hasFlag {
		c++
	}

	if newOffset {
		c += lengthCodeCost(dist + 1)
	}

	return c + lengthCodeCost(length)
}

type matchFinder struct {
	src []byte

	// head maps a hash to the most recent position + 1; prev chains
	// each inserted position to the previous one with the same hash.
	head []int32
	prev []int32

	chain int
	nice  int
}

func newMatchFinder(src []byte, p levelParams) *matchFinder {
	return &matchFinder{
		src:   src,
		head:  make([]int32, 1<<matchHashBits),
		prev:  make([]int32, len(src)),
		chain: p.chain,
		nice:  p.nice,
	}
}

func (f *matchFinder) hash(pos int) uint32 {
	v := uint32(f.src[pos]) | uint32(f.src[pos+1])<<8 | uint32(f.src[pos+2])<<16

	return v * 0x9E3779B1 >> (32 - matchHashBits)
}

func (f *matchFinder) insert(pos int) {
	if pos+matchHashLen > len(f.src) {
		return
	}

	h := f.hash(pos)
	f.prev[pos] = f.head[h]
	f.head[h] = int32(pos + 1)
}

func matchLen(src []byte, a, b, max int) int {
	n := 0

	for n < max && src[a+n] == src[b+n] {
		n++
	}

	return n
}

// search returns the most profitable match at pos, judged by coded
// decisions saved against coding the same bytes as literals. repDist
// is checked first even below the hash length: reusing the previous
// offset after a literal skips the offset code entirely, so it pays
// from length 1.
func (f *matchFinder) search(pos, repDist int, afterLiteral bool) (length, dist, gain int) {
	limit := len(f.src) - pos

	if afterLiteral && repDist > 0 && repDist <= pos {
		if n := matchLen(f.src, pos-repDist, pos, limit); n > 0 {
			g := n*literalCost - matchCost(uint32(repDist), uint32(n), true, false)
			if g > gain {
				length, dist, gain = n, repDist, g
			}
		}
	}

	if pos+matchHashLen > len(f.src) {
		return length, dist, gain
	}

	cand := f.head[f.hash(pos)]

	for depth := f.chain; depth > 0 && cand > 0; depth-- {
		cpos := int(cand) - 1
		cand = f.prev[cpos]

		n := matchLen(f.src, cpos, pos, limit)
		if n < matchHashLen {
			continue
		}

		d := pos - cpos
		newOffset := !afterLiteral || d != repDist

		g := n*literalCost - matchCost(uint32(d), uint32(n), afterLiteral, newOffset)
		if g > gain {
			length, dist, gain = n, d, g
		}

		if n >= f.nice {
			break
		}
	}

	return length, dist, gain
}

// findMatches parses src into a literal/match sequence. Greedy with
// one-position lazy lookahead at the higher levels: a match is
// deferred by one literal when the next position offers a better one.
func findMatches(src []byte, level int) []match {
	if len(src) == 0 {
		return nil
	}

	p := packLevels[level]
	f := newMatchFinder(src, p)

	var seq []match

	lastLit := 0
	lastOffset := 0

	pos := 0
	for pos < len(src) {
		afterLiteral := pos > lastLit || len(seq) == 0
		length, dist, gain := f.search(pos, lastOffset, afterLiteral)

		inserted := false

		if p.lazy && gain > 0 && pos+1 < len(src) {
			f.insert(pos)
			inserted = true

			if _, _, g := f.search(pos+1, lastOffset, true); g > gain {
				pos++
				continue
			}
		}

		if gain > 0 {
			seq = append(seq, match{unmatched: pos - lastLit, length: length, distance: dist})

			start := pos
			if inserted {
				start++
			}
			for i := start; i < pos+length; i++ {
				f.insert(i)
			}

			pos += length
			lastLit = pos
			lastOffset = dist

			continue
		}

		if !inserted {
			f.insert(pos)
		}
		pos++
	}

	if lastLit < len(src) {
		seq = append(seq, match{unmatched: len(src) - lastLit})
	}

	return seq
}
