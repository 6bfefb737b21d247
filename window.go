package upkr

// window is the decoder's output writer. Output grows strictly forward
// and the whole of it stays addressable, since match offsets have no
// upper bound short of the bytes written so far. In fixed mode the
// buffer caps at the caller's destination length and PutByte reports
// overflow instead of growing.
type window struct {
	buf   []byte
	fixed bool
}

func newWindow(dst []byte) *window {
	return &window{
		buf:   dst[:0:len(dst)],
		fixed: true,
	}
}

func newGrowingWindow(sizeHint int) *window {
	return &window{
		buf: make([]byte, 0, sizeHint),
	}
}

func (w *window) PutByte(b byte) error {
	if w.fixed && len(w.buf) == cap(w.buf) {
		return ErrOutputOverflow
	}

	w.buf = append(w.buf, b)

	return nil
}

func (w *window) GetByte(dist uint32) byte {
	return w.buf[uint32(len(w.buf))-dist]
}

// CopyMatch copies length bytes from dist back, one byte at a time in
// increasing address order. The source may overlap the destination;
// bytes written earlier in the same copy must be visible to later
// reads (run-length expansion via dist < length depends on it).
func (w *window) CopyMatch(dist uint32, length uint32) error {
	for ; length > 0; length-- {
		if err := w.PutByte(w.GetByte(dist)); err != nil {
			return err
		}
	}

	return nil
}

func (w *window) CheckDistance(dist uint32) bool {
	return dist >= 1 && uint64(dist) <= uint64(len(w.buf))
}

func (w *window) Len() int {
	return len(w.buf)
}

func (w *window) Bytes() []byte {
	return w.buf
}
