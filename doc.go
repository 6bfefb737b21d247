/*
Package upkr implements the upkr compressed format for size-optimized
payloads such as demo and intro executables.

Format: a single rANS-coded bit stream with one adaptive probability
per context. Context 0 selects literal or match. Contexts 1..255 form
a binary trie over literal bytes. Context 256 selects between a new
offset and reuse of the current one after a literal. Two banks of 64
contexts code offsets and match lengths as interleaved (continue, data)
bit pairs. Offsets are coded as offset+1; a new offset of zero
terminates the stream. Matches may overlap their own output and are
copied byte by byte.

Use Pack(src, opts) to compress with nil for the default level.
Use Unpack(src) when the unpacked size is unknown, UnpackInto(dst, src)
to decode into a caller buffer of known size.
Use PackFrame and UnpackFrame for a self-describing container with the
unpacked length and an IEEE CRC-32 of the content.
Use NewReader or NewReaderBytes to consume the unpacked data through
io.Reader.

# Examples

Round-trip compress and decompress:

	packed, err := upkr.Pack(data, nil)
	if err != nil {
		return err
	}
	unpacked, err := upkr.Unpack(packed)
	if err != nil {
		return err
	}
	// unpacked equals data

Decode into a preallocated buffer of known size:

	buf := make([]byte, unpackedLen)
	n, err := upkr.UnpackInto(buf, packed)
	if err != nil {
		return err
	}
	_ = buf[:n]

Framed round trip with length and checksum verification:

	frame, err := upkr.PackFrame(data, &upkr.PackOptions{Level: 9})
	if err != nil {
		return err
	}
	unpacked, err := upkr.UnpackFrame(frame)
	if err != nil {
		return err
	}
*/
package upkr
