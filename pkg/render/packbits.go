package render

import (
	"bytes"
	"errors"
	"fmt"
)

// Rendered planes are PackBits encoded in the cache: windowed planes carry
// long clamped runs at the codomain ends. Header byte n: 0..127 copies the
// next n+1 bytes, -1..-127 repeats the next byte 1-n times, -128 is a no-op.

const maxPackRun = 128

func packBits(data []byte) []byte {
	if len(data) == 0 {
		return nil
	}
	var buf bytes.Buffer
	buf.Grow(len(data) / 2)

	i := 0
	for i < len(data) {
		run := 1
		for i+run < len(data) && run < maxPackRun && data[i+run] == data[i] {
			run++
		}
		if run > 1 {
			buf.WriteByte(byte(int8(1 - run)))
			buf.WriteByte(data[i])
			i += run
			continue
		}

		// literal until three equal bytes start a run
		n := 1
		for i+n < len(data) && n < maxPackRun {
			if i+n+2 < len(data) && data[i+n] == data[i+n+1] && data[i+n] == data[i+n+2] {
				break
			}
			n++
		}
		buf.WriteByte(byte(n - 1))
		buf.Write(data[i : i+n])
		i += n
	}
	return buf.Bytes()
}

// unpackBits decodes data, stopping once size bytes are produced
func unpackBits(data []byte, size int) ([]byte, error) {
	out := make([]byte, 0, size)
	i := 0
	for i < len(data) && len(out) < size {
		n := int8(data[i])
		i++
		switch {
		case n == -128:
		case n >= 0:
			count := int(n) + 1
			if i+count > len(data) {
				return nil, fmt.Errorf("packbits: literal of %d truncated at %d/%d", count, i, len(data))
			}
			out = append(out, data[i:i+count]...)
			i += count
		default:
			if i >= len(data) {
				return nil, errors.New("packbits: repeat truncated")
			}
			out = append(out, bytes.Repeat(data[i:i+1], 1-int(n))...)
			i++
		}
	}
	if len(out) != size {
		return nil, fmt.Errorf("packbits: decoded %d bytes, want %d", len(out), size)
	}
	return out, nil
}
