package sbor

// Size prefixes are unsigned LEB128: 7 payload bits per byte, MSB set on
// every byte but the last. DefaultMaxSize bounds both the encoder (refuses
// to emit a larger size) and the decoder (refuses to believe a larger size
// was ever legitimately encoded) — a payload claiming a huge array length it
// doesn't actually contain is exactly the attack this ceiling stops.
const DefaultMaxSize = 1 << 28

// maxSizeLEB128Bytes bounds how many continuation bytes a canonical size
// prefix may use; 5 bytes of 7 bits each covers anything up to 1<<35, well
// past DefaultMaxSize, so a canonical encoding never needs more and a
// payload that does is malformed.
const maxSizeLEB128Bytes = 5

func encodeSize(n int, maxSize int) ([]byte, error) {
	if n < 0 || n > maxSize {
		return nil, ErrInvalidSize
	}
	u := uint64(n)
	var out []byte
	for {
		b := byte(u & 0x7f)
		u >>= 7
		if u != 0 {
			out = append(out, b|0x80)
		} else {
			out = append(out, b)
			break
		}
	}
	return out, nil
}

func decodeSize(read func() (byte, error), maxSize int) (int, error) {
	var result uint64
	var shift uint
	for i := 0; i < maxSizeLEB128Bytes; i++ {
		b, err := read()
		if err != nil {
			return 0, err
		}
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			if result > uint64(maxSize) {
				return 0, ErrInvalidSize
			}
			return int(result), nil
		}
		shift += 7
	}
	return 0, ErrInvalidSize
}
