package utils

// ConcatAll packs parts back to back into a fresh slice, the abi.encodePacked layout of
// fixed-width fields. Nil parts contribute nothing.
func ConcatAll(parts ...[]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]byte, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
