package common

// WipeByteArray overwrites the contents of b with zeros. Password bytes read
// from the terminal are wiped with it once they have been copied out.
//
// A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
