package lang

import "unsafe"

// bytesToString views b as a string without copying. Every caller passes a
// slice of the parser's own input buffer, which the caller has already
// agreed not to mutate again once parsing returns an Action — see Parse's
// doc comment.
func bytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}

	return unsafe.String(&b[0], len(b))
}
