package cuda

import (
	"bytes"
	"strings"
)

// NameBufferSize is the size of the buffer handed to DeviceName.
const NameBufferSize = 128

// DecodeName returns the text before the first zero byte of buf. A buffer
// without any zero byte decodes to the empty string. Invalid UTF-8 sequences
// are replaced with U+FFFD.
func DecodeName(buf []byte) string {
	n := bytes.IndexByte(buf, 0)
	if n < 0 {
		n = 0
	}
	return strings.ToValidUTF8(string(buf[:n]), "�")
}
