package utils

import (
	"net/http"
	"strings"
	"unicode/utf8"
)

// textMimePrefix identifies MIME types whose content is textual.
const textMimePrefix = "text/"

// IsBinaryData reports whether the provided byte slice appears to contain
// binary rather than textual data. A NUL byte always classifies the data as
// binary. Valid UTF-8 is textual; anything else falls back to MIME sniffing,
// which still admits NUL-free single-byte text encodings such as Latin-1.
func IsBinaryData(data []byte) bool {
	for _, byteValue := range data {
		if byteValue == 0 {
			return true
		}
	}
	if utf8.Valid(data) {
		return false
	}
	return !strings.HasPrefix(http.DetectContentType(data), textMimePrefix)
}
