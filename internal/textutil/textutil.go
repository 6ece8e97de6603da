package textutil

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// NumLength returns the number of decimal digits in n, ignoring the sign.
// Zero has length 1.
func NumLength(n int) int {
	// Widen before negating so math.MinInt does not overflow.
	u := uint64(n)
	if n < 0 {
		u = -u
	}
	length := 1
	for u >= 10 {
		u /= 10
		length++
	}
	return length
}

// TextWidth returns the display width of s as the length of its GBK
// encoding, where CJK characters occupy two bytes and ASCII one. A character
// GBK cannot represent counts as a single replacement byte. Invalid UTF-8,
// or an encoder failure, is measured in user-perceived characters instead.
func TextWidth(s string) int {
	if s == "" {
		return 0
	}
	if !utf8.ValidString(s) {
		return uniseg.GraphemeClusterCount(s)
	}
	encoded, err := encoding.ReplaceUnsupported(simplifiedchinese.GBK.NewEncoder()).String(s)
	if err != nil {
		return uniseg.GraphemeClusterCount(s)
	}
	return len(encoded)
}
