package strcodec

import "unicode/utf16"

// EncodeUTF16 converts s to UTF-16 code units, expanding supplementary code
// points (e.g. U+1F600) into surrogate pairs the same way the standard
// library's utf16.Encode does for any other UTF-16 writer. Each returned code
// unit occupies exactly one OTP row.
func EncodeUTF16(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// DecodeUTF16 reconstructs a string from UTF-16 code units, recombining
// surrogate pairs back into their supplementary code points.
func DecodeUTF16(units []uint16) string {
	return string(utf16.Decode(units))
}
