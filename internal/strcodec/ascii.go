package strcodec

import (
	"golang.org/x/text/encoding/charmap"

	"github.com/go-rp2350/whitelabel/pkg/otptypes"
)

// AsciiMin and AsciiMax bound the printable ASCII range every single-byte
// white label string is restricted to (spec.md §4.2).
const (
	AsciiMin = 0x20
	AsciiMax = 0x7E
)

// EncodeASCII packs s into one byte per character, validating that every
// character lies in the printable ASCII range. fieldIndex is only used to
// attribute a rejection to the right field.
func EncodeASCII(fieldIndex int, s string) ([]byte, error) {
	runes := []rune(s)
	out := make([]byte, len(runes))
	for i, r := range runes {
		if r < AsciiMin || r > AsciiMax {
			return nil, otptypes.InvalidField(fieldIndex, "non-ascii character in string field")
		}
		out[i] = byte(r)
	}
	// Confirmation pass: the accepted range is a strict subset of
	// Windows-1252, so round-tripping through the charmap decoder must
	// reproduce the same bytes. A mismatch here would mean AsciiMin/AsciiMax
	// and the decoder have drifted out of sync — a library bug, not a caller
	// error.
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(out)
	if err != nil || string(decoded) != string(out) {
		return nil, otptypes.InternalInconsistency("ascii confirmation decode mismatch")
	}
	return out, nil
}

// DecodeASCII converts raw single-byte arena data back to a Go string. Decode
// time is tolerant of any byte value (the decoder does not re-validate
// charset on readback, per spec.md §4.4 step 6-7), so bytes are interpreted
// as Windows-1252 rather than rejected outright.
func DecodeASCII(data []byte) string {
	s, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		// Decoding Windows-1252 bytes cannot fail (every byte value maps to
		// a code point); this branch exists only to satisfy the decoder
		// interface.
		return string(data)
	}
	return string(s)
}

// RequiresUTF16 reports whether s contains a character outside the printable
// ASCII range, forcing UTF-16 encoding for fields where that is permitted.
func RequiresUTF16(s string) bool {
	for _, r := range s {
		if r < AsciiMin || r > AsciiMax {
			return true
		}
	}
	return false
}
