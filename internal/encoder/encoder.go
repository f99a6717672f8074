// Package encoder implements the bidirectional codec's write side: turning a
// validated Description into the 16-row header, trailing string arena, and
// 32-bit boot-flags word the RP2350 boot ROM expects (spec.md §4.3).
package encoder

import (
	"github.com/go-rp2350/whitelabel/internal/rowbuf"
	"github.com/go-rp2350/whitelabel/internal/strcodec"
	"github.com/go-rp2350/whitelabel/pkg/otpfields"
	"github.com/go-rp2350/whitelabel/pkg/otptypes"
)

// WhiteLabelAddrValid is the "white-label address valid" bit of the 32-bit
// boot-flags word (mask 0x00400000, bit 22). Always set whenever the encoder
// emits any white-label data, per spec.md §6 and the resolution of the Open
// Question in spec.md §9.
const WhiteLabelAddrValid uint32 = 1 << 22

type pendingString struct {
	slot  int
	rows  []uint16
	utf16 bool
	chars int
}

// Encode implements spec.md §4.3. Encoding is transactional: on any error, no
// partial row buffer is returned.
func Encode(desc otptypes.Description) ([]uint16, uint32, error) {
	header := make([]uint16, otpfields.NumFields)
	var flags uint32
	var pending []pendingString

	for i := 0; i < otpfields.NumFields; i++ {
		fv, ok := desc[i]
		if !ok {
			continue
		}
		flags |= 1 << uint(i)
		field := otpfields.Catalog[i]

		if !field.IsString() {
			if err := validateNumeric(field, fv.U16); err != nil {
				return nil, 0, err
			}
			header[i] = fv.U16
			continue
		}

		ps, err := encodeString(field, fv.Str)
		if err != nil {
			return nil, 0, err
		}
		pending = append(pending, ps)
	}

	arena, err := layoutArena(header, pending)
	if err != nil {
		return nil, 0, err
	}

	flags |= WhiteLabelAddrValid

	rows := make([]uint16, 0, otpfields.NumFields+len(arena))
	rows = append(rows, header...)
	rows = append(rows, arena...)
	return rows, flags, nil
}

func encodeString(field otpfields.FieldDef, sv otptypes.StringValue) (pendingString, error) {
	useUTF16 := sv.UTF16
	if strcodec.RequiresUTF16(sv.Text) {
		if !field.AllowUTF16 {
			return pendingString{}, otptypes.InvalidField(field.Index, "non-ascii character not permitted for this field")
		}
		useUTF16 = true
	}
	if useUTF16 && !field.AllowUTF16 {
		return pendingString{}, otptypes.InvalidField(field.Index, "utf-16 encoding not permitted for this field")
	}

	if useUTF16 {
		units := strcodec.EncodeUTF16(sv.Text)
		if len(units) > field.MaxChars {
			return pendingString{}, otptypes.InvalidField(field.Index, "string exceeds maximum character count")
		}
		return pendingString{slot: field.Index, rows: units, utf16: true, chars: len(units)}, nil
	}

	b, err := strcodec.EncodeASCII(field.Index, sv.Text)
	if err != nil {
		return pendingString{}, err
	}
	if len(b) > field.MaxChars {
		return pendingString{}, otptypes.InvalidField(field.Index, "string exceeds maximum character count")
	}
	rows := rowbuf.FromBytes(b)
	return pendingString{slot: field.Index, rows: rows, utf16: false, chars: len(b)}, nil
}

// layoutArena lays out pending strings in ascending field index (the order
// they were appended, since the caller iterates fields 0..15), fills each
// string's descriptor into header, and returns the concatenated arena rows.
func layoutArena(header []uint16, pending []pendingString) ([]uint16, error) {
	var arena []uint16
	for _, ps := range pending {
		offset := otpfields.WhiteLabelHeaderStart + len(arena)
		if offset > otpfields.MaxArenaOffset {
			return nil, otptypes.StringTooLong(ps.slot)
		}
		desc := strcodec.Descriptor{Offset: offset, Length: ps.chars, UTF16: ps.utf16}
		packed, err := desc.Pack()
		if err != nil {
			return nil, otptypes.InternalInconsistency(err.Error())
		}
		header[ps.slot] = packed
		arena = append(arena, ps.rows...)
	}
	return arena, nil
}

// legalAttrMasks are the only allowed values for the low (attributes) byte
// of the U16_M field (spec.md §4.3 error conditions).
var legalAttrMasks = map[byte]bool{0x80: true, 0xA0: true, 0xC0: true, 0xE0: true}

func validateNumeric(field otpfields.FieldDef, v uint16) error {
	switch field.Kind {
	case otpfields.BCD16:
		hi, lo := byte(v>>8), byte(v&0xFF)
		for _, b := range [2]byte{hi, lo} {
			if b>>4 > 9 || b&0xF > 9 {
				return otptypes.InvalidField(field.Index, "bcd digit out of range")
			}
		}
	case otpfields.U16M:
		attrs := byte(v & 0xFF)
		if !legalAttrMasks[attrs] {
			return otptypes.InvalidField(field.Index, "attributes byte outside legal mask")
		}
	}
	return nil
}
