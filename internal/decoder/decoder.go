// Package decoder implements the bidirectional codec's read side: turning a
// row sequence read back from OTP (or produced by Encode) plus the
// boot-flags word into a Description (spec.md §4.4).
package decoder

import (
	"fmt"

	"github.com/go-rp2350/whitelabel/internal/rowbuf"
	"github.com/go-rp2350/whitelabel/internal/strcodec"
	"github.com/go-rp2350/whitelabel/pkg/otpfields"
	"github.com/go-rp2350/whitelabel/pkg/otptypes"
)

// WhiteLabelAddrValid mirrors encoder.WhiteLabelAddrValid; duplicated here
// (rather than imported) to keep encoder and decoder independently buildable
// leaves in the dependency graph, matching spec.md §2's stated leaf order.
const WhiteLabelAddrValid uint32 = 1 << 22

type stringRange struct {
	slot       int
	start, end int // row indices, end exclusive
}

// Decode implements spec.md §4.4.
func Decode(rows []uint16, flags uint32) (otptypes.Description, error) {
	if len(rows) < otpfields.NumFields {
		return nil, otptypes.TruncatedInput(fmt.Sprintf("need at least %d rows, have %d", otpfields.NumFields, len(rows)))
	}

	desc := make(otptypes.Description)
	var ranges []stringRange

	for i := 0; i < otpfields.NumFields; i++ {
		if flags&(1<<uint(i)) == 0 {
			continue
		}
		field := otpfields.Catalog[i]

		if !field.IsString() {
			desc[i] = otptypes.FieldValue{U16: rows[i]}
			continue
		}

		d := strcodec.UnpackDescriptor(rows[i])
		if err := validateDescriptor(field, d); err != nil {
			return nil, err
		}

		nBytes := d.Length * d.BytesPerChar()
		nRows := rowbuf.CeilDiv2(nBytes)
		arena, ok := rowbuf.Slice(rows, d.Offset, nRows)
		if !ok {
			return nil, otptypes.TruncatedInput(fmt.Sprintf("field %d string data extends past supplied rows", i))
		}
		end := d.Offset + nRows

		for _, r := range ranges {
			if d.Offset < r.end && end > r.start {
				return nil, otptypes.InternalInconsistency(
					fmt.Sprintf("string for field %d overlaps string for field %d", i, r.slot))
			}
		}
		ranges = append(ranges, stringRange{slot: i, start: d.Offset, end: end})

		var text string
		if d.UTF16 {
			text = strcodec.DecodeUTF16(arena[:d.Length])
		} else {
			b := rowbuf.ToBytes(arena)[:d.Length]
			text = strcodec.DecodeASCII(b)
		}
		desc[i] = otptypes.FieldValue{Str: otptypes.StringValue{Text: text, UTF16: d.UTF16}}
	}

	return desc, nil
}

func validateDescriptor(field otpfields.FieldDef, d strcodec.Descriptor) error {
	if d.Offset < otpfields.WhiteLabelHeaderStart {
		return otptypes.InternalInconsistency(
			fmt.Sprintf("field %d descriptor offset %d inside header", field.Index, d.Offset))
	}
	if d.Length > field.MaxChars {
		return otptypes.InternalInconsistency(
			fmt.Sprintf("field %d descriptor length %d exceeds maximum %d", field.Index, d.Length, field.MaxChars))
	}
	if d.UTF16 && !field.AllowUTF16 {
		return otptypes.InternalInconsistency(
			fmt.Sprintf("field %d descriptor claims utf-16 but field does not permit it", field.Index))
	}
	return nil
}
