// Package whitelabel encodes and decodes the RP2350 USB white label OTP
// structure: the fixed 16-row header plus trailing string arena that the
// boot ROM reads when BOOTSEL presents a custom USB/mass-storage identity.
//
// The package is a thin façade over internal/encoder and internal/decoder;
// see those packages for the row-layout algorithms themselves.
package whitelabel

import (
	"github.com/go-rp2350/whitelabel/internal/decoder"
	"github.com/go-rp2350/whitelabel/internal/encoder"
	"github.com/go-rp2350/whitelabel/pkg/otptypes"
)

// Description, FieldValue, StringValue and Error are re-exported from
// pkg/otptypes so callers of this package never need to import it directly.
type (
	Description = otptypes.Description
	FieldValue  = otptypes.FieldValue
	StringValue = otptypes.StringValue
	Error       = otptypes.Error
	ErrKind     = otptypes.ErrKind
)

// Error kind constants, re-exported for callers that want to branch on them
// without importing pkg/otptypes.
const (
	KindInvalidJSON           = otptypes.KindInvalidJSON
	KindInvalidField          = otptypes.KindInvalidField
	KindStringTooLong         = otptypes.KindStringTooLong
	KindTruncatedInput        = otptypes.KindTruncatedInput
	KindInternalInconsistency = otptypes.KindInternalInconsistency
)

// ToOTPRows encodes desc into the flat row sequence described in spec.md §3:
// the 16-row header followed by the trailing string arena. The boot-flags
// word is returned alongside since both are byproducts of the same layout
// pass and a caller writing OTP needs both.
func ToOTPRows(desc Description) ([]uint16, uint32, error) {
	return encoder.Encode(desc)
}

// FromOTPRows reconstructs a Description from a row sequence and its
// boot-flags word, as read back from OTP or produced by ToOTPRows.
func FromOTPRows(rows []uint16, flags uint32) (Description, error) {
	return decoder.Decode(rows, flags)
}

// USBBootFlags returns the 32-bit boot-flags word ToOTPRows would compute
// for desc. It runs the full encode (including the row layout) and discards
// the rows.
func USBBootFlags(desc Description) (uint32, error) {
	_, flags, err := encoder.Encode(desc)
	return flags, err
}
