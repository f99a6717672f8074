// Package otptypes holds the shared value types passed between the façade,
// encoder, decoder, and string codec: the high-level Description, its
// per-field values, and the typed Error. None of these types carry behavior
// beyond small accessors — they are the contract the other packages agree on.
package otptypes

// StringValue is the logical payload of a STRDEF_* field.
type StringValue struct {
	// Text is the field's value as a Go string (UTF-8, as always in Go).
	Text string
	// UTF16 selects the on-OTP encoding: false packs one byte per ASCII
	// character two-per-row, true packs one UTF-16 code unit per row. Only
	// fields that allow UTF-16 (manufacturer, product, serial_number) may
	// set this; every other string field must leave it false.
	UTF16 bool
}

// FieldValue is a present field's payload. Exactly one of U16 or Str is
// meaningful, determined by the field's otpfields.FieldDef.Kind.
type FieldValue struct {
	U16 uint16
	Str StringValue
}

// Description maps a field index (0..15) to its value. A field absent from
// the map was "not provided" — distinct from "provided equal to default".
type Description map[int]FieldValue

// Clone returns a deep copy of d.
func (d Description) Clone() Description {
	out := make(Description, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Row is a single OTP row payload: the 16-bit ECC-managed value, with the
// 8-bit ECC itself out of scope for this library (spec.md §9).
type Row = uint16
