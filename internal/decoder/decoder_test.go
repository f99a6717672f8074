package decoder

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-rp2350/whitelabel/internal/encoder"
	"github.com/go-rp2350/whitelabel/pkg/otpfields"
	"github.com/go-rp2350/whitelabel/pkg/otptypes"
)

func TestDecodeTruncatedInputTooFewRows(t *testing.T) {
	_, err := Decode(make([]uint16, 10), 0)
	require.Error(t, err)
	var fe *otptypes.Error
	require.ErrorAs(t, err, &fe)
	require.Equal(t, otptypes.KindTruncatedInput, fe.Kind)
}

func TestDecodeTruncatedInputShortArena(t *testing.T) {
	rows := make([]uint16, 16)
	rows[otpfields.IdxManufacturer] = uint16(16<<8 | 5) // claims 5 chars starting row 16
	_, err := Decode(rows, 1<<otpfields.IdxManufacturer|encoder.WhiteLabelAddrValid)
	require.Error(t, err)
	var fe *otptypes.Error
	require.ErrorAs(t, err, &fe)
	require.Equal(t, otptypes.KindTruncatedInput, fe.Kind)
}

func TestDecodeCorruptDescriptorOffsetInsideHeader(t *testing.T) {
	rows := make([]uint16, 32)
	rows[otpfields.IdxManufacturer] = uint16(10<<8 | 1) // offset 10 is inside the header
	_, err := Decode(rows, 1<<otpfields.IdxManufacturer)
	require.Error(t, err)
	var fe *otptypes.Error
	require.ErrorAs(t, err, &fe)
	require.Equal(t, otptypes.KindInternalInconsistency, fe.Kind)
}

func TestDecodeIgnoresUnflaggedHeaderSlots(t *testing.T) {
	rows := make([]uint16, 16)
	rows[otpfields.IdxUSBVid] = 0xBEEF // present in rows but flag bit unset
	desc, err := Decode(rows, 0)
	require.NoError(t, err)
	_, present := desc[otpfields.IdxUSBVid]
	require.False(t, present)
}

func TestDecodeOverlappingStringsInternalInconsistency(t *testing.T) {
	rows := make([]uint16, 18)
	rows[otpfields.IdxManufacturer] = uint16(16<<8 | 2) // 2 chars at row 16 -> 1 row
	rows[otpfields.IdxProduct] = uint16(16<<8 | 2)       // claims the same row
	flags := uint32(1<<otpfields.IdxManufacturer | 1<<otpfields.IdxProduct)
	_, err := Decode(rows, flags)
	require.Error(t, err)
	var fe *otptypes.Error
	require.ErrorAs(t, err, &fe)
	require.Equal(t, otptypes.KindInternalInconsistency, fe.Kind)
}

func TestRoundTripEncodeDecode(t *testing.T) {
	desc := otptypes.Description{
		otpfields.IdxUSBVid:        {U16: 0x2E8A},
		otpfields.IdxUSBPid:        {U16: 0x000F},
		otpfields.IdxUSBBcd:        {U16: 0x0100},
		otpfields.IdxManufacturer:  {Str: otptypes.StringValue{Text: "piers.rocks"}},
		otpfields.IdxProduct:       {Str: otptypes.StringValue{Text: "pico-otp"}},
		otpfields.IdxSerialNumber:  {Str: otptypes.StringValue{Text: "1234abcd"}},
		otpfields.IdxVolumeLabel:   {Str: otptypes.StringValue{Text: "PIERS.ROCKS"}},
		otpfields.IdxSCSIVendor:    {Str: otptypes.StringValue{Text: "piersrks"}},
		otpfields.IdxSCSIProduct:   {Str: otptypes.StringValue{Text: "pico-otp"}},
		otpfields.IdxSCSIVersion:   {Str: otptypes.StringValue{Text: "v123"}},
	}

	rows, flags, err := encoder.Encode(desc)
	require.NoError(t, err)

	got, err := Decode(rows, flags)
	require.NoError(t, err)
	require.Equal(t, desc, got)

	rows2, flags2, err := encoder.Encode(got)
	require.NoError(t, err)
	require.Equal(t, rows, rows2)
	require.Equal(t, flags, flags2)
}

func TestRoundTripSupplementaryCodePoint(t *testing.T) {
	desc := otptypes.Description{
		otpfields.IdxProduct: {Str: otptypes.StringValue{Text: "\U0001F600"}},
	}
	rows, flags, err := encoder.Encode(desc)
	require.NoError(t, err)

	got, err := Decode(rows, flags)
	require.NoError(t, err)
	require.Equal(t, "\U0001F600", got[otpfields.IdxProduct].Str.Text)
	require.True(t, got[otpfields.IdxProduct].Str.UTF16)
}

func TestRoundTripNumericFieldsPlusSomeStrings(t *testing.T) {
	desc := otptypes.Description{}
	for i := 0; i < otpfields.NumFields; i++ {
		f := otpfields.Catalog[i]
		if f.IsString() {
			continue
		}
		switch f.Kind {
		case otpfields.BCD16:
			desc[i] = otptypes.FieldValue{U16: 0x0199}
		case otpfields.U16M:
			desc[i] = otptypes.FieldValue{U16: 0xFA80}
		default:
			desc[i] = otptypes.FieldValue{U16: 0x1234}
		}
	}
	// Short strings only, to stay within the 255-row arena reach.
	desc[otpfields.IdxManufacturer] = otptypes.FieldValue{Str: otptypes.StringValue{Text: "Acme"}}
	desc[otpfields.IdxVolumeLabel] = otptypes.FieldValue{Str: otptypes.StringValue{Text: "VOL"}}
	desc[otpfields.IdxRedirectURL] = otptypes.FieldValue{Str: otptypes.StringValue{Text: "http://a"}}

	rows, flags, err := encoder.Encode(desc)
	require.NoError(t, err)
	got, err := Decode(rows, flags)
	require.NoError(t, err)
	require.Equal(t, desc, got)
}
