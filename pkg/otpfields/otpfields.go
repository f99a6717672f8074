// Package otpfields holds the static catalog of the 16 RP2350 USB white
// label fields. It is data, not logic: the Encoder and Decoder both consult
// Catalog to learn a field's kind, length limit and charset policy, but
// neither this package nor its callers mutate it.
package otpfields

// Kind identifies how a field's 16-bit header slot is interpreted.
type Kind int

const (
	// U16 is a plain big-endian-free 16-bit integer (vid, pid, lang_id).
	U16 Kind = iota
	// BCD16 packs two decimal digits per byte (USB bcdDevice).
	BCD16
	// U16M packs an attributes byte and a max-power byte.
	U16M
	// StrDefA is an ASCII-only STRDEF string field.
	StrDefA
	// StrDefU is a STRDEF string field that may use the UTF-16 encoding.
	StrDefU
	// StrDef is the SCSI vendor field: ASCII-only but kept as its own kind
	// to mirror the field table in the spec, which lists it distinctly from
	// STRDEF_A even though the charset policy is identical.
	StrDef
)

// FieldDef describes one of the 16 catalog entries.
type FieldDef struct {
	Index      int
	Name       string // human-readable field name
	JSONGroup  string // "device", "scsi", or "volume"
	JSONKey    string // key within JSONGroup
	Kind       Kind
	MaxChars   int  // string fields only; 0 for numeric kinds
	AllowUTF16 bool // true only for fields 4, 5, 6
	HasDefault bool
	Default    string // documented default, informational only; "" + HasDefault=false means none
}

// IsString reports whether the field's header slot holds a STRDEF descriptor
// rather than a raw 16-bit value.
func (f FieldDef) IsString() bool {
	switch f.Kind {
	case StrDefA, StrDefU, StrDef:
		return true
	default:
		return false
	}
}

// ASCIIOnly reports whether the field's charset policy forbids UTF-16,
// including field 8 (volume label) which sits among STRDEF_A fields in the
// table but is called out in the spec as ASCII-only regardless of its kind.
func (f FieldDef) ASCIIOnly() bool {
	return f.IsString() && !f.AllowUTF16
}

// Indices into Catalog, named for readability at call sites.
const (
	IdxUSBVid             = 0
	IdxUSBPid             = 1
	IdxUSBBcd             = 2
	IdxUSBLangID          = 3
	IdxManufacturer       = 4
	IdxProduct            = 5
	IdxSerialNumber       = 6
	IdxAttrsMaxPower      = 7
	IdxVolumeLabel        = 8
	IdxSCSIVendor         = 9
	IdxSCSIProduct        = 10
	IdxSCSIVersion        = 11
	IdxRedirectURL        = 12
	IdxRedirectName       = 13
	IdxUF2Model           = 14
	IdxUF2BoardID         = 15
	NumFields             = 16
	WhiteLabelHeaderStart = 16 // first legal arena row offset from base
	MaxArenaOffset        = 255
)

// Catalog is the bit-exact contract from spec.md §6.
var Catalog = [NumFields]FieldDef{
	{Index: IdxUSBVid, Name: "USB vid", JSONGroup: "device", JSONKey: "vid", Kind: U16, HasDefault: true, Default: "0x2E8A"},
	{Index: IdxUSBPid, Name: "USB pid", JSONGroup: "device", JSONKey: "pid", Kind: U16, HasDefault: true, Default: "0x000F"},
	{Index: IdxUSBBcd, Name: "USB bcd", JSONGroup: "device", JSONKey: "bcd", Kind: BCD16, HasDefault: true, Default: "0x0100"},
	{Index: IdxUSBLangID, Name: "USB lang_id", JSONGroup: "device", JSONKey: "lang_id", Kind: U16, HasDefault: true, Default: "0x0409"},
	{Index: IdxManufacturer, Name: "manufacturer", JSONGroup: "device", JSONKey: "manufacturer", Kind: StrDefU, MaxChars: 30, AllowUTF16: true, HasDefault: true, Default: "Raspberry Pi"},
	{Index: IdxProduct, Name: "product", JSONGroup: "device", JSONKey: "product", Kind: StrDefU, MaxChars: 30, AllowUTF16: true, HasDefault: true, Default: "RP2350 Boot"},
	{Index: IdxSerialNumber, Name: "serial_number", JSONGroup: "device", JSONKey: "serial_number", Kind: StrDefU, MaxChars: 30, AllowUTF16: true, HasDefault: true, Default: "<device-id>"},
	{Index: IdxAttrsMaxPower, Name: "attrs/max_power", JSONGroup: "device", JSONKey: "attributes", Kind: U16M, HasDefault: true, Default: "0xFA80"},
	{Index: IdxVolumeLabel, Name: "volume label", JSONGroup: "volume", JSONKey: "label", Kind: StrDefA, MaxChars: 11, HasDefault: true, Default: "RP2350"},
	{Index: IdxSCSIVendor, Name: "scsi vendor", JSONGroup: "scsi", JSONKey: "vendor", Kind: StrDef, MaxChars: 8, HasDefault: true, Default: "RPI"},
	{Index: IdxSCSIProduct, Name: "scsi product", JSONGroup: "scsi", JSONKey: "product", Kind: StrDefA, MaxChars: 16, HasDefault: true, Default: "RP2350"},
	{Index: IdxSCSIVersion, Name: "scsi version", JSONGroup: "scsi", JSONKey: "version", Kind: StrDefA, MaxChars: 4, HasDefault: true, Default: "1"},
	{Index: IdxRedirectURL, Name: "redirect_url", JSONGroup: "volume", JSONKey: "redirect_url", Kind: StrDefA, MaxChars: 127},
	{Index: IdxRedirectName, Name: "redirect_name", JSONGroup: "volume", JSONKey: "redirect_name", Kind: StrDefA, MaxChars: 127},
	{Index: IdxUF2Model, Name: "uf2 model", JSONGroup: "volume", JSONKey: "model", Kind: StrDefA, MaxChars: 127},
	{Index: IdxUF2BoardID, Name: "uf2 board_id", JSONGroup: "volume", JSONKey: "board_id", Kind: StrDefA, MaxChars: 127},
}
