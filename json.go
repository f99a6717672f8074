package whitelabel

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	"github.com/go-rp2350/whitelabel/pkg/otpfields"
	"github.com/go-rp2350/whitelabel/pkg/otptypes"
)

var hexFieldPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{1,4}$`)

type jsonDevice struct {
	Vid          *string `json:"vid,omitempty"`
	Pid          *string `json:"pid,omitempty"`
	Bcd          *string `json:"bcd,omitempty"`
	LangID       *string `json:"lang_id,omitempty"`
	Manufacturer *string `json:"manufacturer,omitempty"`
	Product      *string `json:"product,omitempty"`
	SerialNumber *string `json:"serial_number,omitempty"`
	MaxPower     *string `json:"max_power,omitempty"`
	Attributes   *string `json:"attributes,omitempty"`
}

type jsonSCSI struct {
	Vendor  *string `json:"vendor,omitempty"`
	Product *string `json:"product,omitempty"`
	Version *string `json:"version,omitempty"`
}

type jsonVolume struct {
	Label        *string `json:"label,omitempty"`
	RedirectURL  *string `json:"redirect_url,omitempty"`
	RedirectName *string `json:"redirect_name,omitempty"`
	Model        *string `json:"model,omitempty"`
	BoardID      *string `json:"board_id,omitempty"`
}

type jsonDoc struct {
	Device *jsonDevice `json:"device,omitempty"`
	SCSI   *jsonSCSI   `json:"scsi,omitempty"`
	Volume *jsonVolume `json:"volume,omitempty"`
}

// FromJSON parses the nested device/scsi/volume JSON shape from spec.md §6
// into a Description. Hex fields (vid, pid, lang_id, max_power, attributes)
// must match ^0x[0-9a-fA-F]{1,4}$; bcd is a decimal string rendered to two
// BCD bytes (integer part in the high byte, two fractional digits in the
// low byte).
func FromJSON(text []byte) (Description, error) {
	var doc jsonDoc
	if err := json.Unmarshal(text, &doc); err != nil {
		return nil, otptypes.InvalidJSON("malformed json", err)
	}

	desc := make(Description)

	if d := doc.Device; d != nil {
		if err := setHexField(desc, otpfields.IdxUSBVid, d.Vid); err != nil {
			return nil, err
		}
		if err := setHexField(desc, otpfields.IdxUSBPid, d.Pid); err != nil {
			return nil, err
		}
		if err := setHexField(desc, otpfields.IdxUSBLangID, d.LangID); err != nil {
			return nil, err
		}
		if err := setBCDField(desc, otpfields.IdxUSBBcd, d.Bcd); err != nil {
			return nil, err
		}
		if err := setStringField(desc, otpfields.IdxManufacturer, d.Manufacturer); err != nil {
			return nil, err
		}
		if err := setStringField(desc, otpfields.IdxProduct, d.Product); err != nil {
			return nil, err
		}
		if err := setStringField(desc, otpfields.IdxSerialNumber, d.SerialNumber); err != nil {
			return nil, err
		}
		if err := setAttrsMaxPower(desc, d.Attributes, d.MaxPower); err != nil {
			return nil, err
		}
	}

	if s := doc.SCSI; s != nil {
		if err := setStringField(desc, otpfields.IdxSCSIVendor, s.Vendor); err != nil {
			return nil, err
		}
		if err := setStringField(desc, otpfields.IdxSCSIProduct, s.Product); err != nil {
			return nil, err
		}
		if err := setStringField(desc, otpfields.IdxSCSIVersion, s.Version); err != nil {
			return nil, err
		}
	}

	if v := doc.Volume; v != nil {
		if err := setStringField(desc, otpfields.IdxVolumeLabel, v.Label); err != nil {
			return nil, err
		}
		if err := setStringField(desc, otpfields.IdxRedirectURL, v.RedirectURL); err != nil {
			return nil, err
		}
		if err := setStringField(desc, otpfields.IdxRedirectName, v.RedirectName); err != nil {
			return nil, err
		}
		if err := setStringField(desc, otpfields.IdxUF2Model, v.Model); err != nil {
			return nil, err
		}
		if err := setStringField(desc, otpfields.IdxUF2BoardID, v.BoardID); err != nil {
			return nil, err
		}
	}

	return desc, nil
}

// ToJSON renders desc back to the canonical nested shape, omitting fields
// that were absent.
func ToJSON(desc Description) ([]byte, error) {
	var doc jsonDoc

	getStr := func(idx int) *string {
		fv, ok := desc[idx]
		if !ok {
			return nil
		}
		s := fv.Str.Text
		return &s
	}
	getHex := func(idx int) *string {
		fv, ok := desc[idx]
		if !ok {
			return nil
		}
		s := fmt.Sprintf("0x%X", fv.U16)
		return &s
	}

	if _, ok := desc[otpfields.IdxUSBVid]; ok {
		ensureDevice(&doc).Vid = getHex(otpfields.IdxUSBVid)
	}
	if _, ok := desc[otpfields.IdxUSBPid]; ok {
		ensureDevice(&doc).Pid = getHex(otpfields.IdxUSBPid)
	}
	if _, ok := desc[otpfields.IdxUSBLangID]; ok {
		ensureDevice(&doc).LangID = getHex(otpfields.IdxUSBLangID)
	}
	if fv, ok := desc[otpfields.IdxUSBBcd]; ok {
		s := bcdToDecimalString(fv.U16)
		ensureDevice(&doc).Bcd = &s
	}
	if _, ok := desc[otpfields.IdxManufacturer]; ok {
		ensureDevice(&doc).Manufacturer = getStr(otpfields.IdxManufacturer)
	}
	if _, ok := desc[otpfields.IdxProduct]; ok {
		ensureDevice(&doc).Product = getStr(otpfields.IdxProduct)
	}
	if _, ok := desc[otpfields.IdxSerialNumber]; ok {
		ensureDevice(&doc).SerialNumber = getStr(otpfields.IdxSerialNumber)
	}
	if fv, ok := desc[otpfields.IdxAttrsMaxPower]; ok {
		attrs := fmt.Sprintf("0x%X", fv.U16&0xFF)
		maxPower := fmt.Sprintf("0x%X", fv.U16>>8)
		ensureDevice(&doc).Attributes = &attrs
		ensureDevice(&doc).MaxPower = &maxPower
	}

	if _, ok := desc[otpfields.IdxSCSIVendor]; ok {
		ensureSCSI(&doc).Vendor = getStr(otpfields.IdxSCSIVendor)
	}
	if _, ok := desc[otpfields.IdxSCSIProduct]; ok {
		ensureSCSI(&doc).Product = getStr(otpfields.IdxSCSIProduct)
	}
	if _, ok := desc[otpfields.IdxSCSIVersion]; ok {
		ensureSCSI(&doc).Version = getStr(otpfields.IdxSCSIVersion)
	}

	if _, ok := desc[otpfields.IdxVolumeLabel]; ok {
		ensureVolume(&doc).Label = getStr(otpfields.IdxVolumeLabel)
	}
	if _, ok := desc[otpfields.IdxRedirectURL]; ok {
		ensureVolume(&doc).RedirectURL = getStr(otpfields.IdxRedirectURL)
	}
	if _, ok := desc[otpfields.IdxRedirectName]; ok {
		ensureVolume(&doc).RedirectName = getStr(otpfields.IdxRedirectName)
	}
	if _, ok := desc[otpfields.IdxUF2Model]; ok {
		ensureVolume(&doc).Model = getStr(otpfields.IdxUF2Model)
	}
	if _, ok := desc[otpfields.IdxUF2BoardID]; ok {
		ensureVolume(&doc).BoardID = getStr(otpfields.IdxUF2BoardID)
	}

	return json.MarshalIndent(doc, "", "  ")
}

func ensureDevice(doc *jsonDoc) *jsonDevice {
	if doc.Device == nil {
		doc.Device = &jsonDevice{}
	}
	return doc.Device
}

func ensureSCSI(doc *jsonDoc) *jsonSCSI {
	if doc.SCSI == nil {
		doc.SCSI = &jsonSCSI{}
	}
	return doc.SCSI
}

func ensureVolume(doc *jsonDoc) *jsonVolume {
	if doc.Volume == nil {
		doc.Volume = &jsonVolume{}
	}
	return doc.Volume
}

func setStringField(desc Description, idx int, v *string) error {
	if v == nil {
		return nil
	}
	desc[idx] = otptypes.FieldValue{Str: otptypes.StringValue{Text: *v}}
	return nil
}

func setHexField(desc Description, idx int, v *string) error {
	if v == nil {
		return nil
	}
	n, err := parseHex16(*v)
	if err != nil {
		return otptypes.InvalidJSON(fmt.Sprintf("field %d: %v", idx, err), err)
	}
	desc[idx] = otptypes.FieldValue{U16: n}
	return nil
}

func setAttrsMaxPower(desc Description, attrs, maxPower *string) error {
	if attrs == nil && maxPower == nil {
		return nil
	}
	if attrs == nil || maxPower == nil {
		return otptypes.InvalidJSON("attributes and max_power must be provided together", nil)
	}
	a, err := parseHexByte(*attrs)
	if err != nil {
		return otptypes.InvalidJSON(fmt.Sprintf("attributes: %v", err), err)
	}
	m, err := parseHexByte(*maxPower)
	if err != nil {
		return otptypes.InvalidJSON(fmt.Sprintf("max_power: %v", err), err)
	}
	desc[otpfields.IdxAttrsMaxPower] = otptypes.FieldValue{U16: uint16(a) | uint16(m)<<8}
	return nil
}

func setBCDField(desc Description, idx int, v *string) error {
	if v == nil {
		return nil
	}
	n, err := decimalStringToBCD(*v)
	if err != nil {
		return otptypes.InvalidJSON(fmt.Sprintf("field %d: %v", idx, err), err)
	}
	desc[idx] = otptypes.FieldValue{U16: n}
	return nil
}

func parseHex16(s string) (uint16, error) {
	if !hexFieldPattern.MatchString(s) {
		return 0, fmt.Errorf("%q does not match ^0x[0-9a-fA-F]{1,4}$", s)
	}
	n, err := strconv.ParseUint(s[2:], 16, 16)
	if err != nil {
		return 0, err
	}
	return uint16(n), nil
}

func parseHexByte(s string) (byte, error) {
	n, err := parseHex16(s)
	if err != nil {
		return 0, err
	}
	if n > 0xFF {
		return 0, fmt.Errorf("%q exceeds one byte", s)
	}
	return byte(n), nil
}

// decimalStringToBCD converts a decimal string like "12.34" to its packed
// BCD representation: 0x1234 (integer part "12" in the high byte, two
// fractional digits "34" in the low byte).
func decimalStringToBCD(s string) (uint16, error) {
	whole, frac, err := splitDecimal(s)
	if err != nil {
		return 0, err
	}
	if whole > 99 {
		return 0, fmt.Errorf("bcd integer part %d exceeds two digits", whole)
	}
	hi := bcdByte(whole)
	lo := bcdByte(frac)
	return uint16(hi)<<8 | uint16(lo), nil
}

func bcdToDecimalString(v uint16) string {
	hi, lo := byte(v>>8), byte(v&0xFF)
	whole := int(hi>>4)*10 + int(hi&0xF)
	frac := int(lo>>4)*10 + int(lo&0xF)
	return fmt.Sprintf("%d.%02d", whole, frac)
}

func bcdByte(n int) byte {
	return byte((n/10)<<4 | (n % 10))
}

// splitDecimal parses "12.34" into whole=12, frac=34 (always two fractional
// digits, rounding/truncating is the caller's input contract, not ours).
func splitDecimal(s string) (whole, frac int, err error) {
	matched := decimalPattern.FindStringSubmatch(s)
	if matched == nil {
		return 0, 0, fmt.Errorf("%q is not a decimal number with up to two fractional digits", s)
	}
	whole, err = strconv.Atoi(matched[1])
	if err != nil {
		return 0, 0, err
	}
	fracStr := matched[2]
	switch len(fracStr) {
	case 0:
		frac = 0
	case 1:
		frac, err = strconv.Atoi(fracStr)
		if err != nil {
			return 0, 0, err
		}
		frac *= 10
	case 2:
		frac, err = strconv.Atoi(fracStr)
		if err != nil {
			return 0, 0, err
		}
	}
	return whole, frac, nil
}

var decimalPattern = regexp.MustCompile(`^(\d{1,2})(?:\.(\d{1,2}))?$`)
