// Package identity implements the device identity parser: extracting
// CPID, BDID, ECID, nonces and other attributes from the iBoot USB
// serial string, or from a KIS-mode binary info response.
package identity

import (
	"encoding/binary"
	"encoding/hex"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/libimobiledevice/libirecovery/internal/errs"
)

// Info is the device-info record populated on connect. Every field is
// independently present-or-absent; a missing tag leaves its field
// empty and is never an error.
type Info struct {
	CPID, CPRV, CPFM, SCEP, BDID, IBFL                   uint32
	HasCPID, HasCPRV, HasCPFM, HasSCEP, HasBDID, HasIBFL bool

	ECID    uint64
	HasECID bool

	PID uint32

	SRNM, IMEI, SRTG, SerialString string

	APNonce, SEPNonce []byte

	// Unknown carries any TAG:VALUE pair not recognised above, so a
	// caller (or a DB overlay) can still observe it.
	Unknown map[string]string
}

// hexTagU32 parses the hex value of one "TAG:HEXVALUE" occurrence of
// tag in s, and reports false when the tag is absent or its value is
// not valid hex.
func hexTagU32(s, tag string) (uint32, bool) {
	v, ok := findTag(s, tag)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}

func hexTagU64(s, tag string) (uint64, bool) {
	v, ok := findTag(s, tag)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseUint(v, 16, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// findTag locates "TAG:" in a space-delimited TAG:VALUE token stream
// and returns the token's value (up to the next space), stripping a
// single pair of surrounding brackets if present.
func findTag(s, tag string) (string, bool) {
	needle := tag + ":"
	idx := strings.Index(s, needle)
	for idx >= 0 {
		if idx == 0 || s[idx-1] == ' ' {
			rest := s[idx+len(needle):]
			rest = strings.TrimPrefix(rest, " ")
			end := strings.IndexByte(rest, ' ')
			var val string
			if end < 0 {
				val = rest
			} else {
				val = rest[:end]
			}
			val = strings.TrimPrefix(val, "[")
			val = strings.TrimSuffix(val, "]")
			return val, true
		}
		next := strings.Index(s[idx+1:], needle)
		if next < 0 {
			return "", false
		}
		idx = idx + 1 + next
	}
	return "", false
}

// ParseIBootString parses the iBoot serial string — a space-delimited
// list of TAG:VALUE and TAG:[VALUE] fields — into an Info record.
func ParseIBootString(s string) Info {
	var info Info
	info.SerialString = s

	info.CPID, info.HasCPID = hexTagU32(s, "CPID")
	info.CPRV, info.HasCPRV = hexTagU32(s, "CPRV")
	info.CPFM, info.HasCPFM = hexTagU32(s, "CPFM")
	info.SCEP, info.HasSCEP = hexTagU32(s, "SCEP")
	info.BDID, info.HasBDID = hexTagU32(s, "BDID")
	info.IBFL, info.HasIBFL = hexTagU32(s, "IBFL")
	info.ECID, info.HasECID = hexTagU64(s, "ECID")

	if v, ok := findTag(s, "SRNM"); ok {
		info.SRNM = v
	}
	if v, ok := findTag(s, "IMEI"); ok {
		info.IMEI = v
	}
	if v, ok := findTag(s, "SRTG"); ok {
		info.SRTG = v
	}

	info.APNonce = parseNonce(s, "NONC")
	info.SEPNonce = parseNonce(s, "SNON")

	info.Unknown = unknownTags(s)

	return info
}

var knownTags = map[string]bool{
	"CPID": true, "CPRV": true, "CPFM": true, "SCEP": true, "BDID": true,
	"IBFL": true, "ECID": true, "SRNM": true, "IMEI": true, "SRTG": true,
	"NONC": true, "SNON": true,
}

// unknownTags returns every TAG:VALUE pair whose tag this parser does
// not otherwise recognise, so callers can still observe raw fields the
// parser has no typed field for.
func unknownTags(s string) map[string]string {
	out := map[string]string{}
	for _, field := range strings.Fields(s) {
		colon := strings.IndexByte(field, ':')
		if colon <= 0 {
			continue
		}
		tag := field[:colon]
		if knownTags[tag] {
			continue
		}
		val := strings.TrimSuffix(strings.TrimPrefix(field[colon+1:], "["), "]")
		out[tag] = val
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// parseNonce locates the tag name immediately preceding a colon,
// reads until the next space, and decodes the hex pairs. A match
// requires the tag's literal characters to end exactly at the colon,
// and the character before the tag to be a space (or start of string).
func parseNonce(s, tag string) []byte {
	v, ok := findTag(s, tag)
	if !ok {
		return nil
	}
	v = strings.TrimSpace(v)
	raw, err := hex.DecodeString(v)
	if err != nil {
		return nil
	}
	return raw
}

// FormatNonce renders a nonce as upper-case hex pairs.
func FormatNonce(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

// ParseNonceHex is the inverse of FormatNonce.
func ParseNonceHex(s string) ([]byte, error) {
	return hex.DecodeString(s)
}

// stringDescriptor reads a 16-bit length-prefixed UTF-16LE string
// from a KIS info struct at the given byte offset.
func stringDescriptor(buf []byte, offset int) string {
	if offset+2 > len(buf) {
		return ""
	}
	length := int(binary.LittleEndian.Uint16(buf[offset:]))
	start := offset + 2
	end := start + length
	if end > len(buf) || length == 0 {
		return ""
	}

	raw := buf[start:end]
	units := make([]uint16, length/2)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(raw[i*2:])
	}
	return string(utf16.Decode(units))
}

// KIS info-struct byte offsets for the embedded device-descriptor
// strings.
const (
	kisManufacturerOffset = 0
	kisProductOffset      = 64
	kisSerialOffset       = 128
	kisNonceOffset        = 192
)

// ParseKISInfo parses a KIS-mode binary info response: the serial
// string is read from the embedded USB device descriptor and fed back
// into ParseIBootString, and the nonce region is fed into the same
// nonce extractor used there. The manufacturer and product strings are
// not decoded.
func ParseKISInfo(buf []byte) (Info, error) {
	if len(buf) < kisNonceOffset {
		return Info{}, errs.ErrInvalidInput
	}

	serial := stringDescriptor(buf, kisSerialOffset)
	info := ParseIBootString(serial)

	nonceRegion := string(buf[kisNonceOffset:])
	if n := parseNonce(nonceRegion, "NONC"); n != nil {
		info.APNonce = n
	}
	if n := parseNonce(nonceRegion, "SNON"); n != nil {
		info.SEPNonce = n
	}

	return info, nil
}

// Mode-classification helpers live in the modes package; they operate
// on the USB product id, not on a parsed Info.
