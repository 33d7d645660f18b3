package identity

import (
	"bytes"
	"testing"
)

func TestParseIBootStringExample(t *testing.T) {
	s := "CPID:8010 CPRV:11 CPFM:03 SCEP:01 BDID:0E ECID:001122334455AABB " +
		"IBFL:1C SRNM:[ABCDE12345] IMEI:[012345678901234] " +
		"SRTG:[iBoot-3401.0.0.1.16] NONC: 0102AABB SNON: DEADBEEF"

	info := ParseIBootString(s)

	if info.CPID != 0x8010 {
		t.Errorf("cpid = 0x%x, want 0x8010", info.CPID)
	}
	if info.CPRV != 0x11 {
		t.Errorf("cprv = 0x%x, want 0x11", info.CPRV)
	}
	if info.CPFM != 0x03 {
		t.Errorf("cpfm = 0x%x, want 0x03", info.CPFM)
	}
	if info.SCEP != 0x01 {
		t.Errorf("scep = 0x%x, want 0x01", info.SCEP)
	}
	if info.BDID != 0x0E {
		t.Errorf("bdid = 0x%x, want 0x0E", info.BDID)
	}
	if info.ECID != 0x001122334455AABB {
		t.Errorf("ecid = 0x%x, want 0x001122334455AABB", info.ECID)
	}
	if info.IBFL != 0x1C {
		t.Errorf("ibfl = 0x%x, want 0x1C", info.IBFL)
	}
	if info.SRNM != "ABCDE12345" {
		t.Errorf("srnm = %q, want ABCDE12345", info.SRNM)
	}
	if info.IMEI != "012345678901234" {
		t.Errorf("imei = %q, want 012345678901234", info.IMEI)
	}
	if info.SRTG != "iBoot-3401.0.0.1.16" {
		t.Errorf("srtg = %q, want iBoot-3401.0.0.1.16", info.SRTG)
	}
	if !bytes.Equal(info.APNonce, []byte{0x01, 0x02, 0xAA, 0xBB}) {
		t.Errorf("ap_nonce = %x, want 0102aabb", info.APNonce)
	}
	if !bytes.Equal(info.SEPNonce, []byte{0xDE, 0xAD, 0xBE, 0xEF}) {
		t.Errorf("sep_nonce = %x, want deadbeef", info.SEPNonce)
	}
}

func TestParseIBootStringAbsentFieldsEmpty(t *testing.T) {
	info := ParseIBootString("CPID:8010 BDID:0E")

	if info.HasCPID != true || info.CPID != 0x8010 {
		t.Fatalf("expected cpid present")
	}
	if info.HasECID {
		t.Fatalf("expected ecid absent")
	}
	if info.SRNM != "" {
		t.Fatalf("expected srnm empty, got %q", info.SRNM)
	}
	if info.APNonce != nil {
		t.Fatalf("expected ap_nonce absent")
	}
}

func TestNonceTagBoundaryRule(t *testing.T) {
	// "XNONC:" must not be mistaken for "NONC:" — the preceding
	// character is not a space, so the tag must not match.
	info := ParseIBootString("XNONC: 0102 NONC: AABBCCDD")
	if !bytes.Equal(info.APNonce, []byte{0xAA, 0xBB, 0xCC, 0xDD}) {
		t.Fatalf("ap_nonce = %x, want aabbccdd", info.APNonce)
	}
}

func TestNonceRoundTrip(t *testing.T) {
	original := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01}
	s := FormatNonce(original)
	if s != "DEADBEEF01" {
		t.Fatalf("FormatNonce = %q, want DEADBEEF01", s)
	}

	back, err := ParseNonceHex(s)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(back, original) {
		t.Fatalf("round trip mismatch: got %x, want %x", back, original)
	}
}

func TestUnknownTagsPreserved(t *testing.T) {
	info := ParseIBootString("CPID:8010 FOOX:abcd")
	if info.Unknown["FOOX"] != "abcd" {
		t.Fatalf("unknown tag not preserved: %+v", info.Unknown)
	}
}
