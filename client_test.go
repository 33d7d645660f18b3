package irecovery

import (
	"testing"
	"time"

	"github.com/libimobiledevice/libirecovery/internal/errs"
	"github.com/libimobiledevice/libirecovery/internal/modes"
	"github.com/libimobiledevice/libirecovery/internal/usbtransport"
)

type stubBackend struct {
	serial string
}

func (s *stubBackend) ControlTransfer(bmRequestType, bRequest uint8, wValue, wIndex uint16, data []byte, timeout time.Duration) (int, error) {
	return len(data), nil
}
func (s *stubBackend) BulkTransfer(endpoint uint8, data []byte, timeout time.Duration) (int, error) {
	return len(data), nil
}
func (s *stubBackend) ClearHalt(endpoint uint8) error        { return nil }
func (s *stubBackend) CurrentConfiguration() (int, error)    { return 0, nil }
func (s *stubBackend) SetConfiguration(n int) error          { return nil }
func (s *stubBackend) ClaimInterface(iface int) error        { return nil }
func (s *stubBackend) SetAltSetting(iface, alt int) error    { return nil }
func (s *stubBackend) Reset() error                          { return nil }
func (s *stubBackend) Close() error                          { return nil }
func (s *stubBackend) GetStringDescriptorASCII(index int) (string, error) {
	return s.serial, nil
}

func withCandidates(t *testing.T, handles []candidateHandle) {
	t.Helper()
	prev := discoverCandidates
	discoverCandidates = func() ([]candidateHandle, error) { return handles, nil }
	t.Cleanup(func() { discoverCandidates = prev })
}

func candidateFor(productID uint16, serial string) candidateHandle {
	return candidateHandle{
		productID: productID,
		open: func() (usbtransport.Backend, error) {
			return &stubBackend{serial: serial}, nil
		},
	}
}

const exampleSerial = "CPID:8015 CPRV:11 CPFM:12 SCEP:02 BDID:06 ECID:0000000123456789 IBFL:03 SRNM:[C39GV2RYFLDP] IMEI:012345678901234 SRTG:[iBoot-2817.1.1] "

func TestOpenMatchesRecognisedModeAndParsesIdentity(t *testing.T) {
	withCandidates(t, []candidateHandle{candidateFor(uint16(modes.DFU), exampleSerial)})

	c, err := Open(0)
	if err != nil {
		t.Fatal(err)
	}
	defer Close(c)

	if c.Mode() != modes.DFU {
		t.Fatalf("mode = %v, want DFU", c.Mode())
	}
	if !c.DeviceInfo().HasCPID || c.DeviceInfo().CPID != 0x8015 {
		t.Fatalf("expected CPID 0x8015, got %+v", c.DeviceInfo())
	}
}

func TestOpenSkipsUnrecognisedProductID(t *testing.T) {
	withCandidates(t, []candidateHandle{candidateFor(0x9999, exampleSerial)})

	_, err := Open(0)
	if err != errs.ErrNoDevice {
		t.Fatalf("expected ErrNoDevice, got %v", err)
	}
}

func TestOpenECIDMismatchSkipsCandidate(t *testing.T) {
	withCandidates(t, []candidateHandle{candidateFor(uint16(modes.DFU), exampleSerial)})

	_, err := Open(0xDEAD)
	if err != errs.ErrNoDevice {
		t.Fatalf("expected ErrNoDevice on ECID mismatch, got %v", err)
	}
}

func TestOpenWTFSentinelDisablesECIDFilterButRequiresWTFMode(t *testing.T) {
	withCandidates(t, []candidateHandle{
		candidateFor(uint16(modes.DFU), exampleSerial),
		candidateFor(uint16(modes.WTF), ""),
	})

	c, err := Open(uint64(modes.WTF))
	if err != nil {
		t.Fatal(err)
	}
	defer Close(c)

	if c.Mode() != modes.WTF {
		t.Fatalf("expected WTF-only match, got mode %v", c.Mode())
	}
}

func TestOpenSkipsWTFCandidateWhenNonWTFECIDRequested(t *testing.T) {
	withCandidates(t, []candidateHandle{candidateFor(uint16(modes.WTF), "")})

	_, err := Open(0x1234)
	if err != errs.ErrNoDevice {
		t.Fatalf("expected ErrNoDevice, got %v", err)
	}
}

func TestCallbackPreCommandShortCircuitsSendCommand(t *testing.T) {
	withCandidates(t, []candidateHandle{candidateFor(uint16(modes.DFU), exampleSerial)})

	c, err := Open(0)
	if err != nil {
		t.Fatal(err)
	}
	defer Close(c)

	var sawPreCommand bool
	c.SetCallback(func(cl *Client, ev Event) bool {
		if ev.Kind == EventPreCommand {
			sawPreCommand = true
			return true
		}
		return false
	})

	if err := c.SendCommand("reboot"); err != nil {
		t.Fatal(err)
	}
	if !sawPreCommand {
		t.Fatal("expected EventPreCommand to fire")
	}
}

// portDFUBackend rejects every bulk transfer, the way a Port-DFU
// device rejects the KIS enable sequence on the shared product id.
type portDFUBackend struct {
	stubBackend
}

func (p *portDFUBackend) BulkTransfer(endpoint uint8, data []byte, timeout time.Duration) (int, error) {
	return 0, errs.ErrPipe
}

func TestOpenPortDFUFallbackWhenKISInitRejected(t *testing.T) {
	serial := "CPID:1506 BDID:03150601 ECID:0000000000001234 SRTG:[iBoot-4513.0.0.100.4] "
	withCandidates(t, []candidateHandle{{
		productID: uint16(modes.PortDFU),
		open: func() (usbtransport.Backend, error) {
			return &portDFUBackend{stubBackend{serial: serial}}, nil
		},
	}})

	c, err := Open(0)
	if err != nil {
		t.Fatal(err)
	}
	defer Close(c)

	if c.isKIS {
		t.Fatal("expected KIS flag cleared after enable-sequence rejection")
	}
	if c.Mode() != modes.PortDFU {
		t.Fatalf("mode = %v, want Port-DFU", c.Mode())
	}

	e, ok := c.LookupByClient()
	if !ok {
		t.Fatal("expected Port-DFU repack to resolve a database row")
	}
	if e.ChipID != 0x1506 || e.BoardID != 0x03 {
		t.Fatalf("got chip_id=0x%x board_id=0x%x, want 0x1506/0x03", e.ChipID, e.BoardID)
	}
}

func TestOpenWithAttemptsRetriesThenSucceeds(t *testing.T) {
	attempts := 0
	prev := discoverCandidates
	discoverCandidates = func() ([]candidateHandle, error) {
		attempts++
		if attempts < 2 {
			return nil, nil
		}
		return []candidateHandle{candidateFor(uint16(modes.DFU), exampleSerial)}, nil
	}
	t.Cleanup(func() { discoverCandidates = prev })

	prevBackoff := openRetryBackoff
	openRetryBackoff = 0
	t.Cleanup(func() { openRetryBackoff = prevBackoff })

	c, err := OpenWithAttempts(0, 5)
	if err != nil {
		t.Fatal(err)
	}
	defer Close(c)

	if attempts != 2 {
		t.Fatalf("expected success on second attempt, took %d", attempts)
	}
}
