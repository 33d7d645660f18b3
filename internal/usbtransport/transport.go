// Package usbtransport implements the USB transport facade: a uniform
// control/bulk transfer, string descriptor, configuration, interface
// and reset surface over whichever backend the build selects. The
// core logic never branches on platform, only on which Backend was
// linked in.
package usbtransport

import (
	"time"

	"github.com/libimobiledevice/libirecovery/internal/errs"
	"github.com/libimobiledevice/libirecovery/internal/logging"
)

// Backend is the minimal USB surface a platform implementation must
// provide. Exactly one implementation is linked into a given build
// (the default, gousb-backed implementation, or the pure-Go "nolibusb"
// implementation behind that build tag) — the core logic in this
// package and above never branches on platform.
type Backend interface {
	ControlTransfer(bmRequestType, bRequest uint8, wValue, wIndex uint16, data []byte, timeout time.Duration) (int, error)
	BulkTransfer(endpoint uint8, data []byte, timeout time.Duration) (int, error)
	ClearHalt(endpoint uint8) error
	CurrentConfiguration() (int, error)
	SetConfiguration(n int) error
	ClaimInterface(iface int) error
	SetAltSetting(iface, alt int) error
	GetStringDescriptorASCII(index int) (string, error)
	Reset() error
	Close() error
}

// Transport wraps a Backend with per-call session validation and
// error translation: every operation first checks the handle is
// non-nil, failing that with errs.ErrNoDevice. Every transfer is also
// logged: a one-line summary at LevelDebug, a full hex dump of the
// bytes that crossed the wire at LevelTraceUSB, and an error line at
// LevelError on failure.
type Transport struct {
	backend Backend
	log     *logging.Logger
}

// New wraps a backend as a Transport. With a nil backend every
// operation returns errs.ErrNoDevice and Close is a no-op.
func New(backend Backend) *Transport {
	return &Transport{backend: backend, log: logging.Default()}
}

func (t *Transport) valid() error {
	if t == nil || t.backend == nil {
		return errs.ErrNoDevice
	}
	return nil
}

// ControlTransfer performs a synchronous USB control transfer.
func (t *Transport) ControlTransfer(bmRequestType, bRequest uint8, wValue, wIndex uint16, data []byte, timeout time.Duration) (int, error) {
	if err := t.valid(); err != nil {
		return 0, err
	}

	prefix := byte('>')
	if bmRequestType&0x80 != 0 {
		prefix = '<'
	}

	n, err := t.backend.ControlTransfer(bmRequestType, bRequest, wValue, wIndex, data, timeout)
	if err != nil {
		t.log.Error('!', "control: bmRequestType=0x%02x bRequest=0x%02x wValue=0x%04x wIndex=0x%04x: %s",
			bmRequestType, bRequest, wValue, wIndex, err)
		return n, err
	}

	t.log.Add(logging.LevelDebug, prefix, "control: bmRequestType=0x%02x bRequest=0x%02x wValue=0x%04x wIndex=0x%04x len=%d",
		bmRequestType, bRequest, wValue, wIndex, n)
	t.log.HexDump(logging.LevelTraceUSB, data[:n])

	return n, nil
}

// BulkTransfer performs a synchronous bulk transfer. On a libusb-style
// transport error, the endpoint halt is cleared before returning.
func (t *Transport) BulkTransfer(endpoint uint8, data []byte, timeout time.Duration) (int, error) {
	if err := t.valid(); err != nil {
		return 0, err
	}

	prefix := byte('>')
	if endpoint&0x80 != 0 {
		prefix = '<'
	}

	n, err := t.backend.BulkTransfer(endpoint, data, timeout)
	if err != nil {
		t.backend.ClearHalt(endpoint)
		t.log.Error('!', "bulk: endpoint=0x%02x len=%d: %s", endpoint, len(data), err)
		return n, err
	}

	t.log.Add(logging.LevelDebug, prefix, "bulk: endpoint=0x%02x len=%d", endpoint, n)
	t.log.HexDump(logging.LevelTraceUSB, data[:n])

	return n, nil
}

// SetConfiguration queries the current configuration and sets it only
// if different from n.
func (t *Transport) SetConfiguration(n int) error {
	if err := t.valid(); err != nil {
		return err
	}

	cur, err := t.backend.CurrentConfiguration()
	if err != nil {
		t.log.Error('!', "get configuration: %s", err)
		return errs.ErrUSBConfiguration
	}
	if cur == n {
		return nil
	}

	if err := t.backend.SetConfiguration(n); err != nil {
		t.log.Error('!', "set configuration %d: %s", n, err)
		return errs.ErrUSBConfiguration
	}
	t.log.Add(logging.LevelInfo, ' ', "configuration %d -> %d", cur, n)
	return nil
}

// SetInterface claims iface (where required by the backend) and sets
// the alternate setting when iface == 1.
func (t *Transport) SetInterface(iface, alt int) error {
	if err := t.valid(); err != nil {
		return err
	}

	if err := t.backend.ClaimInterface(iface); err != nil {
		t.log.Error('!', "claim interface %d: %s", iface, err)
		return errs.ErrUSBInterface
	}

	if iface == 1 {
		if err := t.backend.SetAltSetting(iface, alt); err != nil {
			t.log.Error('!', "set interface %d alt %d: %s", iface, alt, err)
			return errs.ErrUSBInterface
		}
	}

	t.log.Add(logging.LevelInfo, ' ', "interface %d alt %d claimed", iface, alt)
	return nil
}

// Reset resets the device. Any error from the backend's reset is
// logged at LevelInfo and swallowed, since the device is expected to reboot and
// vanish mid-transfer; a caller that needs to know whether the device
// was physically present should have already checked before calling.
func (t *Transport) Reset() error {
	if err := t.valid(); err != nil {
		return err
	}

	if err := t.backend.Reset(); err != nil {
		t.log.Add(logging.LevelInfo, ' ', "reset: device not responding (expected): %s", err)
	} else {
		t.log.Add(logging.LevelInfo, ' ', "reset")
	}
	return nil
}

// GetStringDescriptorASCII reads a USB string descriptor and returns
// its ASCII subset: every byte above 0x7F in the backend's decoded
// string is replaced by '?', so a non-ASCII character becomes one '?'
// per byte of its UTF-8 encoding.
func (t *Transport) GetStringDescriptorASCII(index int) (string, error) {
	if err := t.valid(); err != nil {
		return "", err
	}

	s, err := t.backend.GetStringDescriptorASCII(index)
	if err != nil {
		t.log.Error('!', "get string descriptor %d: %s", index, err)
		return "", err
	}

	out := []byte(s)
	for i, c := range out {
		if c > 0x7F {
			out[i] = '?'
		}
	}
	t.log.Add(logging.LevelDebug, ' ', "string descriptor %d: %q", index, out)
	return string(out), nil
}

// Close releases the underlying backend resources.
func (t *Transport) Close() error {
	if t == nil || t.backend == nil {
		return nil
	}
	return t.backend.Close()
}
