//go:build nolibusb

// The nolibusb build tag selects a pure-Go USB backend with no cgo
// dependency on libusb-1.0, built on kevmo314/go-usb (sysfs on Linux,
// IOKit on Darwin, setupapi on Windows behind its own per-platform
// files).
package usbtransport

import (
	"time"

	usb "github.com/kevmo314/go-usb"

	"github.com/libimobiledevice/libirecovery/internal/errs"
)

var nolibusbContext *usb.Context

// Context returns the process-wide go-usb context, created on first use.
func Context() (*usb.Context, error) {
	if nolibusbContext == nil {
		ctx, err := usb.NewContext()
		if err != nil {
			return nil, err
		}
		nolibusbContext = ctx
	}
	return nolibusbContext, nil
}

// NolibusbBackend implements Backend on top of go-usb's DeviceHandle.
type NolibusbBackend struct {
	handle *usb.DeviceHandle
}

// OpenNolibusb wraps an already-opened go-usb handle as a Backend.
func OpenNolibusb(handle *usb.DeviceHandle) *NolibusbBackend {
	return &NolibusbBackend{handle: handle}
}

func (b *NolibusbBackend) ControlTransfer(bmRequestType, bRequest uint8, wValue, wIndex uint16, data []byte, timeout time.Duration) (int, error) {
	n, err := b.handle.ControlTransfer(bmRequestType, bRequest, wValue, wIndex, data, timeout)
	return n, translateNolibusbErr(err)
}

func (b *NolibusbBackend) BulkTransfer(endpoint uint8, data []byte, timeout time.Duration) (int, error) {
	n, err := b.handle.BulkTransfer(endpoint, data, timeout)
	return n, translateNolibusbErr(err)
}

func (b *NolibusbBackend) ClearHalt(endpoint uint8) error {
	return translateNolibusbErr(b.handle.ClearHalt(endpoint))
}

func (b *NolibusbBackend) CurrentConfiguration() (int, error) {
	return b.handle.GetConfiguration()
}

func (b *NolibusbBackend) SetConfiguration(n int) error {
	return translateNolibusbErr(b.handle.SetConfiguration(n))
}

func (b *NolibusbBackend) ClaimInterface(iface int) error {
	return translateNolibusbErr(b.handle.ClaimInterface(uint8(iface)))
}

func (b *NolibusbBackend) SetAltSetting(iface, alt int) error {
	return translateNolibusbErr(b.handle.SetInterfaceAltSetting(uint8(iface), uint8(alt)))
}

func (b *NolibusbBackend) GetStringDescriptorASCII(index int) (string, error) {
	return b.handle.GetStringDescriptor(uint8(index))
}

func (b *NolibusbBackend) Reset() error {
	return translateNolibusbErr(b.handle.ResetDevice())
}

func (b *NolibusbBackend) Close() error {
	return b.handle.Close()
}

func translateNolibusbErr(err error) error {
	switch err {
	case nil:
		return nil
	case usb.ErrTimeout:
		return errs.ErrTimeout
	case usb.ErrPipe:
		return errs.ErrPipe
	case usb.ErrDeviceNotFound:
		return errs.ErrNoDevice
	case usb.ErrNotSupported:
		return errs.ErrUnsupported
	default:
		return errs.ErrUSBUpload
	}
}
