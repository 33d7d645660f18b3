//go:build !nolibusb

// Package usbtransport, gousb backend.
package usbtransport

import (
	"strings"
	"time"

	"github.com/google/gousb"

	"github.com/libimobiledevice/libirecovery/internal/errs"
)

var gousbContext *gousb.Context

// Context returns the process-wide gousb context, created on first use.
func Context() *gousb.Context {
	if gousbContext == nil {
		gousbContext = gousb.NewContext()
	}
	return gousbContext
}

// GousbBackend implements Backend directly on top of a *gousb.Device.
type GousbBackend struct {
	dev    *gousb.Device
	cfg    *gousb.Config
	iface  *gousb.Interface
	ifaceN int
}

// OpenGousb wraps an already-opened *gousb.Device as a Backend.
func OpenGousb(dev *gousb.Device) (*GousbBackend, error) {
	dev.SetAutoDetach(true)
	return &GousbBackend{dev: dev}, nil
}

func (b *GousbBackend) ControlTransfer(bmRequestType, bRequest uint8, wValue, wIndex uint16, data []byte, timeout time.Duration) (int, error) {
	b.dev.ControlTimeout = timeout
	n, err := b.dev.Control(bmRequestType, bRequest, wValue, wIndex, data)
	if err != nil {
		return n, translateErr(err)
	}
	return n, nil
}

func (b *GousbBackend) BulkTransfer(endpoint uint8, data []byte, timeout time.Duration) (int, error) {
	if endpoint&0x80 != 0 {
		ep, err := b.inEndpoint(endpoint)
		if err != nil {
			return 0, err
		}
		ep.ReadTimeout = timeout
		n, err := ep.Read(data)
		return n, translateErr(err)
	}

	ep, err := b.outEndpoint(endpoint)
	if err != nil {
		return 0, err
	}
	ep.WriteTimeout = timeout
	n, err := ep.Write(data)
	return n, translateErr(err)
}

func (b *GousbBackend) inEndpoint(addr uint8) (*gousb.InEndpoint, error) {
	if b.iface == nil {
		return nil, errs.ErrUSBInterface
	}
	ep, err := b.iface.InEndpoint(int(addr &^ 0x80))
	if err != nil {
		return nil, errs.ErrUSBInterface
	}
	return ep, nil
}

func (b *GousbBackend) outEndpoint(addr uint8) (*gousb.OutEndpoint, error) {
	if b.iface == nil {
		return nil, errs.ErrUSBInterface
	}
	ep, err := b.iface.OutEndpoint(int(addr))
	if err != nil {
		return nil, errs.ErrUSBInterface
	}
	return ep, nil
}

func (b *GousbBackend) ClearHalt(endpoint uint8) error {
	// gousb re-synchronizes halted endpoints transparently on the next
	// transfer; nothing further to do.
	return nil
}

func (b *GousbBackend) CurrentConfiguration() (int, error) {
	n, err := b.dev.ActiveConfigNum()
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (b *GousbBackend) SetConfiguration(n int) error {
	cfg, err := b.dev.Config(n)
	if err != nil {
		return err
	}
	if b.cfg != nil {
		b.cfg.Close()
	}
	b.cfg = cfg
	return nil
}

func (b *GousbBackend) ClaimInterface(iface int) error {
	if b.cfg == nil {
		return errs.ErrUSBConfiguration
	}
	if b.iface != nil && b.ifaceN == iface {
		return nil
	}

	intf, err := b.cfg.Interface(iface, 0)
	if err != nil {
		return err
	}

	if b.iface != nil {
		b.iface.Close()
	}
	b.iface = intf
	b.ifaceN = iface
	return nil
}

func (b *GousbBackend) SetAltSetting(iface, alt int) error {
	if b.cfg == nil {
		return errs.ErrUSBConfiguration
	}

	intf, err := b.cfg.Interface(iface, alt)
	if err != nil {
		return err
	}

	if b.iface != nil {
		b.iface.Close()
	}
	b.iface = intf
	b.ifaceN = iface
	return nil
}

func (b *GousbBackend) GetStringDescriptorASCII(index int) (string, error) {
	return b.dev.GetStringDescriptor(index)
}

func (b *GousbBackend) Reset() error {
	return b.dev.Reset()
}

func (b *GousbBackend) Close() error {
	if b.iface != nil {
		b.iface.Close()
	}
	if b.cfg != nil {
		b.cfg.Close()
	}
	return b.dev.Close()
}

// translateErr maps a gousb/libusb transport error into the library's
// error taxonomy. gousb surfaces the underlying libusb error text
// rather than a small closed set of sentinel values, so the
// classification is done on the message.
func translateErr(err error) error {
	if err == nil {
		return nil
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout"):
		return errs.ErrTimeout
	case strings.Contains(msg, "stall") || strings.Contains(msg, "pipe"):
		return errs.ErrPipe
	case strings.Contains(msg, "no device") || strings.Contains(msg, "disconnected"):
		return errs.ErrNoDevice
	default:
		return errs.ErrUSBUpload
	}
}
