//go:build !nolibusb

package usbtransport

import (
	"github.com/google/gousb"
)

// AppleVendorID is the USB vendor id every mode this library recognises
// advertises.
const AppleVendorID = 0x05AC

// Candidate is one attached USB device matching the Apple vendor id,
// discovered but not yet opened.
type Candidate struct {
	dev       *gousb.Device
	ProductID uint16
	Bus       int
	Address   int
}

// Open wraps the device, already opened by Discover, as a Backend.
func (c *Candidate) Open() (*GousbBackend, error) {
	return OpenGousb(c.dev)
}

// Discover enumerates all attached devices with the Apple vendor id.
// Devices not matching are closed immediately by gousb's OpenDevices
// filter callback (returning false skips a device without opening it
// for real I/O).
func Discover() ([]Candidate, error) {
	var candidates []Candidate

	devs, err := Context().OpenDevices(func(desc *gousb.DeviceDesc) bool {
		return desc.Vendor == gousb.ID(AppleVendorID)
	})
	if err != nil {
		return nil, err
	}

	for _, d := range devs {
		candidates = append(candidates, Candidate{
			dev:       d,
			ProductID: uint16(d.Desc.Product),
			Bus:       d.Desc.Bus,
			Address:   d.Desc.Address,
		})
	}

	return candidates, nil
}
