//go:build !nolibusb

package hotplug

import (
	"fmt"
	"time"

	"github.com/libimobiledevice/libirecovery/internal/identity"
	"github.com/libimobiledevice/libirecovery/internal/kis"
	"github.com/libimobiledevice/libirecovery/internal/modes"
	"github.com/libimobiledevice/libirecovery/internal/usbtransport"
)

const serialDescriptorIndex = 3

// GousbDiscoverer implements Discoverer with a libusb enumeration
// sweep, the default when no OS notification service is wired in.
type GousbDiscoverer struct{}

func (GousbDiscoverer) Enumerate() ([]Presence, error) {
	candidates, err := usbtransport.Discover()
	if err != nil {
		return nil, err
	}

	presences := make([]Presence, 0, len(candidates))
	for _, c := range candidates {
		mode := modes.Mode(c.ProductID)
		if !isRecognisedMode(mode) {
			continue
		}

		cand := c
		location := fmt.Sprintf("%d:%d", cand.Bus, cand.Address)
		presences = append(presences, Presence{
			Location: location,
			Mode:     mode,
			Open: func() (identity.Info, error) {
				return openAndIdentify(cand, mode)
			},
		})
	}
	return presences, nil
}

func isRecognisedMode(m modes.Mode) bool {
	switch m {
	case modes.DFU, modes.WTF, modes.PortDFU, modes.Recovery1, modes.Recovery2, modes.Recovery3, modes.Recovery4:
		return true
	default:
		return false
	}
}

func openAndIdentify(cand usbtransport.Candidate, mode modes.Mode) (identity.Info, error) {
	backend, err := cand.Open()
	if err != nil {
		return identity.Info{}, err
	}
	tr := usbtransport.New(backend)
	defer tr.Close()

	if mode.IsKIS() {
		return identifyKIS(tr)
	}

	if err := tr.SetConfiguration(1); err != nil {
		return identity.Info{}, err
	}
	if err := tr.SetInterface(0, 0); err != nil {
		return identity.Info{}, err
	}

	s, err := tr.GetStringDescriptorASCII(serialDescriptorIndex)
	if err != nil {
		return identity.Info{}, err
	}
	return identity.ParseIBootString(s), nil
}

func identifyKIS(tr *usbtransport.Transport) (identity.Info, error) {
	client := kis.New(kisTransportAdapter{tr})
	if err := client.Init(); err != nil {
		return identity.Info{}, err
	}
	buf, err := client.LoadInfo()
	if err != nil {
		return identity.Info{}, err
	}
	return identity.ParseKISInfo(buf)
}

// kisTransportAdapter bridges *usbtransport.Transport to kis.Transport
// (a narrower, endpoint-oriented Write/Read pair).
type kisTransportAdapter struct {
	tr *usbtransport.Transport
}

func (a kisTransportAdapter) Write(endpoint uint8, data []byte) (int, error) {
	return a.tr.BulkTransfer(endpoint, data, defaultKISTimeout)
}

func (a kisTransportAdapter) Read(endpoint uint8, buf []byte) (int, error) {
	return a.tr.BulkTransfer(endpoint|0x80, buf, defaultKISTimeout)
}

const defaultKISTimeout = 10 * time.Second
