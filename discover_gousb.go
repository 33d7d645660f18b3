//go:build !nolibusb

package irecovery

import (
	"github.com/libimobiledevice/libirecovery/internal/hotplug"
	"github.com/libimobiledevice/libirecovery/internal/usbtransport"
)

func init() {
	discoverCandidates = func() ([]candidateHandle, error) {
		candidates, err := usbtransport.Discover()
		if err != nil {
			return nil, err
		}

		out := make([]candidateHandle, 0, len(candidates))
		for _, c := range candidates {
			cand := c
			out = append(out, candidateHandle{
				productID: cand.ProductID,
				open: func() (usbtransport.Backend, error) {
					return cand.Open()
				},
			})
		}
		return out, nil
	}
}

func defaultDiscoverer() hotplug.Discoverer {
	return hotplug.GousbDiscoverer{}
}
