//go:build nolibusb

package irecovery

import (
	"github.com/libimobiledevice/libirecovery/internal/errs"
	"github.com/libimobiledevice/libirecovery/internal/hotplug"
)

func init() {
	discoverCandidates = func() ([]candidateHandle, error) {
		return nil, errs.ErrUnsupported
	}
}

func defaultDiscoverer() hotplug.Discoverer {
	return hotplug.NolibusbDiscoverer{}
}
