// Command irecovery-info opens the first recognised device and dumps
// what the library can learn about it. It is deliberately thin: no
// flag parsing beyond an optional ECID, no progress bar, no
// interactive shell — those are out of scope for this library.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/libimobiledevice/libirecovery/internal/logging"

	irecovery "github.com/libimobiledevice/libirecovery"
)

func main() {
	logging.SetDebugLevel(logging.DebugLevel())

	var ecid uint64
	if len(os.Args) > 1 {
		v, err := strconv.ParseUint(os.Args[1], 0, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid ecid %q: %v\n", os.Args[1], err)
			os.Exit(1)
		}
		ecid = v
	}

	client, err := irecovery.OpenWithAttempts(ecid, 3)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open failed: %v\n", irecovery.Strerror(err))
		os.Exit(1)
	}
	defer irecovery.Close(client)

	info := client.DeviceInfo()
	fmt.Printf("mode: %s\n", client.Mode())
	if info.HasECID {
		fmt.Printf("ecid: 0x%x\n", info.ECID)
	}
	if info.HasCPID {
		fmt.Printf("cpid: 0x%04x\n", info.CPID)
	}
	if info.HasBDID {
		fmt.Printf("bdid: 0x%02x\n", info.BDID)
	}
	if info.SRNM != "" {
		fmt.Printf("serial: %s\n", info.SRNM)
	}

	if entry, ok := client.LookupByClient(); ok {
		fmt.Printf("product: %s (%s) \"%s\"\n", entry.ProductType, entry.HardwareModel, entry.DisplayName)
	} else {
		fmt.Println("product: unknown to local database")
	}
}
