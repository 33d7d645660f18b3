// Package irecovery is the public façade over the device database,
// USB transport, identity parser, KIS protocol, upload engine, and
// hot-plug monitor: discovery, mode-aware open/reconnect/close, and
// the operations a caller drives on an open session.
package irecovery

import (
	"context"
	"time"

	"github.com/libimobiledevice/libirecovery/internal/db"
	"github.com/libimobiledevice/libirecovery/internal/errs"
	"github.com/libimobiledevice/libirecovery/internal/identity"
	"github.com/libimobiledevice/libirecovery/internal/kis"
	"github.com/libimobiledevice/libirecovery/internal/modes"
	"github.com/libimobiledevice/libirecovery/internal/upload"
	"github.com/libimobiledevice/libirecovery/internal/usbtransport"
)

// EventKind distinguishes the six moments a Client may invoke its
// registered callback, replacing the six parallel function pointers
// of the C library's ABI with one sum type.
type EventKind int

const (
	EventReceived EventKind = iota
	EventProgress
	EventConnected
	EventPreCommand
	EventPostCommand
	EventDisconnected
)

// Event carries the payload for whichever EventKind fired. Only the
// fields relevant to Kind are populated.
type Event struct {
	Kind EventKind

	Chunk []byte // EventReceived

	Percent int    // EventProgress
	Sent    int    // EventProgress
	Status  string // EventProgress

	Cmd string // EventPreCommand / EventPostCommand
}

// Callback is a session's single registered event handler. A true
// return from EventPreCommand consumes the command as a success
// without issuing the transfer; a true return from EventReceived ends
// the receive loop early. Other kinds ignore the return value.
type Callback func(*Client, Event) bool

// Client is one open connection to a device in any recognised mode.
type Client struct {
	transport *usbtransport.Transport
	engine    *upload.Engine
	kisClient *kis.Client

	mode  modes.Mode
	isKIS bool
	ecid  uint64
	info  identity.Info

	db *db.DB

	callback Callback
}

// candidateHandle is the mode-tagged, not-yet-opened USB presence a
// platform's discovery backend returns.
type candidateHandle struct {
	productID uint16
	open      func() (usbtransport.Backend, error)
}

// discoverCandidates is set by the build-tag-selected discovery file
// (discover_gousb.go / discover_nolibusb.go) at package init.
var discoverCandidates func() ([]candidateHandle, error)

const serialDescriptorIndex = 3

// openRetryBackoff is the pause between OpenWithAttempts retries;
// var rather than const so tests can drive the loop without delay.
var openRetryBackoff = time.Second

func isRecognisedMode(m modes.Mode) bool {
	switch m {
	case modes.DFU, modes.WTF, modes.PortDFU, modes.Recovery1, modes.Recovery2, modes.Recovery3, modes.Recovery4:
		return true
	default:
		return false
	}
}

// Open discovers and connects to a device. ecid == 0 matches any
// recognised device; ecid == uint64(modes.WTF) asks specifically for
// a WTF-mode device (ECID is unreadable in that mode, so the filter
// is disabled in that case); any other non-zero ecid restricts the
// match to that device.
func Open(ecid uint64) (*Client, error) {
	if discoverCandidates == nil {
		return nil, errs.ErrUnsupported
	}

	candidates, err := discoverCandidates()
	if err != nil {
		return nil, err
	}

	wtfOnly := ecid == uint64(modes.WTF)

	for _, cand := range candidates {
		mode := modes.Mode(cand.productID)
		if !isRecognisedMode(mode) {
			continue
		}
		if wtfOnly && mode != modes.WTF {
			continue
		}
		if !wtfOnly && ecid != 0 && mode == modes.WTF {
			// ECID is unreadable in WTF mode; a specific non-WTF ECID
			// request can never match a WTF candidate.
			continue
		}

		c, err := openCandidate(cand, mode)
		if err != nil {
			continue
		}

		// For KIS the ECID was unknown until the info sequence ran
		// inside openCandidate; this check covers both paths.
		if !wtfOnly && ecid != 0 {
			if !c.info.HasECID || c.info.ECID != ecid {
				c.transport.Close()
				continue
			}
		}

		// Candidates on the KIS/Port-DFU pid were configured inside
		// openCandidate, before their init sequence.
		if !mode.IsKIS() {
			if err := c.configure(); err != nil {
				c.transport.Close()
				continue
			}
		}

		c.ecid = c.info.ECID
		c.dispatch(Event{Kind: EventConnected})
		return c, nil
	}

	return nil, errs.ErrNoDevice
}

func openCandidate(cand candidateHandle, mode modes.Mode) (*Client, error) {
	backend, err := cand.open()
	if err != nil {
		return nil, err
	}
	tr := usbtransport.New(backend)

	c := &Client{transport: tr, mode: mode, db: db.Default()}

	if mode.IsKIS() {
		// The KIS init/info exchange runs over bulk endpoints, so the
		// configuration and interface must be selected before it.
		c.isKIS = true
		if err := c.configure(); err != nil {
			tr.Close()
			return nil, err
		}
		c.kisClient = kis.New(kisAdapter{tr})
		if err := c.kisClient.Init(); err != nil {
			// KIS and Port-DFU share a product id; a device that
			// rejects the enable sequence is in Port-DFU mode and
			// identifies over the serial descriptor like DFU does.
			c.isKIS = false
			c.kisClient = nil
			s, serr := tr.GetStringDescriptorASCII(serialDescriptorIndex)
			if serr != nil {
				tr.Close()
				return nil, err
			}
			c.info = identity.ParseIBootString(s)
		} else {
			buf, err := c.kisClient.LoadInfo()
			if err != nil {
				tr.Close()
				return nil, err
			}
			info, err := identity.ParseKISInfo(buf)
			if err != nil {
				tr.Close()
				return nil, err
			}
			c.info = info
		}
	} else {
		// Reading the serial descriptor needs no configuration; the
		// config/interface selection is deferred until the candidate
		// passes the ECID filter.
		s, err := tr.GetStringDescriptorASCII(serialDescriptorIndex)
		if err != nil {
			tr.Close()
			return nil, err
		}
		c.info = identity.ParseIBootString(s)
	}

	c.engine = &upload.Engine{Transport: tr, Mode: mode}
	if c.isKIS {
		c.engine.KIS = c.kisClient
	}
	c.wireEngineCallbacks()

	return c, nil
}

// configure runs the matched-candidate USB setup: configuration 1,
// interface 0 alt 0, and for Recovery modes 3-4 additionally
// interface 1 alt 1.
func (c *Client) configure() error {
	if err := c.transport.SetConfiguration(1); err != nil {
		return err
	}
	if err := c.transport.SetInterface(0, 0); err != nil {
		return err
	}
	if c.mode >= modes.Recovery3 && c.mode <= modes.Recovery4 {
		if err := c.transport.SetInterface(1, 1); err != nil {
			return err
		}
	}
	return nil
}

// OpenWithAttempts retries Open up to attempts times with a 1-second
// back-off between tries.
func OpenWithAttempts(ecid uint64, attempts int) (*Client, error) {
	return OpenWithAttemptsContext(context.Background(), ecid, attempts)
}

// OpenWithAttemptsContext is OpenWithAttempts with the whole retry
// loop bounded by ctx, not just the individual transfers.
func OpenWithAttemptsContext(ctx context.Context, ecid uint64, attempts int) (*Client, error) {
	var lastErr error
	for i := 0; i < attempts; i++ {
		c, err := Open(ecid)
		if err == nil {
			return c, nil
		}
		lastErr = err
		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return nil, lastErr
			case <-time.After(openRetryBackoff):
			}
		}
	}
	if lastErr == nil {
		lastErr = errs.ErrNoDevice
	}
	return nil, lastErr
}

// Reconnect preserves ecid and the registered callback, closes c,
// optionally sleeps for initialPause, then reopens with 10 attempts.
func Reconnect(c *Client, initialPause time.Duration) (*Client, error) {
	if c == nil {
		return nil, errs.ErrNoDevice
	}

	ecid := c.ecid
	cb := c.callback
	Close(c)

	if initialPause > 0 {
		time.Sleep(initialPause)
	}

	next, err := OpenWithAttempts(ecid, 10)
	if err != nil {
		return nil, err
	}
	next.callback = cb
	return next, nil
}

// Close invokes the disconnected callback (if any), releases the
// transport, and frees the session. A nil Client is a no-op.
func Close(c *Client) error {
	if c == nil {
		return nil
	}
	c.dispatch(Event{Kind: EventDisconnected})
	return c.transport.Close()
}

func (c *Client) dispatch(ev Event) bool {
	if c.callback == nil {
		return false
	}
	return c.callback(c, ev)
}

// SetCallback registers the session's single event handler.
func (c *Client) SetCallback(cb Callback) {
	c.callback = cb
}

// Mode returns the USB product id the session was opened against.
func (c *Client) Mode() modes.Mode { return c.mode }

// IsRecoveryMode reports whether the session is in any Recovery mode.
func (c *Client) IsRecoveryMode() bool { return c.mode.IsRecovery() }

// IsDFULike reports whether the session is DFU, WTF, or Port-DFU.
func (c *Client) IsDFULike() bool { return c.mode.IsDFULike() }

// DeviceInfo returns the identity record populated at open time.
func (c *Client) DeviceInfo() identity.Info { return c.info }

// DB exposes the device database for lookups keyed on this session's
// identity.
func (c *Client) DB() *db.DB { return c.db }

// LookupByClient looks up this session's own (cpid, bdid) in the
// device database, applying the Port-DFU repack rule when the session
// is in Port-DFU mode.
func (c *Client) LookupByClient() (db.Entry, bool) {
	// KIS shares the Port-DFU pid; only a true Port-DFU session (one
	// that rejected the KIS enable sequence) carries the packed BDID.
	isPortDFU := c.mode == modes.PortDFU && !c.isKIS
	return c.db.LookupByClient(c.info.CPID, c.info.BDID, isPortDFU)
}

func (c *Client) wireEngineCallbacks() {
	c.engine.PreCommand = func(cmd string) bool {
		return c.dispatch(Event{Kind: EventPreCommand, Cmd: cmd})
	}
	c.engine.PostCommand = func(cmd string) bool {
		return c.dispatch(Event{Kind: EventPostCommand, Cmd: cmd})
	}
	c.engine.Progress = func(percent, sent int, status string) {
		c.dispatch(Event{Kind: EventProgress, Percent: percent, Sent: sent, Status: status})
	}
	c.engine.Received = func(chunk []byte) int {
		if c.dispatch(Event{Kind: EventReceived, Chunk: chunk}) {
			return 1
		}
		return 0
	}
}

// kisAdapter bridges *usbtransport.Transport to kis.Transport.
type kisAdapter struct {
	tr *usbtransport.Transport
}

func (a kisAdapter) Write(endpoint uint8, data []byte) (int, error) {
	return a.tr.BulkTransfer(endpoint, data, 10*time.Second)
}

func (a kisAdapter) Read(endpoint uint8, buf []byte) (int, error) {
	return a.tr.BulkTransfer(endpoint|0x80, buf, 10*time.Second)
}
