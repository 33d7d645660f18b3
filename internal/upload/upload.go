// Package upload implements the upload engine: the DFU-control and
// Recovery-bulk firmware upload flows, generic command send/receive,
// and environment-variable commands.
package upload

import (
	"context"
	"time"

	"github.com/libimobiledevice/libirecovery/internal/config"
	"github.com/libimobiledevice/libirecovery/internal/errs"
	"github.com/libimobiledevice/libirecovery/internal/kis"
	"github.com/libimobiledevice/libirecovery/internal/logging"
	"github.com/libimobiledevice/libirecovery/internal/modes"
)

// Option is a bitmask of send_buffer behavior flags. The values are
// part of the C library's ABI and are reused verbatim.
type Option uint32

const (
	NotifyFinish Option = 1 << 0
	ForceZLP     Option = 1 << 1
	SmallPkt     Option = 1 << 2
)

// defaultTimeout mirrors internal/config.Conf.OpenTimeout; a var, not a
// const, so it picks up config's environment-variable override (Go
// guarantees config's init() has already run by the time this
// initializer executes).
var defaultTimeout = config.Conf.OpenTimeout

// Transport is the subset of the USB transport facade the engine
// needs. Satisfied by *usbtransport.Transport.
type Transport interface {
	ControlTransfer(bmRequestType, bRequest uint8, wValue, wIndex uint16, data []byte, timeout time.Duration) (int, error)
	BulkTransfer(endpoint uint8, data []byte, timeout time.Duration) (int, error)
	SetInterface(iface, alt int) error
	Reset() error
}

// Sleeper abstracts time.Sleep so tests can run the status-poll and
// retry loops without real delay.
type Sleeper func(time.Duration)

// Engine drives the upload/command/env-var protocols for one client
// session.
type Engine struct {
	Transport Transport
	Mode      modes.Mode
	KIS       *kis.Client // non-nil when the session established the KIS protocol

	// Sleep defaults to time.Sleep; tests substitute a no-op.
	Sleep Sleeper

	// PreCommand/PostCommand are invoked around send_command; a
	// true return from PreCommand short-circuits the transfer as a
	// consumed success.
	PreCommand  func(cmd string) bool
	PostCommand func(cmd string) bool

	// Progress is invoked after each chunk during send_buffer, with
	// the running percent, bytes sent so far, and a status phrase.
	Progress func(percent int, sent int, status string)

	// Received is invoked by Receive for every non-empty chunk; a
	// non-zero return ends the receive loop early without error.
	Received func(chunk []byte) int

	// Log receives Engine diagnostics; defaults to logging.Default()
	// when nil, so an Engine built as a bare struct literal still logs.
	Log *logging.Logger
}

func (e *Engine) sleep(d time.Duration) {
	if e.Sleep != nil {
		e.Sleep(d)
		return
	}
	time.Sleep(d)
}

func (e *Engine) log() *logging.Logger {
	if e.Log != nil {
		return e.Log
	}
	return logging.Default()
}

// SendCommand issues a NUL-terminated command string with the given
// bRequest, dispatching the pre/post-command callbacks around the
// transfer. Length must be < 0x100.
func (e *Engine) SendCommand(cmd string, breq uint8) error {
	if len(cmd) >= 0x100 {
		return errs.ErrInvalidInput
	}

	if e.PreCommand != nil && e.PreCommand(cmd) {
		return nil
	}

	if err := e.sendCommandRaw(cmd, breq); err != nil {
		return err
	}

	if e.PostCommand != nil {
		e.PostCommand(cmd)
	}
	return nil
}

// sendCommandRaw issues the command without dispatching the
// pre/post-command callbacks. The environment and reboot wrappers use
// it directly: a registered callback must never consume or observe
// their internally generated commands. A pipe stall is not fatal,
// since commands like reboot expect the device to disconnect
// mid-transfer.
func (e *Engine) sendCommandRaw(cmd string, breq uint8) error {
	if len(cmd) >= 0x100 {
		return errs.ErrInvalidInput
	}

	buf := append([]byte(cmd), 0)
	_, err := e.Transport.ControlTransfer(0x40, breq, 0, 0, buf, defaultTimeout)
	if err != nil {
		if !errs.IsPipe(err) {
			e.log().Error('!', "send command %q: %s", cmd, err)
			return err
		}
		e.log().Add(logging.LevelInfo, ' ', "send command %q: pipe stall (ignored)", cmd)
		return nil
	}
	e.log().Add(logging.LevelDebug, '>', "send command %q", cmd)
	return nil
}

// SendBuffer uploads buf using the flow appropriate to e.Mode.
func (e *Engine) SendBuffer(buf []byte, opts Option) error {
	return e.SendBufferContext(context.Background(), buf, opts)
}

// SendBufferContext is SendBuffer with a cancellation check point
// between chunks. A Background context reproduces SendBuffer exactly;
// an in-flight transfer is never interrupted, only the next chunk.
func (e *Engine) SendBufferContext(ctx context.Context, buf []byte, opts Option) error {
	e.log().Add(logging.LevelInfo, ' ', "send buffer: mode=%s len=%d opts=0x%x", e.Mode, len(buf), opts)

	var err error
	switch {
	// KIS and Port-DFU share a product id, so the flow is keyed on
	// whether a KIS client was established, not on the id alone.
	case e.KIS != nil:
		err = e.sendBufferKIS(ctx, buf, opts)
	case e.Mode.IsRecovery():
		err = e.sendBufferRecovery(ctx, buf, opts)
	default:
		err = e.sendBufferDFU(ctx, buf, opts)
	}

	if err != nil {
		e.log().Error('!', "send buffer: %s", err)
	}
	return err
}

func (e *Engine) sendBufferKIS(ctx context.Context, buf []byte, opts Option) error {
	if e.KIS == nil {
		return errs.ErrUnsupported
	}

	total := len(buf)
	sent := 0
	for sent < total {
		if err := ctx.Err(); err != nil {
			return err
		}
		n := kis.UploadChunkSize
		if n > total-sent {
			n = total - sent
		}
		if err := e.KIS.UploadChunk(uint32(sent), buf[sent:sent+n]); err != nil {
			return err
		}
		sent += n
		if e.Progress != nil {
			e.Progress(percentOf(sent, total), sent, "Uploading")
		}
	}

	if opts&NotifyFinish != 0 {
		return e.KIS.Notify(uint32(total))
	}
	return nil
}

const recoveryChunkSize = 0x8000
const recoveryEndpointOut = 0x04

func (e *Engine) sendBufferRecovery(ctx context.Context, buf []byte, opts Option) error {
	if _, err := e.Transport.ControlTransfer(0x41, 0, 0, 0, nil, defaultTimeout); err != nil {
		return err
	}

	total := len(buf)
	sent := 0
	for sent < total {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := sent + recoveryChunkSize
		if end > total {
			end = total
		}
		chunk := buf[sent:end]

		n, err := e.Transport.BulkTransfer(recoveryEndpointOut, chunk, defaultTimeout)
		if err != nil || n != len(chunk) {
			return errs.ErrUSBUpload
		}
		sent += len(chunk)

		if e.Progress != nil {
			e.Progress(percentOf(sent, total), sent, "Uploading")
		}
	}

	if total%512 == 0 {
		if _, err := e.Transport.BulkTransfer(recoveryEndpointOut, nil, defaultTimeout); err != nil {
			return errs.ErrUSBUpload
		}
	}

	_ = opts // Recovery mode ignores the DFU-only flags.
	return nil
}

const (
	dfuPacketSize      = 0x800
	dfuSmallPacketSize = 0x40

	dfuStateIdle  = 2
	dfuStateError = 10

	dfuStatusOK = 5
)

func (e *Engine) dfuGetState() (byte, error) {
	var buf [1]byte
	n, err := e.Transport.ControlTransfer(0xA1, 5, 0, 0, buf[:], defaultTimeout)
	if err != nil {
		return 0, err
	}
	if n != 1 {
		return 0, errs.ErrUSBUpload
	}
	return buf[0], nil
}

func (e *Engine) dfuGetStatus() (byte, error) {
	var buf [6]byte
	n, err := e.Transport.ControlTransfer(0xA1, 3, 0, 0, buf[:], defaultTimeout)
	if err != nil {
		return 0, err
	}
	if n != 6 {
		return 0, errs.ErrUSBUpload
	}
	return buf[4], nil
}

func (e *Engine) sendBufferDFU(ctx context.Context, buf []byte, opts Option) error {
	state, err := e.dfuGetState()
	if err != nil {
		return err
	}
	switch state {
	case dfuStateIdle:
		// proceed
	case dfuStateError:
		e.log().Add(logging.LevelInfo, ' ', "dfu state error, clearing")
		e.Transport.ControlTransfer(0x21, 4, 0, 0, nil, defaultTimeout)
		return errs.ErrUSBUpload
	default:
		e.log().Add(logging.LevelInfo, ' ', "dfu state %d, aborting", state)
		e.Transport.ControlTransfer(0x21, 6, 0, 0, nil, defaultTimeout)
		return errs.ErrUSBUpload
	}

	packetSize := dfuPacketSize
	useCRC := true
	if opts&SmallPkt != 0 {
		packetSize = dfuSmallPacketSize
		useCRC = false
	}

	total := len(buf)
	sent := 0
	reg := crc32Init
	i := uint16(0)

	// sendPacketAt issues one DFU data-transfer packet at the given
	// index without advancing i; callers advance i themselves once
	// they're done reusing it (the overflow trailer packet below reuses
	// the same index as its preceding data packet).
	sendPacketAt := func(idx uint16, data []byte) error {
		if _, err := e.Transport.ControlTransfer(0x21, 1, idx, 0, data, defaultTimeout); err != nil {
			return err
		}
		return e.pollStatus()
	}

	sendPacket := func(data []byte) error {
		if err := sendPacketAt(i, data); err != nil {
			return err
		}
		i++
		return nil
	}

	for sent < total {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := sent + packetSize
		last := false
		if end >= total {
			end = total
			last = true
		}
		chunk := buf[sent:end]

		if useCRC {
			reg = crc32Update(reg, chunk)
		}

		if last && useCRC {
			trailer := dfuTrailer(reg)
			if len(chunk)+len(trailer) <= packetSize {
				packet := append(append([]byte{}, chunk...), trailer[:]...)
				if err := sendPacket(packet); err != nil {
					return err
				}
			} else {
				if err := sendPacketAt(i, chunk); err != nil {
					return err
				}
				if err := sendPacketAt(i, trailer[:]); err != nil {
					return err
				}
				i++
			}
		} else {
			if err := sendPacket(chunk); err != nil {
				return err
			}
		}

		sent = end
		if e.Progress != nil {
			e.Progress(percentOf(sent, total), sent, "Uploading")
		}
	}

	if opts&NotifyFinish != 0 {
		if _, err := e.Transport.ControlTransfer(0x21, 1, i, 0, nil, defaultTimeout); err != nil {
			return err
		}
		if err := e.pollStatus(); err != nil {
			return err
		}
		if err := e.pollStatus(); err != nil {
			return err
		}
		if opts&ForceZLP != 0 {
			if _, err := e.Transport.ControlTransfer(0x21, 1, 0, 0, nil, defaultTimeout); err != nil {
				return err
			}
		}
		return e.Transport.Reset()
	}

	return nil
}

// statusPollRetries mirrors internal/config.Conf.StatusPollRetries.
var statusPollRetries = config.Conf.StatusPollRetries

func (e *Engine) pollStatus() error {
	status, err := e.dfuGetStatus()
	if err != nil {
		return err
	}
	if status == dfuStatusOK {
		return nil
	}
	for i := 0; i < statusPollRetries; i++ {
		e.log().Add(logging.LevelDebug, ' ', "dfu status 0x%02x, retry %d/%d", status, i+1, statusPollRetries)
		e.sleep(config.Conf.StatusPollInterval)
		status, err = e.dfuGetStatus()
		if err != nil {
			return err
		}
		if status == dfuStatusOK {
			return nil
		}
	}
	e.log().Error('!', "dfu status poll exhausted after %d retries, last status 0x%02x", statusPollRetries, status)
	return errs.ErrUSBUpload
}

func percentOf(sent, total int) int {
	if total <= 0 {
		return 100
	}
	return sent * 100 / total
}

// Receive repeatedly bulk-reads endpoint 0x81 with a 500ms timeout,
// switching the interface to 1/1 around the read and back to 0/0,
// dispatching each non-empty chunk to Received. It stops on a
// zero-byte read, a transfer error, or Received returning non-zero.
func (e *Engine) Receive() error {
	const receiveEndpoint = 0x81
	const receiveTimeout = 500 * time.Millisecond
	buf := make([]byte, 0x4000)

	for {
		if err := e.Transport.SetInterface(1, 1); err != nil {
			return err
		}
		n, err := e.Transport.BulkTransfer(receiveEndpoint, buf, receiveTimeout)
		e.Transport.SetInterface(0, 0)

		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}

		if e.Received != nil {
			if e.Received(buf[:n]) != 0 {
				return nil
			}
		}
	}
}

// RecvBuffer performs a packetised control-transfer read of length n.
// Packet size is 0x2000 in Recovery mode, 0x800 otherwise (DFU).
func (e *Engine) RecvBuffer(n int) ([]byte, error) {
	packetSize := dfuPacketSize
	if e.Mode.IsRecovery() {
		packetSize = 0x2000
	}

	out := make([]byte, 0, n)
	for len(out) < n {
		want := packetSize
		if n-len(out) < want {
			want = n - len(out)
		}
		chunk := make([]byte, want)
		got, err := e.Transport.ControlTransfer(0xA1, 2, 0, 0, chunk, defaultTimeout)
		if err != nil {
			return nil, err
		}
		out = append(out, chunk[:got]...)
		if got < want {
			break
		}
	}
	return out, nil
}
