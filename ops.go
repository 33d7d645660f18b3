package irecovery

import (
	"context"
	"time"

	"github.com/libimobiledevice/libirecovery/internal/errs"
	"github.com/libimobiledevice/libirecovery/internal/logging"
	"github.com/libimobiledevice/libirecovery/internal/upload"
)

// SendCommand issues cmd with bRequest 0.
func (c *Client) SendCommand(cmd string) error {
	return c.SendCommandBreq(cmd, 0)
}

// SendCommandBreq issues cmd with an explicit bRequest.
func (c *Client) SendCommandBreq(cmd string, breq uint8) error {
	return c.engine.SendCommand(cmd, breq)
}

// SendFile reads path and uploads it with opts.
func (c *Client) SendFile(path string, opts upload.Option) error {
	return c.engine.SendFile(path, opts)
}

// SendFileContext is SendFile with a cancellation check point between
// upload chunks.
func (c *Client) SendFileContext(ctx context.Context, path string, opts upload.Option) error {
	return c.engine.SendFileContext(ctx, path, opts)
}

// SendBuffer uploads buf with opts.
func (c *Client) SendBuffer(buf []byte, opts upload.Option) error {
	return c.engine.SendBuffer(buf, opts)
}

// SendBufferContext is SendBuffer with a cancellation check point
// between upload chunks.
func (c *Client) SendBufferContext(ctx context.Context, buf []byte, opts upload.Option) error {
	return c.engine.SendBufferContext(ctx, buf, opts)
}

// RecvBuffer reads n bytes using the mode-appropriate packet size.
func (c *Client) RecvBuffer(n int) ([]byte, error) {
	return c.engine.RecvBuffer(n)
}

// Receive runs the bulk receive loop, dispatching EventReceived for
// each chunk.
func (c *Client) Receive() error {
	return c.engine.Receive()
}

// ExecuteScript runs text as a newline-delimited sequence of commands.
func (c *Client) ExecuteScript(text string) error {
	return c.engine.ExecuteScript(text)
}

// Getenv reads a bootloader environment variable.
func (c *Client) Getenv(name string) (string, error) {
	return c.engine.GetEnv(name)
}

// Setenv sets a persistent bootloader environment variable.
func (c *Client) Setenv(name, value string) error {
	return c.engine.SetEnv(name, value)
}

// SetenvNP sets a non-persistent bootloader environment variable.
func (c *Client) SetenvNP(name, value string) error {
	return c.engine.SetEnvNP(name, value)
}

// Saveenv persists the environment to storage.
func (c *Client) Saveenv() error {
	return c.engine.SaveEnv()
}

// Reboot asks the device to restart.
func (c *Client) Reboot() error {
	return c.engine.Reboot()
}

// Getret reads the numeric return value of the last command.
func (c *Client) Getret() (byte, error) {
	return c.engine.GetRet()
}

// USBSetConfiguration sets the active USB configuration.
func (c *Client) USBSetConfiguration(n int) error {
	return c.transport.SetConfiguration(n)
}

// USBSetInterface claims iface and sets alt.
func (c *Client) USBSetInterface(iface, alt int) error {
	return c.transport.SetInterface(iface, alt)
}

// USBControlTransfer performs a raw control transfer.
func (c *Client) USBControlTransfer(bmRequestType, bRequest uint8, wValue, wIndex uint16, data []byte, timeout time.Duration) (int, error) {
	return c.transport.ControlTransfer(bmRequestType, bRequest, wValue, wIndex, data, timeout)
}

// USBBulkTransfer performs a raw bulk transfer.
func (c *Client) USBBulkTransfer(endpoint uint8, data []byte, timeout time.Duration) (int, error) {
	return c.transport.BulkTransfer(endpoint, data, timeout)
}

// Reset resets the underlying USB device.
func (c *Client) Reset() error {
	return c.transport.Reset()
}

// TriggerLimera1nExploit races a control transfer against an
// abort-pipe-zero call from the caller.
func (c *Client) TriggerLimera1nExploit(abortPipeZero func() error) error {
	return c.engine.TriggerLimera1nExploit(abortPipeZero)
}

// ResetCounters is a legacy no-op retained for ABI compatibility: the
// C library kept transfer counters for diagnostics that this
// port surfaces instead through the logging package.
func (c *Client) ResetCounters() {}

// FinishTransfer is a legacy no-op retained for ABI compatibility with
// callers that called it unconditionally after a raw bulk/control
// transfer sequence; this transport has no equivalent pending state to
// flush.
func (c *Client) FinishTransfer() {}

// SetDebugLevel sets the process-wide diagnostic verbosity.
func SetDebugLevel(level int) {
	logging.SetDebugLevel(level)
}

// Strerror returns the stable English phrase for err.
func Strerror(err error) string {
	return errs.Strerror(err)
}

// Version reports the library version string.
func Version() string {
	return "go-irecovery 1.0"
}
