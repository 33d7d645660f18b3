package upload

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/libimobiledevice/libirecovery/internal/errs"
)

// SendFile reads path into memory and uploads it via SendBuffer.
func (e *Engine) SendFile(path string, opts Option) error {
	return e.SendFileContext(context.Background(), path, opts)
}

// SendFileContext is SendFile with a cancellation check point between
// upload chunks.
func (e *Engine) SendFileContext(ctx context.Context, path string, opts Option) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errs.ErrFileNotFound
		}
		return errs.ErrOutOfMemory
	}
	return e.SendBufferContext(ctx, data, opts)
}

const envResponseSize = 255

// GetEnv reads the named environment variable. A pipe stall on the
// underlying command is treated as an empty, successful response.
func (e *Engine) GetEnv(name string) (string, error) {
	if err := e.sendCommandRaw("getenv "+name, 0); err != nil {
		return "", err
	}

	buf := make([]byte, envResponseSize)
	n, err := e.Transport.ControlTransfer(0xC0, 0, 0, 0, buf, defaultTimeout)
	if err != nil {
		if errs.IsPipe(err) {
			return "", nil
		}
		return "", err
	}
	return nullTerminated(buf[:n]), nil
}

// SetEnv sets a persistent environment variable.
func (e *Engine) SetEnv(name, value string) error {
	return e.sendCommandRaw(fmt.Sprintf("setenv %s %s", name, value), 0)
}

// SetEnvNP sets a non-persistent environment variable.
func (e *Engine) SetEnvNP(name, value string) error {
	return e.sendCommandRaw(fmt.Sprintf("setenvnp %s %s", name, value), 0)
}

// SaveEnv persists the environment to storage.
func (e *Engine) SaveEnv() error {
	return e.sendCommandRaw("saveenv", 0)
}

// Reboot asks the device to restart.
func (e *Engine) Reboot() error {
	return e.sendCommandRaw("reboot", 0)
}

// GetRet reads the numeric return value of the last command.
func (e *Engine) GetRet() (byte, error) {
	buf := make([]byte, envResponseSize)
	n, err := e.Transport.ControlTransfer(0xC0, 0, 0, 0, buf, defaultTimeout)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, errs.ErrUSBUpload
	}
	return buf[0], nil
}

func nullTerminated(buf []byte) string {
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i])
		}
	}
	return string(buf)
}

// TriggerLimera1nExploit schedules a control transfer on a secondary
// goroutine, then aborts pipe zero from the caller after a short
// delay, racing the two to leave the endpoint half-transferred. Abort
// is best-effort: when abortPipeZero is nil or cannot cancel the
// in-flight transfer, the control transfer runs until it completes or
// its timeout (config.Conf.OpenTimeout, 10s by default) expires.
func (e *Engine) TriggerLimera1nExploit(abortPipeZero func() error) error {
	done := make(chan error, 1)
	go func() {
		_, err := e.Transport.ControlTransfer(0x21, 2, 0, 0, nil, defaultTimeout)
		done <- err
	}()

	e.sleep(5 * time.Millisecond)
	if abortPipeZero != nil {
		abortPipeZero()
	}

	return <-done
}

// ExecuteScript runs each line of text as a command, in order,
// skipping blank lines and "#"-prefixed comments, and stopping at the
// first error.
func (e *Engine) ExecuteScript(text string) error {
	line := make([]byte, 0, 64)
	flush := func() error {
		if len(line) == 0 {
			return nil
		}
		cmd := string(line)
		line = line[:0]
		if cmd[0] == '#' {
			return nil
		}
		return e.SendCommand(cmd, 0)
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '\n' || c == '\r' {
			if err := flush(); err != nil {
				return err
			}
			continue
		}
		line = append(line, c)
	}
	return flush()
}
