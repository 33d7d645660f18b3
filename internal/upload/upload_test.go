package upload

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/libimobiledevice/libirecovery/internal/errs"
	"github.com/libimobiledevice/libirecovery/internal/modes"
)

func TestCRCEmptyIsUninvertedInitialValue(t *testing.T) {
	if got := crc32Update(crc32Init, nil); got != 0xFFFFFFFF {
		t.Fatalf("crc(empty) = 0x%08X, want 0xFFFFFFFF", got)
	}
}

func TestDFUTrailerLength(t *testing.T) {
	trailer := dfuTrailer(crc32Init)
	if len(trailer) != 16 {
		t.Fatalf("trailer length = %d, want 16", len(trailer))
	}
	if !bytes.Equal(trailer[:12], dfuMagic[:]) {
		t.Fatalf("trailer magic mismatch: %x", trailer[:12])
	}
}

func TestSendCommandRejectsLength0x100(t *testing.T) {
	cmd := make([]byte, 0x100)
	for i := range cmd {
		cmd[i] = 'a'
	}
	e := &Engine{Transport: &fakeTransport{}}
	if err := e.SendCommand(string(cmd), 0); err != errs.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSendCommandAccepts0xFF(t *testing.T) {
	cmd := make([]byte, 0xFF)
	for i := range cmd {
		cmd[i] = 'a'
	}
	ft := &fakeTransport{}
	e := &Engine{Transport: ft}
	if err := e.SendCommand(string(cmd), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ft.controlCalls) != 1 {
		t.Fatalf("expected one control transfer, got %d", len(ft.controlCalls))
	}
	if len(ft.controlCalls[0].data) != 0x100 {
		t.Fatalf("expected NUL-terminated transfer of 0x100 bytes, got %d", len(ft.controlCalls[0].data))
	}
}

func TestSendCommandPreCommandShortCircuits(t *testing.T) {
	ft := &fakeTransport{}
	e := &Engine{Transport: ft, PreCommand: func(cmd string) bool { return true }}
	if err := e.SendCommand("reboot", 0); err != nil {
		t.Fatal(err)
	}
	if len(ft.controlCalls) != 0 {
		t.Fatalf("expected no transfer when PreCommand consumes, got %d", len(ft.controlCalls))
	}
}

func TestSendCommandPipeStallNotFatal(t *testing.T) {
	ft := &fakeTransport{controlErr: errs.ErrPipe}
	e := &Engine{Transport: ft}
	if err := e.SendCommand("reboot", 0); err != nil {
		t.Fatalf("expected pipe stall to be swallowed, got %v", err)
	}
}

func TestSendBufferRecoveryZLPOnMultipleOf512(t *testing.T) {
	ft := &fakeTransport{}
	e := &Engine{Transport: ft, Mode: modes.Recovery1}

	buf := make([]byte, 0x8000) // exactly one chunk, multiple of 512
	if err := e.SendBuffer(buf, 0); err != nil {
		t.Fatal(err)
	}

	// initiate control + 1 bulk data chunk + 1 ZLP bulk
	if len(ft.bulkCalls) != 2 {
		t.Fatalf("expected 2 bulk transfers (data + ZLP), got %d", len(ft.bulkCalls))
	}
	if len(ft.bulkCalls[1].data) != 0 {
		t.Fatalf("expected final bulk transfer to be zero-length, got %d bytes", len(ft.bulkCalls[1].data))
	}
}

func TestSendBufferRecoveryNoZLPWhenNotMultipleOf512(t *testing.T) {
	ft := &fakeTransport{}
	e := &Engine{Transport: ft, Mode: modes.Recovery1}

	buf := make([]byte, 100)
	if err := e.SendBuffer(buf, 0); err != nil {
		t.Fatal(err)
	}
	if len(ft.bulkCalls) != 1 {
		t.Fatalf("expected 1 bulk transfer (no ZLP), got %d", len(ft.bulkCalls))
	}
}

func TestSendBufferDFUEmptyBufferNoFinish(t *testing.T) {
	ft := &fakeTransport{dfuState: dfuStateIdle, dfuStatus: dfuStatusOK}
	e := &Engine{Transport: ft, Mode: modes.DFU}

	if err := e.SendBuffer(nil, 0); err != nil {
		t.Fatal(err)
	}
	if len(ft.controlCalls) != 1 { // only the get_state query
		t.Fatalf("expected no data packets for empty buffer without NotifyFinish, got %d control calls", len(ft.controlCalls))
	}
}

func TestSendBufferDFUEmptyBufferWithFinishSendsOnePacket(t *testing.T) {
	ft := &fakeTransport{dfuState: dfuStateIdle, dfuStatus: dfuStatusOK}
	e := &Engine{Transport: ft, Mode: modes.DFU, Sleep: func(time.Duration) {}}

	if err := e.SendBuffer(nil, NotifyFinish); err != nil {
		t.Fatal(err)
	}

	var dataPackets int
	for _, c := range ft.controlCalls {
		if c.bRequest == 1 {
			dataPackets++
		}
	}
	if dataPackets != 1 {
		t.Fatalf("expected exactly one finish packet, got %d", dataPackets)
	}
}

func TestSendBufferDFUStateErrorIssuesClrStatus(t *testing.T) {
	ft := &fakeTransport{dfuState: dfuStateError}
	e := &Engine{Transport: ft, Mode: modes.DFU}

	err := e.SendBuffer([]byte("x"), 0)
	if err != errs.ErrUSBUpload {
		t.Fatalf("expected ErrUSBUpload, got %v", err)
	}

	found := false
	for _, c := range ft.controlCalls {
		if c.bmRequestType == 0x21 && c.bRequest == 4 {
			found = true
		}
	}
	if !found {
		t.Fatal("expected CLRSTATUS control transfer")
	}
}

func TestSendBufferDFUPacketCountMatchesCeilDivision(t *testing.T) {
	ft := &fakeTransport{dfuState: dfuStateIdle, dfuStatus: dfuStatusOK}
	e := &Engine{Transport: ft, Mode: modes.DFU}

	buf := make([]byte, dfuPacketSize*2+100)
	if err := e.SendBuffer(buf, 0); err != nil {
		t.Fatal(err)
	}

	var dataPackets int
	for _, c := range ft.controlCalls {
		if c.bRequest == 1 {
			dataPackets++
		}
	}
	// 3 data chunks; last chunk (100 bytes) + 16-byte trailer fits in
	// one packet since 100+16 < 0x800, so 3 packets total.
	if dataPackets != 3 {
		t.Fatalf("expected 3 data packets, got %d", dataPackets)
	}
}

func TestSendBufferDFUOverflowTrailerReusesDataPacketIndex(t *testing.T) {
	ft := &fakeTransport{dfuState: dfuStateIdle, dfuStatus: dfuStatusOK}
	e := &Engine{Transport: ft, Mode: modes.DFU, Sleep: func(time.Duration) {}}

	// A last chunk that exactly fills the packet leaves no room for the
	// 16-byte trailer in the same packet, forcing the overflow branch.
	buf := make([]byte, dfuPacketSize)
	if err := e.SendBuffer(buf, NotifyFinish); err != nil {
		t.Fatal(err)
	}

	var dataPackets []controlCall
	for _, c := range ft.controlCalls {
		if c.bmRequestType == 0x21 && c.bRequest == 1 {
			dataPackets = append(dataPackets, c)
		}
	}
	// data packet, trailer packet, finish packet
	if len(dataPackets) != 3 {
		t.Fatalf("expected 3 DFU write packets (data, trailer, finish), got %d", len(dataPackets))
	}
	if dataPackets[0].wValue != 0 || dataPackets[1].wValue != 0 {
		t.Fatalf("expected overflow trailer to reuse index 0, got data=%d trailer=%d",
			dataPackets[0].wValue, dataPackets[1].wValue)
	}
	if dataPackets[2].wValue != 1 {
		t.Fatalf("expected finish packet to use the next index (1), got %d", dataPackets[2].wValue)
	}
}

func TestSendBufferDFUStatusPollRetries(t *testing.T) {
	ft := &fakeTransport{dfuState: dfuStateIdle, dfuStatus: 0, statusOKAfter: 3}
	slept := 0
	e := &Engine{Transport: ft, Mode: modes.DFU, Sleep: func(time.Duration) { slept++ }}

	if err := e.SendBuffer([]byte("x"), 0); err != nil {
		t.Fatal(err)
	}
	if slept == 0 {
		t.Fatal("expected status poll to sleep between retries")
	}
}

func TestSendBufferDFUStatusPollExhaustion(t *testing.T) {
	ft := &fakeTransport{dfuState: dfuStateIdle, dfuStatus: 0, statusOKAfter: -1}
	e := &Engine{Transport: ft, Mode: modes.DFU, Sleep: func(time.Duration) {}}

	if err := e.SendBuffer([]byte("x"), 0); err != errs.ErrUSBUpload {
		t.Fatalf("expected ErrUSBUpload after exhausting retries, got %v", err)
	}
}

func TestSendBufferContextCancelledBetweenChunks(t *testing.T) {
	ft := &fakeTransport{}
	e := &Engine{Transport: ft, Mode: modes.Recovery1}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := e.SendBufferContext(ctx, make([]byte, recoveryChunkSize*2), 0)
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(ft.bulkCalls) != 0 {
		t.Fatalf("expected no chunk sent after cancellation, got %d", len(ft.bulkCalls))
	}
}

func TestEnvCommandsBypassCommandCallbacks(t *testing.T) {
	ft := &fakeTransport{}
	var pre, post int
	e := &Engine{
		Transport:   ft,
		PreCommand:  func(string) bool { pre++; return true },
		PostCommand: func(string) bool { post++; return false },
	}

	if _, err := e.GetEnv("boot-args"); err != nil {
		t.Fatal(err)
	}
	if err := e.SetEnv("auto-boot", "true"); err != nil {
		t.Fatal(err)
	}
	if err := e.SaveEnv(); err != nil {
		t.Fatal(err)
	}
	if err := e.Reboot(); err != nil {
		t.Fatal(err)
	}

	if pre != 0 || post != 0 {
		t.Fatalf("expected no callback dispatch for env/reboot, got pre=%d post=%d", pre, post)
	}
	// getenv command + getenv response read + setenv + saveenv + reboot
	if len(ft.controlCalls) != 5 {
		t.Fatalf("expected 5 control transfers, got %d", len(ft.controlCalls))
	}
}

func TestGetEnvPipeStallIsEmptySuccess(t *testing.T) {
	ft := &fakeTransport{}
	ft.controlErrOnce = map[int]error{1: errs.ErrPipe}
	e := &Engine{Transport: ft}

	v, err := e.GetEnv("boot-args")
	if err != nil {
		t.Fatalf("expected pipe stall treated as success, got %v", err)
	}
	if v != "" {
		t.Fatalf("expected empty value, got %q", v)
	}
}

func TestReceiveStopsOnZeroRead(t *testing.T) {
	ft := &fakeTransport{bulkReadLens: []int{5, 5, 0}}
	var got [][]byte
	e := &Engine{Transport: ft, Received: func(c []byte) int {
		cp := append([]byte{}, c...)
		got = append(got, cp)
		return 0
	}}

	if err := e.Receive(); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 delivered chunks before zero-read stop, got %d", len(got))
	}
}

func TestExecuteScriptSkipsBlankLinesAndComments(t *testing.T) {
	ft := &fakeTransport{}
	e := &Engine{Transport: ft}

	script := "fastboot\n\n# this is a comment\nreboot\n"
	if err := e.ExecuteScript(script); err != nil {
		t.Fatal(err)
	}

	if len(ft.controlCalls) != 2 {
		t.Fatalf("expected 2 commands sent (blank line and comment skipped), got %d", len(ft.controlCalls))
	}
}

func TestExecuteScriptStopsAtFirstError(t *testing.T) {
	ft := &fakeTransport{controlErr: errs.ErrUSBUpload}
	e := &Engine{Transport: ft}

	err := e.ExecuteScript("one\ntwo\n")
	if err != errs.ErrUSBUpload {
		t.Fatalf("expected ErrUSBUpload, got %v", err)
	}
	if len(ft.controlCalls) != 1 {
		t.Fatalf("expected to stop after first failing command, got %d calls", len(ft.controlCalls))
	}
}

type controlCall struct {
	bmRequestType, bRequest uint8
	wValue, wIndex          uint16
	data                    []byte
}

type bulkCall struct {
	endpoint uint8
	data     []byte
}

type fakeTransport struct {
	controlCalls []controlCall
	bulkCalls    []bulkCall

	controlErr     error
	controlErrOnce map[int]error

	dfuState      byte
	dfuStatus     byte
	statusOKAfter int // -1 means never becomes OK
	statusPolls   int

	bulkReadLens []int
	bulkReadIdx  int
}

func (f *fakeTransport) ControlTransfer(bmRequestType, bRequest uint8, wValue, wIndex uint16, data []byte, timeout time.Duration) (int, error) {
	idx := len(f.controlCalls)
	f.controlCalls = append(f.controlCalls, controlCall{bmRequestType, bRequest, wValue, wIndex, append([]byte{}, data...)})

	if f.controlErrOnce != nil {
		if err, ok := f.controlErrOnce[idx]; ok {
			return 0, err
		}
	}
	if f.controlErr != nil {
		return 0, f.controlErr
	}

	switch {
	case bmRequestType == 0xA1 && bRequest == 5:
		data[0] = f.dfuState
		return 1, nil
	case bmRequestType == 0xA1 && bRequest == 3:
		f.statusPolls++
		status := f.dfuStatus
		if f.statusOKAfter > 0 && f.statusPolls >= f.statusOKAfter {
			status = dfuStatusOK
		}
		for i := range data {
			data[i] = 0
		}
		if len(data) > 4 {
			data[4] = status
		}
		return len(data), nil
	}
	return len(data), nil
}

func (f *fakeTransport) BulkTransfer(endpoint uint8, data []byte, timeout time.Duration) (int, error) {
	if f.bulkReadLens != nil && endpoint&0x80 != 0 {
		if f.bulkReadIdx >= len(f.bulkReadLens) {
			return 0, nil
		}
		n := f.bulkReadLens[f.bulkReadIdx]
		f.bulkReadIdx++
		return n, nil
	}
	f.bulkCalls = append(f.bulkCalls, bulkCall{endpoint, append([]byte{}, data...)})
	return len(data), nil
}

func (f *fakeTransport) SetInterface(iface, alt int) error { return nil }
func (f *fakeTransport) Reset() error                      { return nil }
