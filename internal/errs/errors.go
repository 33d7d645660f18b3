// Package errs defines the library's fixed error taxonomy:
// package-level sentinel errors paired with stable integer codes for
// ABI parity with the C libirecovery error enum.
package errs

import "errors"

// Code is a fixed integer error code, stable across releases for
// callers that bridge this library to a C ABI.
type Code int

// Error codes, matching the C library's fixed integer taxonomy.
const (
	CodeSuccess Code = iota
	CodeNoDevice
	CodeUnableToConnect
	CodeOutOfMemory
	CodeInvalidInput
	CodeFileNotFound
	CodeUSBUpload
	CodeUSBStatus
	CodeUSBInterface
	CodeUSBConfiguration
	CodePipe
	CodeTimeout
	CodeUnsupported
	CodeUnknownError
)

// irecoveryError pairs a stable message with its ABI code.
type irecoveryError struct {
	code Code
	msg  string
}

func (e *irecoveryError) Error() string { return e.msg }

// CodeOf returns the fixed ABI code for an error produced by this
// package. Errors not produced here report CodeUnknownError.
func CodeOf(err error) Code {
	if err == nil {
		return CodeSuccess
	}
	var ie *irecoveryError
	if errors.As(err, &ie) {
		return ie.code
	}
	return CodeUnknownError
}

// Sentinel errors, one per taxonomy entry.
var (
	ErrNoDevice           = &irecoveryError{CodeNoDevice, "No device found"}
	ErrUnableToConnect    = &irecoveryError{CodeUnableToConnect, "Unable to connect to device"}
	ErrOutOfMemory        = &irecoveryError{CodeOutOfMemory, "Out of memory"}
	ErrInvalidInput       = &irecoveryError{CodeInvalidInput, "Invalid input"}
	ErrFileNotFound       = &irecoveryError{CodeFileNotFound, "File not found"}
	ErrUSBUpload          = &irecoveryError{CodeUSBUpload, "Unable to upload data"}
	ErrUSBStatus          = &irecoveryError{CodeUSBStatus, "Unable to get device status"}
	ErrUSBInterface       = &irecoveryError{CodeUSBInterface, "Unable to set device interface"}
	ErrUSBConfiguration   = &irecoveryError{CodeUSBConfiguration, "Unable to set device configuration"}
	ErrPipe               = &irecoveryError{CodePipe, "Pipe error"}
	ErrTimeout            = &irecoveryError{CodeTimeout, "Operation timed out"}
	ErrUnsupported        = &irecoveryError{CodeUnsupported, "Operation not supported"}
	ErrUnknown            = &irecoveryError{CodeUnknownError, "Unknown error"}
)

// Strerror returns the stable English phrase for an error's code.
func Strerror(err error) string {
	if err == nil {
		return "Success"
	}
	return err.Error()
}

// StrerrorCode returns the stable English phrase for a raw Code value,
// for callers that only have the integer (e.g. across a C ABI).
func StrerrorCode(code Code) string {
	switch code {
	case CodeSuccess:
		return "Success"
	case CodeNoDevice:
		return ErrNoDevice.msg
	case CodeUnableToConnect:
		return ErrUnableToConnect.msg
	case CodeOutOfMemory:
		return ErrOutOfMemory.msg
	case CodeInvalidInput:
		return ErrInvalidInput.msg
	case CodeFileNotFound:
		return ErrFileNotFound.msg
	case CodeUSBUpload:
		return ErrUSBUpload.msg
	case CodeUSBStatus:
		return ErrUSBStatus.msg
	case CodeUSBInterface:
		return ErrUSBInterface.msg
	case CodeUSBConfiguration:
		return ErrUSBConfiguration.msg
	case CodePipe:
		return ErrPipe.msg
	case CodeTimeout:
		return ErrTimeout.msg
	case CodeUnsupported:
		return ErrUnsupported.msg
	default:
		return ErrUnknown.msg
	}
}

// IsPipe reports whether err is (or wraps) ErrPipe — used by command
// wrappers whose target command is expected to disconnect the device.
func IsPipe(err error) bool {
	return errors.Is(err, error(ErrPipe))
}
