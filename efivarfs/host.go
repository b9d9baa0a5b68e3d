package efivarfs

import (
	"fmt"

	"github.com/foxboron/gpu-switch/efi/attributes"
	"github.com/foxboron/gpu-switch/efi/util"
)

// Section 8.2 Variable Services
//
// Host is the GetVariable()/SetVariable() pair of the runtime services table.
// Implementations are expected to be called from a single goroutine.
type Host interface {
	// GetVariable copies the variable into buf. On return *size holds the
	// length of the variable, and attrs (when non-nil) its attribute mask. If
	// buf is too small EFI_BUFFER_TOO_SMALL is returned and *size holds the
	// required length.
	GetVariable(name string, guid util.EFIGUID, attrs *attributes.Attributes, size *int, buf []byte) Status
	// SetVariable replaces the variable with buf.
	SetVariable(name string, guid util.EFIGUID, attrs attributes.Attributes, buf []byte) Status
}

// Status is an EFI_STATUS code. It implements error so a failing status can
// be returned and wrapped directly.
type Status uint64

const errorBit Status = 1 << 63

// Appendix D - Status Codes
const (
	EFI_SUCCESS            Status = 0
	EFI_INVALID_PARAMETER  Status = errorBit | 2
	EFI_UNSUPPORTED        Status = errorBit | 3
	EFI_BUFFER_TOO_SMALL   Status = errorBit | 5
	EFI_DEVICE_ERROR       Status = errorBit | 7
	EFI_WRITE_PROTECTED    Status = errorBit | 8
	EFI_OUT_OF_RESOURCES   Status = errorBit | 9
	EFI_NOT_FOUND          Status = errorBit | 14
	EFI_ACCESS_DENIED      Status = errorBit | 15
	EFI_SECURITY_VIOLATION Status = errorBit | 26
)

var statusText = map[Status]string{
	EFI_SUCCESS:            "Success",
	EFI_INVALID_PARAMETER:  "Invalid Parameter",
	EFI_UNSUPPORTED:        "Unsupported",
	EFI_BUFFER_TOO_SMALL:   "Buffer Too Small",
	EFI_DEVICE_ERROR:       "Device Error",
	EFI_WRITE_PROTECTED:    "Write Protected",
	EFI_OUT_OF_RESOURCES:   "Out of Resources",
	EFI_NOT_FOUND:          "Not Found",
	EFI_ACCESS_DENIED:      "Access Denied",
	EFI_SECURITY_VIOLATION: "Security Violation",
}

// IsError reports whether the status has the error bit set.
func (s Status) IsError() bool {
	return s&errorBit != 0
}

func (s Status) String() string {
	if t, ok := statusText[s]; ok {
		return t
	}
	if s.IsError() {
		return fmt.Sprintf("Error %d", uint64(s&^errorBit))
	}
	return fmt.Sprintf("Warning %d", uint64(s))
}

func (s Status) Error() string {
	return s.String()
}
