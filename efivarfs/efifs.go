package efivarfs

import (
	"errors"
	"os"

	"github.com/foxboron/gpu-switch/efi/attributes"
	"github.com/foxboron/gpu-switch/efi/util"
	"golang.org/x/sys/unix"
)

// EFIFS implements Host on top of efivarfs.
type EFIFS struct {
	*FSWrapper
}

var _ Host = &EFIFS{}

// NewFS creates a new instance of *EFIFS reading variables below root. An
// empty root means /sys/firmware/efi/efivars.
func NewFS(root string) *EFIFS {
	return &EFIFS{
		NewFSWrapper(root),
	}
}

// Check if file is immutable before writing to the file.
// Returns EFI_WRITE_PROTECTED if the file is immutable.
func (f *EFIFS) CheckImmutable() *EFIFS {
	f.FSWrapper.CheckImmutable()
	return f
}

// UnsetImmutable implicitly when writing towards a file.
func (f *EFIFS) UnsetImmutable() *EFIFS {
	f.FSWrapper.UnsetImmutable()
	return f
}

func (t *EFIFS) GetVariable(name string, guid util.EFIGUID, attrs *attributes.Attributes, size *int, buf []byte) Status {
	a, b, err := t.ReadEfivarsWithGuid(name, guid)
	if err != nil {
		return toStatus(err)
	}
	if attrs != nil {
		*attrs = a
	}
	*size = len(b)
	if len(b) > len(buf) {
		return EFI_BUFFER_TOO_SMALL
	}
	copy(buf, b)
	return EFI_SUCCESS
}

func (t *EFIFS) SetVariable(name string, guid util.EFIGUID, attrs attributes.Attributes, buf []byte) Status {
	if err := t.WriteEfivarsWithGuid(name, attrs, buf, guid); err != nil {
		return toStatus(err)
	}
	return EFI_SUCCESS
}

// toStatus maps the errno efivarfs reports back to the status the firmware
// returned to the kernel.
func toStatus(err error) Status {
	switch {
	case err == nil:
		return EFI_SUCCESS
	case errors.Is(err, os.ErrNotExist):
		return EFI_NOT_FOUND
	case errors.Is(err, ErrImmutable), errors.Is(err, unix.EPERM):
		return EFI_WRITE_PROTECTED
	case errors.Is(err, os.ErrPermission):
		return EFI_ACCESS_DENIED
	case errors.Is(err, unix.EINVAL):
		return EFI_INVALID_PARAMETER
	case errors.Is(err, unix.ENOSPC), errors.Is(err, unix.ENOMEM):
		return EFI_OUT_OF_RESOURCES
	case errors.Is(err, unix.EOPNOTSUPP):
		return EFI_UNSUPPORTED
	default:
		return EFI_DEVICE_ERROR
	}
}
