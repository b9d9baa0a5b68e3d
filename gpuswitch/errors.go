package gpuswitch

import (
	"fmt"

	"github.com/foxboron/gpu-switch/efivarfs"
	"github.com/pkg/errors"
)

var (
	// ErrAbsent means the variable does not exist, or exists but is empty.
	// This is normal on machines without a dedicated GPU.
	ErrAbsent            = errors.New("variable not found")
	ErrReadFailed        = errors.New("variable read failed")
	ErrWriteFailed       = errors.New("variable write failed")
	ErrTransformRejected = errors.New("variable rejected by transform")
	ErrBufferTooSmall    = errors.New("buffer smaller than the maximum variable size")
)

// StoreError is a failed GetVariable or SetVariable call.
type StoreError struct {
	Op     string
	Name   string
	Status efivarfs.Status
	Err    error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, e.Name, e.Status)
}

func (e *StoreError) Unwrap() []error {
	return []error{e.Err, e.Status}
}
