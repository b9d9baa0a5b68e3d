//go:build !linux

package attr

import (
	"os"
)

const immutableFlag = int32(0x10)

// Stub implementation for platforms without efivarfs
func GetAttrFromFile(f *os.File) (int32, error) {
	return 0, nil
}

// Stub implementation for platforms without efivarfs
func SetAttrOnFile(f *os.File, attr int32) error {
	return nil
}
