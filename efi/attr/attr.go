package attr

import (
	"errors"
	"os"
)

// Files in efivarfs are created with the immutable flag set by the kernel for
// every variable not on its allow list. It has to be cleared before writing.

var ErrIsImmutable = errors.New("file is immutable")

// IsImmutable returns ErrIsImmutable if the file has the immutable flag set.
func IsImmutable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	attr, err := GetAttrFromFile(f)
	if err != nil {
		return err
	}
	if attr&immutableFlag != 0 {
		return ErrIsImmutable
	}
	return nil
}

// UnsetImmutable clears the immutable flag on the file.
func UnsetImmutable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	attr, err := GetAttrFromFile(f)
	if err != nil {
		return err
	}
	return SetAttrOnFile(f, attr&^immutableFlag)
}
