package attr

import (
	"os"

	"golang.org/x/sys/unix"
)

// FS_IMMUTABLE_FL from linux/fs.h
const immutableFlag int32 = 0x00000010

// GetAttrFromFile retrieves the attributes of a file on a linux filesystem
func GetAttrFromFile(f *os.File) (int32, error) {
	attr_int, err := unix.IoctlGetInt(int(f.Fd()), unix.FS_IOC_GETFLAGS)
	return int32(attr_int), err
}

// SetAttrOnFile sets the attributes of a file on a linux filesystem to the given value
func SetAttrOnFile(f *os.File, attr int32) error {
	return unix.IoctlSetPointerInt(int(f.Fd()), unix.FS_IOC_SETFLAGS, int(attr))
}
