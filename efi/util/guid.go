package util

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

// Appendix A - GUID and Time Formats

type EFIGUID struct {
	Data1 uint32
	Data2 uint16
	Data3 uint16
	Data4 [8]uint8
}

// Pretty print an EFIGUID struct
func (e EFIGUID) Format() string {
	return fmt.Sprintf("%08x-%04x-%04x-%04x-%12x", e.Data1, e.Data2, e.Data3, e.Data4[:2], e.Data4[2:])
}

func (e EFIGUID) String() string {
	return e.Format()
}

// Compare two EFIGUID structs
func CmpEFIGUID(cmp1 EFIGUID, cmp2 EFIGUID) bool {
	return cmp1 == cmp2
}

// ParseGUID parses the textual form of a GUID, e.g.
// "8be4df61-93ca-11d2-aa0d-00e098032b8c".
func ParseGUID(s string) (EFIGUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return EFIGUID{}, fmt.Errorf("invalid guid %q: %w", s, err)
	}
	return BytesToGUID(u[:]), nil
}

// StringToGUID is like ParseGUID but panics on malformed input. It is meant
// for package level literals.
func StringToGUID(s string) *EFIGUID {
	g, err := ParseGUID(s)
	if err != nil {
		panic(err)
	}
	return &g
}

// Convert a 16 byte slice in textual (big endian) order to an EFIGUID
func BytesToGUID(s []byte) EFIGUID {
	var efi EFIGUID
	efi.Data1 = binary.BigEndian.Uint32(s[0:4])
	efi.Data2 = binary.BigEndian.Uint16(s[4:6])
	efi.Data3 = binary.BigEndian.Uint16(s[6:8])
	copy(efi.Data4[:], s[8:16])
	return efi
}

// Convert an EFIGUID to a byte slice
func GUIDToBytes(g EFIGUID) []byte {
	b := make([]byte, 16)
	binary.BigEndian.PutUint32(b[0:4], g.Data1)
	binary.BigEndian.PutUint16(b[4:6], g.Data2)
	binary.BigEndian.PutUint16(b[6:8], g.Data3)
	copy(b[8:], g.Data4[:])
	return b
}
