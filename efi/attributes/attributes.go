package attributes

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Section 8.2 Variable Services
type Attributes uint32

var SizeofAttributes = 4

const (
	EFI_VARIABLE_NON_VOLATILE                          Attributes = 0x00000001
	EFI_VARIABLE_BOOTSERVICE_ACCESS                    Attributes = 0x00000002
	EFI_VARIABLE_RUNTIME_ACCESS                        Attributes = 0x00000004
	EFI_VARIABLE_HARDWARE_ERROR_RECORD                 Attributes = 0x00000008
	EFI_VARIABLE_AUTHENTICATED_WRITE_ACCESS            Attributes = 0x00000010 // Deprecated, we only reserve it
	EFI_VARIABLE_TIME_BASED_AUTHENTICATED_WRITE_ACCESS Attributes = 0x00000020
	EFI_VARIABLE_APPEND_WRITE                          Attributes = 0x00000040
	EFI_VARIABLE_ENHANCED_AUTHENTICATED_ACCESS         Attributes = 0x00000080 // Uses the EFI_VARIABLE_AUTHENTICATION_3 struct
)

const (
	// ValidMask is every bit SetVariable() recognizes.
	ValidMask = EFI_VARIABLE_NON_VOLATILE |
		EFI_VARIABLE_BOOTSERVICE_ACCESS |
		EFI_VARIABLE_RUNTIME_ACCESS |
		EFI_VARIABLE_HARDWARE_ERROR_RECORD |
		EFI_VARIABLE_AUTHENTICATED_WRITE_ACCESS |
		EFI_VARIABLE_TIME_BASED_AUTHENTICATED_WRITE_ACCESS |
		EFI_VARIABLE_APPEND_WRITE |
		EFI_VARIABLE_ENHANCED_AUTHENTICATED_ACCESS

	// StoredMask is ValidMask without EFI_VARIABLE_APPEND_WRITE, which
	// modifies a single SetVariable() call and is not a property of the
	// stored variable.
	StoredMask = ValidMask &^ EFI_VARIABLE_APPEND_WRITE

	// AccessMask are the two access bits a variable needs to be visible to
	// both boot services and the running OS.
	AccessMask = EFI_VARIABLE_BOOTSERVICE_ACCESS | EFI_VARIABLE_RUNTIME_ACCESS
)

var (
	Efivars = "/sys/firmware/efi/efivars"
)

// NV -> Non-Volatile
// BS -> Boot Services
// RT -> Runtime Services
// HR -> Hardware Error Record
// AW -> Authenticated Write Access
// AT -> Time Based Authenticated Write Access
// AP -> Append Write
// EA -> Enhanced Authenticated Access
var names = []struct {
	bit  Attributes
	name string
}{
	{EFI_VARIABLE_NON_VOLATILE, "NV"},
	{EFI_VARIABLE_BOOTSERVICE_ACCESS, "BS"},
	{EFI_VARIABLE_RUNTIME_ACCESS, "RT"},
	{EFI_VARIABLE_HARDWARE_ERROR_RECORD, "HR"},
	{EFI_VARIABLE_AUTHENTICATED_WRITE_ACCESS, "AW"},
	{EFI_VARIABLE_TIME_BASED_AUTHENTICATED_WRITE_ACCESS, "AT"},
	{EFI_VARIABLE_APPEND_WRITE, "AP"},
	{EFI_VARIABLE_ENHANCED_AUTHENTICATED_ACCESS, "EA"},
}

// Sanitize returns the mask that is safe to hand back to SetVariable() after
// reading a variable. Unknown bits and EFI_VARIABLE_APPEND_WRITE are dropped,
// so the write always replaces the value. BS|RT are forced on when the mask
// carries no access bit, or carries nothing but access bits. The second case
// turns a BS-only mask into BS|RT, the mask gpu-switch has always written.
func (a Attributes) Sanitize() Attributes {
	a &= StoredMask
	if a&AccessMask == 0 || a&^AccessMask == 0 {
		a |= AccessMask
	}
	return a
}

// Bytes returns the little endian encoding efivarfs prefixes variables with.
func (a Attributes) Bytes() []byte {
	b := make([]byte, SizeofAttributes)
	binary.LittleEndian.PutUint32(b, uint32(a))
	return b
}

func (a Attributes) String() string {
	if a == 0 {
		return "0"
	}
	var parts []string
	for _, n := range names {
		if a&n.bit != 0 {
			parts = append(parts, n.name)
		}
	}
	if rest := a &^ ValidMask; rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

// ParseAttributes decodes the attribute prefix of an efivarfs file.
func ParseAttributes(b []byte) (Attributes, error) {
	if len(b) < SizeofAttributes {
		return 0, fmt.Errorf("attributes need %d bytes, got %d", SizeofAttributes, len(b))
	}
	return Attributes(binary.LittleEndian.Uint32(b)), nil
}
