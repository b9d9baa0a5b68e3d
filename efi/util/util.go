package util

import (
	"bytes"
	"errors"

	"golang.org/x/text/encoding/unicode"
)

var ErrNotNullTerminated = errors.New("utf-16 string is not null terminated")

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// Read a null terminated string
func ReadNullString(f *bytes.Buffer) []byte {
	var ret []byte
	for {
		block := make([]byte, 2)
		r, _ := f.Read(block)
		if r == 0 {
			break
		}
		ret = append(ret, block[:r]...)
		if bytes.Equal(block, []byte{0x00, 0x00}) {
			break
		}
	}
	return ret
}

// ParseUtf16Var reads a null terminated UCS-2/UTF-16LE string, the way
// firmware stores CHAR16 strings.
func ParseUtf16Var(data *bytes.Buffer) (string, error) {
	b := ReadNullString(data)
	if len(b) < 2 || !bytes.Equal(b[len(b)-2:], []byte{0x00, 0x00}) {
		return "", ErrNotNullTerminated
	}
	s, err := utf16le.NewDecoder().Bytes(b[:len(b)-2])
	if err != nil {
		return "", err
	}
	return string(s), nil
}

// EncodeUtf16Var encodes s as a null terminated UTF-16LE string.
func EncodeUtf16Var(s string) ([]byte, error) {
	b, err := utf16le.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, err
	}
	return append(b, 0x00, 0x00), nil
}
