package efitest

import (
	"bytes"

	"github.com/foxboron/gpu-switch/efi/attributes"
	"github.com/foxboron/gpu-switch/efi/util"
	"github.com/foxboron/gpu-switch/efivar"
	"github.com/foxboron/gpu-switch/efivarfs"
)

// Host is an in-memory firmware variable store. Like the firmware it keys
// variables by their CHAR16 name and vendor GUID. Every call is recorded, with
// the name and GUID decoded back from the key, so tests can assert what
// reached the store.
type Host struct {
	vars map[key]Value

	// GetStatus and SetStatus force a status for a variable name.
	GetStatus map[string]efivarfs.Status
	SetStatus map[string]efivarfs.Status

	Gets []string
	Sets []Call
}

// Value is a stored variable.
type Value struct {
	Attributes attributes.Attributes
	Data       []byte
}

// Call is a recorded SetVariable call.
type Call struct {
	Name       string
	GUID       util.EFIGUID
	Attributes attributes.Attributes
	Data       []byte
}

// key is the null terminated CHAR16 name followed by the 16 GUID bytes.
type key string

var _ efivarfs.Host = &Host{}

func NewHost() *Host {
	return &Host{
		vars:      map[key]Value{},
		GetStatus: map[string]efivarfs.Status{},
		SetStatus: map[string]efivarfs.Status{},
	}
}

func mkkey(name string, guid util.EFIGUID) key {
	b, err := util.EncodeUtf16Var(name)
	if err != nil {
		panic(err)
	}
	return key(append(b, util.GUIDToBytes(guid)...))
}

func (k key) split() (string, util.EFIGUID) {
	buf := bytes.NewBufferString(string(k))
	name, err := util.ParseUtf16Var(buf)
	if err != nil {
		panic(err)
	}
	return name, util.BytesToGUID(buf.Bytes())
}

// With stores data for v without recording a call.
func (h *Host) With(v efivar.Efivar, attrs attributes.Attributes, data ...byte) *Host {
	h.vars[mkkey(v.Name, *v.GUID)] = Value{attrs, append([]byte{}, data...)}
	return h
}

// Lookup returns the stored value of v.
func (h *Host) Lookup(v efivar.Efivar) (Value, bool) {
	val, ok := h.vars[mkkey(v.Name, *v.GUID)]
	return val, ok
}

func (h *Host) GetVariable(name string, guid util.EFIGUID, attrs *attributes.Attributes, size *int, buf []byte) efivarfs.Status {
	k := mkkey(name, guid)
	name, _ = k.split()
	h.Gets = append(h.Gets, name)
	if st, ok := h.GetStatus[name]; ok {
		return st
	}
	val, ok := h.vars[k]
	if !ok {
		return efivarfs.EFI_NOT_FOUND
	}
	*size = len(val.Data)
	if len(val.Data) > len(buf) {
		return efivarfs.EFI_BUFFER_TOO_SMALL
	}
	if attrs != nil {
		*attrs = val.Attributes
	}
	copy(buf, val.Data)
	return efivarfs.EFI_SUCCESS
}

func (h *Host) SetVariable(name string, guid util.EFIGUID, attrs attributes.Attributes, buf []byte) efivarfs.Status {
	k := mkkey(name, guid)
	name, guid = k.split()
	data := append([]byte{}, buf...)
	h.Sets = append(h.Sets, Call{name, guid, attrs, data})
	if st, ok := h.SetStatus[name]; ok {
		return st
	}
	h.vars[k] = Value{attrs, data}
	return efivarfs.EFI_SUCCESS
}
