package efitest

import (
	"bytes"
	"testing"

	"github.com/foxboron/gpu-switch/efi/attributes"
	"github.com/foxboron/gpu-switch/efivar"
	"github.com/foxboron/gpu-switch/efivarfs"
)

func TestHostKey(t *testing.T) {
	for _, v := range efivar.DumpVariables() {
		name, guid := mkkey(v.Name, *v.GUID).split()
		if name != v.Name {
			t.Fatalf("got name %q, expected %q", name, v.Name)
		}
		if guid != *v.GUID {
			t.Fatalf("got guid %s, expected %s", guid, v.GUID)
		}
	}
}

func TestHostRecordsCalls(t *testing.T) {
	v := efivar.GpuPolicy
	attrs := attributes.EFI_VARIABLE_NON_VOLATILE | attributes.AccessMask
	h := NewHost()

	buf := make([]byte, 16)
	size := len(buf)
	if st := h.GetVariable(v.Name, *v.GUID, nil, &size, buf); st != efivarfs.EFI_NOT_FOUND {
		t.Fatalf("expected EFI_NOT_FOUND, got %s", st)
	}
	if st := h.SetVariable(v.Name, *v.GUID, attrs, []byte{0x1}); st != efivarfs.EFI_SUCCESS {
		t.Fatalf("SetVariable returned %s", st)
	}
	var got attributes.Attributes
	size = len(buf)
	if st := h.GetVariable(v.Name, *v.GUID, &got, &size, buf); st != efivarfs.EFI_SUCCESS {
		t.Fatalf("GetVariable returned %s", st)
	}
	if got != attrs || !bytes.Equal(buf[:size], []byte{0x1}) {
		t.Fatalf("unexpected variable %s %v", got, buf[:size])
	}

	if len(h.Gets) != 2 || h.Gets[0] != v.Name || h.Gets[1] != v.Name {
		t.Fatalf("unexpected gets %v", h.Gets)
	}
	if len(h.Sets) != 1 || h.Sets[0].Name != v.Name || h.Sets[0].GUID != *v.GUID {
		t.Fatalf("unexpected sets %+v", h.Sets)
	}

	// Same name, other vendor.
	size = len(buf)
	if st := h.GetVariable(v.Name, *efivar.GpuPowerPrefs.GUID, nil, &size, buf); st != efivarfs.EFI_NOT_FOUND {
		t.Fatalf("expected EFI_NOT_FOUND, got %s", st)
	}
}
