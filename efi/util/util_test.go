package util

import (
	"bytes"
	"testing"
)

func TestParseValidUtf16String(t *testing.T) {
	// "gpu-policy" as firmware stores a CHAR16 variable name.
	value := []byte{
		'g', 0, 'p', 0, 'u', 0, '-', 0, 'p', 0,
		'o', 0, 'l', 0, 'i', 0, 'c', 0, 'y', 0,
		0, 0,
	}
	actual, err := ParseUtf16Var(bytes.NewBuffer(value))
	if err != nil {
		t.Fatal(err)
	}
	if actual != "gpu-policy" {
		t.Fatalf("ParseUtf16Var(%v) returned %q, expected %q", value, actual, "gpu-policy")
	}
}

func TestParseInvalidUtf16String(t *testing.T) {
	value := []byte{'g', 0, 'p', 0, 'u', 0}
	if _, err := ParseUtf16Var(bytes.NewBuffer(value)); err == nil {
		t.Fatalf("ParseUtf16Var did not err with a non-null-terminated string.")
	}
}

func TestEncodeUtf16Var(t *testing.T) {
	b, err := EncodeUtf16Var("gpu-power-prefs")
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != 2*len("gpu-power-prefs")+2 {
		t.Fatalf("unexpected length %d", len(b))
	}
	s, err := ParseUtf16Var(bytes.NewBuffer(b))
	if err != nil {
		t.Fatal(err)
	}
	if s != "gpu-power-prefs" {
		t.Fatalf("got %q", s)
	}
}

func TestParseGUID(t *testing.T) {
	g, err := ParseGUID("fa4ce28d-b62f-4c99-9cc3-6815686e30f9")
	if err != nil {
		t.Fatal(err)
	}
	want := EFIGUID{0xfa4ce28d, 0xb62f, 0x4c99, [8]uint8{0x9c, 0xc3, 0x68, 0x15, 0x68, 0x6e, 0x30, 0xf9}}
	if !CmpEFIGUID(g, want) {
		t.Fatalf("got %s, expected %s", g.Format(), want.Format())
	}
	if g.Format() != "fa4ce28d-b62f-4c99-9cc3-6815686e30f9" {
		t.Fatalf("Format() returned %s", g.Format())
	}
	if !bytes.Equal(GUIDToBytes(g), GUIDToBytes(BytesToGUID(GUIDToBytes(g)))) {
		t.Fatalf("GUIDToBytes is not stable")
	}
}

func TestParseGUIDInvalid(t *testing.T) {
	if _, err := ParseGUID("not-a-guid"); err == nil {
		t.Fatalf("expected an error")
	}
}
