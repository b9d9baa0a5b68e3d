package testfs

import (
	"testing/fstest"

	"github.com/foxboron/gpu-switch/efi/efitest"
	"github.com/foxboron/gpu-switch/efivarfs"
)

// TestFS provides a controllable efivarfs for tests. Files are collected as
// fstest.MapFS overlays and converted to an in-memory afero.Fs on Open.
type TestFS struct {
	*efivarfs.EFIFS
	mapfs fstest.MapFS
}

func NewTestFS() *TestFS {
	return &TestFS{
		EFIFS: &efivarfs.EFIFS{FSWrapper: efivarfs.NewMemoryWrapper()},
		mapfs: fstest.MapFS{},
	}
}

// With allows you to compose several overlay files into the in-memory filesystem.
func (f *TestFS) With(files ...fstest.MapFS) *TestFS {
	for _, mapfs := range files {
		for path, file := range mapfs {
			f.mapfs[path] = file
		}
	}
	return f
}

// Open populates the in-memory filesystem and returns it as a Host.
func (f *TestFS) Open() *efivarfs.EFIFS {
	f.SetFS(efitest.FromMapFS(f.mapfs))
	return f.EFIFS
}
