package efitest

import (
	"path/filepath"
	"testing/fstest"

	"github.com/spf13/afero"
)

// Convert fstest.MapFS to afero.Fs
func FromMapFS(files fstest.MapFS) afero.Fs {
	memfs := afero.NewMemMapFs()
	for name, file := range files {
		if file.Mode.IsDir() {
			memfs.MkdirAll(name, 0755)
			continue
		}
		memfs.MkdirAll(filepath.Dir(name), 0755)
		f, err := memfs.Create(name)
		if err != nil {
			continue
		}
		f.Write(file.Data)
		f.Close()
	}
	return memfs
}
