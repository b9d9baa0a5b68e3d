package gpuswitch

import (
	"github.com/foxboron/gpu-switch/efivar"
)

// GPU selects the GPU the firmware powers up on next boot.
type GPU int

const (
	// Dedicated is the discrete, external GPU.
	Dedicated GPU = iota
	// Internal is the integrated GPU.
	Internal
)

func (g GPU) String() string {
	if g == Internal {
		return "internal"
	}
	return "dedicated"
}

var expectedLength = map[string]int{
	efivar.GpuPowerPrefs.Name:               4,
	efivar.GpuPolicy.Name:                   1,
	efivar.GfxSavedConfigRestoreStatus.Name: 1,
}

// ExpectedLength returns the size of a variable SetGPUPreference edits, and
// false for any other name.
func ExpectedLength(name string) (int, bool) {
	n, ok := expectedLength[name]
	return n, ok
}

// SetGPUPreference sets the first byte of a GPU preference variable, 1 for the
// internal GPU and 0 for the dedicated one. It returns false if name is not a
// GPU variable or b does not have the expected length.
func SetGPUPreference(name string, b []byte, internal bool) bool {
	want, ok := ExpectedLength(name)
	if !ok || len(b) != want {
		return false
	}
	if internal {
		b[0] = 1
	} else {
		b[0] = 0
	}
	return true
}

// GPUPreference returns a Transform selecting gpu.
func GPUPreference(gpu GPU) Transform {
	return func(name string, b []byte) bool {
		return SetGPUPreference(name, b, gpu == Internal)
	}
}
