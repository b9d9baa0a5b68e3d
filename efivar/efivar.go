package efivar

import (
	"github.com/foxboron/gpu-switch/efi/attributes"
	"github.com/foxboron/gpu-switch/efi/util"
)

// Efivar identifies one variable in the firmware store. Attributes holds the
// mask the firmware creates the variable with; writes always reuse the mask
// that was read back instead.
type Efivar struct {
	Name       string
	GUID       *util.EFIGUID
	Attributes attributes.Attributes
}

// Equal reports whether two Efivars name the same slot in the store.
func (e Efivar) Equal(o Efivar) bool {
	return e.Name == o.Name && util.CmpEFIGUID(*e.GUID, *o.GUID)
}

// Variables Apple firmware consults when picking the GPU on a dual-GPU
// MacBook Pro. Only the first byte carries meaning, 1 selects the integrated
// GPU and 0 the dedicated one.
var (
	AppleNVRAMGUID = util.StringToGUID("4d1ede05-38c7-4a6a-9cc6-4bcca8b38c14")

	// Boot GPU power preference. 4 bytes.
	GpuPowerPrefs = Efivar{"gpu-power-prefs", util.StringToGUID("fa4ce28d-b62f-4c99-9cc3-6815686e30f9"),
		attributes.EFI_VARIABLE_NON_VOLATILE |
			attributes.EFI_VARIABLE_BOOTSERVICE_ACCESS |
			attributes.EFI_VARIABLE_RUNTIME_ACCESS}

	// GPU policy. 1 byte.
	GpuPolicy = Efivar{"gpu-policy", util.StringToGUID("7c436110-ab2a-4bbb-a880-fe41995c9f82"),
		attributes.EFI_VARIABLE_NON_VOLATILE |
			attributes.EFI_VARIABLE_BOOTSERVICE_ACCESS |
			attributes.EFI_VARIABLE_RUNTIME_ACCESS}

	// Saved graphics configuration restore status, only set by older
	// firmware. 1 byte.
	GfxSavedConfigRestoreStatus = Efivar{"gfx-saved-config-restore-status", AppleNVRAMGUID,
		attributes.EFI_VARIABLE_NON_VOLATILE |
			attributes.EFI_VARIABLE_BOOTSERVICE_ACCESS |
			attributes.EFI_VARIABLE_RUNTIME_ACCESS}
)

// GPUVariables returns the variables to touch when switching GPU. legacy adds
// gfx-saved-config-restore-status.
func GPUVariables(legacy bool) []Efivar {
	vars := []Efivar{GpuPowerPrefs, GpuPolicy}
	if legacy {
		vars = append(vars, GfxSavedConfigRestoreStatus)
	}
	return vars
}

// DumpVariables is every variable worth printing for diagnostics.
func DumpVariables() []Efivar {
	return GPUVariables(true)
}
