package efitest

import (
	"path"
	"testing/fstest"

	"github.com/foxboron/gpu-switch/efi/attributes"
	"github.com/foxboron/gpu-switch/efivar"
)

// Var returns an efivarfs file for v holding attrs followed by data.
func Var(v efivar.Efivar, attrs attributes.Attributes, data ...byte) fstest.MapFS {
	name := path.Join(attributes.Efivars, v.Name+"-"+v.GUID.Format())
	return fstest.MapFS{
		name: {Data: append(attrs.Bytes(), data...)},
	}
}

func GpuPowerPrefsInternal() fstest.MapFS {
	return Var(efivar.GpuPowerPrefs, efivar.GpuPowerPrefs.Attributes, 0x1, 0x0, 0x0, 0x0)
}

func GpuPowerPrefsDedicated() fstest.MapFS {
	return Var(efivar.GpuPowerPrefs, efivar.GpuPowerPrefs.Attributes, 0x0, 0x0, 0x0, 0x0)
}

func GpuPolicyInternal() fstest.MapFS {
	return Var(efivar.GpuPolicy, efivar.GpuPolicy.Attributes, 0x1)
}

func GpuPolicyDedicated() fstest.MapFS {
	return Var(efivar.GpuPolicy, efivar.GpuPolicy.Attributes, 0x0)
}

func GfxSavedConfigRestoreStatus() fstest.MapFS {
	return Var(efivar.GfxSavedConfigRestoreStatus, efivar.GfxSavedConfigRestoreStatus.Attributes, 0x0)
}
