package gpuswitch

import (
	"testing"

	"github.com/foxboron/gpu-switch/efi/efitest"
	"github.com/foxboron/gpu-switch/efivar"
	"github.com/foxboron/gpu-switch/efivarfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetNextBootGPU(t *testing.T) {
	host := efitest.NewHost().
		With(efivar.GpuPowerPrefs, nvbsrt, 0x0, 0x0, 0x0, 0x0).
		With(efivar.GpuPolicy, nvbsrt, 0x0)
	a, _ := newTestAccessor(host, 0)

	require.NoError(t, a.SetNextBootGPU(Internal, efivar.GPUVariables(false)))
	prefs, _ := host.Lookup(efivar.GpuPowerPrefs)
	policy, _ := host.Lookup(efivar.GpuPolicy)
	assert.Equal(t, []byte{0x1, 0x0, 0x0, 0x0}, prefs.Data)
	assert.Equal(t, []byte{0x1}, policy.Data)

	require.NoError(t, a.SetNextBootGPU(Dedicated, efivar.GPUVariables(false)))
	prefs, _ = host.Lookup(efivar.GpuPowerPrefs)
	assert.Equal(t, []byte{0x0, 0x0, 0x0, 0x0}, prefs.Data)
}

func TestSetNextBootGPURequiresAll(t *testing.T) {
	host := efitest.NewHost().
		With(efivar.GpuPowerPrefs, nvbsrt, 0x0, 0x0, 0x0, 0x0)
	a, _ := newTestAccessor(host, 0)

	err := a.SetNextBootGPU(Internal, efivar.GPUVariables(false))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAbsent)
	assert.Contains(t, err.Error(), "gpu-policy")

	// The remaining variables are still attempted.
	require.Len(t, host.Sets, 1)
	assert.Equal(t, "gpu-power-prefs", host.Sets[0].Name)
}

func TestSetNextBootGPUCollectsFailures(t *testing.T) {
	host := efitest.NewHost().
		With(efivar.GpuPowerPrefs, nvbsrt, 0x0).
		With(efivar.GpuPolicy, nvbsrt, 0x0).
		With(efivar.GfxSavedConfigRestoreStatus, nvbsrt, 0x0)
	host.SetStatus[efivar.GfxSavedConfigRestoreStatus.Name] = efivarfs.EFI_OUT_OF_RESOURCES
	a, _ := newTestAccessor(host, 0)

	err := a.SetNextBootGPU(Internal, efivar.GPUVariables(true))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransformRejected)
	assert.ErrorIs(t, err, ErrWriteFailed)
	assert.ErrorIs(t, err, efivarfs.EFI_OUT_OF_RESOURCES)
	assert.Len(t, host.Sets, 2)
}

func TestSetNextBootGPUNoVariables(t *testing.T) {
	a, _ := newTestAccessor(efitest.NewHost(), 0)
	assert.ErrorIs(t, a.SetNextBootGPU(Internal, nil), ErrAbsent)
}
