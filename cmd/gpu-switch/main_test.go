package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/foxboron/gpu-switch/efi/attributes"
	"github.com/foxboron/gpu-switch/efi/efitest"
	"github.com/foxboron/gpu-switch/efivar"
	"github.com/foxboron/gpu-switch/efivarfs"
	"github.com/foxboron/gpu-switch/efivarfs/testfs"
	"github.com/foxboron/gpu-switch/internal/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nvbsrt = attributes.EFI_VARIABLE_NON_VOLATILE | attributes.AccessMask

func newTestApp(t *testing.T, host efivarfs.Host) (*app, *bytes.Buffer, *bytes.Buffer) {
	t.Setenv(config.EnvConfig, "")
	t.Setenv(config.EnvEfivars, "")
	t.Setenv(config.EnvLegacy, "")
	t.Setenv(config.EnvLogLevel, "")
	var stdout, stderr bytes.Buffer
	return &app{
		stdout:   &stdout,
		stderr:   &stderr,
		openHost: func(config.Config) efivarfs.Host { return host },
	}, &stdout, &stderr
}

func TestRunRequiresMode(t *testing.T) {
	a, stdout, _ := newTestApp(t, efitest.NewHost())
	assert.Equal(t, exitInvalidParameter, a.run(nil))
	assert.Contains(t, stdout.String(), "Usage:")

	a, _, _ = newTestApp(t, efitest.NewHost())
	assert.Equal(t, exitInvalidParameter, a.run([]string{"-i", "-d"}))
}

func TestRunHelp(t *testing.T) {
	host := efitest.NewHost()
	a, stdout, _ := newTestApp(t, host)
	assert.Equal(t, exitSuccess, a.run([]string{"-h"}))
	assert.Contains(t, stdout.String(), "--internal")
	assert.Empty(t, host.Gets)
}

func TestRunUnknownFlag(t *testing.T) {
	a, _, stderr := newTestApp(t, efitest.NewHost())
	assert.Equal(t, exitInvalidParameter, a.run([]string{"-x"}))
	assert.Contains(t, stderr.String(), "unknown shorthand flag")
}

func TestRunInternal(t *testing.T) {
	host := efitest.NewHost().
		With(efivar.GpuPowerPrefs, nvbsrt, 0x0, 0x0, 0x0, 0x0).
		With(efivar.GpuPolicy, nvbsrt, 0x0)
	a, stdout, _ := newTestApp(t, host)

	require.Equal(t, exitSuccess, a.run([]string{"-i"}))
	assert.Contains(t, stdout.String(), "internal GPU")
	prefs, _ := host.Lookup(efivar.GpuPowerPrefs)
	assert.Equal(t, []byte{0x1, 0x0, 0x0, 0x0}, prefs.Data)
}

func TestRunPartialFailureIsFailure(t *testing.T) {
	host := efitest.NewHost().
		With(efivar.GpuPowerPrefs, nvbsrt, 0x1, 0x0, 0x0, 0x0)
	a, stdout, stderr := newTestApp(t, host)

	assert.Equal(t, exitNotFound, a.run([]string{"-d", "-v"}))
	assert.Equal(t, "Failed to update GPU preference.\n", stdout.String())
	assert.Contains(t, stderr.String(), "gpu-policy")
}

func TestRunPrint(t *testing.T) {
	host := efitest.NewHost().With(efivar.GpuPolicy, nvbsrt, 0x1)
	a, stdout, _ := newTestApp(t, host)
	assert.Equal(t, exitSuccess, a.run([]string{"-p"}))
	assert.Equal(t, "gpu-policy: 01\n", stdout.String())

	a, stdout, _ = newTestApp(t, efitest.NewHost())
	assert.Equal(t, exitNotFound, a.run([]string{"-p"}))
	assert.Equal(t, "No relevant EFI variables found.\n", stdout.String())
}

func TestRunLegacyOnEfivarfs(t *testing.T) {
	efifs := testfs.NewTestFS().
		With(efitest.GpuPowerPrefsInternal()).
		With(efitest.GpuPolicyInternal()).
		With(efitest.GfxSavedConfigRestoreStatus()).
		Open()
	a, _, _ := newTestApp(t, efifs)
	t.Setenv(config.EnvLegacy, "true")

	require.Equal(t, exitSuccess, a.run([]string{"-d"}))
	for _, v := range efivar.GPUVariables(true) {
		_, data, err := efifs.ReadEfivarsWithGuid(v.Name, *v.GUID)
		require.NoError(t, err)
		assert.Equal(t, byte(0x0), data[0], v.Name)
	}
}

func TestUsageError(t *testing.T) {
	a, _, stderr := newTestApp(t, efitest.NewHost())
	cmd := &cobra.Command{Use: "gpu-switch"}
	cmd.SetUsageFunc(func(*cobra.Command) error {
		return errors.New("broken pipe")
	})
	a.usage(cmd)
	assert.Contains(t, stderr.String(), "could not print usage: broken pipe")
}
