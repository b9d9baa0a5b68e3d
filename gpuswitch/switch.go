package gpuswitch

import (
	"github.com/foxboron/gpu-switch/efivar"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// SetNextBootGPU edits every variable in vars to select gpu on next boot. All
// variables are attempted even after a failure, but it only succeeds if every
// one of them was updated; the returned error lists each failure.
func (a *Accessor) SetNextBootGPU(gpu GPU, vars []efivar.Efivar) error {
	if len(vars) == 0 {
		return errors.Wrap(ErrAbsent, "no variables to edit")
	}
	var result *multierror.Error
	t := GPUPreference(gpu)
	for _, v := range vars {
		if err := a.Edit(v, t); err != nil {
			result = multierror.Append(result, err)
			continue
		}
		a.log.Info().Str("name", v.Name).Stringer("gpu", gpu).Msg("updated")
	}
	return result.ErrorOrNil()
}
