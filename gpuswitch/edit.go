package gpuswitch

import (
	"github.com/foxboron/gpu-switch/efivar"
	"github.com/pkg/errors"
)

// Transform validates and modifies a variable in place. It is given the
// variable name and its current value, and returns false to reject the
// value. The slice length is fixed; appending to it has no effect.
type Transform func(name string, b []byte) bool

// Edit reads v, runs t over its value and writes the result back with the
// attributes it was read with. Nothing is written unless the read and the
// transform both succeed.
func (a *Accessor) Edit(v efivar.Efivar, t Transform) error {
	if t == nil {
		return errors.Wrap(ErrTransformRejected, v.Name)
	}
	var buf [MaxVariableSize]byte
	n, attrs, err := a.Get(v, buf[:])
	if err != nil {
		return err
	}
	if !t(v.Name, buf[:n:n]) {
		a.log.Debug().Str("name", v.Name).Int("len", n).Msg("transform rejected variable")
		return errors.Wrap(ErrTransformRejected, v.Name)
	}
	return a.Set(v, buf[:n], attrs)
}
