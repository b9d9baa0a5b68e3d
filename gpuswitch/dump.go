package gpuswitch

import (
	"fmt"
	"io"
	"strings"

	"github.com/foxboron/gpu-switch/efivar"
)

const nothingFound = "No relevant EFI variables found."

type DumpOptions struct {
	// Attributes appends the attribute mask of each variable.
	Attributes bool
}

// Dump writes every variable of vars that can be read as
// "<name>: <hex bytes>", skipping the rest. It returns false, after writing a
// single notice, if none could be read.
func (a *Accessor) Dump(w io.Writer, vars []efivar.Efivar, opts DumpOptions) (bool, error) {
	found := false
	var buf [MaxVariableSize]byte
	for _, v := range vars {
		n, attrs, err := a.Get(v, buf[:])
		if err != nil {
			continue
		}
		found = true
		hex := make([]string, n)
		for i, b := range buf[:n] {
			hex[i] = fmt.Sprintf("%02x", b)
		}
		line := fmt.Sprintf("%s: %s", v.Name, strings.Join(hex, " "))
		if opts.Attributes {
			line += fmt.Sprintf(" (%s)", attrs)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return found, err
		}
	}
	if !found {
		if _, err := fmt.Fprintln(w, nothingFound); err != nil {
			return false, err
		}
	}
	return found, nil
}
