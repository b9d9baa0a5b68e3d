package gpuswitch

import (
	"github.com/foxboron/gpu-switch/efi/attributes"
	"github.com/foxboron/gpu-switch/efivar"
	"github.com/foxboron/gpu-switch/efivarfs"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// MaxVariableSize is the largest variable the accessor reads.
const MaxVariableSize = 1024

// Verbosity levels.
const (
	// VerboseErrors logs failed store calls, except for absent variables.
	VerboseErrors = 1
	// VerboseTrace logs every store call.
	VerboseTrace = 2
)

// Config is captured once when the Accessor is created.
type Config struct {
	Verbosity int
	// Logger receives diagnostics. nil discards them.
	Logger *zerolog.Logger
}

// Accessor reads and writes variables through a Host. It holds no state
// besides its configuration, every call goes straight to the host.
type Accessor struct {
	host      efivarfs.Host
	verbosity int
	log       zerolog.Logger
}

func NewAccessor(host efivarfs.Host, cfg Config) *Accessor {
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}
	return &Accessor{
		host:      host,
		verbosity: cfg.Verbosity,
		log:       log,
	}
}

// Get reads v into buf and returns its length and attributes. buf must be
// able to hold MaxVariableSize bytes.
func (a *Accessor) Get(v efivar.Efivar, buf []byte) (int, attributes.Attributes, error) {
	if len(buf) < MaxVariableSize {
		return 0, 0, errors.Wrapf(ErrBufferTooSmall, "%s: %d < %d", v.Name, len(buf), MaxVariableSize)
	}
	var attrs attributes.Attributes
	size := MaxVariableSize
	st := a.host.GetVariable(v.Name, *v.GUID, &attrs, &size, buf[:MaxVariableSize])
	a.trace("get", v, size, attrs, st)
	switch {
	case st == efivarfs.EFI_NOT_FOUND:
		return 0, 0, errors.Wrap(ErrAbsent, v.Name)
	case st.IsError():
		a.failure("get", v, st)
		return 0, 0, &StoreError{"get", v.Name, st, ErrReadFailed}
	case size > MaxVariableSize:
		a.failure("get", v, efivarfs.EFI_BUFFER_TOO_SMALL)
		return 0, 0, &StoreError{"get", v.Name, efivarfs.EFI_BUFFER_TOO_SMALL, ErrReadFailed}
	case size == 0:
		return 0, 0, errors.Wrap(ErrAbsent, v.Name)
	}
	return size, attrs, nil
}

// Set writes b to v. attrs should be the mask returned by Get; it is
// sanitized before it reaches the host.
func (a *Accessor) Set(v efivar.Efivar, b []byte, attrs attributes.Attributes) error {
	attrs = attrs.Sanitize()
	st := a.host.SetVariable(v.Name, *v.GUID, attrs, b)
	a.trace("set", v, len(b), attrs, st)
	if st.IsError() {
		a.failure("set", v, st)
		return &StoreError{"set", v.Name, st, ErrWriteFailed}
	}
	return nil
}

func (a *Accessor) trace(op string, v efivar.Efivar, size int, attrs attributes.Attributes, st efivarfs.Status) {
	if a.verbosity < VerboseTrace {
		return
	}
	if st.IsError() && st != efivarfs.EFI_BUFFER_TOO_SMALL {
		size = 0
	}
	a.log.Debug().
		Str("op", op).
		Str("name", v.Name).
		Str("guid", v.GUID.Format()).
		Int("len", size).
		Stringer("attrs", attrs).
		Stringer("status", st).
		Msg("efivar")
}

func (a *Accessor) failure(op string, v efivar.Efivar, st efivarfs.Status) {
	if a.verbosity < VerboseErrors {
		return
	}
	a.log.Error().
		Str("op", op).
		Str("name", v.Name).
		Stringer("status", st).
		Msgf("%s %s: %s", op, v.Name, st)
}
