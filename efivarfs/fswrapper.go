package efivarfs

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/foxboron/gpu-switch/efi/attr"
	"github.com/foxboron/gpu-switch/efi/attributes"
	"github.com/foxboron/gpu-switch/efi/util"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// This is the lowest layer of the filesystem abstraction. It maps variables
// to "<name>-<guid>" files below the efivarfs mount point, each holding the
// 4 byte attribute mask followed by the variable data.

var (
	ErrImmutable  = attr.ErrIsImmutable
	ErrTruncated  = errors.New("efivar is shorter than its attribute header")
	ErrShortWrite = errors.New("could not write the entire buffer")
)

type FSWrapper struct {
	unsetimmutable bool
	immutable      bool
	root           string
	fs             afero.Fs

	// Immutable flag handling, attr.IsImmutable and attr.UnsetImmutable
	// unless replaced in tests.
	getimmutable   func(path string) error
	clearimmutable func(path string) error
}

// CheckImmutable makes writes fail with ErrImmutable when the kernel has
// marked the variable file immutable.
func (e *FSWrapper) CheckImmutable() {
	e.immutable = true
}

// UnsetImmutable clears the immutable flag before writing instead of failing.
// Only meaningful together with CheckImmutable.
func (e *FSWrapper) UnsetImmutable() {
	e.unsetimmutable = true
}

// SetFS swaps the backing filesystem.
func (e *FSWrapper) SetFS(fs afero.Fs) {
	e.fs = fs
}

// NewMemoryWrapper returns a wrapper over an empty in-memory filesystem
// rooted at the default efivarfs mount point.
func NewMemoryWrapper() *FSWrapper {
	return &FSWrapper{
		root:           attributes.Efivars,
		fs:             afero.NewMemMapFs(),
		getimmutable:   attr.IsImmutable,
		clearimmutable: attr.UnsetImmutable,
	}
}

// NewFSWrapper returns a wrapper over the OS filesystem rooted at root. An
// empty root means the default efivarfs mount point.
func NewFSWrapper(root string) *FSWrapper {
	if root == "" {
		root = attributes.Efivars
	}
	return &FSWrapper{
		root:           root,
		fs:             afero.NewOsFs(),
		getimmutable:   attr.IsImmutable,
		clearimmutable: attr.UnsetImmutable,
	}
}

// Path returns the file backing the variable.
func (t *FSWrapper) Path(name string, guid util.EFIGUID) string {
	return path.Join(t.root, fmt.Sprintf("%s-%s", name, guid.Format()))
}

func (t *FSWrapper) isimmutable(efivar string) error {
	if !t.immutable {
		return nil
	}
	err := t.getimmutable(efivar)
	switch {
	case errors.Is(err, attr.ErrIsImmutable):
		if !t.unsetimmutable {
			return ErrImmutable
		}
		if err := t.clearimmutable(efivar); err != nil {
			return errors.Wrap(err, "couldn't unset immutable bit")
		}
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return err
	}
	return nil
}

// ParseEfivars splits an efivarfs file into its attributes and data.
func ParseEfivars(f io.Reader) (attributes.Attributes, []byte, error) {
	b, err := io.ReadAll(f)
	if err != nil {
		return 0, nil, errors.Wrap(err, "could not read file")
	}
	if len(b) < attributes.SizeofAttributes {
		return 0, nil, ErrTruncated
	}
	attrs, err := attributes.ParseAttributes(b)
	if err != nil {
		return 0, nil, err
	}
	return attrs, b[attributes.SizeofAttributes:], nil
}

// ReadEfivarsFile reads a full path instead of the inferred efivars path.
func (t *FSWrapper) ReadEfivarsFile(filename string) (attributes.Attributes, []byte, error) {
	f, err := t.fs.Open(filename)
	if err != nil {
		return 0, nil, err
	}
	defer f.Close()
	return ParseEfivars(f)
}

func (t *FSWrapper) ReadEfivarsWithGuid(name string, guid util.EFIGUID) (attributes.Attributes, []byte, error) {
	return t.ReadEfivarsFile(t.Path(name, guid))
}

// WriteEfivarsWithGuid writes an EFI variable. efivarfs only accepts the
// attribute header and data in a single write.
func (t *FSWrapper) WriteEfivarsWithGuid(name string, attrs attributes.Attributes, b []byte, guid util.EFIGUID) error {
	efivar := t.Path(name, guid)
	if err := t.isimmutable(efivar); err != nil {
		return err
	}

	flags := os.O_WRONLY | os.O_CREATE
	if attrs&attributes.EFI_VARIABLE_APPEND_WRITE != 0 {
		flags |= os.O_APPEND
	}
	f, err := t.fs.OpenFile(efivar, flags, 0644)
	if err != nil {
		return errors.Wrap(err, "couldn't open file")
	}
	defer f.Close()
	buf := append(attrs.Bytes(), b...)
	if n, err := f.Write(buf); err != nil {
		return errors.Wrap(err, "couldn't write efi variable")
	} else if n != len(buf) {
		return ErrShortWrite
	}
	return nil
}
