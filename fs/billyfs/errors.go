package billyfs

import (
	"io/fs"

	fserrors "github.com/GenerousLabs/expo-fs/errors"
	"github.com/GenerousLabs/expo-fs/fs/core"
)

// pathError wraps err in a *fs.PathError. ENOENT and EEXIST become the bare
// core sentinels so os.IsNotExist and os.IsExist recognise them.
func pathError(op, name string, err error) error {
	switch fserrors.GetCode(err) {
	case fserrors.CodeNotExist:
		err = core.ErrNotExist
	case fserrors.CodeExist:
		err = core.ErrExist
	}
	return &fs.PathError{Op: op, Path: name, Err: err}
}
