package bench

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// FileSystem is the interface that wraps the basic methods for a file
// system, so that the default os file system can be replaced by other
// implementations.
//
// It's useful for testing, since it can be replaced by a memory file system.
type FileSystem = afero.Fs

func ensurePath(fs FileSystem, path string) error {
	if path == "" || path == "." {
		return nil
	}

	exists, err := afero.DirExists(fs, path)
	if err != nil {
		return err
	}

	if exists {
		return nil
	}

	return fs.MkdirAll(path, 0744)
}

// backupFile rename filename to filename.bak, it will return a restore function
// and a clean function. The restore function will rename filename.bak to filename,
// and the clean function will remove filename.bak.
func backupFile(fs FileSystem, filename string) (restoreFn func() error, cleanFn func() error, err error) {
	oldName := filename
	backupName := filename + ".bak"

	if err = fs.Rename(filename, backupName); err != nil {
		return nil, nil, errors.Wrap(err, "backupFile rename failed")
	}

	restoreFn = func() error {
		return fs.Rename(backupName, oldName)
	}

	cleanFn = func() error {
		return fs.Remove(backupName)
	}

	return restoreFn, cleanFn, nil
}

// writeFile writes data to filename, creating its directory when missing. An
// existing file is kept as filename.bak until the new content is written, and
// restored if writing fails.
func writeFile(fs FileSystem, filename string, data []byte) (err error) {
	if err = ensurePath(fs, filepath.Dir(filename)); err != nil {
		return errors.Wrap(err, "ensure report directory")
	}

	exists, err := afero.Exists(fs, filename)
	if err != nil {
		return errors.Wrap(err, "stat report file")
	}

	if exists {
		var restoreFn, cleanFn func() error
		if restoreFn, cleanFn, err = backupFile(fs, filename); err != nil {
			return err
		}
		defer func() {
			if err != nil {
				_ = fs.Remove(filename)
				if rerr := restoreFn(); rerr != nil {
					err = errors.Wrapf(err, "restore backup: %v", rerr)
				}
				return
			}
			_ = cleanFn()
		}()
	}

	if err = afero.WriteFile(fs, filename, data, 0644); err != nil {
		return errors.Wrap(err, "write report file")
	}

	return nil
}
