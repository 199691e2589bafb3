package s2v

import (
	"io"
	"os"
	"path/filepath"
)

// writeFileAtomic writes a file next to path and renames it into place
// once write succeeded and the data reached the disk. The temporary file
// is removed on every failure path.
func writeFileAtomic(path string, write func(w io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return NewIOError("create", path, err)
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if err := write(tmp); err != nil {
		return NewIOError("write", path, err)
	}
	if err := tmp.Chmod(0644); err != nil {
		return NewIOError("chmod", path, err)
	}
	if err := tmp.Sync(); err != nil {
		return NewIOError("sync", path, err)
	}
	if err := tmp.Close(); err != nil {
		return NewIOError("close", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return NewIOError("rename", path, err)
	}
	return nil
}
