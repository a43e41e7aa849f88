package repositoryImp

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"farm/pkg/store/repository"
)

type fileRepo struct{ dir string }

// NewFile stores each collection as <dir>/<name>.json.
func NewFile(dir string) repository.Backend { return &fileRepo{dir: dir} }

func (r *fileRepo) path(name string) string { return filepath.Join(r.dir, name+".json") }

func (r *fileRepo) Read(name string) ([]byte, error) {
	b, err := os.ReadFile(r.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, repository.ErrNotExist
	}
	return b, err
}

// Write goes through a temp file in the same directory and renames it into
// place, so a crash never leaves a truncated collection behind.
func (r *fileRepo) Write(name string, data []byte) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(r.dir, "."+name+"-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), r.path(name))
}

func (r *fileRepo) Remove(name string) error {
	err := os.Remove(r.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Backup copies the whole data directory to a sibling named
// <dir>_backup_<stamp>, e.g. data_backup_20250101_120000.
func (r *fileRepo) Backup(stamp string) (string, error) {
	fi, err := os.Stat(r.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if !fi.IsDir() {
		return "", fmt.Errorf("%s is not a directory", r.dir)
	}
	clean := filepath.Clean(r.dir)
	dst := filepath.Join(filepath.Dir(clean), filepath.Base(clean)+"_backup_"+stamp)
	if err := os.CopyFS(dst, os.DirFS(clean)); err != nil {
		return "", fmt.Errorf("copy %s -> %s: %w", clean, dst, err)
	}
	return dst, nil
}

func (r *fileRepo) Ping() error {
	fi, err := os.Stat(r.dir)
	if errors.Is(err, fs.ErrNotExist) {
		// created on first write
		return nil
	}
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return fmt.Errorf("%s is not a directory", r.dir)
	}
	return nil
}
