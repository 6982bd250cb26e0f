package render

import (
	"os"
	"path/filepath"

	"github.com/halvard/deckard/pkg/errors"
)

// ResolveAsset resolves a deck-relative asset path against the base
// directory and verifies the file exists. The path is validated first so a
// hostile deck cannot point outside its own directory.
func ResolveAsset(baseDir, path string) (string, error) {
	if err := errors.ValidateAssetPath(path); err != nil {
		return "", err
	}

	full := filepath.Join(baseDir, filepath.FromSlash(path))
	info, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.New(errors.ErrCodeFileNotFound, "asset not found: %s", path)
		}
		return "", errors.Wrap(errors.ErrCodeInternal, err, "stat asset %s", path)
	}
	if info.IsDir() {
		return "", errors.New(errors.ErrCodeFileNotFound, "asset is a directory: %s", path)
	}
	return full, nil
}
