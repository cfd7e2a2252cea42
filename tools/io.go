package tools

import (
	"os"

	"github.com/pkg/errors"
)

// Checks that the input exists and is a folder when folder processing is requested, a file otherwise
func CheckInputPath(path string, folder bool) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "cannot access input %s", path)
	}
	if folder && !info.IsDir() {
		return errors.Errorf("input %s is not a folder", path)
	}
	if !folder && info.IsDir() {
		return errors.Errorf("input %s is a folder, enable folder processing to read it", path)
	}
	return nil
}
