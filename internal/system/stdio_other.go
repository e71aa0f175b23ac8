//go:build !unix

package system

import "os"

// RedirectStdIO swaps os.Stdout and os.Stderr for path. Runtime panic output
// is not captured on these platforms.
func RedirectStdIO(path string) error {
	if path == "" {
		return nil
	}
	f, err := openStdIOLog(path)
	if err != nil {
		return err
	}
	os.Stdout = f
	os.Stderr = f
	return nil
}
