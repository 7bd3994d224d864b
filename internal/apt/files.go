package apt

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MaxConfReadBytes is the maximum number of bytes read from any APT
// configuration file (1 MB). Real apt.conf.d files are a few KB.
const MaxConfReadBytes int64 = 1 * 1024 * 1024

// validateConfPath checks that a configuration file path is safe to read.
// Rejects path traversal sequences and non-absolute paths.
func validateConfPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path must not be empty")
	}

	if !filepath.IsAbs(path) {
		return "", fmt.Errorf("path must be absolute, got %q", path)
	}

	cleaned := filepath.Clean(path)
	for _, part := range strings.Split(cleaned, string(filepath.Separator)) {
		if part == ".." {
			return "", fmt.Errorf("path traversal (..) not allowed in %q", path)
		}
	}

	return cleaned, nil
}

// readFileLimited reads a regular file with safety checks:
//   - path traversal prevention
//   - follows symlinks (apt.conf.d entries are sometimes symlinks)
//   - regular-file-only after resolution (no devices, pipes, sockets)
//   - bounded read (MaxConfReadBytes)
//
// Uses open-then-fstat to avoid TOCTOU races between stat and open.
func readFileLimited(path string) ([]byte, error) {
	cleaned, err := validateConfPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(cleaned)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", path)
		}
		return nil, fmt.Errorf("cannot open file %q: %w", cleaned, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("cannot stat file %q: %w", cleaned, err)
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("refusing to read non-regular file %q (mode: %s)", cleaned, info.Mode().Type())
	}

	if info.Size() > MaxConfReadBytes {
		return nil, fmt.Errorf("file %q too large: %d bytes (max: %d)", cleaned, info.Size(), MaxConfReadBytes)
	}

	limited := io.LimitReader(f, MaxConfReadBytes+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("error reading file %q: %w", cleaned, err)
	}

	if int64(len(data)) > MaxConfReadBytes {
		return nil, fmt.Errorf("file %q exceeded size limit during read", cleaned)
	}

	return data, nil
}
