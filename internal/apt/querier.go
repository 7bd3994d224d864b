package apt

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"time"
)

// queryTimeout bounds the dpkg invocation. dpkg -s reads a local database
// and returns promptly; the timeout is a safety margin, not a tunable.
const queryTimeout = 5 * time.Second

// packageNamePattern matches valid Debian package names: lowercase
// alphanumerics plus '+', '-', '.', at least two characters, starting
// with an alphanumeric.
var packageNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9+.\-]+$`)

// PackageQuerier answers whether a named package is installed on the host.
// Implementations return an error only when the query mechanism itself
// failed (missing binary, timeout); "not installed" is (false, nil).
type PackageQuerier interface {
	IsInstalled(name string) (bool, error)
}

// DpkgQuerier queries the dpkg status database via `dpkg -s <name>`.
// The binary path is resolved once at construction; arguments are fixed
// apart from the validated package name. Never uses shell invocation.
type DpkgQuerier struct {
	path    string
	timeout time.Duration
}

// NewDpkgQuerier returns a querier with the dpkg path resolved via
// exec.LookPath, falling back to the standard location.
func NewDpkgQuerier() *DpkgQuerier {
	return &DpkgQuerier{
		path:    resolveCommandPath("dpkg", "/usr/bin/dpkg"),
		timeout: queryTimeout,
	}
}

// IsInstalled reports whether the package is present in the dpkg database.
// A nonzero dpkg exit status means the package is unknown or not installed;
// any other execution failure is a query error.
func (q *DpkgQuerier) IsInstalled(name string) (bool, error) {
	if err := validatePackageName(name); err != nil {
		return false, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, q.path, "-s", name)
	_, err := cmd.Output()

	if ctx.Err() == context.DeadlineExceeded {
		return false, fmt.Errorf("dpkg query timed out after %v", q.timeout)
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return false, nil
		}
		return false, fmt.Errorf("failed to execute dpkg: %w", err)
	}

	return true, nil
}

// resolveCommandPath attempts to find the command using exec.LookPath.
// Falls back to the provided default path if LookPath fails.
func resolveCommandPath(name, fallbackPath string) string {
	if path, err := exec.LookPath(name); err == nil {
		return path
	}
	return fallbackPath
}

// validatePackageName checks that a package name is safe to pass to dpkg.
func validatePackageName(name string) error {
	if name == "" {
		return fmt.Errorf("package name must not be empty")
	}

	if !packageNamePattern.MatchString(name) {
		return fmt.Errorf("invalid package name %q: only lowercase alphanumerics, '+', '-', '.' allowed", name)
	}

	return nil
}
