// Package sysinfo detects host information used to annotate probe reports
// and to warn when a check does not apply to the running system.
package sysinfo

import (
	"fmt"

	"github.com/ancients-collective/upcheck/internal/types"
)

// Detector abstracts platform-specific system detection.
// Each supported OS provides an implementation via build tags.
type Detector interface {
	// DetectOS returns operating system information.
	DetectOS() (types.OSInfo, error)

	// DetectDistro returns Linux distribution information.
	// Returns empty DistroInfo on non-Linux systems.
	DetectDistro() (types.DistroInfo, error)

	// DetectEnvironment returns execution environment information
	// (container, VM, or bare-metal).
	DetectEnvironment() (types.EnvInfo, error)
}

// Detect coordinates layered system detection using the provided detector:
//   - Layer 1: OS detection (must succeed)
//   - Layer 2: Distro detection (warning on failure, continues)
//   - Layer 3: Environment detection (warning on failure, continues)
//
// Returns the system context, a list of non-fatal warnings, and an error
// only when OS detection itself fails.
func Detect(detector Detector) (types.SystemContext, []string, error) {
	var ctx types.SystemContext
	var warnings []string

	osInfo, err := detector.DetectOS()
	if err != nil {
		return ctx, nil, fmt.Errorf("OS detection failed: %w", err)
	}
	ctx.OS = osInfo

	distro, err := detector.DetectDistro()
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("distro detection failed: %v", err))
	} else {
		ctx.Distro = distro
	}

	env, err := detector.DetectEnvironment()
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("environment detection failed: %v", err))
	} else {
		ctx.Environment = env
	}

	return ctx, warnings, nil
}

// IsDebianFamily reports whether the detected distribution uses APT,
// i.e. whether the unattended-upgrades check is meaningful at all.
func IsDebianFamily(ctx types.SystemContext) bool {
	return ctx.Distro.Family == "debian" || ctx.Distro.ID == "debian" || ctx.Distro.ID == "ubuntu"
}
