//go:build darwin

package sysinfo

import (
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"

	"github.com/ancients-collective/upcheck/internal/types"
)

// DarwinDetector implements Detector for macOS systems.
type DarwinDetector struct{}

// NewDetector returns a DarwinDetector for macOS systems.
func NewDetector() Detector {
	return &DarwinDetector{}
}

// DetectOS returns macOS OS information.
func (d *DarwinDetector) DetectOS() (types.OSInfo, error) {
	info, err := host.Info()
	if err != nil {
		return types.OSInfo{
			Name: runtime.GOOS,
			Arch: runtime.GOARCH,
		}, nil
	}

	return types.OSInfo{
		Name:    runtime.GOOS,
		Version: info.KernelVersion,
		Arch:    runtime.GOARCH,
	}, nil
}

// DetectDistro returns empty DistroInfo — macOS has no distribution concept.
func (d *DarwinDetector) DetectDistro() (types.DistroInfo, error) {
	return types.DistroInfo{}, nil
}

// DetectEnvironment returns bare-metal for macOS with hostname populated.
func (d *DarwinDetector) DetectEnvironment() (types.EnvInfo, error) {
	env := types.EnvInfo{Type: types.EnvBareMetal}
	if h, err := os.Hostname(); err == nil {
		env.Hostname = h
	}
	return env, nil
}
