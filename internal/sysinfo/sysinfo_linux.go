//go:build linux

package sysinfo

import (
	"bytes"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"

	"github.com/ancients-collective/upcheck/internal/types"
)

// LinuxDetector implements Detector for Linux systems using gopsutil.
type LinuxDetector struct{}

// NewDetector returns a LinuxDetector for Linux systems.
func NewDetector() Detector {
	return &LinuxDetector{}
}

// DetectOS returns Linux OS information.
func (d *LinuxDetector) DetectOS() (types.OSInfo, error) {
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

// DetectDistro returns Linux distribution information via gopsutil.
func (d *LinuxDetector) DetectDistro() (types.DistroInfo, error) {
	info, err := host.Info()
	if err != nil {
		return types.DistroInfo{}, err
	}

	return types.DistroInfo{
		ID:      info.Platform,
		Version: info.PlatformVersion,
		Family:  info.PlatformFamily,
	}, nil
}

// DetectEnvironment detects whether the probe runs in a container, VM,
// or on bare metal, and collects the hostname.
func (d *LinuxDetector) DetectEnvironment() (types.EnvInfo, error) {
	env := types.EnvInfo{Type: types.EnvBareMetal}

	if h, err := os.Hostname(); err == nil {
		env.Hostname = h
	}

	// Container wins over VM: a container inside a VM still behaves like
	// a container for patching purposes.
	if isContainer, cRuntime := detectContainer(); isContainer {
		env.Type = types.EnvContainer
		env.Runtime = cRuntime
	} else if role, virt, err := host.Virtualization(); err == nil && role == "guest" && virt != "" {
		env.Type = types.EnvVM
		env.Runtime = virt
	}

	return env, nil
}

// detectContainer checks for container indicators using multiple signals.
func detectContainer() (bool, string) {
	return detectContainerWith(
		"/.dockerenv",
		"/run/.containerenv",
		"/proc/self/cgroup",
	)
}

// detectContainerWith is the injectable core of container detection.
// It tries gopsutil first, then checks marker files and cgroup contents.
func detectContainerWith(dockerenvPath, containerenvPath, cgroupPath string) (bool, string) {
	role, virt, err := host.Virtualization()
	if err == nil && role == "guest" {
		switch virt {
		case "docker", "lxc", "podman", "systemd-nspawn":
			return true, virt
		}
	}

	if _, err := os.Lstat(dockerenvPath); err == nil {
		return true, "docker"
	}

	if _, err := os.Lstat(containerenvPath); err == nil {
		return true, "podman"
	}

	if data, err := os.ReadFile(cgroupPath); err == nil {
		if bytes.Contains(data, []byte("docker")) {
			return true, "docker"
		}
		if bytes.Contains(data, []byte("kubepods")) {
			return true, "kubernetes"
		}
		if bytes.Contains(data, []byte("lxc")) {
			return true, "lxc"
		}
	}

	return false, ""
}
