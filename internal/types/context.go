package types

// Valid environment types.
const (
	EnvContainer = "container"
	EnvVM        = "vm"
	EnvBareMetal = "bare-metal"
)

// SystemContext holds information about the host the probe is running on.
// It is populated by the sysinfo package and used to annotate reports and
// warn when a check is unlikely to apply (e.g. non-Debian hosts).
type SystemContext struct {
	// OS contains operating system information.
	OS OSInfo

	// Distro contains Linux distribution information.
	Distro DistroInfo

	// Environment contains execution environment information.
	Environment EnvInfo
}

// OSInfo holds operating system details.
type OSInfo struct {
	// Name is the OS identifier (e.g., "linux", "darwin").
	Name string

	// Version is the kernel version string.
	Version string

	// Arch is the CPU architecture (e.g., "amd64", "arm64").
	Arch string
}

// DistroInfo holds Linux distribution details.
// Empty on non-Linux systems.
type DistroInfo struct {
	// ID is the distribution identifier (e.g., "ubuntu", "debian", "rhel").
	ID string

	// Version is the distribution version (e.g., "22.04", "12").
	Version string

	// Family is the distribution family (e.g., "debian", "rhel").
	Family string
}

// EnvInfo holds execution environment details.
type EnvInfo struct {
	// Type is the environment category: "container", "vm", or "bare-metal".
	Type string

	// Runtime is the specific runtime (e.g., "docker", "podman", "kvm").
	Runtime string

	// Hostname is the system hostname (os.Hostname).
	Hostname string
}
