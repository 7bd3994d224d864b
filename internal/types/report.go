package types

import "time"

// ProbeReport is the top-level structure for a complete probe run.
// It is serialized directly to JSON for the --format=json output.
type ProbeReport struct {
	// Version is the upcheck version that produced this report.
	Version string `json:"version"`

	// Timestamp is when the probe started.
	Timestamp time.Time `json:"timestamp"`

	// System describes the probed host.
	System ProbeSystem `json:"system"`

	// Upgrades is the unattended-upgrades verdict, when that check ran.
	Upgrades *UpgradeVerdict `json:"upgrades,omitempty"`

	// Audits lists the config/schema validation outcomes, in run order.
	Audits []AuditResult `json:"audits,omitempty"`

	// Summary provides aggregate statistics.
	Summary ProbeSummary `json:"summary"`
}

// ProbeSystem describes the host that was probed.
type ProbeSystem struct {
	// Hostname is the system hostname.
	Hostname string `json:"hostname"`

	// OS is the operating system name.
	OS string `json:"os"`

	// OSVersion is the kernel version.
	OSVersion string `json:"os_version"`

	// Arch is the CPU architecture.
	Arch string `json:"arch"`

	// DistroID is the Linux distribution ID.
	DistroID string `json:"distro_id,omitempty"`

	// DistroVersion is the Linux distribution version.
	DistroVersion string `json:"distro_version,omitempty"`

	// DistroFamily is the Linux distribution family.
	DistroFamily string `json:"distro_family,omitempty"`

	// EnvType is the environment category (container, vm, bare-metal).
	EnvType string `json:"env_type"`

	// EnvRuntime is the specific runtime (docker, kvm, etc.).
	EnvRuntime string `json:"env_runtime,omitempty"`

	// IsRoot indicates whether the probe was run as root/sudo.
	IsRoot bool `json:"is_root"`
}

// ProbeSummary provides aggregate statistics for a probe run.
type ProbeSummary struct {
	// ChecksRun is the number of checks executed.
	ChecksRun int `json:"checks_run"`

	// Passed is the number of checks that passed.
	Passed int `json:"passed"`

	// Failed is the number of checks that failed.
	Failed int `json:"failed"`

	// DurationMS is the total probe duration in milliseconds.
	DurationMS int64 `json:"duration_ms"`
}
