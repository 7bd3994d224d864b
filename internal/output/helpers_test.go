package output

import (
	"time"

	"github.com/ancients-collective/upcheck/internal/types"
)

// testTimestamp is a fixed time for deterministic test output.
var testTimestamp = time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC)

// newTestReport builds a representative ProbeReport for testing.
func newTestReport() *types.ProbeReport {
	return &types.ProbeReport{
		Version:   "1.0.0",
		Timestamp: testTimestamp,
		System: types.ProbeSystem{
			Hostname:      "test-host",
			OS:            "linux",
			OSVersion:     "6.1.0",
			Arch:          "amd64",
			DistroID:      "ubuntu",
			DistroVersion: "22.04",
			DistroFamily:  "debian",
			EnvType:       types.EnvBareMetal,
			IsRoot:        false,
		},
		Upgrades: &types.UpgradeVerdict{
			Enabled: true,
			Message: "Unattended upgrades are enabled and properly configured.",
		},
		Audits: []types.AuditResult{
			{
				ConfigPath: "/etc/myapp/config.yaml",
				SchemaPath: "/etc/myapp/schema.json",
				Verdict:    types.ValidationVerdict{Valid: true},
			},
		},
		Summary: types.ProbeSummary{
			ChecksRun:  2,
			Passed:     2,
			Failed:     0,
			DurationMS: 12,
		},
	}
}
