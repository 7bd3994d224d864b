package policy_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ancients-collective/upcheck/internal/apt"
	"github.com/ancients-collective/upcheck/internal/policy"
)

func writePolicy(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FullPolicy(t *testing.T) {
	path := writePolicy(t, `
package: unattended-upgrades
origins_file: /etc/apt/apt.conf.d/50unattended-upgrades
periodic_file: /etc/apt/apt.conf.d/20auto-upgrades
origins_markers:
  - "Unattended-Upgrade::Allowed-Origins"
periodic_markers:
  - 'APT::Periodic::Update-Package-Lists "1";'
  - 'APT::Periodic::Unattended-Upgrade "1";'
audits:
  - config: /etc/myapp/config.yaml
    schema: /etc/myapp/schema.json
`)

	p, err := policy.NewLoader().Load(path)

	require.NoError(t, err)
	assert.Equal(t, "unattended-upgrades", p.Package)
	assert.Len(t, p.PeriodicMarkers, 2)
	require.Len(t, p.Audits, 1)
	assert.Equal(t, "/etc/myapp/config.yaml", p.Audits[0].Config)
	assert.Equal(t, "/etc/myapp/schema.json", p.Audits[0].Schema)
}

func TestLoad_EmptyPolicyIsValid(t *testing.T) {
	path := writePolicy(t, "{}\n")

	p, err := policy.NewLoader().Load(path)

	require.NoError(t, err)
	assert.Zero(t, p.Package)
	assert.Empty(t, p.Audits)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := policy.NewLoader().Load(filepath.Join(t.TempDir(), "missing.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writePolicy(t, "package: [unclosed\n")

	_, err := policy.NewLoader().Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoad_InvalidPackageName(t *testing.T) {
	path := writePolicy(t, "package: \"Bad Name;\"\n")

	_, err := policy.NewLoader().Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid package name")
}

func TestLoad_RelativePathRejected(t *testing.T) {
	path := writePolicy(t, "origins_file: etc/apt/apt.conf.d/50unattended-upgrades\n")

	_, err := policy.NewLoader().Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "absolute path")
}

func TestLoad_AuditPairRequiresBothPaths(t *testing.T) {
	path := writePolicy(t, `
audits:
  - config: /etc/myapp/config.yaml
`)

	_, err := policy.NewLoader().Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Schema is required")
}

func TestApply_OverlaysNonZeroFields(t *testing.T) {
	ins := apt.NewInspector(nil)
	p := policy.Policy{
		Package:      "apt-listchanges",
		PeriodicFile: "/custom/20auto-upgrades",
	}

	p.Apply(ins)

	assert.Equal(t, "apt-listchanges", ins.Package)
	assert.Equal(t, "/custom/20auto-upgrades", ins.PeriodicPath)
	// Untouched fields keep the contract defaults.
	assert.Equal(t, apt.DefaultOriginsPath, ins.OriginsPath)
	assert.Equal(t, []string{apt.OriginsMarker}, ins.OriginsMarkers)
}

func TestApply_EmptyPolicyKeepsDefaults(t *testing.T) {
	ins := apt.NewInspector(nil)

	policy.Policy{}.Apply(ins)

	assert.Equal(t, apt.DefaultPackage, ins.Package)
	assert.Equal(t, apt.DefaultPeriodicPath, ins.PeriodicPath)
	assert.Equal(t, []string{apt.PeriodicListsMarker, apt.PeriodicUpgradeMarker}, ins.PeriodicMarkers)
}
