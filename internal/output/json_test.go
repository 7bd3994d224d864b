package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ancients-collective/upcheck/internal/types"
)

func TestJSONFormatter_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	report := newTestReport()

	require.NoError(t, (&JSONFormatter{}).Write(&buf, report))

	var decoded types.ProbeReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, report.Version, decoded.Version)
	assert.Equal(t, report.System.Hostname, decoded.System.Hostname)
	require.NotNil(t, decoded.Upgrades)
	assert.True(t, decoded.Upgrades.Enabled)
	require.Len(t, decoded.Audits, 1)
	assert.Equal(t, "/etc/myapp/config.yaml", decoded.Audits[0].ConfigPath)
	assert.Equal(t, 2, decoded.Summary.ChecksRun)
}

func TestJSONFormatter_OmitsAbsentChecks(t *testing.T) {
	var buf bytes.Buffer
	report := newTestReport()
	report.Upgrades = nil
	report.Audits = nil

	require.NoError(t, (&JSONFormatter{}).Write(&buf, report))

	assert.NotContains(t, buf.String(), `"upgrades"`)
	assert.NotContains(t, buf.String(), `"audits"`)
}

func TestJSONFormatter_DiagnosticsSerialized(t *testing.T) {
	var buf bytes.Buffer
	report := newTestReport()
	report.Audits[0].Verdict = types.ValidationVerdict{
		Diagnostics: []string{`at "/port": got string, want integer`},
	}

	require.NoError(t, (&JSONFormatter{}).Write(&buf, report))

	var decoded types.ProbeReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Audits[0].Verdict.Diagnostics, 1)
	assert.Contains(t, decoded.Audits[0].Verdict.Diagnostics[0], "port")
}
