package types_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ancients-collective/upcheck/internal/types"
)

func TestUpgradeVerdict_Serialization(t *testing.T) {
	v := types.UpgradeVerdict{
		Enabled: true,
		Message: "Unattended upgrades are enabled and properly configured.",
	}

	data, err := json.Marshal(v)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"enabled":true`)
	assert.Contains(t, string(data), "properly configured")
}

func TestValidationVerdict_OmitsEmptyDiagnostics(t *testing.T) {
	data, err := json.Marshal(types.ValidationVerdict{Valid: true})
	require.NoError(t, err)

	assert.NotContains(t, string(data), "diagnostics")
}

func TestValidationVerdict_DiagnosticsPreserveOrder(t *testing.T) {
	v := types.ValidationVerdict{
		Diagnostics: []string{"first", "second"},
	}

	data, err := json.Marshal(v)
	require.NoError(t, err)

	var decoded types.ValidationVerdict
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []string{"first", "second"}, decoded.Diagnostics)
}

func TestProbeReport_OmitsOptionalSections(t *testing.T) {
	data, err := json.Marshal(types.ProbeReport{Version: "1.0.0"})
	require.NoError(t, err)

	assert.NotContains(t, string(data), "upgrades")
	assert.NotContains(t, string(data), "audits")
}
