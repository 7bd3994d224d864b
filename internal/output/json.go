package output

import (
	"encoding/json"
	"io"

	"github.com/ancients-collective/upcheck/internal/types"
)

// JSONFormatter writes a probe report as a single JSON object.
type JSONFormatter struct{}

// Write renders the full report as pretty-printed JSON.
func (f *JSONFormatter) Write(w io.Writer, report *types.ProbeReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(report)
}
