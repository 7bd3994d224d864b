// Package output provides formatters that render probe reports in different formats.
package output

import (
	"io"

	"github.com/ancients-collective/upcheck/internal/types"
)

// Formatter writes a probe report to the given writer.
type Formatter interface {
	Write(w io.Writer, report *types.ProbeReport) error
}
