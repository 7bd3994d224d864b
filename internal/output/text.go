package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/ancients-collective/upcheck/internal/types"
)

// Color helpers — each returns a sprint function.
var (
	cGreen = color.New(color.FgGreen).SprintFunc()
	cRed   = color.New(color.FgRed).SprintFunc()
	cDim   = color.New(color.Faint).SprintFunc()
)

// TextFormatter writes a human-readable probe report. The verdict lines
// are stable strings scripts can match on; everything else is dimmed
// supporting detail.
type TextFormatter struct {
	// Verbose adds the system header and summary around the verdict lines.
	Verbose bool
}

// Write renders the text report.
func (f *TextFormatter) Write(w io.Writer, report *types.ProbeReport) error {
	if f.Verbose {
		f.writeSystem(w, report)
	}

	if report.Upgrades != nil {
		f.writeUpgrades(w, report)
	}

	for _, audit := range report.Audits {
		f.writeAudit(w, report, audit)
	}

	if f.Verbose {
		f.writeSummary(w, report)
	}
	return nil
}

func (f *TextFormatter) writeSystem(w io.Writer, r *types.ProbeReport) {
	sys := r.System
	fmt.Fprintf(w, "%s\n", cDim(fmt.Sprintf("upcheck v%s — %s", r.Version, r.Timestamp.Format("2006-01-02T15:04:05Z07:00"))))
	fmt.Fprintf(w, "%s\n", cDim(fmt.Sprintf("host: %s · %s %s (%s)", sys.Hostname, sys.OS, sys.OSVersion, sys.Arch)))
	if sys.DistroID != "" {
		fmt.Fprintf(w, "%s\n", cDim(fmt.Sprintf("distro: %s %s (%s)", sys.DistroID, sys.DistroVersion, sys.DistroFamily)))
	}
	fmt.Fprintln(w)
}

func (f *TextFormatter) writeUpgrades(w io.Writer, r *types.ProbeReport) {
	v := r.Upgrades
	if v.Enabled {
		fmt.Fprintln(w, cGreen(v.Message))
	} else {
		fmt.Fprintln(w, cRed(v.Message))
	}
	if r.System.EnvType == types.EnvContainer {
		fmt.Fprintf(w, "%s\n", cDim("note: running in a container — unattended upgrades are usually handled at the image level"))
	}
}

func (f *TextFormatter) writeAudit(w io.Writer, r *types.ProbeReport, audit types.AuditResult) {
	// The bare verdict line is the contract; name the pair only when the
	// run validated more than one document.
	if len(r.Audits) > 1 {
		fmt.Fprintf(w, "%s\n", cDim(fmt.Sprintf("%s against %s:", audit.ConfigPath, audit.SchemaPath)))
	}

	if audit.Verdict.Valid {
		fmt.Fprintln(w, cGreen("Configuration file is valid."))
		return
	}

	fmt.Fprintln(w, cRed("Configuration file is invalid."))
	for _, diag := range audit.Verdict.Diagnostics {
		fmt.Fprintf(w, "  - %s\n", diag)
	}
}

func (f *TextFormatter) writeSummary(w io.Writer, r *types.ProbeReport) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s\n", cDim(fmt.Sprintf("%d check(s) · %d passed · %d failed · %dms",
		r.Summary.ChecksRun, r.Summary.Passed, r.Summary.Failed, r.Summary.DurationMS)))
}
