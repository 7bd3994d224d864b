// Package apt inspects the host's APT unattended-upgrades state: the dpkg
// status database plus the two apt.conf.d files that control automatic
// security updates.
package apt

import (
	"fmt"
	"os"
	"strings"

	"github.com/ancients-collective/upcheck/internal/types"
)

// Conventional paths and detection signatures for Debian/Ubuntu
// unattended upgrades. The markers are matched as literal substrings
// (semicolon and quoting included) — they are detection signatures,
// not parsed directives.
const (
	DefaultPackage      = "unattended-upgrades"
	DefaultOriginsPath  = "/etc/apt/apt.conf.d/50unattended-upgrades"
	DefaultPeriodicPath = "/etc/apt/apt.conf.d/20auto-upgrades"

	OriginsMarker         = "Unattended-Upgrade::Allowed-Origins"
	PeriodicListsMarker   = `APT::Periodic::Update-Package-Lists "1";`
	PeriodicUpgradeMarker = `APT::Periodic::Unattended-Upgrade "1";`
)

// Inspector decides whether unattended upgrades are active and correctly
// configured. All failure paths fold into a verdict with Enabled=false;
// Inspect never returns an error and never panics.
type Inspector struct {
	// Querier answers whether the package is installed.
	Querier PackageQuerier

	// Package is the package name to query.
	Package string

	// OriginsPath is the upgrade-policy configuration file.
	OriginsPath string

	// PeriodicPath is the periodic-schedule configuration file.
	PeriodicPath string

	// OriginsMarkers are the literal signatures required in OriginsPath.
	OriginsMarkers []string

	// PeriodicMarkers are the literal signatures required in PeriodicPath.
	PeriodicMarkers []string
}

// NewInspector returns an Inspector with the conventional Debian/Ubuntu
// paths and signatures, using the given package querier.
func NewInspector(querier PackageQuerier) *Inspector {
	return &Inspector{
		Querier:         querier,
		Package:         DefaultPackage,
		OriginsPath:     DefaultOriginsPath,
		PeriodicPath:    DefaultPeriodicPath,
		OriginsMarkers:  []string{OriginsMarker},
		PeriodicMarkers: []string{PeriodicListsMarker, PeriodicUpgradeMarker},
	}
}

// Inspect runs the ordered upgrade-status checks. The first failing step
// determines the verdict; later steps do not execute.
func (i *Inspector) Inspect() types.UpgradeVerdict {
	// Step 1: package installed. A failed query (missing dpkg, timeout)
	// is indistinguishable from an absent package for the caller.
	installed, err := i.Querier.IsInstalled(i.Package)
	if err != nil || !installed {
		return types.UpgradeVerdict{Message: "Unattended upgrades package is not installed."}
	}

	// Steps 2–3: upgrade-policy file exists and names allowed origins.
	content, verdict, ok := i.readConf(i.OriginsPath)
	if !ok {
		return verdict
	}
	for _, marker := range i.OriginsMarkers {
		if !strings.Contains(content, marker) {
			return types.UpgradeVerdict{Message: fmt.Sprintf("%s not properly configured.", marker)}
		}
	}

	// Steps 4–5: periodic-schedule file exists and enables both tasks.
	content, verdict, ok = i.readConf(i.PeriodicPath)
	if !ok {
		return verdict
	}
	for _, marker := range i.PeriodicMarkers {
		if !strings.Contains(content, marker) {
			return types.UpgradeVerdict{Message: "Automatic updates are not enabled in APT::Periodic."}
		}
	}

	return types.UpgradeVerdict{
		Enabled: true,
		Message: "Unattended upgrades are enabled and properly configured.",
	}
}

// readConf reads one configuration file, folding every failure into a
// failing verdict. ok is false when the returned verdict should be used.
func (i *Inspector) readConf(path string) (string, types.UpgradeVerdict, bool) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", types.UpgradeVerdict{Message: fmt.Sprintf("Configuration file not found: %s", path)}, false
		}
		return "", types.UpgradeVerdict{Message: fmt.Sprintf("Cannot access configuration file %s: %v", path, err)}, false
	}

	data, err := readFileLimited(path)
	if err != nil {
		return "", types.UpgradeVerdict{Message: fmt.Sprintf("Cannot read configuration file %s: %v", path, err)}, false
	}

	return string(data), types.UpgradeVerdict{}, true
}
