// Package main is the entry point for upcheck — know your host is patching itself.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/user"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/ancients-collective/upcheck/internal/apt"
	"github.com/ancients-collective/upcheck/internal/output"
	"github.com/ancients-collective/upcheck/internal/policy"
	"github.com/ancients-collective/upcheck/internal/schema"
	"github.com/ancients-collective/upcheck/internal/sysinfo"
	"github.com/ancients-collective/upcheck/internal/types"
)

// version is set at build time via -ldflags. The default is a dev fallback
// for plain `go install` or `go run` usage.
var version = "1.0.0"

// newPackageQuerier builds the production package querier.
// Overridable in tests so run() never invokes a real dpkg.
var newPackageQuerier = func() apt.PackageQuerier {
	return apt.NewDpkgQuerier()
}

// Config holds all parsed CLI flag values.
type Config struct {
	CheckUpgrades bool
	ConfigFile    string
	SchemaFile    string
	PolicyFile    string
	Format        string
	OutputFile    string
	NoColor       bool
	Quiet         bool
	Strict        bool
	Version       bool
}

// parseFlags parses command-line arguments into a Config using a dedicated
// FlagSet, keeping the global flag.CommandLine clean for testability.
func parseFlags(args []string) (*Config, error) {
	cfg := &Config{}
	fs := flag.NewFlagSet("upcheck", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	fs.BoolVar(&cfg.CheckUpgrades, "check-upgrades", false, "Check unattended upgrades status")
	fs.StringVar(&cfg.ConfigFile, "config-file", "", "Path to the configuration file to audit (YAML/JSON)")
	fs.StringVar(&cfg.SchemaFile, "schema-file", "", "Path to the JSON schema file")
	fs.StringVar(&cfg.PolicyFile, "policy", "", "Path to a probe policy file (YAML)")
	fs.StringVar(&cfg.Format, "format", "text", "Output format: text, json")
	fs.StringVar(&cfg.Format, "f", "text", "Output format (shorthand)")
	fs.StringVar(&cfg.OutputFile, "output", "", "Write output to file (default: stdout)")
	fs.StringVar(&cfg.OutputFile, "o", "", "Write output to file (shorthand)")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Suppress output, exit code only")
	fs.BoolVar(&cfg.Quiet, "q", false, "Suppress output (shorthand)")
	fs.BoolVar(&cfg.Strict, "strict", false, "Exit nonzero when unattended upgrades are disabled")
	fs.BoolVar(&cfg.Version, "version", false, "Print version and exit")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "  upcheck — host patch-compliance probe\n")
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "  Usage: upcheck [options]\n\n")
		fmt.Fprintf(os.Stderr, "  Options:\n")
		fmt.Fprintf(os.Stderr, "         --check-upgrades             Check unattended upgrades status\n")
		fmt.Fprintf(os.Stderr, "         --config-file <path>         Configuration file to audit (YAML/JSON)\n")
		fmt.Fprintf(os.Stderr, "         --schema-file <path>         JSON schema to audit against\n")
		fmt.Fprintf(os.Stderr, "         --policy <path>              Probe policy file (YAML)\n")
		fmt.Fprintf(os.Stderr, "    -f,  --format <type>             Output format: text, json (default: text)\n")
		fmt.Fprintf(os.Stderr, "    -o,  --output <file>             Write output to file (default: stdout)\n")
		fmt.Fprintf(os.Stderr, "         --no-color                   Disable colored output\n")
		fmt.Fprintf(os.Stderr, "    -q,  --quiet                     Suppress output, exit code only\n")
		fmt.Fprintf(os.Stderr, "         --strict                     Exit 1 when unattended upgrades are disabled\n")
		fmt.Fprintf(os.Stderr, "         --version                    Print version and exit\n")
		fmt.Fprintf(os.Stderr, "\n  Examples:\n")
		fmt.Fprintf(os.Stderr, "    upcheck --check-upgrades                          Report unattended upgrades status\n")
		fmt.Fprintf(os.Stderr, "    upcheck --check-upgrades --strict -q              Scripting with exit code\n")
		fmt.Fprintf(os.Stderr, "    upcheck --config-file app.yaml --schema-file app.schema.json\n")
		fmt.Fprintf(os.Stderr, "    upcheck --policy /etc/upcheck/policy.yaml -f json -o probe.json\n")
		fmt.Fprintf(os.Stderr, "\n")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	os.Exit(run(cfg))
}

// run executes the requested checks and returns an exit code:
// 0 = clean, 1 = missing referenced file, failed validation, or (with
// --strict) disabled upgrades, 2 = unusable flags or policy.
func run(cfg *Config) int {
	start := time.Now()

	if cfg.Version {
		fmt.Fprintf(os.Stdout, "upcheck v%s\n", version)
		return 0
	}

	if code := validateFlags(cfg); code >= 0 {
		return code
	}

	setupColor(cfg)

	pol, code := loadPolicy(cfg)
	if code >= 0 {
		return code
	}

	audits := collectAudits(cfg, pol)
	if !cfg.CheckUpgrades && len(audits) == 0 {
		fmt.Fprintf(os.Stderr, "  ✗ Nothing to do: pass --check-upgrades, --config-file/--schema-file, or a --policy with audits\n")
		return 2
	}

	ctx := detectSystem(cfg)

	report := &types.ProbeReport{
		Version:   version,
		Timestamp: start,
		System:    buildSystem(ctx),
	}

	var passed, failed int
	exit := 0

	if cfg.CheckUpgrades {
		v := runUpgradeCheck(cfg, pol, ctx)
		report.Upgrades = &v
		if v.Enabled {
			passed++
		} else {
			failed++
			if cfg.Strict {
				exit = 1
			}
		}
	}

	// Referenced files must exist before any validation runs.
	if code := checkAuditPreconditions(cfg, report, audits); code >= 0 {
		return code
	}

	for _, a := range audits {
		v := schema.ValidateConfig(a.Config, a.Schema)
		report.Audits = append(report.Audits, types.AuditResult{
			ConfigPath: a.Config,
			SchemaPath: a.Schema,
			Verdict:    v,
		})
		if v.Valid {
			passed++
		} else {
			failed++
			exit = 1
		}
	}

	report.Summary = types.ProbeSummary{
		ChecksRun:  passed + failed,
		Passed:     passed,
		Failed:     failed,
		DurationMS: time.Since(start).Milliseconds(),
	}

	if cfg.Quiet {
		return exit
	}

	if code := writeReport(cfg, report); code >= 0 {
		return code
	}

	return exit
}

// validateFlags checks --format and the config/schema pairing.
// Returns -1 if valid, or an exit code (2) if invalid.
func validateFlags(cfg *Config) int {
	switch cfg.Format {
	case "text", "json":
	default:
		fmt.Fprintf(os.Stderr, "  ✗ Invalid --format value %q (must be text or json)\n", cfg.Format)
		return 2
	}

	if (cfg.ConfigFile == "") != (cfg.SchemaFile == "") {
		fmt.Fprintf(os.Stderr, "  ✗ --config-file and --schema-file must be used together\n")
		return 2
	}

	return -1
}

// setupColor disables color for non-text formats, file output, and non-terminals.
func setupColor(cfg *Config) {
	if cfg.NoColor || cfg.Format != "text" || cfg.OutputFile != "" {
		color.NoColor = true
		return
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}
}

// loadPolicy loads the optional policy file.
// Returns -1 as code if successful, or an exit code (2) on failure.
func loadPolicy(cfg *Config) (policy.Policy, int) {
	if cfg.PolicyFile == "" {
		return policy.Policy{}, -1
	}

	pol, err := policy.NewLoader().Load(cfg.PolicyFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "  ✗ %v\n", err)
		return policy.Policy{}, 2
	}
	return pol, -1
}

// collectAudits merges the CLI audit pair with the policy's audit list.
// The CLI pair runs first, ahead of any policy audits.
func collectAudits(cfg *Config, pol policy.Policy) []policy.AuditPair {
	var audits []policy.AuditPair
	if cfg.ConfigFile != "" {
		audits = append(audits, policy.AuditPair{Config: cfg.ConfigFile, Schema: cfg.SchemaFile})
	}
	audits = append(audits, pol.Audits...)
	return audits
}

// detectSystem detects the host context. Detection failures never stop the
// probe; the context only annotates output.
func detectSystem(cfg *Config) types.SystemContext {
	ctx, warnings, err := sysinfo.Detect(sysinfo.NewDetector())
	if !cfg.Quiet {
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "  ⚠ %s\n", w)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ⚠ %v\n", err)
		}
	}
	return ctx
}

// runUpgradeCheck builds the inspector, applies the policy, and runs it,
// warning first when the host is not a Debian-family system.
func runUpgradeCheck(cfg *Config, pol policy.Policy, ctx types.SystemContext) types.UpgradeVerdict {
	if !cfg.Quiet && ctx.OS.Name == "linux" && ctx.Distro.ID != "" && !sysinfo.IsDebianFamily(ctx) {
		fmt.Fprintf(os.Stderr, "  ⚠ distro %q is not Debian-family — the APT check may not apply\n", ctx.Distro.ID)
	}

	ins := apt.NewInspector(newPackageQuerier())
	pol.Apply(ins)
	return ins.Inspect()
}

// checkAuditPreconditions verifies every referenced config and schema file
// exists. On the first missing path it prints the upgrade verdict (if any)
// followed by the error, and returns exit code 1. Returns -1 when all
// paths exist.
func checkAuditPreconditions(cfg *Config, report *types.ProbeReport, audits []policy.AuditPair) int {
	missing := func(kind, path string) int {
		if !cfg.Quiet {
			if report.Upgrades != nil {
				fmt.Fprintln(os.Stdout, report.Upgrades.Message)
			}
			fmt.Fprintf(os.Stdout, "Error: %s file not found: %s\n", kind, path)
		}
		return 1
	}

	for _, a := range audits {
		if _, err := os.Stat(a.Config); err != nil {
			return missing("Configuration", a.Config)
		}
		if _, err := os.Stat(a.Schema); err != nil {
			return missing("Schema", a.Schema)
		}
	}
	return -1
}

// buildSystem maps the detected context into the report's system block.
func buildSystem(ctx types.SystemContext) types.ProbeSystem {
	isRoot := false
	if u, err := user.Current(); err == nil && u.Uid == "0" {
		isRoot = true
	}

	return types.ProbeSystem{
		Hostname:      ctx.Environment.Hostname,
		OS:            ctx.OS.Name,
		OSVersion:     ctx.OS.Version,
		Arch:          ctx.OS.Arch,
		DistroID:      ctx.Distro.ID,
		DistroVersion: ctx.Distro.Version,
		DistroFamily:  ctx.Distro.Family,
		EnvType:       ctx.Environment.Type,
		EnvRuntime:    ctx.Environment.Runtime,
		IsRoot:        isRoot,
	}
}

// writeReport formats and writes the probe report to stdout or a file.
// Returns -1 on success, or an exit code (2) on output failure.
func writeReport(cfg *Config, report *types.ProbeReport) int {
	var formatter output.Formatter
	switch cfg.Format {
	case "json":
		formatter = &output.JSONFormatter{}
	default:
		formatter = &output.TextFormatter{Verbose: cfg.OutputFile != ""}
	}

	w := os.Stdout
	if cfg.OutputFile != "" {
		f, err := os.Create(cfg.OutputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ Failed to create output file: %v\n", err)
			return 2
		}
		defer f.Close()
		w = f
	}

	if err := formatter.Write(w, report); err != nil {
		fmt.Fprintf(os.Stderr, "  ✗ Failed to write output: %v\n", err)
		return 2
	}

	return -1
}
