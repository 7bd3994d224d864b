// Package types defines shared type definitions used across all upcheck packages.
package types

// UpgradeVerdict is the outcome of the unattended-upgrades inspection.
// Every verdict carries exactly one message, pass or fail.
type UpgradeVerdict struct {
	// Enabled reports whether unattended upgrades are installed and
	// correctly configured.
	Enabled bool `json:"enabled"`

	// Message explains the verdict in one line.
	Message string `json:"message"`
}

// ValidationVerdict is the outcome of validating a configuration document
// against a JSON Schema.
type ValidationVerdict struct {
	// Valid reports whether the document satisfied the schema.
	Valid bool `json:"valid"`

	// Diagnostics lists violations and errors in the order they were found.
	// Empty when Valid is true.
	Diagnostics []string `json:"diagnostics,omitempty"`
}

// AuditResult pairs a config/schema audit with its verdict.
type AuditResult struct {
	// ConfigPath is the configuration document that was validated.
	ConfigPath string `json:"config_path"`

	// SchemaPath is the JSON Schema it was validated against.
	SchemaPath string `json:"schema_path"`

	// Verdict is the validation outcome.
	Verdict ValidationVerdict `json:"verdict"`
}
