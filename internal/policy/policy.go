// Package policy reads and validates the optional probe policy file,
// which overrides the package name, configuration paths, detection
// signatures, and audit list used for a run.
package policy

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ancients-collective/upcheck/internal/apt"
)

// packagePattern matches valid Debian package names.
var packagePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9+.\-]+$`)

// Policy configures a probe run. Every field is optional; zero values
// fall back to the built-in Debian/Ubuntu defaults, so an empty policy
// file reproduces the default contract exactly.
type Policy struct {
	// Package is the package whose installation is checked.
	Package string `yaml:"package,omitempty" validate:"omitempty,deb_package"`

	// OriginsFile overrides the upgrade-policy configuration path.
	OriginsFile string `yaml:"origins_file,omitempty" validate:"omitempty,abs_path"`

	// PeriodicFile overrides the periodic-schedule configuration path.
	PeriodicFile string `yaml:"periodic_file,omitempty" validate:"omitempty,abs_path"`

	// OriginsMarkers are literal signatures required in the origins file.
	OriginsMarkers []string `yaml:"origins_markers,omitempty" validate:"omitempty,dive,min=1"`

	// PeriodicMarkers are literal signatures required in the periodic file.
	PeriodicMarkers []string `yaml:"periodic_markers,omitempty" validate:"omitempty,dive,min=1"`

	// Audits lists config/schema pairs to validate, in order.
	Audits []AuditPair `yaml:"audits,omitempty" validate:"omitempty,dive"`
}

// AuditPair names one configuration document and the schema to validate
// it against.
type AuditPair struct {
	// Config is the path of the YAML or JSON document.
	Config string `yaml:"config" validate:"required"`

	// Schema is the path of the JSON Schema document.
	Schema string `yaml:"schema" validate:"required"`
}

// Loader reads YAML policy files and validates them against the schema
// defined by the struct tags above.
type Loader struct {
	validate *validator.Validate
}

// NewLoader creates a policy Loader with the custom validations registered.
func NewLoader() *Loader {
	v := validator.New()

	_ = v.RegisterValidation("deb_package", func(fl validator.FieldLevel) bool {
		return packagePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("abs_path", func(fl validator.FieldLevel) bool {
		return strings.HasPrefix(fl.Field().String(), "/")
	})

	return &Loader{validate: v}
}

// Load reads a YAML policy file and returns a validated Policy.
func (l *Loader) Load(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("failed to read %q: %w", path, err)
	}

	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Policy{}, fmt.Errorf("failed to parse YAML in %q: %w", path, err)
	}

	if err := l.validate.Struct(p); err != nil {
		return Policy{}, formatValidationErrors(err)
	}

	return p, nil
}

// Apply overlays the policy's non-zero fields onto the inspector.
func (p Policy) Apply(ins *apt.Inspector) {
	if p.Package != "" {
		ins.Package = p.Package
	}
	if p.OriginsFile != "" {
		ins.OriginsPath = p.OriginsFile
	}
	if p.PeriodicFile != "" {
		ins.PeriodicPath = p.PeriodicFile
	}
	if len(p.OriginsMarkers) > 0 {
		ins.OriginsMarkers = p.OriginsMarkers
	}
	if len(p.PeriodicMarkers) > 0 {
		ins.PeriodicMarkers = p.PeriodicMarkers
	}
}

// formatValidationErrors converts validator errors into user-friendly messages.
func formatValidationErrors(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var messages []string
	for _, fe := range validationErrors {
		messages = append(messages, formatFieldError(fe))
	}

	return fmt.Errorf("policy validation failed: %s", strings.Join(messages, "; "))
}

// formatFieldError converts a single field validation error to a human-readable message.
func formatFieldError(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must not be empty", field)
	case "deb_package":
		return fmt.Sprintf("%s must be a valid package name (lowercase alphanumerics, '+', '-', '.')", field)
	case "abs_path":
		return fmt.Sprintf("%s must be an absolute path", field)
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}
