package factor

import (
	"context"
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/mfleet/ecotally/internal/logging"
)

// SupportedSchemaConstraint is the semver range of factor table file schemas
// this build can load.
const SupportedSchemaConstraint = ">= 1.0.0, < 2.0.0"

// tableFile is the YAML layout of a factor table file.
type tableFile struct {
	SchemaVersion string   `yaml:"schema_version"`
	Region        string   `yaml:"region,omitempty"`
	Factors       []Factor `yaml:"factors"`
}

// Load reads a factor table from a YAML file. Region-specific tables are a
// startup configuration concern; the loaded table is immutable like the
// built-in one.
//
// The file must declare a schema_version within SupportedSchemaConstraint.
// Every row is validated; a single bad row fails the whole load so a partial
// table can never silently enter service.
func Load(ctx context.Context, path string) (*Table, error) {
	log := logging.FromContext(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading factor table %s: %w", path, err)
	}

	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing factor table %s: %w", path, err)
	}

	if err := checkSchemaVersion(file.SchemaVersion); err != nil {
		return nil, fmt.Errorf("factor table %s: %w", path, err)
	}

	table, err := NewTable(file.Factors)
	if err != nil {
		return nil, fmt.Errorf("factor table %s: %w", path, err)
	}

	log.Debug().
		Str("component", "factor").
		Str("path", path).
		Str("region", file.Region).
		Int("factor_count", table.Len()).
		Msg("loaded factor table")

	return table, nil
}

// checkSchemaVersion validates a schema_version string against the supported
// range.
func checkSchemaVersion(version string) error {
	if version == "" {
		return fmt.Errorf("%w: schema_version is required", ErrUnsupportedSchema)
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q is not valid semver", ErrUnsupportedSchema, version)
	}

	constraint, err := semver.NewConstraint(SupportedSchemaConstraint)
	if err != nil {
		return fmt.Errorf("parsing schema constraint: %w", err)
	}

	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedSchema, version, SupportedSchemaConstraint)
	}
	return nil
}
