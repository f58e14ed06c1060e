package config

import (
	"github.com/trimble-oss/trcphotometry/pkg/core"
)

// DriverConfig -- contains the structures the query engine and its tools need.
type DriverConfig struct {
	CoreConfig *core.CoreConfig

	// Seed tables loaded into the in-memory database at startup.
	SeedPaths []string

	// External source to import before queries run.
	SourceURL      string
	SourceUser     string
	SourcePassword string
	SourceQuery    string
	SourceTable    string
	SourceCertName string // Used to register client TLS for mysql sources.
}

// HasSource reports whether an external import is configured.
func (driverConfig *DriverConfig) HasSource() bool {
	return driverConfig.SourceURL != "" && driverConfig.SourceQuery != "" && driverConfig.SourceTable != ""
}
