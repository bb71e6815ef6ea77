package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Environment describes the build target a config is resolved for.
// The config API treats it as opaque and only passes it through.
type Environment struct {
	Context        string            `json:"context,omitzero" yaml:"context"`
	OutputFormat   string            `json:"outputFormat,omitzero" yaml:"outputFormat"`
	Engines        map[string]string `json:"engines,omitempty" yaml:"engines"`
	IsLibrary      bool              `json:"isLibrary,omitzero" yaml:"isLibrary"`
	ShouldOptimize bool              `json:"shouldOptimize,omitzero" yaml:"shouldOptimize"`
}

// Clone returns a copy that shares no mutable state with e.
func (e Environment) Clone() Environment {
	e.Engines = maps.Clone(e.Engines)
	return e
}

// ID returns a deterministic hash of the environment for cache keys.
func (e Environment) ID() string {
	var builder strings.Builder
	builder.WriteString(e.Context)
	builder.WriteString(";")
	builder.WriteString(e.OutputFormat)
	builder.WriteString(";")
	builder.WriteString(strconv.FormatBool(e.IsLibrary))
	builder.WriteString(";")
	builder.WriteString(strconv.FormatBool(e.ShouldOptimize))
	builder.WriteString(";")

	// Sort engine names for deterministic ordering
	for _, name := range slices.Sorted(maps.Keys(e.Engines)) {
		builder.WriteString(name)
		builder.WriteString(":")
		builder.WriteString(e.Engines[name])
		builder.WriteString(";")
	}

	hash := sha256.Sum256([]byte(builder.String()))
	return hex.EncodeToString(hash[:])
}
