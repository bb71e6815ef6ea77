// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/cfgtrack/internal/adapters/cas"
	_ "go.trai.ch/cfgtrack/internal/adapters/config"
	_ "go.trai.ch/cfgtrack/internal/adapters/fs"
	_ "go.trai.ch/cfgtrack/internal/adapters/logger"
	_ "go.trai.ch/cfgtrack/internal/adapters/search"
	_ "go.trai.ch/cfgtrack/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/cfgtrack/internal/app"
	_ "go.trai.ch/cfgtrack/internal/engine/pluginconfig"
)
