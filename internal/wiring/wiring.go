// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/uifirst/internal/adapters/config"
	_ "go.trai.ch/uifirst/internal/adapters/inspect"
	_ "go.trai.ch/uifirst/internal/adapters/logger"
	_ "go.trai.ch/uifirst/internal/adapters/scene"
	_ "go.trai.ch/uifirst/internal/adapters/store"
	_ "go.trai.ch/uifirst/internal/adapters/telemetry"
	_ "go.trai.ch/uifirst/internal/adapters/telemetry/progrock"
	// Register app nodes.
	_ "go.trai.ch/uifirst/internal/app"
)
