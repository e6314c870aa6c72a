package main

// This is the main entry point that simply imports and uses the modularized app components. The actual application logic is split across:
// - app_core.go: Core application structure and initialization
// - app_handlers.go: Event handlers for user interactions
// - app_menus.go: Menu setup and handlers

// Debug component toggles
// IMAGE_STUDIO_PPROF=1 - pprof server on :6060
// IMAGE_STUDIO_DEBUG=1 - debug-level logging
var (
	DebugPerformance = true  // Timing and performance metrics
	DebugGUI         = false // GUI events and interactions
)
