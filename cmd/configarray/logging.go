package main

import "go.uber.org/zap"

// newLogger builds the single *zap.Logger threaded through the CLI.
// verbose selects zap's development preset (console encoding, debug level)
// over its production preset (JSON, info level).
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
