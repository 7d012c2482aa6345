// Package commands implements the tablegen subcommands.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/leapstack-labs/tablegen/internal/cli/config"
)

// getConfig returns the loaded CLI config, or defaults.
func getConfig() *config.Config {
	return config.GetCurrentConfig()
}

// newLogger builds the command logger. Quiet runs discard everything;
// verbose runs get debug-level text output on stderr.
func newLogger(verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// parseProperties parses repeated key=value flags into a map.
func parseProperties(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	props := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid property %q (expected key=value)", pair)
		}
		props[key] = value
	}
	return props, nil
}

// mergeProperties overlays flag properties on top of config properties.
// Flag values win on key collisions.
func mergeProperties(fromConfig, fromFlags map[string]string) map[string]string {
	if len(fromConfig) == 0 {
		return fromFlags
	}
	merged := make(map[string]string, len(fromConfig)+len(fromFlags))
	for k, v := range fromConfig {
		merged[k] = v
	}
	for k, v := range fromFlags {
		merged[k] = v
	}
	return merged
}
