// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"

	"github.com/alnah/go-gmi2html/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForCacheConnect returns hints for Valkey connection errors.
func ForCacheConnect(addr string) string {
	hints := []string{"start Valkey/Redis at " + addr + " or drop --cache-addr to serve without a cache"}

	// Loopback inside a container is the container itself, not the host.
	if IsInContainer() && (strings.HasPrefix(addr, "127.") || strings.HasPrefix(addr, "localhost")) {
		hints = append(hints, "inside a container, use the cache service name instead of localhost")
	}

	return formatHints(hints)
}

// ForListen returns a hint for listener errors.
func ForListen() string {
	return format("the address may be in use; choose another with --addr or GMI2HTML_ADDR")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-gmi2html/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-gmi2html") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForExtensions lists the extensions picked up as gemtext.
func ForExtensions(extensions []string) string {
	if len(extensions) == 0 {
		return ""
	}
	return format("accepted extensions: " + strings.Join(extensions, ", ") + " (see input.extensions)")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
