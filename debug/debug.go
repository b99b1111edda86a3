// Package debug provides env-gated diagnostics for the parser, the
// resolver and the include orchestrator. Each area has its own gate:
//
//	HOCON_DEBUG_PARSE=1    log parser progress
//	HOCON_DEBUG_RESOLVE=1  log resolution steps
//	HOCON_DEBUG_INCLUDE=1  log include expansion
//
// Output goes to stderr and is colorized when stderr is a terminal.
package debug

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	parseOn   = boolEnv("HOCON_DEBUG_PARSE")
	resolveOn = boolEnv("HOCON_DEBUG_RESOLVE")
	includeOn = boolEnv("HOCON_DEBUG_INCLUDE")

	label = color.New(color.FgCyan)
)

func init() {
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		label.DisableColor()
	}
}

func boolEnv(name string) bool {
	switch os.Getenv(name) {
	case "", "0", "false", "no":
		return false
	}
	return true
}

// Parse reports whether parser debugging is on.
func Parse() bool { return parseOn }

// Resolve reports whether resolution debugging is on.
func Resolve() bool { return resolveOn }

// Include reports whether include debugging is on.
func Include() bool { return includeOn }

// Logf writes a formatted diagnostic line to stderr with a colorized
// prefix. Callers gate on the relevant area themselves.
func Logf(format string, args ...any) {
	label.Fprint(os.Stderr, "hocon: ")
	fmt.Fprintf(os.Stderr, format, args...)
}

// JSON renders v as indented JSON for diagnostics, falling back to the
// error text if v does not marshal.
func JSON(v any) string {
	d, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("<unmarshalable: %s>", err)
	}
	return string(d)
}
