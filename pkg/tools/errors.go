// Package tools hosts the pieces shared by the MCP tool implementations.
package tools

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pitwall/f1insight/pkg/analysis"
	"github.com/pitwall/f1insight/pkg/timing"
)

// ErrorReport renders a failure as the text payload of a tool result.
// Analysis errors never cross the tool boundary as exceptions, the
// caller gets a message with remediation hints instead.
func ErrorReport(action string, err error, hints ...string) string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("Error %s: %v\n", action, err))
	if len(hints) > 0 {
		sb.WriteString("\nPlease check:\n")
		for _, hint := range hints {
			sb.WriteString("- " + hint + "\n")
		}
	}
	return sb.String()
}

// HintFor returns a remediation hint specific to the error type or an
// empty string when the generic hints cover it.
func HintFor(err error) string {
	var missingColumn *analysis.MissingColumnError
	switch {
	case errors.As(err, &missingColumn):
		return fmt.Sprintf("The data source provides %s data for this session",
			missingColumn.Column)
	case errors.Is(err, analysis.ErrInsufficientDrivers):
		return "The session has enough classified drivers"
	case errors.Is(err, timing.ErrUpstream):
		return "The timing API is reachable from this machine"
	default:
		return ""
	}
}

// Hints assembles the hint list for an error: the specific hint first,
// then the generic ones.
func Hints(err error, generic ...string) []string {
	if specific := HintFor(err); specific != "" {
		return append([]string{specific}, generic...)
	}
	return generic
}
