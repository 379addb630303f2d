package cli

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mfleet/ecotally/internal/engine"
)

// printer is the locale-aware message printer for number formatting.
// English locale keeps thousand separators consistent across machines.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// kgPrecision is the display precision for CO2 masses. Calculation stays
// unrounded; rounding happens only here at the presentation edge.
const kgPrecision = 2

// formatKg renders a CO2 mass for display, e.g. "1,234.57".
func formatKg(kg float64) string {
	multiplier := math.Pow(10, kgPrecision)
	rounded := math.Round(kg*multiplier) / multiplier
	return printer.Sprintf("%.2f", rounded)
}

// formatRatio renders a baseline ratio, e.g. "0.95x".
func formatRatio(ratio float64) string {
	return fmt.Sprintf("%.2fx", ratio)
}

// Classification badge styles keyed by tier.
//
//nolint:gochecknoglobals // Constant style lookup table
var classStyles = map[engine.Classification]lipgloss.Style{
	engine.ClassExcellent: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),  // green
	engine.ClassGood:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78")),  // light green
	engine.ClassAverage:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")), // yellow
	engine.ClassPoor:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208")), // orange
	engine.ClassCritical:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")), // red
}

// classBadge renders a classification label, styled when writing to a
// terminal and plain otherwise so piped output stays machine-friendly.
func classBadge(w io.Writer, class engine.Classification) string {
	label := class.String()
	if isWriterTerminal(w) {
		return classStyles[class].Render(label)
	}
	return label
}

// isWriterTerminal reports whether w is an interactive terminal.
func isWriterTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}
