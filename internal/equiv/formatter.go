package equiv

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Scaling thresholds for abbreviated display.
const (
	// LargeNumberThreshold is where display switches to "~X.X million".
	LargeNumberThreshold = 1_000_000

	// BillionThreshold is where display switches to "~X.X billion".
	BillionThreshold = 1_000_000_000
)

// printer is the locale-aware message printer for number formatting.
// English locale keeps thousand separators consistent.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators.
// Example: FormatNumber(18248) returns "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatValue formats an equivalency value for display: abbreviated scaling
// for million/billion magnitudes, comma-separated rounded integers below.
func FormatValue(v float64) string {
	if v >= BillionThreshold {
		return fmt.Sprintf("~%.1f billion", v/BillionThreshold)
	}
	if v >= LargeNumberThreshold {
		return fmt.Sprintf("~%.1f million", v/LargeNumberThreshold)
	}
	return FormatNumber(int64(math.Round(v)))
}
