package report

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"perfexp/internal/harness"
)

var printer = message.NewPrinter(language.English)

// Label is the upper-case status word shown to readers.
func Label(s harness.Status) string {
	switch s {
	case harness.StatusPassed:
		return "PASS"
	case harness.StatusDisqualified:
		return "DISQUALIFIED"
	case harness.StatusSetupFailed:
		return "SETUP FAILED"
	}
	return string(s)
}

// Nanos renders a nanosecond value with thousands grouping, e.g. "12,345.6 ns".
func Nanos(ns float64) string {
	return printer.Sprintf("%.1f ns", ns)
}

// Bytes renders a byte count with thousands grouping.
func Bytes(b float64) string {
	return printer.Sprintf("%.0f B", b)
}

// RatioText renders a ratio as "0.52x", or "n/a" when undefined.
func RatioText(r *float64) string {
	if r == nil {
		return "n/a"
	}
	return printer.Sprintf("%.2fx", *r)
}

func elapsed(start, end time.Time) string {
	if start.IsZero() || end.IsZero() {
		return "-"
	}
	return end.Sub(start).Round(time.Millisecond).String()
}

func params(c harness.Case) string {
	if p := c.Params.String(); p != "" {
		return p
	}
	return "-"
}
