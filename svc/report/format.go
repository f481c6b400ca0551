package report

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dmitrymomot/qrbench/pkg/sanitizer"
)

var byteUnits = []string{"B", "KB", "MB", "GB"}

// FormatBytes renders a byte count with binary units and at most two
// decimals, e.g. "1.5 KB".
func FormatBytes(bytes float64) string {
	if bytes <= 0 || math.IsNaN(bytes) || math.IsInf(bytes, 0) {
		return "0 B"
	}
	i := int(math.Floor(math.Log(bytes) / math.Log(1024)))
	i = max(0, min(i, len(byteUnits)-1))
	return trimFloat(bytes/math.Pow(1024, float64(i))) + " " + byteUnits[i]
}

// FormatTime renders a duration given in milliseconds as μs, ms or s.
func FormatTime(ms float64) string {
	switch {
	case ms < 1:
		return fmt.Sprintf("%.2fμs", ms*1000)
	case ms < 1000:
		return fmt.Sprintf("%.2fms", ms)
	default:
		return fmt.Sprintf("%.2fs", ms/1000)
	}
}

// FormatNumber rounds n and groups its digits, e.g. "1,234,567".
func FormatNumber(n float64) string {
	return NumberPrinter(language.English).Sprintf("%d", int64(math.Round(n)))
}

// NumberPrinter returns a printer that formats numbers for tag.
func NumberPrinter(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(sanitizer.RoundToDecimalPlaces(v, 2), 'f', -1, 64)
}
