package output

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/bdu-steam/steam-cli/internal/core/domain"
)

var viPrinter = message.NewPrinter(language.Vietnamese)

// FormatPrice formats a price as Vietnamese dong with locale grouping,
// e.g. "1.500.000 VND".
func FormatPrice(price domain.Amount) string {
	v := float64(price)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0 VND"
	}
	return viPrinter.Sprintf("%d VND", int64(math.Round(v)))
}

// FormatDuration formats minutes as "2 giờ 30 phút".
func FormatDuration(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%d phút", m)
	case m == 0:
		return fmt.Sprintf("%d giờ", h)
	default:
		return fmt.Sprintf("%d giờ %d phút", h, m)
	}
}

// FormatDurationShort formats minutes as "2h 30m".
func FormatDurationShort(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}

// YesNo renders a flag as "Có" or "Không".
func YesNo(b bool) string {
	if b {
		return "Có"
	}
	return "Không"
}
