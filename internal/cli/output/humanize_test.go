package output

import (
	"strings"
	"testing"
	"unicode"

	"github.com/bdu-steam/steam-cli/internal/core/domain"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price      domain.Amount
		wantDigits string
	}{
		{0, "0"},
		{500, "500"},
		{1500000, "1500000"},
		{2499999.6, "2500000"},
	}

	for _, tt := range tests {
		got := FormatPrice(tt.price)
		if !strings.HasSuffix(got, " VND") {
			t.Errorf("FormatPrice(%v) = %q, want VND suffix", tt.price, got)
		}
		digits := strings.Map(func(r rune) rune {
			if unicode.IsDigit(r) {
				return r
			}
			return -1
		}, got)
		if digits != tt.wantDigits {
			t.Errorf("FormatPrice(%v) = %q, digits %q, want %q", tt.price, got, digits, tt.wantDigits)
		}
	}
}

func TestFormatPrice_Grouped(t *testing.T) {
	got := FormatPrice(1500000)
	if got == "1500000 VND" {
		t.Errorf("FormatPrice should group thousands, got %q", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
		short   string
	}{
		{-5, "0 phút", "0m"},
		{0, "0 phút", "0m"},
		{45, "45 phút", "45m"},
		{60, "1 giờ", "1h"},
		{150, "2 giờ 30 phút", "2h 30m"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.minutes); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
		if got := FormatDurationShort(tt.minutes); got != tt.short {
			t.Errorf("FormatDurationShort(%d) = %q, want %q", tt.minutes, got, tt.short)
		}
	}
}

func TestYesNo(t *testing.T) {
	if YesNo(true) != "Có" || YesNo(false) != "Không" {
		t.Error("YesNo returned unexpected text")
	}
}
