// Package view turns catalog and cart state into display structures for a
// renderer. It produces no markup.
package view

import (
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	fullStar  = "★"
	emptyStar = "☆"
	maxStars  = 5
)

// Price formats a catalog price with two decimals.
func Price(v float64) string {
	return fmt.Sprintf("€%.2f", v)
}

// Cents formats an amount held in whole cents.
func Cents(c int64) string {
	sign := ""
	if c < 0 {
		sign, c = "-", -c
	}
	return fmt.Sprintf("%s€%d.%02d", sign, c/100, c%100)
}

// Stars renders a 0..5 rating as five glyphs. A fractional part of .5 or more
// takes one outlined glyph, like the empty ones.
func Stars(rating float64) string {
	rating = math.Max(0, math.Min(rating, maxStars))
	full := int(math.Floor(rating))
	half := 0
	if rating-float64(full) >= 0.5 {
		half = 1
	}
	return strings.Repeat(fullStar, full) + strings.Repeat(emptyStar, half) + strings.Repeat(emptyStar, maxStars-full-half)
}

func RatingText(rating float64) string {
	return fmt.Sprintf("(%g/5)", rating)
}

// CapitalizeFirst upper-cases the first letter and leaves the rest as is.
func CapitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func ResultsCount(n int) string {
	return fmt.Sprintf("%d product(s) found", n)
}

func DiscountBadge(pct float64) string {
	if pct <= 0 {
		return ""
	}
	return fmt.Sprintf("-%d%%", int(math.Round(pct)))
}
