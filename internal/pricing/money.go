package pricing

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const epsilon = 0x1p-52

// Round2 rounds n to cents, halves going up.
func Round2(n float64) float64 {
	return math.Floor((n+epsilon)*100+0.5) / 100
}

// FormatEUR renders n as an Italian euro amount, e.g. "1.234,56 €".
func FormatEUR(n float64) string {
	return message.NewPrinter(language.Italian).Sprintf("%v €", number.Decimal(Round2(n), number.Scale(2)))
}

