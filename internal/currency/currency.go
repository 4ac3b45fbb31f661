package currency

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Quote is one derived RUB rate: PerRub rubles buy one unit of Symbol.
// Quotes are computed per report and never stored.
type Quote struct {
	Symbol string
	PerRub float64
}

// trackedCodes is the fixed, ordered set of currencies a report covers.
var trackedCodes = [...]string{
	"USD", "EUR", "GBP", "JPY", "CNY",
	"CHF", "CAD", "AUD", "NZD", "TRY",
}

var flags = map[string]string{
	"USD": "🇺🇸",
	"EUR": "🇪🇺",
	"GBP": "🇬🇧",
	"JPY": "🇯🇵",
	"CNY": "🇨🇳",
	"CHF": "🇨🇭",
	"CAD": "🇨🇦",
	"AUD": "🇦🇺",
	"NZD": "🇳🇿",
	"TRY": "🇹🇷",
}

// ParseRate extracts the rate for a currency code from a raw payload by
// locating the first `"<code>":<number>` occurrence. A missing code parses
// as 0 and is treated as absent by the callers.
func ParseRate(payload, code string) float64 {
	pattern := regexp.MustCompile(`"` + regexp.QuoteMeta(code) + `":(\d+\.?\d*)`)
	m := pattern.FindStringSubmatch(payload)
	if m == nil {
		return 0
	}
	rate, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return rate
}

// Quotes derives the RUB rate for every tracked currency found in a
// USD-denominated payload. The payload states how many units of each code
// one USD buys, so every non-USD rate is crossed through USD/RUB:
// rub = usdToRub / rate(code). Codes absent from the payload or quoted at
// zero are omitted.
func Quotes(payload string, usdToRub float64) []Quote {
	quotes := make([]Quote, 0, len(trackedCodes))
	for _, code := range trackedCodes {
		if code == "USD" {
			quotes = append(quotes, Quote{Symbol: code, PerRub: usdToRub})
			continue
		}
		toUsd := ParseRate(payload, code)
		if toUsd > 0 {
			quotes = append(quotes, Quote{Symbol: code, PerRub: usdToRub / toUsd})
		}
	}
	return quotes
}

// buildReport renders the user-facing rate report from a raw payload.
func buildReport(payload string, now time.Time) string {
	usdToRub := ParseRate(payload, "RUB")
	if usdToRub <= 0 {
		return "⚠️ Не удалось получить курс USD/RUB"
	}

	var b strings.Builder
	b.WriteString("📊 Курсы валют к RUB:\n\n")
	for _, q := range Quotes(payload, usdToRub) {
		fmt.Fprintf(&b, "%s %s/RUB: %.2f\n", flags[q.Symbol], q.Symbol, q.PerRub)
	}
	b.WriteString("\n⏳ Данные на " + now.Format("02.01.2006 15:04"))
	return b.String()
}
