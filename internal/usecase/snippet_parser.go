package usecase

import (
	"math"
	"regexp"
	"strings"
)

// Matches amounts like "$1,200", "-$40", "$-40", "+3.5K" and bare "250".
var moneyPattern = regexp.MustCompile(`(?i)[-+]?\$?\d+(?:,\d+)*(?:\.\d+)?[KMB]?|\$[-+]?\d+(?:,\d+)*(?:\.\d+)?[KMB]?`)

// SnippetResult holds the wallet performance fields extracted from pasted text.
type SnippetResult struct {
	Buy        string `json:"buyVolume"`
	Sell       string `json:"sellVolume"`
	Profit     string `json:"profit"`
	Multiplier string `json:"multiplier"`
}

// ParseWalletSnippet pulls buy volume, sell volume and profit, in that order,
// out of text copied from a trading bot and derives the multiplier.
//
// Dollar-tagged amounts are preferred. When fewer than three exist, the first
// three numbers of any kind are used instead. With fewer than three numbers
// all fields stay empty and the multiplier is "1x".
func ParseWalletSnippet(text string) SnippetResult {
	all := moneyPattern.FindAllString(text, -1)

	var dollars []string
	for _, m := range all {
		if strings.Contains(m, "$") {
			dollars = append(dollars, m)
		}
	}

	var picked []string
	if len(dollars) >= 3 {
		picked = dollars[:3]
	} else if len(all) >= 3 {
		picked = all[:3]
	}

	res := SnippetResult{Multiplier: "1x"}
	if picked == nil {
		return res
	}

	res.Buy = normalizeAmount(picked[0], false)
	res.Sell = normalizeAmount(picked[1], false)
	res.Profit = normalizeAmount(picked[2], true)

	buy := math.Abs(currencyFloat(res.Buy))
	sell := math.Abs(currencyFloat(res.Sell))
	profit := currencyFloat(res.Profit)
	res.Multiplier = FormatMultiplier(buy, sell, profit)

	return res
}

// normalizeAmount puts a "$" after any leading sign. Profits without a sign are positive.
func normalizeAmount(val string, isProfit bool) string {
	res := strings.TrimSpace(val)
	if res == "" {
		return ""
	}
	if !strings.Contains(res, "$") {
		if res[0] == '-' || res[0] == '+' {
			res = res[:1] + "$" + res[1:]
		} else {
			res = "$" + res
		}
	}
	if isProfit && res[0] != '-' && res[0] != '+' {
		res = "+" + res
	}
	return res
}

// FormatMultiplier returns sell/buy, or (buy+profit)/buy when nothing was sold,
// with one decimal and an "x" suffix. A zero buy always gives "1x".
func FormatMultiplier(buy, sell, profit float64) string {
	if !(buy > 0) {
		return "1x"
	}
	ratio := (buy + profit) / buy
	if sell > 0 {
		ratio = sell / buy
	}
	return toFixed(ratio, 1) + "x"
}
