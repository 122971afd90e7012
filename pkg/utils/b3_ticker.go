package utils

import (
	"strings"
)

// DefaultSuffix is the Yahoo Finance exchange suffix for B3 listings.
const DefaultSuffix = ".SA"

// Common B3 company names and their most liquid share class.
var tickerAliases = map[string]string{
	"PETROBRAS":       "PETR4",
	"PETRO":           "PETR4",
	"VALE":            "VALE3",
	"ITAU":            "ITUB4",
	"ITAÚ":            "ITUB4",
	"ITAU UNIBANCO":   "ITUB4",
	"BRADESCO":        "BBDC4",
	"BANCO DO BRASIL": "BBAS3",
	"BB":              "BBAS3",
	"AMBEV":           "ABEV3",
	"WEG":             "WEGE3",
	"MAGALU":          "MGLU3",
	"MAGAZINE LUIZA":  "MGLU3",
	"B3":              "B3SA3",
	"SUZANO":          "SUZB3",
	"GERDAU":          "GGBR4",
	"ELETROBRAS":      "ELET3",
	"LOCALIZA":        "RENT3",
	"RAIA":            "RADL3",
	"RAIA DROGASIL":   "RADL3",
	"EMBRAER":         "EMBR3",
	"JBS":             "JBSS3",
	"SABESP":          "SBSP3",
	"TIM":             "TIMS3",
	"VIVO":            "VIVT3",
	"NATURA":          "NTCO3",
	"HYPERA":          "HYPE3",
	"TOTVS":           "TOTS3",
}

// B3 index tickers and their Yahoo Finance symbols.
var indexTickers = map[string]string{
	"IBOV":     "^BVSP",
	"IBOVESPA": "^BVSP",
	"BVSP":     "^BVSP",
	"IFIX":     "IFIX.SA",
	"SMLL":     "SMLL.SA",
}

// NormalizeTicker normalizes a user-input ticker to the canonical B3 code.
// It handles aliases, uppercasing, and whitespace.
func NormalizeTicker(ticker string) string {
	ticker = strings.TrimSpace(strings.ToUpper(ticker))

	// Remove $ prefix if present (common in chat)
	ticker = strings.TrimPrefix(ticker, "$")

	if canonical, ok := tickerAliases[ticker]; ok {
		return canonical
	}
	return ticker
}

// ToYFinanceTicker converts a B3 ticker to Yahoo Finance format by appending
// suffix. Index names map to their Yahoo symbol; tickers that already carry
// an exchange suffix are returned as-is.
func ToYFinanceTicker(ticker, suffix string) string {
	ticker = NormalizeTicker(ticker)

	if sym, ok := indexTickers[ticker]; ok {
		return sym
	}
	if strings.HasPrefix(ticker, "^") || strings.Contains(ticker, ".") {
		return ticker
	}
	return ticker + strings.ToUpper(suffix)
}

// FromYFinanceTicker strips the .SA suffix to get the B3 ticker.
func FromYFinanceTicker(yfTicker string) string {
	return strings.TrimSuffix(strings.ToUpper(yfTicker), DefaultSuffix)
}

// IsIndex checks if the ticker is an index (not a stock).
func IsIndex(ticker string) bool {
	ticker = NormalizeTicker(ticker)
	if _, ok := indexTickers[ticker]; ok {
		return true
	}
	return strings.HasPrefix(ticker, "^")
}
