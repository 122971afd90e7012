package report

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// DefaultLocale is used when the configured locale is empty or unparsable.
var DefaultLocale = language.BrazilianPortuguese

// ptBR holds the Brazilian Portuguese strings. Keys are the English text,
// which is also what the English printer falls back to.
var ptBR = map[string]string{
	// Document
	"Financial analysis":  "Análise financeira",
	"Generated at":        "Gerado em",
	"Fiscal years":        "Anos fiscais",
	"Ticker":              "Ticker",
	"Error":               "Erro",
	"Notes":               "Observações",
	"Line item":           "Conta",
	"Financial statement": "Demonstrativo financeiro",
	"Scores by year":      "Pontuações por ano",

	// Section titles
	"Fleuriet model":                "Modelo Fleuriet",
	"DuPont analysis":               "Análise DuPont",
	"Altman Z-Score":                "Z-Score de Altman",
	"Kanitz insolvency thermometer": "Termômetro de insolvência de Kanitz",

	// Columns
	"Year":           "Ano",
	"Rule":           "Regra",
	"Classification": "Classificação",
	"Net margin":     "Margem líquida",
	"Asset turnover": "Giro do ativo",
	"Leverage":       "Alavancagem",
	"Zone":           "Zona",
	"Thermometer":    "Termômetro",
	"Liquidity":      "Liquidez",
	"Indebtedness":   "Endividamento",
	"Band":           "Faixa",

	// Fleuriet classifications
	"Excellent":      "Excelente",
	"Solid":          "Sólida",
	"Unsatisfactory": "Insatisfatória",
	"High risk":      "Alto risco",
	"Very bad":       "Muito ruim",
	"Poor":           "Péssima",

	// Altman zones and Kanitz bands
	"distress":  "perigo",
	"grey":      "cinzenta",
	"safe":      "segura",
	"insolvent": "insolvente",
	"penumbra":  "penumbra",
	"solvent":   "solvente",

	// Diagnostics
	"%s not found for year %s, year skipped": "%s não encontrado no ano %s, ano ignorado",
	"missing rows: %s":                       "contas ausentes: %s",
}

var messages = newCatalog()

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range ptBR {
		// Keys are literals; SetString only fails on malformed tags.
		_ = b.SetString(language.BrazilianPortuguese, key, msg)
		_ = b.SetString(language.English, key, key)
	}
	return b
}

// parseLocale resolves a BCP 47 tag against the supported languages.
func parseLocale(locale string) language.Tag {
	if locale == "" {
		return DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return DefaultLocale
	}
	matcher := language.NewMatcher([]language.Tag{language.BrazilianPortuguese, language.English})
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return DefaultLocale
	}
	return []language.Tag{language.BrazilianPortuguese, language.English}[idx]
}

// newPrinter returns a printer that translates labels and formats numbers
// for locale.
func newPrinter(locale string) *message.Printer {
	return message.NewPrinter(parseLocale(locale), message.Catalog(messages))
}

// label translates a fixed identifier, such as a classification name, without
// treating it as a format string.
func label(p *message.Printer, id string) string {
	return p.Sprintf(message.Key(id, strings.ReplaceAll(id, "%", "%%")))
}
