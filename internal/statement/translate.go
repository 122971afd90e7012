package statement

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Kind names one of the three provider statements.
type Kind string

const (
	BalanceSheet    Kind = "balance_sheet"
	CashFlow        Kind = "cash_flow"
	IncomeStatement Kind = "income_statement"
)

// Kinds lists the statements in concatenation order.
var Kinds = []Kind{BalanceSheet, CashFlow, IncomeStatement}

var balanceSheetLabels = map[string]LineItem{
	"Current Assets":           CurrentAssets,
	"Total Non Current Assets": NonCurrentAssets,
	"Current Debt":             CurrentDebt,
	"Total Non Current Liabilities Net Minority Interest": NonCurrentLiabilities,
	"Stockholders Equity":                  StockholdersEquity,
	"Working Capital":                      WorkingCapital,
	"Total Assets":                         TotalAssets,
	"Current Liabilities":                  CurrentLiabilities,
	"Long Term Equity Investment":          LongTermEquityInvestment,
	"Cash And Cash Equivalents":            "Caixa e Equivalentes de Caixa",
	"Inventory":                            "Estoques",
	"Accounts Receivable":                  "Contas a Receber",
	"Accounts Payable":                     "Contas a Pagar",
	"Total Debt":                           "Dívida Total",
	"Long Term Debt":                       "Dívida de Longo Prazo",
	"Net Debt":                             "Dívida Líquida",
	"Retained Earnings":                    "Lucros Retidos",
	"Net PPE":                              "Imobilizado Líquido",
	"Goodwill":                             "Ágio",
	"Minority Interest":                    "Participações Minoritárias",
	"Total Equity Gross Minority Interest": "Patrimônio Líquido Total Incluindo Participações Minoritárias",
	"Share Issued":                         "Ações Emitidas",
}

var cashFlowLabels = map[string]LineItem{
	"Cash Dividends Paid":                   CashDividendsPaid,
	"Common Stock Dividend Paid":            CommonStockDividendPaid,
	"Net Income":                            NetIncome,
	"Operating Cash Flow":                   "Fluxo de Caixa Operacional",
	"Investing Cash Flow":                   "Fluxo de Caixa de Investimento",
	"Financing Cash Flow":                   "Fluxo de Caixa de Financiamento",
	"Free Cash Flow":                        "Fluxo de Caixa Livre",
	"Capital Expenditure":                   "Despesas de Capital",
	"Depreciation And Amortization":         "Depreciação e Amortização",
	"Net Income From Continuing Operations": "Lucro Líquido de Operações Continuadas",
	"End Cash Position":                     "Posição Final de Caixa",
}

var incomeStatementLabels = map[string]LineItem{
	"Total Revenue":     TotalRevenue,
	"Net Income":        NetIncome,
	"EBIT":              EBIT,
	"EBITDA":            "EBITDA",
	"Gross Profit":      "Lucro Bruto",
	"Cost Of Revenue":   "Custo da Receita",
	"Operating Income":  "Lucro Operacional",
	"Operating Expense": "Despesas Operacionais",
	"Interest Expense":  "Despesa de Juros",
	"Pretax Income":     "Lucro Antes dos Impostos",
	"Tax Provision":     "Provisão para Impostos",
	"Basic EPS":         "LPA Básico",
	"Diluted EPS":       "LPA Diluído",
}

var labelsByKind = map[Kind]map[string]LineItem{
	BalanceSheet:    balanceSheetLabels,
	CashFlow:        cashFlowLabels,
	IncomeStatement: incomeStatementLabels,
}

// Translate maps a provider label of the given statement to its canonical
// line item. Unknown labels are returned as-is (NFC-normalized).
func Translate(kind Kind, label string) LineItem {
	label = normalizeLabel(label)
	if item, ok := labelsByKind[kind][label]; ok {
		return item
	}
	return LineItem(label)
}

// TranslateAny tries every statement's table in concatenation order. It is
// used for inputs that do not say which statement a row came from.
func TranslateAny(label string) LineItem {
	label = normalizeLabel(label)
	for _, k := range Kinds {
		if item, ok := labelsByKind[k][label]; ok {
			return item
		}
	}
	return LineItem(label)
}

// normalizeLabel trims and composes accents so "Dívida" typed with a
// combining acute matches the table key.
func normalizeLabel(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
