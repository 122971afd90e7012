package statement

// LineItem identifies a row of the statement table by its canonical
// (translated) name. Labels the translation tables do not know pass through
// unchanged, so any string is a valid LineItem; the constants below are the
// ones the analyzers read.
type LineItem string

// Balance sheet rows.
const (
	CurrentAssets            LineItem = "Ativos Correntes"
	NonCurrentAssets         LineItem = "Ativos Não Corrente"
	CurrentDebt              LineItem = "Dívida Corrente"
	NonCurrentLiabilities    LineItem = "Total de Passivos Não Correntes Líquidos de Participações Minoritárias"
	StockholdersEquity       LineItem = "Patrimônio Líquido dos Acionistas"
	WorkingCapital           LineItem = "Capital de Giro"
	TotalAssets              LineItem = "Ativo Total"
	CurrentLiabilities       LineItem = "Passivos Correntes"
	LongTermEquityInvestment LineItem = "Investimento em Ações de Longo Prazo"

	// TotalLiabilities has no translation upstream and keeps the provider's
	// English label.
	TotalLiabilities LineItem = "Total Liabilities Net Minority Interest"
)

// Income statement rows.
const (
	NetIncome    LineItem = "Lucro Líquido"
	TotalRevenue LineItem = "Receita Total"
	EBIT         LineItem = "EBIT"
)

// Cash flow rows. The provider reports dividends under one of two labels
// depending on the company.
const (
	CashDividendsPaid       LineItem = "Dividendos em Dinheiro Pagos"
	CommonStockDividendPaid LineItem = "Dividendos de Ações Ordinárias Pagos"
)

// DividendAliases lists the dividend rows in lookup priority order.
var DividendAliases = []LineItem{CashDividendsPaid, CommonStockDividendPaid}

func (li LineItem) String() string { return string(li) }
