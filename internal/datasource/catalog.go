package datasource

import "github.com/seenimoa/analisefin/internal/statement"

// field maps a Yahoo time series key to the English label yfinance-style
// statements use.
type field struct {
	Key   string
	Label string
}

var balanceSheetFields = []field{
	{"TotalAssets", "Total Assets"},
	{"CurrentAssets", "Current Assets"},
	{"TotalNonCurrentAssets", "Total Non Current Assets"},
	{"CurrentLiabilities", "Current Liabilities"},
	{"CurrentDebt", "Current Debt"},
	{"TotalNonCurrentLiabilitiesNetMinorityInterest", "Total Non Current Liabilities Net Minority Interest"},
	{"TotalLiabilitiesNetMinorityInterest", "Total Liabilities Net Minority Interest"},
	{"StockholdersEquity", "Stockholders Equity"},
	{"TotalEquityGrossMinorityInterest", "Total Equity Gross Minority Interest"},
	{"MinorityInterest", "Minority Interest"},
	{"WorkingCapital", "Working Capital"},
	{"LongTermEquityInvestment", "Long Term Equity Investment"},
	{"CashAndCashEquivalents", "Cash And Cash Equivalents"},
	{"Inventory", "Inventory"},
	{"AccountsReceivable", "Accounts Receivable"},
	{"AccountsPayable", "Accounts Payable"},
	{"TotalDebt", "Total Debt"},
	{"LongTermDebt", "Long Term Debt"},
	{"NetDebt", "Net Debt"},
	{"RetainedEarnings", "Retained Earnings"},
	{"NetPPE", "Net PPE"},
	{"Goodwill", "Goodwill"},
	{"ShareIssued", "Share Issued"},
}

var cashFlowFields = []field{
	{"CashDividendsPaid", "Cash Dividends Paid"},
	{"CommonStockDividendPaid", "Common Stock Dividend Paid"},
	{"NetIncome", "Net Income"},
	{"NetIncomeFromContinuingOperations", "Net Income From Continuing Operations"},
	{"OperatingCashFlow", "Operating Cash Flow"},
	{"InvestingCashFlow", "Investing Cash Flow"},
	{"FinancingCashFlow", "Financing Cash Flow"},
	{"FreeCashFlow", "Free Cash Flow"},
	{"CapitalExpenditure", "Capital Expenditure"},
	{"DepreciationAndAmortization", "Depreciation And Amortization"},
	{"EndCashPosition", "End Cash Position"},
}

var incomeStatementFields = []field{
	{"TotalRevenue", "Total Revenue"},
	{"CostOfRevenue", "Cost Of Revenue"},
	{"GrossProfit", "Gross Profit"},
	{"OperatingExpense", "Operating Expense"},
	{"OperatingIncome", "Operating Income"},
	{"EBIT", "EBIT"},
	{"EBITDA", "EBITDA"},
	{"InterestExpense", "Interest Expense"},
	{"PretaxIncome", "Pretax Income"},
	{"TaxProvision", "Tax Provision"},
	{"NetIncome", "Net Income"},
	{"BasicEPS", "Basic EPS"},
	{"DilutedEPS", "Diluted EPS"},
}

// fieldsFor returns the time series requested for a statement kind.
func fieldsFor(kind statement.Kind) []field {
	switch kind {
	case statement.BalanceSheet:
		return balanceSheetFields
	case statement.CashFlow:
		return cashFlowFields
	case statement.IncomeStatement:
		return incomeStatementFields
	}
	return nil
}
