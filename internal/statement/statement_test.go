package statement

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestBuilderZeroFillsAndTracksReported(t *testing.T) {
	tbl, err := NewBuilder("2022-12-31", "2023-12-31").
		Set(TotalAssets, "2023-12-31", 1000).
		AddRow(EBIT).
		Build()
	require.NoError(t, err)

	c, err := tbl.Cell(TotalAssets, "2022-12-31")
	require.NoError(t, err)
	assert.Equal(t, Cell{}, c)

	c, err = tbl.Cell(TotalAssets, "2023-12-31")
	require.NoError(t, err)
	assert.Equal(t, Cell{Amount: 1000, Reported: true}, c)

	v, err := tbl.Value(EBIT, "2023-12-31")
	require.NoError(t, err)
	assert.Zero(t, v)
	assert.Equal(t, []LineItem{TotalAssets, EBIT}, tbl.Items())
}

func TestTableMissingRow(t *testing.T) {
	tbl, err := NewBuilder("2022-12-31").Set(TotalAssets, "2022-12-31", 1).Build()
	require.NoError(t, err)

	_, err = tbl.Value(NetIncome, "2022-12-31")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingRow))

	var mre *MissingRowError
	require.True(t, errors.As(err, &mre))
	assert.Equal(t, NetIncome, mre.Item)
	assert.Equal(t, "2022-12-31", mre.Year)
	assert.Contains(t, err.Error(), "Lucro Líquido")
	assert.Contains(t, err.Error(), "2022-12-31")

	assert.Equal(t, []LineItem{NetIncome}, tbl.Missing(TotalAssets, NetIncome))
}

func TestBuilderDropSingleYear(t *testing.T) {
	tbl, err := NewBuilder("2022-12-31", "2023-12-31").
		SetRow(TotalAssets, 950, 1000).
		Drop(TotalAssets, "2022-12-31").
		Build()
	require.NoError(t, err)

	assert.True(t, tbl.Has(TotalAssets))
	assert.False(t, tbl.Present(TotalAssets, "2022-12-31"))
	assert.True(t, tbl.Present(TotalAssets, "2023-12-31"))

	_, err = tbl.Value(TotalAssets, "2022-12-31")
	assert.ErrorIs(t, err, ErrMissingRow)

	v, err := tbl.Value(TotalAssets, "2023-12-31")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, v)
}

func TestTableUnknownYear(t *testing.T) {
	tbl, err := NewBuilder("2022-12-31").Set(TotalAssets, "2022-12-31", 1).Build()
	require.NoError(t, err)

	_, err = tbl.Value(TotalAssets, "1999-12-31")
	assert.ErrorIs(t, err, ErrUnknownYear)
}

func TestBuilderErrors(t *testing.T) {
	_, err := NewBuilder("2022-12-31").Set(EBIT, "2021-12-31", 5).Build()
	assert.ErrorIs(t, err, ErrUnknownYear)

	_, err = NewBuilder("2022-12-31", "2023-12-31").SetRow(EBIT, 1).Build()
	assert.Error(t, err)

	_, err = NewBuilder().Build()
	assert.Error(t, err)
}

func TestTableIsIsolatedFromBuilder(t *testing.T) {
	b := NewBuilder("2023-12-31").Set(EBIT, "2023-12-31", 10)
	tbl, err := b.Build()
	require.NoError(t, err)

	b.Set(EBIT, "2023-12-31", 99)
	v, err := tbl.Value(EBIT, "2023-12-31")
	require.NoError(t, err)
	assert.Equal(t, 10.0, v)

	years := tbl.Years()
	years[0] = "mutated"
	assert.Equal(t, []string{"2023-12-31"}, tbl.Years())
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		kind  Kind
		label string
		want  LineItem
	}{
		{BalanceSheet, "Current Assets", CurrentAssets},
		{BalanceSheet, " Working Capital ", WorkingCapital},
		{BalanceSheet, "Total Liabilities Net Minority Interest", TotalLiabilities},
		{CashFlow, "Cash Dividends Paid", CashDividendsPaid},
		{CashFlow, "Common Stock Dividend Paid", CommonStockDividendPaid},
		{IncomeStatement, "Net Income", NetIncome},
		{IncomeStatement, "EBIT", EBIT},
		{IncomeStatement, "Current Assets", "Current Assets"},
		{BalanceSheet, "Something Else", "Something Else"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind)+"/"+tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, Translate(tt.kind, tt.label))
		})
	}
}

func TestTranslateNormalizesAccents(t *testing.T) {
	// "Dívida Corrente" spelled with a combining acute accent.
	decomposed := "Di\u0301vida Corrente"
	assert.Equal(t, CurrentDebt, TranslateAny(decomposed))
}

func sampleRaws() []Raw {
	periods := []string{"2020-12-31", "2021-12-31", "2022-12-31", "2023-12-31"}
	return []Raw{
		{
			Kind:    BalanceSheet,
			Periods: periods,
			Rows: []RawRow{
				{Label: "Total Assets", Values: map[string]*float64{
					"2021-12-31": f(900), "2022-12-31": f(950), "2023-12-31": f(1000),
				}},
				{Label: "Working Capital", Values: map[string]*float64{
					"2023-12-31": f(50),
				}},
			},
		},
		{
			Kind:    CashFlow,
			Periods: periods,
			Rows: []RawRow{
				{Label: "Cash Dividends Paid", Values: map[string]*float64{"2023-12-31": f(-10)}},
				{Label: "Net Income", Values: map[string]*float64{"2023-12-31": f(61)}},
			},
		},
		{
			Kind:    IncomeStatement,
			Periods: periods,
			Rows: []RawRow{
				{Label: "Net Income", Values: map[string]*float64{"2022-12-31": f(55), "2023-12-31": f(60)}},
			},
		},
	}
}

func TestAssembleDefaultYears(t *testing.T) {
	tbl, err := Assemble(AssembleOptions{Years: DefaultYears}, sampleRaws()...)
	require.NoError(t, err)

	assert.Equal(t, DefaultYears, tbl.Years())

	wc, err := tbl.Cell(WorkingCapital, "2021-12-31")
	require.NoError(t, err)
	assert.False(t, wc.Reported)
	assert.Zero(t, wc.Amount)

	div, err := tbl.Value(CashDividendsPaid, "2023-12-31")
	require.NoError(t, err)
	assert.Equal(t, -10.0, div)
}

func TestAssembleFirstReportedValueWins(t *testing.T) {
	tbl, err := Assemble(AssembleOptions{Years: DefaultYears}, sampleRaws()...)
	require.NoError(t, err)

	// Cash flow comes first and reports 2023; the income statement fills 2022.
	ni, err := tbl.Value(NetIncome, "2023-12-31")
	require.NoError(t, err)
	assert.Equal(t, 61.0, ni)

	ni, err = tbl.Value(NetIncome, "2022-12-31")
	require.NoError(t, err)
	assert.Equal(t, 55.0, ni)
}

func TestAssembleLatestYears(t *testing.T) {
	raws := sampleRaws()
	raws[2].Periods = []string{"2022-12-31", "2023-12-31"}

	tbl, err := Assemble(AssembleOptions{Latest: 3}, raws...)
	require.NoError(t, err)
	assert.Equal(t, []string{"2022-12-31", "2023-12-31"}, tbl.Years())
}

func TestAssembleYearNotAvailable(t *testing.T) {
	_, err := Assemble(AssembleOptions{Years: []string{"2019-12-31"}}, sampleRaws()...)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrYearNotAvailable)
	assert.Contains(t, err.Error(), "2019-12-31")
}

func TestAssembleNoStatements(t *testing.T) {
	_, err := Assemble(AssembleOptions{})
	assert.Error(t, err)
}

func TestSelectYears(t *testing.T) {
	tbl, err := NewBuilder("2021-12-31", "2022-12-31", "2023-12-31").
		SetRow(TotalAssets, 900, 950, 1000).
		AddRow(EBIT).
		Drop(NetIncome, "2022-12-31").
		Set(NetIncome, "2023-12-31", 61).
		Build()
	require.NoError(t, err)

	sel, err := Select(tbl, AssembleOptions{Years: []string{"2023-12-31", "2022-12-31"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"2023-12-31", "2022-12-31"}, sel.Years())
	assert.Equal(t, tbl.Items(), sel.Items())

	v, err := sel.Value(TotalAssets, "2022-12-31")
	require.NoError(t, err)
	assert.Equal(t, 950.0, v)

	c, err := sel.Cell(EBIT, "2023-12-31")
	require.NoError(t, err)
	assert.False(t, c.Reported)

	assert.False(t, sel.Present(NetIncome, "2022-12-31"))
	_, err = sel.Value(TotalAssets, "2021-12-31")
	assert.ErrorIs(t, err, ErrUnknownYear)
}

func TestSelectLatest(t *testing.T) {
	tbl, err := NewBuilder("2021-12-31", "2022-12-31", "2023-12-31").
		SetRow(TotalAssets, 900, 950, 1000).
		Build()
	require.NoError(t, err)

	sel, err := Select(tbl, AssembleOptions{Latest: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"2022-12-31", "2023-12-31"}, sel.Years())

	sel, err = Select(tbl, AssembleOptions{})
	require.NoError(t, err)
	assert.Equal(t, tbl.Years(), sel.Years())
}

func TestSelectYearNotAvailable(t *testing.T) {
	tbl, err := NewBuilder("2022-12-31", "2023-12-31").
		SetRow(TotalAssets, 950, 1000).
		Build()
	require.NoError(t, err)

	_, err = Select(tbl, AssembleOptions{Years: []string{"1999-12-31"}})
	assert.ErrorIs(t, err, ErrYearNotAvailable)
	assert.Contains(t, err.Error(), "1999-12-31")
}

func TestReadCSV(t *testing.T) {
	in := strings.Join([]string{
		"Item,2022-12-31,2023-12-31",
		"Total Assets,950,1000",
		"Lucro Líquido,55,",
		"EBIT,NaN,80.5",
	}, "\n")

	tbl, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"2022-12-31", "2023-12-31"}, tbl.Years())

	v, err := tbl.Value(TotalAssets, "2023-12-31")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, v)

	c, err := tbl.Cell(NetIncome, "2023-12-31")
	require.NoError(t, err)
	assert.False(t, c.Reported)

	v, err = tbl.Value(EBIT, "2023-12-31")
	require.NoError(t, err)
	assert.Equal(t, 80.5, v)
}

func TestReadCSVBadNumber(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("Item,2023-12-31\nEBIT,abc\n"))
	assert.Error(t, err)
}

func TestWriteCSVRoundTrip(t *testing.T) {
	tbl, err := NewBuilder("2022-12-31", "2023-12-31").
		SetRow(TotalAssets, 950, 1000).
		SetRow(CurrentDebt, 10, 20.5).
		AddRow(EBIT).
		Build()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tbl))

	back, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, tbl.Years(), back.Years())
	v, err := back.Value(CurrentDebt, "2023-12-31")
	require.NoError(t, err)
	assert.Equal(t, 20.5, v)

	c, err := back.Cell(EBIT, "2022-12-31")
	require.NoError(t, err)
	assert.False(t, c.Reported)
}
