package report

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seenimoa/analisefin/internal/analysis/fundamental"
	"github.com/seenimoa/analisefin/internal/statement"
)

var generatedAt = time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

// fixture builds a two-year table every model can run on. In 2023 revenue is
// zero, and in 2022 the long-term investment row is missing, so Kanitz skips
// that year.
func fixture(t *testing.T, mutate func(b *statement.Builder)) *statement.Table {
	t.Helper()
	b := statement.NewBuilder("2022-12-31", "2023-12-31").
		SetRow(statement.TotalAssets, 1000, 1000).
		SetRow(statement.TotalLiabilities, 400, 400).
		SetRow(statement.StockholdersEquity, 600, 600).
		SetRow(statement.NetIncome, 60, 60).
		SetRow(statement.WorkingCapital, 50, 50).
		SetRow(statement.CurrentAssets, 300, 300).
		SetRow(statement.CurrentDebt, 320, 320).
		SetRow(statement.CurrentLiabilities, 300, 300).
		SetRow(statement.NonCurrentAssets, 700, 700).
		SetRow(statement.NonCurrentLiabilities, 100, 100).
		SetRow(statement.LongTermEquityInvestment, 10, 10).
		SetRow(statement.TotalRevenue, 500, 0).
		SetRow(statement.EBIT, 90, 90).
		SetRow(statement.CashDividendsPaid, -20, -20).
		Drop(statement.LongTermEquityInvestment, "2022-12-31")
	if mutate != nil {
		mutate(b)
	}
	tbl, err := b.Build()
	require.NoError(t, err)
	return tbl
}

func run(t *testing.T, tbl *statement.Table, models ...fundamental.Model) *fundamental.Report {
	t.Helper()
	return fundamental.New(zerolog.Nop()).RunAll(tbl, models...)
}

func render(t *testing.T, rep *fundamental.Report, opts Options) string {
	t.Helper()
	if opts.GeneratedAt.IsZero() {
		opts.GeneratedAt = generatedAt
	}
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, rep, opts))
	return buf.String()
}

func sectionByModel(t *testing.T, doc *Document, m fundamental.Model) Section {
	t.Helper()
	for _, s := range doc.Sections {
		if s.Model == m {
			return s
		}
	}
	t.Fatalf("no section for %s", m)
	return Section{}
}

// ── Build ──

func TestBuildPortuguese(t *testing.T) {
	rep := run(t, fixture(t, nil))
	doc := Build(rep, Options{Locale: "pt-BR", Ticker: "PETR4.SA", GeneratedAt: generatedAt})

	assert.Equal(t, "Análise financeira", doc.Title)
	assert.Equal(t, "2024-03-01 10:30", doc.GeneratedAt)
	require.Len(t, doc.Sections, 4)

	fl := sectionByModel(t, doc, fundamental.ModelFleuriet)
	assert.Equal(t, "Modelo Fleuriet", fl.Title)
	assert.Equal(t, []string{"Ano", "CDG", "NCG", "T", "Regra", "Classificação"}, fl.Header)
	assert.Equal(t, []string{"2022-12-31", "50,00", "-20,00", "70,00", "1", "Excelente"}, fl.Rows[0])

	dp := sectionByModel(t, doc, fundamental.ModelDuPont)
	assert.Equal(t, "0,1000", dp.Rows[0][1], "ROE")
	assert.Equal(t, notAvailable, dp.Rows[1][3], "net margin with zero revenue")

	kz := sectionByModel(t, doc, fundamental.ModelKanitz)
	require.Len(t, kz.Rows, 1)
	assert.Equal(t, "2023-12-31", kz.Rows[0][0])
	require.Len(t, kz.Notes, 1)
	assert.Equal(t, "Investimento em Ações de Longo Prazo não encontrado no ano 2022-12-31, ano ignorado", kz.Notes[0])
}

func TestBuildEnglish(t *testing.T) {
	rep := run(t, fixture(t, nil), fundamental.ModelFleuriet, fundamental.ModelDuPont)
	doc := Build(rep, Options{Locale: "en-US"})

	assert.Equal(t, "Financial analysis", doc.Title)
	assert.Equal(t, "en", doc.lang)
	require.Len(t, doc.Sections, 2)
	assert.Equal(t, "Fleuriet model", doc.Sections[0].Title)
	assert.Equal(t, "Excellent", doc.Sections[0].Rows[0][5])
	assert.Equal(t, "0.1000", doc.Sections[1].Rows[0][1])
}

func TestBuildKeepsRequestedOrder(t *testing.T) {
	rep := run(t, fixture(t, nil), fundamental.ModelKanitz, fundamental.ModelZScore)
	doc := Build(rep, Options{})
	require.Len(t, doc.Sections, 2)
	assert.Equal(t, fundamental.ModelKanitz, doc.Sections[0].Model)
	assert.Equal(t, fundamental.ModelZScore, doc.Sections[1].Model)
}

func TestBuildErrorAndMissingNotes(t *testing.T) {
	tbl := fixture(t, func(b *statement.Builder) {
		b.Drop(statement.CashDividendsPaid, "2022-12-31").Drop(statement.CashDividendsPaid, "2023-12-31")
	})
	rep := run(t, tbl)
	missing := map[fundamental.Model][]statement.LineItem{
		fundamental.ModelZScore: statement.DividendAliases,
	}
	doc := Build(rep, Options{Locale: "pt-BR", Missing: missing})

	z := sectionByModel(t, doc, fundamental.ModelZScore)
	assert.Contains(t, z.Err, "2022-12-31")
	assert.Empty(t, z.Rows)
	require.NotEmpty(t, z.Notes)
	assert.Equal(t, "contas ausentes: Dividendos em Dinheiro Pagos, Dividendos de Ações Ordinárias Pagos", z.Notes[0])

	// The other models still render.
	fl := sectionByModel(t, doc, fundamental.ModelFleuriet)
	assert.Empty(t, fl.Err)
	assert.Len(t, fl.Rows, 2)
}

func TestParseLocale(t *testing.T) {
	assert.Equal(t, "pt-BR", parseLocale("").String())
	assert.Equal(t, "pt-BR", parseLocale("pt").String())
	assert.Equal(t, "en", parseLocale("en-GB").String())
	assert.Equal(t, "pt-BR", parseLocale("not a tag!").String())
}

func TestLabel(t *testing.T) {
	pt, en := newPrinter("pt-BR"), newPrinter("en")
	assert.Equal(t, "Excelente", label(pt, "Excellent"))
	assert.Equal(t, "solvente", label(pt, "solvent"))
	assert.Equal(t, "Excellent", label(en, "Excellent"))
	assert.Equal(t, "50% off", label(en, "50% off"))
	assert.Equal(t, "%d of %s", label(pt, "%d of %s"))
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"text": FormatText, "MD": FormatMarkdown, " html ": FormatHTML,
		"csv": FormatCSV, "json": FormatJSON, "": FormatText,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("pdf")
	assert.Error(t, err)
}

// ── Renderers ──

func TestRenderText(t *testing.T) {
	tbl := fixture(t, func(b *statement.Builder) { b.Drop(statement.EBIT, "2023-12-31") })
	out := render(t, run(t, tbl), Options{Format: FormatText, Locale: "pt-BR", Ticker: "VALE3.SA"})

	assert.Contains(t, out, "Análise financeira: VALE3.SA")
	assert.Contains(t, out, "Gerado em: 2024-03-01 10:30")
	assert.Contains(t, out, "Anos fiscais: 2022-12-31, 2023-12-31")
	assert.Contains(t, out, "■ Modelo Fleuriet")
	assert.Contains(t, out, "Excelente")
	assert.Contains(t, out, `Erro: zscore: "EBIT" not found for year 2023-12-31`)
	assert.Contains(t, out, "Observações:")
}

func TestRenderMarkdown(t *testing.T) {
	out := render(t, run(t, fixture(t, nil), fundamental.ModelFleuriet), Options{Format: FormatMarkdown, Locale: "pt-BR"})

	assert.True(t, strings.HasPrefix(out, "# Análise financeira\n"))
	assert.Contains(t, out, "## Modelo Fleuriet")
	assert.Contains(t, out, "| Ano | CDG | NCG | T | Regra | Classificação |")
	assert.Contains(t, out, "| --- | ---: | ---: | ---: | ---: | ---: |")
	assert.Contains(t, out, "| 2023-12-31 | 50,00 | -20,00 | 70,00 | 1 | Excelente |")
}

func TestRenderHTML(t *testing.T) {
	out := render(t, run(t, fixture(t, nil)), Options{Format: FormatHTML, Locale: "pt-BR", Ticker: "PETR4.SA"})

	assert.Contains(t, out, `<html lang="pt-BR">`)
	assert.Contains(t, out, "<title>Análise financeira: PETR4.SA</title>")
	assert.Contains(t, out, "<h2>Modelo Fleuriet</h2>")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, ">Excelente</td>")
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "Pontuações por ano")
	assert.Contains(t, out, ">2023</text>")
	assert.NotContains(t, out, ">2023-12-31</text>")
}

func TestRenderHTMLWithoutScores(t *testing.T) {
	out := render(t, run(t, fixture(t, nil), fundamental.ModelDuPont), Options{Format: FormatHTML})
	assert.NotContains(t, out, "<svg")
}

func TestRenderCSV(t *testing.T) {
	tbl := fixture(t, func(b *statement.Builder) { b.Drop(statement.TotalAssets, "2023-12-31") })
	out := render(t, run(t, tbl, fundamental.ModelDuPont, fundamental.ModelKanitz), Options{Format: FormatCSV})

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "model,year,metric,value", lines[0])
	assert.Contains(t, lines, "dupont,,error,\"dupont: \"\"Ativo Total\"\" not found for year 2023-12-31\"")
	assert.Contains(t, lines, "kanitz,2022-12-31,skipped,Investimento em Ações de Longo Prazo")
	assert.Contains(t, lines, "kanitz,2023-12-31,skipped,Ativo Total")
}

func TestRenderCSVValues(t *testing.T) {
	out := render(t, run(t, fixture(t, nil), fundamental.ModelDuPont, fundamental.ModelFleuriet), Options{Format: FormatCSV})
	lines := strings.Split(strings.TrimSpace(out), "\n")

	assert.Contains(t, lines, "dupont,2022-12-31,roe,0.1")
	assert.Contains(t, lines, "dupont,2023-12-31,net_margin,")
	assert.Contains(t, lines, "fleuriet,2022-12-31,classification,Excellent")
}

func TestRenderJSON(t *testing.T) {
	tbl := fixture(t, func(b *statement.Builder) {
		b.Drop(statement.CashDividendsPaid, "2022-12-31").Drop(statement.CashDividendsPaid, "2023-12-31")
	})
	out := render(t, run(t, tbl), Options{Format: FormatJSON, Ticker: "PETR4.SA"})

	var got struct {
		Ticker   string            `json:"ticker"`
		Years    []string          `json:"years"`
		Errors   map[string]string `json:"errors"`
		Fleuriet struct {
			Rows []struct {
				Classification string `json:"classification"`
			} `json:"rows"`
		} `json:"fleuriet"`
		DuPont struct {
			Rows []struct {
				NetMargin *float64 `json:"net_margin"`
			} `json:"rows"`
		} `json:"dupont"`
		ZScore json.RawMessage `json:"zscore"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, "PETR4.SA", got.Ticker)
	assert.Equal(t, []string{"2022-12-31", "2023-12-31"}, got.Years)
	assert.Contains(t, got.Errors["zscore"], "no dividends row found")
	assert.Nil(t, got.ZScore)
	assert.Equal(t, "Excellent", got.Fleuriet.Rows[0].Classification)
	require.Len(t, got.DuPont.Rows, 2)
	assert.Nil(t, got.DuPont.Rows[1].NetMargin)
}

func TestRenderNilReport(t *testing.T) {
	assert.Error(t, Render(&bytes.Buffer{}, nil, Options{}))
}

func TestRenderUnknownFormat(t *testing.T) {
	err := Render(&bytes.Buffer{}, run(t, fixture(t, nil)), Options{Format: "xlsx"})
	assert.Error(t, err)
}

// ── Statement view ──

func TestRenderStatementText(t *testing.T) {
	tbl, err := statement.NewBuilder("2023-12-31").
		Set(statement.TotalAssets, "2023-12-31", 972.95e9).
		AddRow(statement.EBIT).
		Build()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderStatement(&buf, tbl, Options{Locale: "pt-BR", GeneratedAt: generatedAt}))
	out := buf.String()

	assert.Contains(t, out, "Demonstrativo financeiro")
	assert.Contains(t, out, "Ativo Total")
	assert.Contains(t, out, "972,95 bi")
	assert.Contains(t, out, notAvailable)
}

func TestRenderStatementCSVRoundTrip(t *testing.T) {
	tbl, err := statement.NewBuilder("2022-12-31", "2023-12-31").
		SetRow(statement.TotalAssets, 950, 1000).
		Build()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderStatement(&buf, tbl, Options{Format: FormatCSV}))
	back, err := statement.ReadCSV(&buf)
	require.NoError(t, err)
	v, err := back.Value(statement.TotalAssets, "2022-12-31")
	require.NoError(t, err)
	assert.Equal(t, 950.0, v)
}

func TestRenderStatementJSON(t *testing.T) {
	tbl, err := statement.NewBuilder("2023-12-31").
		Set(statement.NetIncome, "2023-12-31", 61).
		Build()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderStatement(&buf, tbl, Options{Format: FormatJSON}))
	assert.Contains(t, buf.String(), `"item": "Lucro Líquido"`)
	assert.Contains(t, buf.String(), `"amount": 61`)
}

// ── Chart ──

func TestLineChart(t *testing.T) {
	svg := LineChart([]LineChartSeries{
		{Name: "Z-Score", Values: []float64{1.5, math.NaN(), 3.2}},
	}, []string{"2021", "2022", "2023"}, []Threshold{{Value: 1.81, Label: "1.81"}}, ChartConfig{})

	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	assert.Equal(t, 2, strings.Count(svg, "<circle"))
	assert.Contains(t, svg, ">2022<")
	assert.Contains(t, svg, ">1.81<")
	assert.NotContains(t, svg, "NaN")
}

func TestLineChartSinglePoint(t *testing.T) {
	svg := LineChart([]LineChartSeries{{Name: "Kanitz", Values: []float64{2}}}, []string{"2023"}, nil, ChartConfig{})
	assert.Equal(t, 1, strings.Count(svg, "<circle"))
	assert.NotContains(t, svg, "NaN")
	assert.NotContains(t, svg, "Inf")
}

func TestLineChartEmpty(t *testing.T) {
	assert.Contains(t, LineChart(nil, nil, nil, ChartConfig{}), "No data")
	assert.Contains(t, LineChart([]LineChartSeries{{Name: "x", Values: []float64{math.NaN()}}}, nil, nil, ChartConfig{}), "No data points")
}

func TestEscapeXML(t *testing.T) {
	assert.Equal(t, "a &lt;b&gt; &amp; &quot;c&quot;", escapeXML(`a <b> & "c"`))
}
