package printout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Simplici0/preventivatore3d/internal/pricing"
)

func sampleOrder() (pricing.Configuration, pricing.OrderQuote) {
	cfg := pricing.DefaultConfiguration()
	noDesign := false
	order := pricing.Order{
		Config:    cfg,
		SetupMode: pricing.SetupPerItem,
		Items: []pricing.Item{
			{
				ID:                 "1",
				Name:               "Supporto cuffie",
				Qty:                pricing.Int(10),
				GramsPerPiece:      pricing.Int(50),
				PrintHoursPerPiece: "2:00",
				Group:              "B",
				HasDesign:          &noDesign,
				IsSeries:           true,
			},
			{ID: "2", Qty: pricing.Int(1), GramsPerPiece: "12,5", PrintHoursPerPiece: "0.45"},
		},
	}
	return cfg, pricing.QuoteOrder(order)
}

func TestRenderIncludesLinesAndTotals(t *testing.T) {
	cfg, o := sampleOrder()

	out := Render(Header{QuoteID: "Q-20240201-140000", Client: "Rossi", Date: "01/02/2024 14:00", SetupMode: pricing.SetupPerItem}, cfg, o, DefaultOptions())

	for _, expected := range []string{
		"Preventivo Q-20240201-140000",
		"Cliente: Rossi",
		"Setup: per articolo",
		"Articoli: 2",
		"Supporto cuffie",
		"Articolo",
		"111,56 €",
		"11,16 €",
		"Sconto serie: - 29,75 €",
		"Setup: 20,00 €",
		"Costi base: materiale 0,15 €/g",
		"sconto serie 25% (soglia 10)",
	} {
		require.Contains(t, out, expected)
	}
	require.Contains(t, out, "Totale: "+pricing.FormatEUR(o.Sums.Total))
}

func TestRenderHonoursOptions(t *testing.T) {
	cfg, o := sampleOrder()
	opts := Options{}

	out := Render(Header{Date: "01/02/2024 14:00"}, cfg, o, opts)

	require.Contains(t, out, "Cliente: - ")
	require.Contains(t, out, "Setup: per commessa")
	for _, hidden := range []string{"g/pezzo", "Stampa (h/pezzo)", "Sconto serie", "Margine", "Costi base", "Setup: 20"} {
		require.False(t, strings.Contains(out, hidden), "unexpected %q in output", hidden)
	}
	require.Contains(t, out, "Totale:")
}
