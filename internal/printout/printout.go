// Package printout renders a priced order as a plain-text document that can
// be printed or pasted into an e-mail.
package printout

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/Simplici0/preventivatore3d/internal/pricing"
)

// Options toggles the optional parts of the document.
type Options struct {
	ShowGrams     bool `json:"showGrams"`
	ShowHours     bool `json:"showHours"`
	ShowSetup     bool `json:"showSetup"`
	ShowDiscount  bool `json:"showDiscount"`
	ShowMargin    bool `json:"showMargin"`
	ShowBaseCosts bool `json:"showBaseCosts"`
}

// DefaultOptions shows everything.
func DefaultOptions() Options {
	return Options{
		ShowGrams:     true,
		ShowHours:     true,
		ShowSetup:     true,
		ShowDiscount:  true,
		ShowMargin:    true,
		ShowBaseCosts: true,
	}
}

// Header is the document heading.
type Header struct {
	QuoteID   string
	Client    string
	Date      string
	SetupMode pricing.SetupMode
}

const defaultItemName = "Articolo"

// Write renders the priced order to w.
func Write(w io.Writer, h Header, cfg pricing.Configuration, o pricing.OrderQuote, opts Options) error {
	client := strings.TrimSpace(h.Client)
	if client == "" {
		client = "-"
	}
	setup := "per commessa"
	if h.SetupMode == pricing.SetupPerItem {
		setup = "per articolo"
	}

	var buf bytes.Buffer
	if h.QuoteID != "" {
		fmt.Fprintf(&buf, "Preventivo %s\n", h.QuoteID)
	}
	fmt.Fprintf(&buf, "Cliente: %s | Data: %s | Setup: %s | Articoli: %d\n\n", client, h.Date, setup, len(o.Lines))

	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)
	head := []string{"Articolo", "Gruppo", "Q.tà"}
	if opts.ShowGrams {
		head = append(head, "g/pezzo")
	}
	if opts.ShowHours {
		head = append(head, "Stampa (h/pezzo)", "Design (h tot)")
	}
	head = append(head, "Prezzo unit.", "Totale riga")
	fmt.Fprintln(tw, strings.Join(head, "\t")+"\t")

	for _, l := range o.Lines {
		name := strings.TrimSpace(l.Item.Name)
		if name == "" {
			name = defaultItemName
		}
		row := []string{name, l.Quote.GroupKey, fmt.Sprint(l.Quote.Qty)}
		if opts.ShowGrams {
			row = append(row, decimal(l.Quote.Grams))
		}
		if opts.ShowHours {
			row = append(row, decimal(l.Quote.PrintHours), decimal(l.Quote.DesignHours))
		}
		row = append(row, pricing.FormatEUR(l.Quote.UnitPrice), pricing.FormatEUR(l.Quote.ItemTotal))
		fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush item table: %w", err)
	}
	buf.WriteString("\n")

	s := o.Sums
	fmt.Fprintf(&buf, "Materiale: %s\n", pricing.FormatEUR(s.SumMat))
	fmt.Fprintf(&buf, "Stampa: %s\n", pricing.FormatEUR(s.SumPrint))
	fmt.Fprintf(&buf, "Design: %s\n", pricing.FormatEUR(s.SumDesign))
	fmt.Fprintf(&buf, "Post-produzione: %s\n", pricing.FormatEUR(s.SumPostProcess))
	if opts.ShowDiscount {
		fmt.Fprintf(&buf, "Sconto serie: - %s\n", pricing.FormatEUR(s.SumDiscount))
	}
	if opts.ShowSetup {
		fmt.Fprintf(&buf, "Setup: %s\n", pricing.FormatEUR(s.SetupApplied))
	}
	if opts.ShowMargin {
		fmt.Fprintf(&buf, "Margine: %s\n", pricing.FormatEUR(s.SumMargin))
	}
	fmt.Fprintf(&buf, "Totale: %s\n", pricing.FormatEUR(s.Total))

	if opts.ShowBaseCosts {
		fmt.Fprintf(&buf, "\nCosti base: materiale %s €/g, macchina %s €/h, design %s €/h, post-produzione %s €/h, setup %s €, sconto serie %d%% (soglia %s).\n",
			comma(cfg.MaterialEurPerGram),
			comma(cfg.MachineEurPerHour),
			comma(cfg.DesignEurPerHour),
			comma(cfg.PostProcessEurPerHour),
			comma(cfg.MachineSetupFee),
			int(math.Round(cfg.SeriesDiscountPct.Number(0)*100)),
			comma(cfg.SeriesThresholdQty),
		)
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// Render is Write into a string.
func Render(h Header, cfg pricing.Configuration, o pricing.OrderQuote, opts Options) string {
	var sb strings.Builder
	_ = Write(&sb, h, cfg, o, opts)
	return sb.String()
}

func decimal(n float64) string {
	return comma(pricing.Float(pricing.Round2(n)))
}

func comma(r pricing.Raw) string {
	if r == "" {
		return "-"
	}
	return strings.Replace(string(r), ".", ",", 1)
}
