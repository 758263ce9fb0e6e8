package pricing

import "testing"

func sampleItems(n int) []Item {
	items := make([]Item, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, Item{
			ID:                 string(rune('a' + i)),
			Qty:                Int(i + 1),
			GramsPerPiece:      Int(10 * (i + 1)),
			PrintHoursPerPiece: "0:30",
			Group:              []string{"A", "B", "C"}[i%3],
			DesignHours:        "1",
			PostProcessHours:   "0.15",
		})
	}
	return items
}

func TestQuoteOrder_EmptyOrder(t *testing.T) {
	for _, mode := range []SetupMode{SetupPerOrder, SetupPerItem, ""} {
		o := QuoteOrder(Order{Config: DefaultConfiguration(), SetupMode: mode})
		if o.Sums.Total != 0 || o.Sums.SetupApplied != 0 {
			t.Fatalf("mode %q: expected zero totals, got %+v", mode, o.Sums)
		}
		if len(o.Lines) != 0 {
			t.Fatalf("expected no lines, got %d", len(o.Lines))
		}
	}
}

func TestQuoteOrder_SetupModes(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.MachineSetupFee = Int(10)
	items := sampleItems(3)

	perItem := QuoteOrder(Order{Config: cfg, Items: items, SetupMode: SetupPerItem})
	perOrder := QuoteOrder(Order{Config: cfg, Items: items, SetupMode: SetupPerOrder})
	unknown := QuoteOrder(Order{Config: cfg, Items: items, SetupMode: "BATCH"})

	nearlyEqual(t, "per item setup", perItem.Sums.SetupApplied, 30)
	nearlyEqual(t, "per order setup", perOrder.Sums.SetupApplied, 10)
	nearlyEqual(t, "unknown mode setup", unknown.Sums.SetupApplied, 10)
	nearlyEqual(t, "total difference", perItem.Sums.Total-perOrder.Sums.Total, 20)
}

func TestQuoteOrder_SumsMatchLines(t *testing.T) {
	cfg := DefaultConfiguration()
	items := sampleItems(4)
	items[3].IsSeries = true
	items[3].Qty = Int(12)

	o := QuoteOrder(Order{Config: cfg, Items: items})

	if len(o.Lines) != len(items) {
		t.Fatalf("expected %d lines, got %d", len(items), len(o.Lines))
	}

	var mat, prnt, design, post, disc, margin, total float64
	for i, l := range o.Lines {
		if l.ID != items[i].ID {
			t.Fatalf("line %d id = %q, want %q", i, l.ID, items[i].ID)
		}
		q := QuoteItem(items[i], cfg)
		if l.Quote != q {
			t.Fatalf("line %d differs from QuoteItem", i)
		}
		mat += q.MaterialCost
		prnt += q.PrintCost
		design += q.DesignCost
		post += q.PostProcessCost
		disc += q.SeriesDiscount
		margin += q.ItemMargin
		total += q.ItemTotal
	}

	nearlyEqual(t, "sumMat", o.Sums.SumMat, mat)
	nearlyEqual(t, "sumPrint", o.Sums.SumPrint, prnt)
	nearlyEqual(t, "sumDesign", o.Sums.SumDesign, design)
	nearlyEqual(t, "sumPostProcess", o.Sums.SumPostProcess, post)
	nearlyEqual(t, "sumDiscount", o.Sums.SumDiscount, disc)
	nearlyEqual(t, "sumMargin", o.Sums.SumMargin, margin)
	nearlyEqual(t, "total", o.Sums.Total, total+10)
	if o.Sums.SumDiscount <= 0 {
		t.Fatalf("expected the series item to contribute a discount")
	}
}

func TestQuoteOrder_NegativeSetupFeeClamped(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.MachineSetupFee = "-5"
	o := QuoteOrder(Order{Config: cfg, Items: sampleItems(2), SetupMode: SetupPerItem})
	nearlyEqual(t, "setupApplied", o.Sums.SetupApplied, 0)
}
