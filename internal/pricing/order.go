package pricing

import "math"

// SetupMode selects how the machine setup fee is charged.
type SetupMode string

const (
	// SetupPerOrder charges the fee once for the whole order.
	SetupPerOrder SetupMode = "ORDER"
	// SetupPerItem charges the fee once for every item line.
	SetupPerItem SetupMode = "ITEM"
)

// Order is everything needed to price a whole order.
type Order struct {
	Config    Configuration `json:"config"`
	Items     []Item        `json:"items"`
	SetupMode SetupMode     `json:"setupMode"`
}

// ItemLine pairs an item with its computed quote.
type ItemLine struct {
	ID    string    `json:"id"`
	Item  Item      `json:"item"`
	Quote ItemQuote `json:"quote"`
}

// Sums are the order-level aggregates.
type Sums struct {
	SumMat         float64 `json:"sumMat"`
	SumPrint       float64 `json:"sumPrint"`
	SumDesign      float64 `json:"sumDesign"`
	SumPostProcess float64 `json:"sumPostProcess"`
	SumDiscount    float64 `json:"sumDiscount"`
	SumMargin      float64 `json:"sumMargin"`
	SetupApplied   float64 `json:"setupApplied"`
	Total          float64 `json:"total"`
}

// OrderQuote is the priced order: one line per item, in input order, and
// the aggregated sums.
type OrderQuote struct {
	Lines []ItemLine `json:"itemQuotes"`
	Sums  Sums       `json:"sums"`
}

// QuoteOrder prices every item of order and aggregates the result.
func QuoteOrder(order Order) OrderQuote {
	lines := make([]ItemLine, 0, len(order.Items))
	for _, it := range order.Items {
		lines = append(lines, ItemLine{ID: it.ID, Item: it, Quote: QuoteItem(it, order.Config)})
	}

	var sums Sums
	itemsTotal := 0.0
	for _, l := range lines {
		sums.SumMat += l.Quote.MaterialCost
		sums.SumPrint += l.Quote.PrintCost
		sums.SumDesign += l.Quote.DesignCost
		sums.SumPostProcess += l.Quote.PostProcessCost
		sums.SumDiscount += l.Quote.SeriesDiscount
		sums.SumMargin += l.Quote.ItemMargin
		itemsTotal += l.Quote.ItemTotal
	}

	sums.SetupApplied = SetupFee(order.Config, order.SetupMode, len(order.Items))
	sums.Total = itemsTotal + sums.SetupApplied

	return OrderQuote{Lines: lines, Sums: sums}
}

// SetupFee returns the setup charge for an order of itemCount lines. Empty
// orders pay nothing; any mode other than SetupPerItem charges once.
func SetupFee(cfg Configuration, mode SetupMode, itemCount int) float64 {
	if itemCount == 0 {
		return 0
	}
	fee := math.Max(0, cfg.MachineSetupFee.Number(0))
	if mode == SetupPerItem {
		return fee * float64(itemCount)
	}
	return fee
}
