package pricing

import (
	"math"
	"strings"
)

// GroupFactors are the multipliers of one complexity group.
type GroupFactors struct {
	PrintFactor  Raw `json:"printFactor"`
	DesignFactor Raw `json:"designFactor"`
	MarginPct    Raw `json:"marginPct"`
}

// Configuration holds the shared rates applied to every item of an order.
type Configuration struct {
	MaterialEurPerGram    Raw                     `json:"materialEurPerGram"`
	MachineEurPerHour     Raw                     `json:"machineEurPerHour"`
	DesignEurPerHour      Raw                     `json:"designEurPerHour"`
	PostProcessEurPerHour Raw                     `json:"postProcessEurPerHour"`
	MachineSetupFee       Raw                     `json:"machineSetupFee"`
	SeriesDiscountPct     Raw                     `json:"seriesDiscountPct"`
	SeriesThresholdQty    Raw                     `json:"seriesThresholdQty"`
	Groups                map[string]GroupFactors `json:"groups"`
}

// Group resolves key to its factors. Unknown keys fall back to group "B";
// when "B" is missing too the zero GroupFactors is returned and every factor
// takes its default.
func (c Configuration) Group(key string) GroupFactors {
	if g, ok := c.Groups[key]; ok {
		return g
	}
	return c.Groups[Defaults.Group]
}

// Extra is an itemized post-processing charge such as inserts or magnets.
type Extra struct {
	Name  string `json:"name"`
	Price Raw    `json:"price"`
}

// Item is one quoted line as typed by the operator.
type Item struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name,omitempty"`
	ImageURL           string  `json:"imageUrl,omitempty"`
	Group              string  `json:"group"`
	Qty                Raw     `json:"qty"`
	GramsPerPiece      Raw     `json:"gramsPerPiece"`
	PrintHoursPerPiece Raw     `json:"printHoursPerPiece"`
	HasDesign          *bool   `json:"hasDesign,omitempty"`
	DesignHours        Raw     `json:"designHours"`
	MaterialOverrideOn bool    `json:"materialOverrideOn"`
	MaterialEurPerGram Raw     `json:"materialEurPerGram"`
	PostProcessHours   Raw     `json:"postProcessHours"`
	PostProcessExtras  []Extra `json:"postProcessExtras,omitempty"`
	IsSeries           bool    `json:"isSeries"`
}

// DesignEnabled reports whether design time is billed. Unset means yes.
func (it Item) DesignEnabled() bool {
	return it.HasDesign == nil || *it.HasDesign
}

// ItemQuote is the itemized cost breakdown of one Item.
type ItemQuote struct {
	Qty         int     `json:"qty"`
	Grams       float64 `json:"grams"`
	PrintHours  float64 `json:"printHours"`
	DesignHours float64 `json:"designHours"`
	GroupKey    string  `json:"groupKey"`
	HasDesign   bool    `json:"hasDesign"`
	IsSeries    bool    `json:"isSeries"`

	MaterialRate    float64 `json:"materialRate"`
	PostProcessRate float64 `json:"postProcessRate"`

	MaterialCost          float64 `json:"materialCost"`
	PrintCostBase         float64 `json:"printCostBase"`
	PrintCost             float64 `json:"printCost"`
	DesignCostBase        float64 `json:"designCostBase"`
	DesignCost            float64 `json:"designCost"`
	PostProcessHours      float64 `json:"postProcessHours"`
	PostProcessExtrasCost float64 `json:"postProcessExtrasCost"`
	PostProcessCost       float64 `json:"postProcessCost"`

	VariableCosts   float64 `json:"variableCosts"`
	DiscountApplied bool    `json:"discountApplied"`
	SeriesDiscount  float64 `json:"seriesDiscount"`
	ItemBase        float64 `json:"itemBase"`
	MarginPct       float64 `json:"marginPct"`
	ItemMargin      float64 `json:"itemMargin"`
	ItemTotal       float64 `json:"itemTotal"`
	UnitPrice       float64 `json:"unitPrice"`
}

// Warning messages returned by ItemQuote.Warnings.
const (
	WarnZeroPrintTime  = "zero print time"
	WarnZeroDesignTime = "zero design time"
)

// Warnings lists inputs that are accepted but most likely incomplete.
func (q ItemQuote) Warnings() []string {
	var out []string
	if q.PrintHours == 0 {
		out = append(out, WarnZeroPrintTime)
	}
	if q.HasDesign && q.DesignHours == 0 {
		out = append(out, WarnZeroDesignTime)
	}
	return out
}

// maxQty caps the piece count so that it always fits an int.
const maxQty = math.MaxInt32

// QuoteItem computes the cost breakdown of item under cfg.
//
// Material and print costs form the variable base that the series discount
// applies to. Design cost carries the group design factor, post-processing
// carries no group factor, and the group margin is added on top of the
// discounted base.
func QuoteItem(item Item, cfg Configuration) ItemQuote {
	qty := math.Min(maxQty, math.Max(1, math.Floor(item.Qty.Number(Defaults.Qty))))
	grams := math.Max(0, item.GramsPerPiece.Number(0))
	printHours := math.Max(0, item.PrintHoursPerPiece.Hours(0))

	groupKey := Defaults.Group
	if item.Group != "" {
		groupKey = strings.ToUpper(item.Group)
	}
	group := cfg.Group(groupKey)

	hasDesign := item.DesignEnabled()
	designHours := 0.0
	if hasDesign {
		designHours = math.Max(0, item.DesignHours.Hours(0))
	}

	materialRate := math.Max(0, cfg.MaterialEurPerGram.Number(0))
	if item.MaterialOverrideOn {
		materialRate = math.Max(0, item.MaterialEurPerGram.Number(0))
	}
	machineRate := math.Max(0, cfg.MachineEurPerHour.Number(0))
	designRate := math.Max(0, cfg.DesignEurPerHour.Number(0))
	postProcessRate := math.Max(0, cfg.PostProcessEurPerHour.Number(Defaults.PostProcessEurPerHour))

	seriesDiscountPct := math.Max(0, cfg.SeriesDiscountPct.Number(0))
	seriesThresholdQty := math.Max(1, math.Floor(cfg.SeriesThresholdQty.Number(Defaults.SeriesThresholdQty)))

	materialCost := grams * materialRate * qty

	printCostBase := printHours * machineRate * qty
	printCost := printCostBase * math.Max(0, group.PrintFactor.Number(Defaults.PrintFactor))

	designCostBase := 0.0
	if hasDesign {
		designCostBase = designHours * designRate
	}
	designCost := designCostBase * math.Max(0, group.DesignFactor.Number(Defaults.DesignFactor))

	postProcessHours := math.Max(0, item.PostProcessHours.Hours(0))
	postProcessExtrasCost := 0.0
	for _, extra := range item.PostProcessExtras {
		postProcessExtrasCost += math.Max(0, extra.Price.Number(0))
	}
	postProcessCost := postProcessHours*postProcessRate + postProcessExtrasCost

	variableCosts := materialCost + printCost

	discountApplied := item.IsSeries && qty >= seriesThresholdQty
	seriesDiscount := 0.0
	if discountApplied {
		seriesDiscount = variableCosts * seriesDiscountPct
	}

	itemBase := (variableCosts - seriesDiscount) + designCost + postProcessCost

	marginPct := math.Max(0, group.MarginPct.Number(Defaults.MarginPct))
	itemMargin := itemBase * marginPct

	itemTotal := itemBase + itemMargin
	unitPrice := itemTotal / qty

	return ItemQuote{
		Qty:         int(qty),
		Grams:       grams,
		PrintHours:  printHours,
		DesignHours: designHours,
		GroupKey:    groupKey,
		HasDesign:   hasDesign,
		IsSeries:    item.IsSeries,

		MaterialRate:    materialRate,
		PostProcessRate: postProcessRate,

		MaterialCost:          materialCost,
		PrintCostBase:         printCostBase,
		PrintCost:             printCost,
		DesignCostBase:        designCostBase,
		DesignCost:            designCost,
		PostProcessHours:      postProcessHours,
		PostProcessExtrasCost: postProcessExtrasCost,
		PostProcessCost:       postProcessCost,

		VariableCosts:   variableCosts,
		DiscountApplied: discountApplied,
		SeriesDiscount:  seriesDiscount,
		ItemBase:        itemBase,
		MarginPct:       marginPct,
		ItemMargin:      itemMargin,
		ItemTotal:       itemTotal,
		UnitPrice:       unitPrice,
	}
}
