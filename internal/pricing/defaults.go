package pricing

// Defaults holds every implicit fallback used while quoting. Values missing
// from an Item or a Configuration resolve to these and nothing else.
var Defaults = struct {
	Qty                   float64
	PrintFactor           float64
	DesignFactor          float64
	MarginPct             float64
	PostProcessEurPerHour float64
	SeriesThresholdQty    float64
	Group                 string
	SetupMode             SetupMode
}{
	Qty:                   1,
	PrintFactor:           1,
	DesignFactor:          1,
	MarginPct:             0.25,
	PostProcessEurPerHour: 15,
	SeriesThresholdQty:    10,
	Group:                 "B",
	SetupMode:             SetupPerOrder,
}

// DefaultConfiguration returns the rates a fresh installation starts with.
func DefaultConfiguration() Configuration {
	return Configuration{
		MaterialEurPerGram:    Float(0.15),
		MachineEurPerHour:     Float(2),
		DesignEurPerHour:      Float(20),
		PostProcessEurPerHour: Float(15),
		MachineSetupFee:       Float(10),
		SeriesDiscountPct:     Float(0.25),
		SeriesThresholdQty:    Int(10),
		Groups: map[string]GroupFactors{
			"A": {PrintFactor: Float(1.00), DesignFactor: Float(0.80), MarginPct: Float(0.20)},
			"B": {PrintFactor: Float(1.10), DesignFactor: Float(1.00), MarginPct: Float(0.25)},
			"C": {PrintFactor: Float(1.25), DesignFactor: Float(1.30), MarginPct: Float(0.35)},
		},
	}
}

// WithDefaults fills unset rates, missing groups and unset group factors of
// c from DefaultConfiguration. Values already present are kept as typed.
func (c Configuration) WithDefaults() Configuration {
	return DefaultConfiguration().Merge(c)
}

// Merge returns c with every value set in patch written over it. Groups are
// merged factor by factor, so a patch naming one factor of a group keeps
// the others. Unset patch values never clear c.
func (c Configuration) Merge(patch Configuration) Configuration {
	out := c
	set := func(dst *Raw, src Raw) {
		if src != "" {
			*dst = src
		}
	}
	set(&out.MaterialEurPerGram, patch.MaterialEurPerGram)
	set(&out.MachineEurPerHour, patch.MachineEurPerHour)
	set(&out.DesignEurPerHour, patch.DesignEurPerHour)
	set(&out.PostProcessEurPerHour, patch.PostProcessEurPerHour)
	set(&out.MachineSetupFee, patch.MachineSetupFee)
	set(&out.SeriesDiscountPct, patch.SeriesDiscountPct)
	set(&out.SeriesThresholdQty, patch.SeriesThresholdQty)

	out.Groups = make(map[string]GroupFactors, len(c.Groups)+len(patch.Groups))
	for k, g := range c.Groups {
		out.Groups[k] = g
	}
	for k, p := range patch.Groups {
		g := out.Groups[k]
		set(&g.PrintFactor, p.PrintFactor)
		set(&g.DesignFactor, p.DesignFactor)
		set(&g.MarginPct, p.MarginPct)
		out.Groups[k] = g
	}
	return out
}
