// Package quote turns an editable order into saved snapshots and reusable
// library items.
package quote

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Simplici0/preventivatore3d/internal/pricing"
	"github.com/Simplici0/preventivatore3d/internal/printout"
)

// Status is the commercial state of a saved quote.
type Status string

const (
	StatusDraft   Status = "DRAFT"
	StatusPending Status = "PENDING"
	StatusPaid    Status = "PAID"
)

const (
	defaultClient   = "Senza nome"
	defaultItemName = "Articolo"
	dateLayout      = "02/01/2006 15:04"
)

var validate = validator.New()

// OrderInfo is the order-level metadata edited next to the items.
type OrderInfo struct {
	Client    string            `json:"client" validate:"max=200"`
	SetupMode pricing.SetupMode `json:"setupMode" validate:"omitempty,oneof=ORDER ITEM"`
	QuoteID   string            `json:"quoteId" validate:"max=64"`
	Status    Status            `json:"status" validate:"omitempty,oneof=DRAFT PENDING PAID"`
	SavedAt   string            `json:"savedAt,omitempty"`
}

// State is the full editable order: metadata, rates, items and print layout.
type State struct {
	Order  OrderInfo             `json:"order"`
	Config pricing.Configuration `json:"config"`
	Items  []pricing.Item        `json:"items"`
	Print  printout.Options      `json:"print"`
}

// NewState returns a blank order carrying the default rates. Decoding JSON
// on top of it merges a partial document with the defaults.
func NewState() State {
	return State{
		Order:  OrderInfo{SetupMode: pricing.Defaults.SetupMode, Status: StatusDraft},
		Config: pricing.DefaultConfiguration(),
		Print:  printout.DefaultOptions(),
	}
}

// PricingOrder returns the part of s the pricing engine needs.
func (s State) PricingOrder() pricing.Order {
	return pricing.Order{Config: s.Config, Items: s.Items, SetupMode: s.Order.SetupMode}
}

// Quote prices s.
func (s State) Quote() pricing.OrderQuote {
	return pricing.QuoteOrder(s.PricingOrder())
}

// Validate checks the order metadata. Item and rate values are never
// rejected; they degrade while quoting.
func (s State) Validate() error {
	if err := validate.Struct(s.Order); err != nil {
		return fmt.Errorf("invalid order: %w", err)
	}
	return nil
}

// Snapshot is a saved, priced copy of a State.
type Snapshot struct {
	QuoteID    string       `json:"quoteId"`
	Client     string       `json:"client"`
	Date       string       `json:"date"`
	ItemsCount int          `json:"itemsCount"`
	Total      float64      `json:"total"`
	Status     Status       `json:"status"`
	State      State        `json:"state"`
	Sums       pricing.Sums `json:"sums"`
}

// NewQuoteID returns a quote number such as "Q-20240201-140503".
func NewQuoteID(now time.Time) string {
	return "Q-" + now.Format("20060102-150405")
}

// MakeSnapshot prices state and freezes a copy of it. A quote number is
// assigned when state has none.
func MakeSnapshot(state State, now time.Time) (Snapshot, error) {
	if err := state.Validate(); err != nil {
		return Snapshot{}, err
	}

	frozen, err := clone(state)
	if err != nil {
		return Snapshot{}, err
	}
	if frozen.Order.QuoteID == "" {
		frozen.Order.QuoteID = NewQuoteID(now)
	}
	if frozen.Order.Status == "" {
		frozen.Order.Status = StatusDraft
	}
	frozen.Order.SavedAt = now.UTC().Format(time.RFC3339)

	sums := frozen.Quote().Sums
	client := strings.TrimSpace(frozen.Order.Client)
	if client == "" {
		client = defaultClient
	}

	return Snapshot{
		QuoteID:    frozen.Order.QuoteID,
		Client:     client,
		Date:       now.Format(dateLayout),
		ItemsCount: len(frozen.Items),
		Total:      pricing.Round2(sums.Total),
		Status:     frozen.Order.Status,
		State:      frozen,
		Sums:       sums,
	}, nil
}

// Recompute prices the embedded state again.
func (s Snapshot) Recompute() pricing.Sums {
	return s.State.Quote().Sums
}

// Text renders the snapshot as a printable document.
func (s Snapshot) Text() string {
	h := printout.Header{
		QuoteID:   s.QuoteID,
		Client:    s.Client,
		Date:      s.Date,
		SetupMode: s.State.Order.SetupMode,
	}
	return printout.Render(h, s.State.Config, s.State.Quote(), s.State.Print)
}

// LibraryItem is an item saved for reuse in later orders.
type LibraryItem struct {
	pricing.Item
	Date string `json:"date"`
}

// NormalizeForLibrary copies it under a fresh id with its flags made
// explicit, so that later changes to the defaults do not alter it.
func NormalizeForLibrary(it pricing.Item, now time.Time) LibraryItem {
	out := it
	out.ID = uuid.NewString()
	out.Name = strings.TrimSpace(it.Name)
	if out.Name == "" {
		out.Name = defaultItemName
	}
	if out.Group == "" {
		out.Group = pricing.Defaults.Group
	}
	hasDesign := it.DesignEnabled()
	out.HasDesign = &hasDesign
	out.PostProcessExtras = append([]pricing.Extra(nil), it.PostProcessExtras...)
	return LibraryItem{Item: out, Date: now.Format(dateLayout)}
}

func clone(s State) (State, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return State{}, fmt.Errorf("encode state: %w", err)
	}
	var out State
	if err := json.Unmarshal(raw, &out); err != nil {
		return State{}, fmt.Errorf("decode state: %w", err)
	}
	return out, nil
}
