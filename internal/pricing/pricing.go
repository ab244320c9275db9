// Package pricing computes the price summary for a draft's event packages.
// All amounts are in paise (1/100 rupee) so totals are exact and reproducible
// for a given rate table.
package pricing

import "github.com/avinashkumarr/studiobook/internal/domain"

// Rates is the per-role day rate table, in paise.
type Rates struct {
	PhotographerPerDay int64
	VideographerPerDay int64
	TaxPercent         int64
}

// DefaultRates is the studio's standard rate card.
func DefaultRates() Rates {
	return Rates{
		PhotographerPerDay: 15000_00,
		VideographerPerDay: 20000_00,
		TaxPercent:         18,
	}
}

// multipliersPerMille maps event types to a price multiplier expressed in
// thousandths, so the computation stays in integer arithmetic.
var multipliersPerMille = map[domain.EventType]int64{
	domain.EventWedding:    1200,
	domain.EventEngagement: 1000,
	domain.EventPortrait:   800,
	domain.EventBirthday:   900,
	domain.EventCorporate:  1100,
	domain.EventOther:      1000,
}

// Multiplier returns the per-mille multiplier for an event type.
// Unknown types price at 1.0x.
func Multiplier(t domain.EventType) int64 {
	if m, ok := multipliersPerMille[t]; ok {
		return m
	}
	return 1000
}

// Summary is the derived price breakdown. It is recomputed on every read and
// never stored outside a draft envelope snapshot.
type Summary struct {
	Base     int64 `json:"base"`
	Tax      int64 `json:"tax"`
	Subtotal int64 `json:"subtotal"`
	Total    int64 `json:"total"`
}

// EventBase returns the base price of a single event package. A day count
// below 1 counts as a single day.
func EventBase(e *domain.EventPackage, rates Rates) int64 {
	days := int64(e.Days)
	if days < 1 {
		days = 1
	}
	crew := int64(e.Photographers)*rates.PhotographerPerDay +
		int64(e.Videographers)*rates.VideographerPerDay
	return crew * days * Multiplier(e.Type) / 1000
}

// Summarize computes the full summary over the event collection.
func Summarize(events []*domain.EventPackage, rates Rates) Summary {
	var base int64
	for _, e := range events {
		base += EventBase(e, rates)
	}
	return fromBase(base, rates)
}

// SummarizeWithOverride computes the summary, substituting the manual base
// override when present. The override feeds the dependent figures but never
// flows back into event fields.
func SummarizeWithOverride(events []*domain.EventPackage, rates Rates, baseOverride *int64) Summary {
	if baseOverride == nil {
		return Summarize(events, rates)
	}
	return fromBase(*baseOverride, rates)
}

func fromBase(base int64, rates Rates) Summary {
	// Round half up on the tax figure.
	tax := (base*rates.TaxPercent + 50) / 100
	return Summary{
		Base:     base,
		Tax:      tax,
		Subtotal: base + tax,
		Total:    base + tax,
	}
}
