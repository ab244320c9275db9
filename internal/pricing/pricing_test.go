package pricing

import (
	"testing"

	"github.com/avinashkumarr/studiobook/internal/domain"
	"github.com/stretchr/testify/assert"
)

func event(t domain.EventType, photographers, videographers, days int) *domain.EventPackage {
	return &domain.EventPackage{
		Type:          t,
		Photographers: photographers,
		Videographers: videographers,
		Days:          days,
	}
}

func TestEventBase_AppliesMultiplier(t *testing.T) {
	rates := DefaultRates()

	tests := []struct {
		name string
		e    *domain.EventPackage
		want int64
	}{
		{"wedding two days", event(domain.EventWedding, 2, 1, 2), 120000_00},
		{"portrait discounted", event(domain.EventPortrait, 1, 0, 1), 12000_00},
		{"corporate premium", event(domain.EventCorporate, 1, 1, 1), 38500_00},
		{"engagement at par", event(domain.EventEngagement, 1, 1, 1), 35000_00},
		{"no crew prices zero", event(domain.EventWedding, 0, 0, 3), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EventBase(tt.e, rates))
		})
	}
}

func TestEventBase_DaysBelowOneCountAsOne(t *testing.T) {
	rates := DefaultRates()
	zero := event(domain.EventEngagement, 1, 0, 0)
	one := event(domain.EventEngagement, 1, 0, 1)
	assert.Equal(t, EventBase(one, rates), EventBase(zero, rates))
}

func TestMultiplier_UnknownTypePricesAtPar(t *testing.T) {
	assert.Equal(t, int64(1000), Multiplier(domain.EventType("eloping")))
	assert.Equal(t, int64(1200), Multiplier(domain.EventWedding))
}

func TestSummarize_SumsPackagesAndTaxes(t *testing.T) {
	rates := DefaultRates()
	events := []*domain.EventPackage{
		event(domain.EventWedding, 2, 1, 2),  // 120000_00
		event(domain.EventPortrait, 1, 0, 1), // 12000_00
	}

	s := Summarize(events, rates)
	assert.Equal(t, int64(132000_00), s.Base)
	assert.Equal(t, int64(23760_00), s.Tax)
	assert.Equal(t, int64(155760_00), s.Subtotal)
	assert.Equal(t, s.Subtotal, s.Total)
}

func TestSummarize_TaxRoundsHalfUp(t *testing.T) {
	// 25 paise base: 18% is 4.5 paise, which rounds up to 5.
	base := int64(25)
	s := SummarizeWithOverride(nil, DefaultRates(), &base)
	assert.Equal(t, int64(5), s.Tax)
	assert.Equal(t, int64(30), s.Total)
}

func TestSummarizeWithOverride_SupersedesComputedBase(t *testing.T) {
	rates := DefaultRates()
	events := []*domain.EventPackage{event(domain.EventWedding, 2, 1, 2)}

	override := int64(100000_00)
	s := SummarizeWithOverride(events, rates, &override)
	assert.Equal(t, override, s.Base)
	assert.Equal(t, int64(18000_00), s.Tax)
	assert.Equal(t, int64(118000_00), s.Total)

	// Nil override falls back to the computed figure.
	computed := SummarizeWithOverride(events, rates, nil)
	assert.Equal(t, Summarize(events, rates), computed)
}

func TestSummarize_EmptyCollection(t *testing.T) {
	s := Summarize(nil, DefaultRates())
	assert.Equal(t, Summary{}, s)
}
