package reviewcontext

import (
	"context"
	"time"

	"inspector/internal/platform"
)

// PricingModel is the canonical pricing model vocabulary.
type PricingModel string

const (
	FreePlan     PricingModel = "FREE_PLAN"
	Rental       PricingModel = "RENTAL"
	PayPerResult PricingModel = "PAY_PER_RESULT"
	PayPerEvent  PricingModel = "PAY_PER_EVENT"
	PayPerUsage  PricingModel = "PAY_PER_USAGE"
)

// NormalizeModel maps upstream pricing model strings, which drift across
// platform versions, onto the canonical vocabulary.
func NormalizeModel(raw string) PricingModel {
	switch raw {
	case "FREE", "FREE_PLAN":
		return FreePlan
	case "RENTAL", "FLAT_PRICE_PER_MONTH":
		return Rental
	case "PAY_PER_RESULT", "PRICE_PER_DATASET_ITEM":
		return PayPerResult
	case "PAY_PER_EVENT":
		return PayPerEvent
	default:
		// PAY_PER_PLATFORM_USAGE, PRICE_PER_USAGE, empty and anything else.
		return PayPerUsage
	}
}

// EventPricing is the price of one chargeable event kind.
type EventPricing struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// PricingSnapshot is the currently effective pricing of an actor.
type PricingSnapshot struct {
	Model                 PricingModel            `json:"pricingModel"`
	PricePerUnitUsd       *float64                `json:"pricePerUnitUsd,omitempty"`
	TrialMinutes          *int                    `json:"trialMinutes,omitempty"`
	PlatformMarginPercent *float64                `json:"platformMarginPercent,omitempty"`
	MinimumChargeUsd      *float64                `json:"minimumChargeUsd,omitempty"`
	PerEvent              map[string]EventPricing `json:"perEvent,omitempty"`
}

// SnapshotAt selects the currently effective entry: entries are sorted
// ascending by start time, the current one is the last whose start is not in
// the future, and the first future-dated entry terminates the scan. With no
// eligible entry the actor is priced as plain platform usage.
func SnapshotAt(entries []platform.PricingEntry, now time.Time) *PricingSnapshot {
	var current *platform.PricingEntry
	for i := range entries {
		if entries[i].StartedAt.After(now) {
			break
		}
		current = &entries[i]
	}
	if current == nil {
		return &PricingSnapshot{Model: PayPerUsage}
	}
	return snapshotFromEntry(current)
}

func snapshotFromEntry(entry *platform.PricingEntry) *PricingSnapshot {
	snapshot := &PricingSnapshot{Model: NormalizeModel(entry.PricingModel)}
	if entry.PricePerUnitUsd != 0 {
		snapshot.PricePerUnitUsd = float64Ptr(entry.PricePerUnitUsd)
	}
	if entry.TrialMinutes != 0 {
		snapshot.TrialMinutes = intPtr(entry.TrialMinutes)
	}
	if entry.ApifyMarginPercentage != 0 {
		snapshot.PlatformMarginPercent = float64Ptr(entry.ApifyMarginPercentage * 100)
	}
	if entry.MinimalMaxTotalChargeUsd != 0 {
		snapshot.MinimumChargeUsd = float64Ptr(entry.MinimalMaxTotalChargeUsd)
	}
	if entry.PricingPerEvent != nil && len(entry.PricingPerEvent.ActorChargeEvents) > 0 {
		snapshot.PerEvent = make(map[string]EventPricing, len(entry.PricingPerEvent.ActorChargeEvents))
		for key, event := range entry.PricingPerEvent.ActorChargeEvents {
			snapshot.PerEvent[key] = EventPricing{
				Title:       event.EventTitle,
				Description: event.EventDescription,
				Price:       event.EventPriceUsd,
			}
		}
	}
	return snapshot
}

// ActorFetcher is the platform subset the pricing adapter needs.
type ActorFetcher interface {
	Actor(ctx context.Context, name string) (*platform.ActorDetail, error)
}

// PricingAdapter derives the current pricing snapshot for an actor.
type PricingAdapter struct {
	api ActorFetcher
	now func() time.Time
}

// NewPricingAdapter builds a pricing adapter. now is replaceable for tests;
// nil means time.Now.
func NewPricingAdapter(api ActorFetcher, now func() time.Time) *PricingAdapter {
	if now == nil {
		now = time.Now
	}
	return &PricingAdapter{api: api, now: now}
}

// Snapshot fetches the actor and derives its current pricing. A missing
// actor propagates as NotFoundError.
func (a *PricingAdapter) Snapshot(ctx context.Context, actorName string) (*PricingSnapshot, error) {
	detail, err := a.api.Actor(ctx, actorName)
	if err != nil {
		return nil, err
	}
	return SnapshotAt(detail.PricingInfos, a.now().UTC()), nil
}

func float64Ptr(v float64) *float64 { return &v }
func intPtr(v int) *int             { return &v }
