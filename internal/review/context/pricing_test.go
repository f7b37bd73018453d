package reviewcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inspectorerrors "inspector/internal/errors"
	"inspector/internal/platform"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func TestSnapshotAtSelectsLastNonFutureEntry(t *testing.T) {
	entries := []platform.PricingEntry{
		{PricingModel: "PAY_PER_PLATFORM_USAGE", StartedAt: mustTime(t, "2023-01-01T00:00:00Z")},
		{PricingModel: "FLAT_PRICE_PER_MONTH", StartedAt: mustTime(t, "2099-01-01T00:00:00Z")},
	}
	now := mustTime(t, "2024-06-01T00:00:00Z")

	snapshot := SnapshotAt(entries, now)
	assert.Equal(t, PayPerUsage, snapshot.Model)

	// Idempotent: re-running the selection yields the same entry.
	again := SnapshotAt(entries, now)
	assert.Equal(t, snapshot, again)
}

func TestSnapshotAtStopsAtFirstFutureEntry(t *testing.T) {
	entries := []platform.PricingEntry{
		{PricingModel: "PRICE_PER_DATASET_ITEM", StartedAt: mustTime(t, "2022-01-01T00:00:00Z")},
		{PricingModel: "PAY_PER_EVENT", StartedAt: mustTime(t, "2030-01-01T00:00:00Z")},
		{PricingModel: "FLAT_PRICE_PER_MONTH", StartedAt: mustTime(t, "2023-01-01T00:00:00Z")},
	}
	// The 2023 entry sits behind a future-dated one; the scan must not see it.
	snapshot := SnapshotAt(entries, mustTime(t, "2024-06-01T00:00:00Z"))
	assert.Equal(t, PayPerResult, snapshot.Model)
}

func TestSnapshotAtDefaultsWithoutEntries(t *testing.T) {
	snapshot := SnapshotAt(nil, time.Now())
	assert.Equal(t, PayPerUsage, snapshot.Model)
	assert.Nil(t, snapshot.PricePerUnitUsd)
	assert.Nil(t, snapshot.TrialMinutes)
	assert.Nil(t, snapshot.PerEvent)
}

func TestSnapshotAtAllEntriesFuture(t *testing.T) {
	entries := []platform.PricingEntry{
		{PricingModel: "FLAT_PRICE_PER_MONTH", StartedAt: mustTime(t, "2099-01-01T00:00:00Z")},
	}
	snapshot := SnapshotAt(entries, mustTime(t, "2024-06-01T00:00:00Z"))
	assert.Equal(t, PayPerUsage, snapshot.Model)
}

func TestSnapshotCarriesEventBreakdown(t *testing.T) {
	entries := []platform.PricingEntry{{
		PricingModel:    "PAY_PER_EVENT",
		StartedAt:       mustTime(t, "2023-01-01T00:00:00Z"),
		TrialMinutes:    60,
		PricePerUnitUsd: 0.2,
		PricingPerEvent: &platform.PricingPerEvent{ActorChargeEvents: map[string]platform.ChargeEventPricing{
			"task-completed": {EventTitle: "Task completed", EventDescription: "One finished review", EventPriceUsd: 0.4},
		}},
	}}
	snapshot := SnapshotAt(entries, mustTime(t, "2024-01-01T00:00:00Z"))
	assert.Equal(t, PayPerEvent, snapshot.Model)
	require.NotNil(t, snapshot.TrialMinutes)
	assert.Equal(t, 60, *snapshot.TrialMinutes)
	require.Contains(t, snapshot.PerEvent, "task-completed")
	assert.Equal(t, 0.4, snapshot.PerEvent["task-completed"].Price)
}

func TestNormalizeModel(t *testing.T) {
	cases := map[string]PricingModel{
		"FREE":                   FreePlan,
		"FREE_PLAN":              FreePlan,
		"FLAT_PRICE_PER_MONTH":   Rental,
		"RENTAL":                 Rental,
		"PRICE_PER_DATASET_ITEM": PayPerResult,
		"PAY_PER_RESULT":         PayPerResult,
		"PAY_PER_EVENT":          PayPerEvent,
		"PAY_PER_PLATFORM_USAGE": PayPerUsage,
		"PRICE_PER_USAGE":        PayPerUsage,
		"":                       PayPerUsage,
		"SOMETHING_NEW":          PayPerUsage,
	}
	for raw, want := range cases {
		assert.Equal(t, want, NormalizeModel(raw), raw)
	}
}

type fakeActorAPI struct {
	detail *platform.ActorDetail
	err    error
}

func (f *fakeActorAPI) Actor(ctx context.Context, name string) (*platform.ActorDetail, error) {
	return f.detail, f.err
}

func TestPricingAdapterSnapshot(t *testing.T) {
	api := &fakeActorAPI{detail: &platform.ActorDetail{
		ID: "abc",
		PricingInfos: []platform.PricingEntry{
			{PricingModel: "PAY_PER_EVENT", StartedAt: mustTime(t, "2023-01-01T00:00:00Z")},
		},
	}}
	adapter := NewPricingAdapter(api, func() time.Time { return mustTime(t, "2024-06-01T00:00:00Z") })

	snapshot, err := adapter.Snapshot(context.Background(), "acme/foo")
	require.NoError(t, err)
	assert.Equal(t, PayPerEvent, snapshot.Model)
}

func TestPricingAdapterPropagatesNotFound(t *testing.T) {
	api := &fakeActorAPI{err: &inspectorerrors.NotFoundError{Kind: "actor", Name: "acme/foo"}}
	adapter := NewPricingAdapter(api, nil)

	_, err := adapter.Snapshot(context.Background(), "acme/foo")
	require.Error(t, err)
	assert.True(t, inspectorerrors.IsNotFound(err))
}
