package reviewcontext

import (
	"context"
	"fmt"
	"time"

	"inspector/internal/logging"
	"inspector/internal/platform"
)

const (
	// DefaultSearchLimit is returned when the caller does not bound the search.
	DefaultSearchLimit = 10
	// MaxSearchLimit is the upper bound the catalog accepts.
	MaxSearchLimit = 100
)

// CompetitorSummary is one competing actor found by full-text search.
type CompetitorSummary struct {
	Name           string           `json:"name"`
	Owner          string           `json:"owner"`
	Title          string           `json:"title"`
	Description    string           `json:"description,omitempty"`
	RunStats       map[string]any   `json:"runStats,omitempty"`
	CurrentPricing *PricingSnapshot `json:"currentPricing,omitempty"`
	StoreURL       string           `json:"storeUrl,omitempty"`
	StarCount      int              `json:"starCount,omitempty"`
}

// StoreSearcher is the platform subset the search adapter needs.
type StoreSearcher interface {
	SearchStore(ctx context.Context, search string, limit, offset int) ([]platform.StoreActor, error)
}

// SearchAdapter performs keyword search over the store catalog and returns a
// bounded competitor list in upstream relevance order.
type SearchAdapter struct {
	api    StoreSearcher
	now    func() time.Time
	logger logging.Logger
}

// NewSearchAdapter builds a search adapter. now is replaceable for tests;
// nil means time.Now.
func NewSearchAdapter(api StoreSearcher, now func() time.Time, logger logging.Logger) *SearchAdapter {
	if now == nil {
		now = time.Now
	}
	return &SearchAdapter{api: api, now: now, logger: logging.OrNop(logger)}
}

// Search runs one full-text search. limit is clamped to [1, MaxSearchLimit]
// with DefaultSearchLimit for zero; negative offsets become zero. Upstream
// failures are wrapped with the failed search string; partial results are
// never returned silently.
func (a *SearchAdapter) Search(ctx context.Context, keywords string, limit, offset int) ([]CompetitorSummary, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}
	if offset < 0 {
		offset = 0
	}

	items, err := a.api.SearchStore(ctx, keywords, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to search for actors related to %q: %w", keywords, err)
	}
	a.logger.Info("found %d actors related to %q", len(items), keywords)

	now := a.now().UTC()
	summaries := make([]CompetitorSummary, 0, len(items))
	for _, item := range items {
		summary := CompetitorSummary{
			Name:        item.Name,
			Owner:       item.Username,
			Title:       item.Title,
			Description: item.Description,
			RunStats:    item.Stats,
			StoreURL:    item.URL,
			StarCount:   item.StarCount,
		}
		if item.CurrentPricingInfo != nil {
			summary.CurrentPricing = SnapshotAt([]platform.PricingEntry{*item.CurrentPricingInfo}, now)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
