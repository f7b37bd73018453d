package platform

import (
	"encoding/json"
	"time"
)

// Identity is an actor's resolved identity. The internal ID is required by
// all downstream API calls and is immutable after resolution.
type Identity struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// ActorDetail is the typed subset of an actor object the pipeline consumes.
type ActorDetail struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Username     string         `json:"username"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	PricingInfos []PricingEntry `json:"pricingInfos"`
}

// PricingEntry is one historical pricing record. Entries arrive sorted
// ascending by StartedAt.
type PricingEntry struct {
	PricingModel             string           `json:"pricingModel"`
	StartedAt                time.Time        `json:"startedAt"`
	PricePerUnitUsd          float64          `json:"pricePerUnitUsd,omitempty"`
	TrialMinutes             int              `json:"trialMinutes,omitempty"`
	ApifyMarginPercentage    float64          `json:"apifyMarginPercentage,omitempty"`
	MinimalMaxTotalChargeUsd float64          `json:"minimalMaxTotalChargeAfterRebateUsd,omitempty"`
	PricingPerEvent          *PricingPerEvent `json:"pricingPerEvent,omitempty"`
}

// PricingPerEvent describes per-event charging for PAY_PER_EVENT actors.
type PricingPerEvent struct {
	ActorChargeEvents map[string]ChargeEventPricing `json:"actorChargeEvents"`
}

// ChargeEventPricing is the price of one chargeable event kind.
type ChargeEventPricing struct {
	EventTitle       string  `json:"eventTitle"`
	EventDescription string  `json:"eventDescription"`
	EventPriceUsd    float64 `json:"eventPriceUsd"`
}

// Build is the latest default-tagged build of an actor.
type Build struct {
	ActorDefinition *ActorDefinition `json:"actorDefinition"`
	ActVersion      *ActVersion      `json:"actVersion"`
}

// ActorDefinition is the build's actor definition block. Title and
// Description describe the actor itself and head the normalized input schema.
type ActorDefinition struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Readme      string       `json:"readme"`
	Input       *InputSchema `json:"input"`
}

// InputSchema is the declared input schema of an actor build.
type InputSchema struct {
	Properties map[string]InputProperty `json:"properties"`
}

// InputProperty is one declared input property. Default and Prefill are kept
// raw; the schema adapter decides which one wins.
type InputProperty struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	Default     json.RawMessage `json:"default,omitempty"`
	Prefill     json.RawMessage `json:"prefill,omitempty"`
}

// ActVersion carries the build's source version metadata.
type ActVersion struct {
	GitRepoURL string `json:"gitRepoUrl"`
}

// Version is one published actor version.
type Version struct {
	VersionNumber string       `json:"versionNumber"`
	BuildTag      string       `json:"buildTag"`
	GitRepoURL    string       `json:"gitRepoUrl"`
	SourceFiles   []SourceFile `json:"sourceFiles"`
}

// SourceFile is one file bundled with an actor version.
type SourceFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
	Format  string `json:"format"`
}

// StoreActor is one full-text search hit from the store catalog.
type StoreActor struct {
	Name               string         `json:"name"`
	Username           string         `json:"username"`
	Title              string         `json:"title"`
	Description        string         `json:"description,omitempty"`
	Stats              map[string]any `json:"stats,omitempty"`
	CurrentPricingInfo *PricingEntry  `json:"currentPricingInfo,omitempty"`
	URL                string         `json:"url,omitempty"`
	StarCount          int            `json:"starCount,omitempty"`
}
