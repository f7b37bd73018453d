// Package output delivers the finished report: to the run's default dataset
// when one is configured, to a local writer otherwise. It also wraps the
// pay-per-event charging calls, which are no-ops outside a platform run.
package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"inspector/internal/logging"
)

// Record is the single dataset item produced per inspection.
type Record struct {
	ActorID  string `json:"actorId"`
	Response string `json:"response"`
}

// ItemPusher appends items to a named dataset.
type ItemPusher interface {
	PushItems(ctx context.Context, datasetID string, items any) error
}

// EventCharger charges a pay-per-event item against a run.
type EventCharger interface {
	ChargeEvent(ctx context.Context, runID, eventName string, count int) error
}

// Sink writes the final record. With no dataset ID it falls back to the
// writer, so local runs print the report instead of failing.
type Sink struct {
	api       ItemPusher
	datasetID string
	fallback  io.Writer
	logger    logging.Logger
}

// NewSink builds a sink for the given dataset. datasetID may be empty.
func NewSink(api ItemPusher, datasetID string, fallback io.Writer, logger logging.Logger) *Sink {
	return &Sink{api: api, datasetID: datasetID, fallback: fallback, logger: logging.OrNop(logger)}
}

// Write delivers the record.
func (s *Sink) Write(ctx context.Context, record Record) error {
	if s.datasetID == "" {
		s.logger.Debug("no default dataset configured, writing record to local output")
		encoded, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return fmt.Errorf("encode record: %w", err)
		}
		if _, err := fmt.Fprintln(s.fallback, string(encoded)); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
		return nil
	}
	if err := s.api.PushItems(ctx, s.datasetID, []Record{record}); err != nil {
		return fmt.Errorf("push record: %w", err)
	}
	s.logger.Info("pushed the report for %s into dataset %s", record.ActorID, s.datasetID)
	return nil
}

// Charger charges pay-per-event items. With no run ID every charge is
// skipped with a debug log, so local runs stay free.
type Charger struct {
	api    EventCharger
	runID  string
	logger logging.Logger
}

// NewCharger builds a charger for the given run. runID may be empty.
func NewCharger(api EventCharger, runID string, logger logging.Logger) *Charger {
	return &Charger{api: api, runID: runID, logger: logging.OrNop(logger)}
}

// Charge records count occurrences of the named event.
func (c *Charger) Charge(ctx context.Context, eventName string, count int) error {
	if c.runID == "" {
		c.logger.Debug("not running on the platform, skipping charge for %s", eventName)
		return nil
	}
	if err := c.api.ChargeEvent(ctx, c.runID, eventName, count); err != nil {
		return fmt.Errorf("charge %s: %w", eventName, err)
	}
	c.logger.Info("charged %d x %s", count, eventName)
	return nil
}
