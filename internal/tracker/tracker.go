// Package tracker orchestrates the cycle engine for the three tracked record
// families. Each tracker fetches a record and its event history from the
// store, runs generation, matching and aggregation, and merges in the
// externally persisted overrides and notes. Nothing is cached: every call
// recomputes the schedule from the authoritative record.
package tracker

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/recur/internal/aggregator"
	"fintrack/recur/internal/config"
	"fintrack/recur/internal/dateutils"
	"fintrack/recur/internal/logging"
	"fintrack/recur/internal/matcher"
	"fintrack/recur/internal/models"
	"fintrack/recur/internal/store"
)

// Result is what a tracker hands back to its caller: the enriched cycles,
// the partitioned summary, and the events no cycle claimed.
type Result struct {
	Kind      models.RecordKind
	Name      string
	Currency  string
	Cycles    []models.Cycle
	Summary   aggregator.Summary
	Unmatched []models.Event
}

// Tracker wires the engine to the external store.
type Tracker struct {
	store store.Store
	cfg   *config.Config
	log   logging.Logger

	// Clock supplies "today" and is injectable for tests.
	Clock func() time.Time
}

// New creates a tracker over the given store and application config.
func New(s store.Store, cfg *config.Config, logger logging.Logger) *Tracker {
	return &Tracker{
		store: s,
		cfg:   cfg,
		log:   logger,
		Clock: time.Now,
	}
}

func (t *Tracker) today() time.Time {
	return dateutils.Normalize(t.Clock())
}

func (t *Tracker) maxCycles() int {
	if t.cfg != nil && t.cfg.Cycles.MaxCycles > 0 {
		return t.cfg.Cycles.MaxCycles
	}
	return models.DefaultMaxCycles
}

// optionsFor converts configured tolerances into matcher options, falling
// back to the matcher defaults when no config is present.
func (t *Tracker) optionsFor(kind models.RecordKind) matcher.Options {
	if t.cfg == nil {
		return matcher.DefaultOptions()
	}
	var tol config.Tolerances
	switch kind {
	case models.KindLiability:
		tol = t.cfg.Matching.Liability
	case models.KindBudget:
		tol = t.cfg.Matching.Budget
	default:
		tol = t.cfg.Matching.Goal
	}
	return matcher.Options{
		ToleranceDays:      tol.ToleranceDays,
		AmountTolerancePct: decimal.NewFromFloat(tol.AmountTolerancePct),
	}
}

// UpdateCycleNote persists a free-text note against one cycle of a record.
// The caller re-reads afterwards; the engine keeps no schedule state.
func (t *Tracker) UpdateCycleNote(kind models.RecordKind, name string, cycleNumber int, note string) error {
	t.log.Info("Updating cycle note",
		logging.Field{Key: logging.FieldRecordKind, Value: string(kind)},
		logging.Field{Key: logging.FieldRecord, Value: name},
		logging.Field{Key: logging.FieldCycleNumber, Value: cycleNumber})
	return t.store.SaveCycleNote(kind, name, cycleNumber, note)
}

// applyOverrides merges persisted per-cycle overrides; override values win
// over generated ones.
func applyOverrides(cycles []models.Cycle, overrides map[int]models.CycleOverride) {
	if len(overrides) == 0 {
		return
	}
	for i := range cycles {
		if ov, ok := overrides[cycles[i].CycleNumber]; ok {
			ov.Apply(&cycles[i])
		}
	}
}

// applyNotes merges persisted per-cycle notes.
func applyNotes(cycles []models.Cycle, notes map[int]string) {
	if len(notes) == 0 {
		return
	}
	for i := range cycles {
		if note, ok := notes[cycles[i].CycleNumber]; ok {
			cycles[i].Notes = note
		}
	}
}
