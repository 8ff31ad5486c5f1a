package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/domain/capability"
	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/domain/usecases"
)

type DerivationOutcome string

const (
	OutcomeDerived DerivationOutcome = "derived"
	OutcomeSkipped DerivationOutcome = "skipped"
	OutcomeError   DerivationOutcome = "error"
)

type DerivationResult struct {
	UseCaseID string
	Outcome   DerivationOutcome
	Reason    string
}

type BatchOptions struct {
	ForceRecalculate bool
	DryRun           bool
	RequestID        string
	Actor            Actor
}

type BatchReport struct {
	Results []DerivationResult
	Derived int
	Skipped int
	Errors  int
}

// DerivationService runs the benchmark derivation engine against the
// record store. The benchmark table is read-only and shared; every
// derivation is a pure function of one snapshot plus the table.
type DerivationService struct {
	UseCases     UseCaseRepository
	Capabilities CapabilityRepository
	Events       EventRepository
	Cache        SummaryCache
	Benchmark    capability.BenchmarkConfig
	Clock        func() time.Time
}

func NewDerivationService(useCases UseCaseRepository, capabilities CapabilityRepository, events EventRepository, benchmark capability.BenchmarkConfig) *DerivationService {
	return &DerivationService{
		UseCases:     useCases,
		Capabilities: capabilities,
		Events:       events,
		Benchmark:    benchmark,
		Clock:        time.Now,
	}
}

func (s *DerivationService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// DeriveOne derives and persists the capability transition for a
// single use case, honoring override protection.
func (s *DerivationService) DeriveOne(ctx context.Context, useCaseID string, opts BatchOptions) (DerivationResult, error) {
	snapshot, err := s.UseCases.Get(ctx, useCaseID)
	if err != nil {
		return DerivationResult{}, err
	}
	result := s.deriveRecord(ctx, snapshot, opts)
	return result, nil
}

// RunBenchmarkDerivation is the batch driver: every use case is
// derived, skipped (override protection), or reported as an error.
// One malformed record never aborts the run, and a rerun with the
// same inputs, a fixed clock and ForceRecalculate set reproduces the
// same report.
func (s *DerivationService) RunBenchmarkDerivation(ctx context.Context, opts BatchOptions) (BatchReport, error) {
	snapshots, err := s.UseCases.List(ctx)
	if err != nil {
		return BatchReport{}, err
	}
	report := BatchReport{Results: make([]DerivationResult, 0, len(snapshots))}
	for _, snapshot := range snapshots {
		result := s.deriveRecord(ctx, snapshot, opts)
		report.Results = append(report.Results, result)
		switch result.Outcome {
		case OutcomeDerived:
			report.Derived++
		case OutcomeSkipped:
			report.Skipped++
		case OutcomeError:
			report.Errors++
		}
	}
	if report.Derived > 0 && !opts.DryRun && s.Cache != nil {
		if err := s.Cache.Invalidate(ctx); err != nil {
			report.Results = append(report.Results, DerivationResult{
				Outcome: OutcomeError,
				Reason:  fmt.Sprintf("invalidate portfolio cache: %v", err),
			})
			report.Errors++
		}
	}
	return report, nil
}

func (s *DerivationService) deriveRecord(ctx context.Context, snapshot usecases.Snapshot, opts BatchOptions) (result DerivationResult) {
	result = DerivationResult{UseCaseID: snapshot.ID}
	defer func() {
		if r := recover(); r != nil {
			result.Outcome = OutcomeError
			result.Reason = fmt.Sprintf("derivation panic: %v", r)
		}
	}()

	existing, err := s.Capabilities.Get(ctx, snapshot.ID)
	if err != nil && !errors.Is(err, usecases.ErrNotFound) {
		result.Outcome = OutcomeError
		result.Reason = err.Error()
		return result
	}
	if !capability.ShouldRecalculate(existing, opts.ForceRecalculate) {
		result.Outcome = OutcomeSkipped
		result.Reason = "manual override in place"
		return result
	}

	if snapshot.TOMPhase == "" && !snapshot.TOMPhaseOverride {
		snapshot.TOMPhase = capability.DeriveTOMPhase(snapshot.Status)
	}
	derived := capability.DeriveDefaults(snapshot, s.Benchmark, s.now())
	if existing != nil {
		// Recalculation keeps the history log; only the forecast is
		// replaced.
		derived.IndependenceHistory = append(append([]capability.IndependenceEntry(nil), existing.IndependenceHistory...), derived.IndependenceHistory...)
	}

	if opts.DryRun {
		result.Outcome = OutcomeDerived
		result.Reason = "dry run"
		return result
	}
	if err := s.Capabilities.Save(ctx, derived); err != nil {
		result.Outcome = OutcomeError
		result.Reason = err.Error()
		return result
	}
	s.appendEvent(ctx, snapshot.ID, usecases.EventCapabilityDerived, opts, map[string]any{
		"tom_phase":   derived.Provenance.DerivedFrom.TOMPhase,
		"quadrant":    derived.Provenance.DerivedFrom.Quadrant,
		"tshirt_size": derived.Provenance.DerivedFrom.TShirtSize,
	})
	result.Outcome = OutcomeDerived
	return result
}

// SetManualOverride replaces a forecast with hand-authored data and
// marks it so future derivation runs leave it alone.
func (s *DerivationService) SetManualOverride(ctx context.Context, transition capability.Transition, opts BatchOptions) error {
	existing, err := s.Capabilities.Get(ctx, transition.UseCaseID)
	if err != nil && !errors.Is(err, usecases.ErrNotFound) {
		return err
	}
	now := s.now()
	transition.Provenance.Derived = false
	transition.Provenance.DerivedAt = now
	entry := capability.IndependenceEntry{
		RecordedAt: now,
		Percentage: transition.IndependencePercentage,
		Source:     "manual",
	}
	if existing != nil {
		transition.IndependenceHistory = append(append([]capability.IndependenceEntry(nil), existing.IndependenceHistory...), entry)
	} else {
		transition.IndependenceHistory = []capability.IndependenceEntry{entry}
	}
	if err := s.Capabilities.Save(ctx, transition); err != nil {
		return err
	}
	s.appendEvent(ctx, transition.UseCaseID, usecases.EventCapabilityOverride, opts, map[string]any{
		"independence_percentage": transition.IndependencePercentage,
	})
	if s.Cache != nil {
		return s.Cache.Invalidate(ctx)
	}
	return nil
}

func (s *DerivationService) appendEvent(ctx context.Context, useCaseID string, eventType usecases.EventType, opts BatchOptions, payload map[string]any) {
	if s.Events == nil {
		return
	}
	_, _ = s.Events.Append(ctx, usecases.Event{
		UseCaseID: useCaseID,
		EventType: eventType,
		ActorType: opts.Actor.Type,
		ActorID:   opts.Actor.ID,
		RequestID: opts.RequestID,
		CreatedAt: s.now(),
		Payload:   payload,
	})
}
