package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/domain/capability"
	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/domain/governance"
	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/domain/usecases"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func boolPtr(v bool) *bool { return &v }

func strPtr(v string) *string { return &v }

type memUseCaseRepo struct {
	snapshots map[string]usecases.Snapshot
	nextID    int
	listErr   error
}

func newMemUseCaseRepo(seed ...usecases.Snapshot) *memUseCaseRepo {
	r := &memUseCaseRepo{snapshots: make(map[string]usecases.Snapshot)}
	for _, s := range seed {
		r.snapshots[s.ID] = s
	}
	return r
}

func (r *memUseCaseRepo) Create(_ context.Context, snapshot usecases.Snapshot) (usecases.Snapshot, error) {
	if snapshot.ID == "" {
		r.nextID++
		snapshot.ID = fmt.Sprintf("uc-%d", r.nextID)
	}
	r.snapshots[snapshot.ID] = snapshot
	return snapshot, nil
}

func (r *memUseCaseRepo) Get(_ context.Context, useCaseID string) (usecases.Snapshot, error) {
	s, ok := r.snapshots[useCaseID]
	if !ok {
		return usecases.Snapshot{}, usecases.ErrNotFound
	}
	return s, nil
}

func (r *memUseCaseRepo) List(_ context.Context) ([]usecases.Snapshot, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	ids := make([]string, 0, len(r.snapshots))
	for id := range r.snapshots {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]usecases.Snapshot, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.snapshots[id])
	}
	return out, nil
}

func (r *memUseCaseRepo) ApplyPatch(_ context.Context, useCaseID string, patch usecases.Patch) (usecases.Snapshot, error) {
	s, ok := r.snapshots[useCaseID]
	if !ok {
		return usecases.Snapshot{}, usecases.ErrNotFound
	}
	s = s.Apply(patch)
	r.snapshots[useCaseID] = s
	return s, nil
}

func (r *memUseCaseRepo) SetStatus(_ context.Context, useCaseID string, status usecases.LifecycleStatus) error {
	s, ok := r.snapshots[useCaseID]
	if !ok {
		return usecases.ErrNotFound
	}
	s.Status = status
	r.snapshots[useCaseID] = s
	return nil
}

type memCapabilityRepo struct {
	transitions map[string]capability.Transition
	investments map[string]*float64
	getErrFor   map[string]error
	panicFor    map[string]bool
	saveErr     error
	saves       int
}

func newMemCapabilityRepo() *memCapabilityRepo {
	return &memCapabilityRepo{
		transitions: make(map[string]capability.Transition),
		investments: make(map[string]*float64),
		getErrFor:   make(map[string]error),
		panicFor:    make(map[string]bool),
	}
}

func (r *memCapabilityRepo) Get(_ context.Context, useCaseID string) (*capability.Transition, error) {
	if r.panicFor[useCaseID] {
		panic("capability store corrupted for " + useCaseID)
	}
	if err := r.getErrFor[useCaseID]; err != nil {
		return nil, err
	}
	t, ok := r.transitions[useCaseID]
	if !ok {
		return nil, usecases.ErrNotFound
	}
	copied := t
	return &copied, nil
}

func (r *memCapabilityRepo) Save(_ context.Context, transition capability.Transition) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.transitions[transition.UseCaseID] = transition
	r.saves++
	return nil
}

func (r *memCapabilityRepo) ListTracked(_ context.Context) ([]capability.TrackedUseCase, error) {
	ids := make([]string, 0, len(r.transitions))
	for id := range r.transitions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]capability.TrackedUseCase, 0, len(ids))
	for _, id := range ids {
		out = append(out, capability.TrackedUseCase{
			UseCaseID:  id,
			Investment: r.investments[id],
			Transition: r.transitions[id],
		})
	}
	return out, nil
}

type memEventRepo struct {
	events []usecases.Event
}

func (r *memEventRepo) Append(_ context.Context, event usecases.Event) (usecases.Event, error) {
	event.ID = fmt.Sprintf("ev-%d", len(r.events)+1)
	r.events = append(r.events, event)
	return event, nil
}

func (r *memEventRepo) ListByUseCase(_ context.Context, useCaseID string) ([]usecases.Event, error) {
	var out []usecases.Event
	for _, e := range r.events {
		if e.UseCaseID == useCaseID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memEventRepo) typesFor(useCaseID string) []usecases.EventType {
	var out []usecases.EventType
	for _, e := range r.events {
		if e.UseCaseID == useCaseID {
			out = append(out, e.EventType)
		}
	}
	return out
}

type memSummaryCache struct {
	summary       *capability.PortfolioSummary
	gets          int
	sets          int
	invalidations int
	getErr        error
}

func (c *memSummaryCache) GetSummary(_ context.Context) (*capability.PortfolioSummary, error) {
	c.gets++
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.summary, nil
}

func (c *memSummaryCache) SetSummary(_ context.Context, summary capability.PortfolioSummary) error {
	c.sets++
	c.summary = &summary
	return nil
}

func (c *memSummaryCache) Invalidate(_ context.Context) error {
	c.invalidations++
	c.summary = nil
	return nil
}

type stubPolicy struct {
	decision PolicyDecision
	err      error
	calls    int
}

func (p *stubPolicy) EvaluateActivation(_ context.Context, _ usecases.Snapshot, _ usecases.LifecycleStatus, _ governance.CheckResult) (PolicyDecision, error) {
	p.calls++
	return p.decision, p.err
}

// compliantSnapshot satisfies all three gates: identity and scoring
// complete, responsible AI attestations answered.
func compliantSnapshot(id string, status usecases.LifecycleStatus) usecases.Snapshot {
	return usecases.Snapshot{
		ID:                        id,
		OwnerName:                 "Jane Rivera",
		BusinessFunction:          "Claims",
		Status:                    status,
		BusinessValueScore:        intPtr(4),
		StrategicAlignmentScore:   intPtr(4),
		FeasibilityScore:          intPtr(3),
		DataReadinessScore:        intPtr(4),
		RiskScore:                 intPtr(2),
		ExplainabilityRequirement: "full",
		CustomerHarmRiskTier:      "low",
		HumanAccountability:       boolPtr(true),
		CrossBorderData:           boolPtr(false),
		ThirdPartyModel:           boolPtr(false),
		CreatedAt:                 time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}
