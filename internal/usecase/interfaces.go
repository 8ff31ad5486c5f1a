package usecase

import (
	"context"

	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/domain/capability"
	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/domain/governance"
	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/domain/usecases"
)

type UseCaseRepository interface {
	Create(ctx context.Context, snapshot usecases.Snapshot) (usecases.Snapshot, error)
	Get(ctx context.Context, useCaseID string) (usecases.Snapshot, error)
	List(ctx context.Context) ([]usecases.Snapshot, error)
	ApplyPatch(ctx context.Context, useCaseID string, patch usecases.Patch) (usecases.Snapshot, error)
	SetStatus(ctx context.Context, useCaseID string, status usecases.LifecycleStatus) error
}

type CapabilityRepository interface {
	Get(ctx context.Context, useCaseID string) (*capability.Transition, error)
	Save(ctx context.Context, transition capability.Transition) error
	ListTracked(ctx context.Context) ([]capability.TrackedUseCase, error)
}

type EventRepository interface {
	Append(ctx context.Context, event usecases.Event) (usecases.Event, error)
	ListByUseCase(ctx context.Context, useCaseID string) ([]usecases.Event, error)
}

// PolicyDecision is the outcome of an org-specific activation policy
// overlay. Deny reasons are surfaced alongside missing gate fields.
type PolicyDecision struct {
	Allow   bool
	Reasons []string
}

// ActivationPolicy is an optional extra layer on top of the built-in
// gates. It can only tighten activation, never loosen it.
type ActivationPolicy interface {
	EvaluateActivation(ctx context.Context, s usecases.Snapshot, target usecases.LifecycleStatus, check governance.CheckResult) (PolicyDecision, error)
}

// SummaryCache holds the last computed portfolio summary. A nil cache
// is valid; the portfolio service recomputes on every call.
type SummaryCache interface {
	GetSummary(ctx context.Context) (*capability.PortfolioSummary, error)
	SetSummary(ctx context.Context, summary capability.PortfolioSummary) error
	Invalidate(ctx context.Context) error
}
