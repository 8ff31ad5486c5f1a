package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/domain/governance"
	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/domain/usecases"
)

// GovernanceService runs the gate engine on the record-update path:
// activation guard on status changes, regression detection on edits
// to active records, phase transition validation, and an audit event
// for every decision that matters.
type GovernanceService struct {
	UseCases UseCaseRepository
	Events   EventRepository
	Detector *governance.RegressionDetector
	Policy   ActivationPolicy
	Phases   governance.PhaseConfig
	Clock    func() time.Time
}

type Actor struct {
	Type string
	ID   string
}

type CreateInput struct {
	Snapshot  usecases.Snapshot
	RequestID string
	Actor     Actor
}

type UpdateInput struct {
	UseCaseID string
	Patch     usecases.Patch
	RequestID string
	Actor     Actor
}

type UpdateResult struct {
	Snapshot    usecases.Snapshot
	Regression  governance.RegressionResult
	Deactivated bool
}

type StatusChangeInput struct {
	UseCaseID string
	Target    usecases.LifecycleStatus
	RequestID string
	Actor     Actor
}

type StatusChangeResult struct {
	Blocked       bool
	Check         *governance.CheckResult
	PolicyReasons []string
	Snapshot      usecases.Snapshot
}

type PhaseTransitionInput struct {
	UseCaseID     string
	FromPhaseID   string
	ToPhaseID     string
	Justification string
	RequestID     string
	Actor         Actor
}

func NewGovernanceService(useCases UseCaseRepository, events EventRepository, detector *governance.RegressionDetector, phases governance.PhaseConfig) *GovernanceService {
	if detector == nil {
		detector = governance.NewRegressionDetector(governance.DefaultEnforcementDate)
	}
	return &GovernanceService{
		UseCases: useCases,
		Events:   events,
		Detector: detector,
		Phases:   phases,
		Clock:    time.Now,
	}
}

func requireRequestID(requestID string) error {
	if strings.TrimSpace(requestID) == "" {
		return usecases.ErrInvalidArgument
	}
	return nil
}

func (s *GovernanceService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

func (s *GovernanceService) appendEvent(ctx context.Context, useCaseID string, eventType usecases.EventType, actor Actor, requestID string, payload map[string]any) {
	if s.Events == nil {
		return
	}
	_, err := s.Events.Append(ctx, usecases.Event{
		UseCaseID: useCaseID,
		EventType: eventType,
		ActorType: actor.Type,
		ActorID:   actor.ID,
		RequestID: requestID,
		CreatedAt: s.now(),
		Payload:   payload,
	})
	if err != nil {
		log.Printf("append event %s for use case %s: %v", eventType, useCaseID, err)
	}
}

func (s *GovernanceService) Create(ctx context.Context, input CreateInput) (usecases.Snapshot, error) {
	if err := requireRequestID(input.RequestID); err != nil {
		return usecases.Snapshot{}, err
	}
	snapshot := input.Snapshot
	if snapshot.Status == "" {
		snapshot.Status = usecases.StatusDiscovery
	}
	if governance.IsActivationStatus(snapshot.Status) {
		// New records never start active; activation goes through
		// ChangeStatus so the gates run.
		return usecases.Snapshot{}, usecases.ErrInvalidArgument
	}
	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = s.now()
	}
	created, err := s.UseCases.Create(ctx, snapshot)
	if err != nil {
		return usecases.Snapshot{}, err
	}
	s.appendEvent(ctx, created.ID, usecases.EventCreated, input.Actor, input.RequestID, map[string]any{
		"owner_name":        created.OwnerName,
		"business_function": created.BusinessFunction,
		"lifecycle_status":  string(created.Status),
	})
	return created, nil
}

func (s *GovernanceService) Get(ctx context.Context, useCaseID string) (usecases.Snapshot, error) {
	return s.UseCases.Get(ctx, useCaseID)
}

func (s *GovernanceService) List(ctx context.Context) ([]usecases.Snapshot, error) {
	return s.UseCases.List(ctx)
}

func (s *GovernanceService) CheckGovernance(ctx context.Context, useCaseID string) (governance.CheckResult, error) {
	snapshot, err := s.UseCases.Get(ctx, useCaseID)
	if err != nil {
		return governance.CheckResult{}, err
	}
	return governance.PerformFullGovernanceCheck(snapshot), nil
}

// Update applies a field patch. Status changes are rejected here;
// they go through ChangeStatus so the activation guard always runs.
// Every update to an active record is checked for governance
// regression first, and a regression deactivates the record to
// Backlog before the edit lands.
func (s *GovernanceService) Update(ctx context.Context, input UpdateInput) (UpdateResult, error) {
	if err := requireRequestID(input.RequestID); err != nil {
		return UpdateResult{}, err
	}
	if input.Patch.Status != nil {
		return UpdateResult{}, usecases.ErrInvalidArgument
	}
	current, err := s.UseCases.Get(ctx, input.UseCaseID)
	if err != nil {
		return UpdateResult{}, err
	}

	regression := s.Detector.CheckGovernanceRegression(current, input.Patch)
	if regression.IsLegacyUseCase {
		log.Printf("use case %s: governance regression ignored: %s", input.UseCaseID, regression.Reason)
		s.appendEvent(ctx, input.UseCaseID, usecases.EventGovernanceRegressed, input.Actor, input.RequestID, map[string]any{
			"legacy": true,
			"reason": regression.Reason,
		})
	}
	if regression.ShouldDeactivate {
		if err := s.UseCases.SetStatus(ctx, input.UseCaseID, usecases.StatusBacklog); err != nil {
			return UpdateResult{}, err
		}
		s.appendEvent(ctx, input.UseCaseID, usecases.EventGovernanceRegressed, input.Actor, input.RequestID, map[string]any{
			"regressed_gate": string(regression.RegressedGate),
			"reason":         regression.Reason,
		})
		s.appendEvent(ctx, input.UseCaseID, usecases.EventDeactivated, input.Actor, input.RequestID, map[string]any{
			"from_status": string(current.Status),
			"to_status":   string(usecases.StatusBacklog),
		})
	}

	updated, err := s.UseCases.ApplyPatch(ctx, input.UseCaseID, input.Patch)
	if err != nil {
		return UpdateResult{}, err
	}
	s.appendEvent(ctx, input.UseCaseID, usecases.EventUpdated, input.Actor, input.RequestID, nil)
	return UpdateResult{
		Snapshot:    updated,
		Regression:  regression,
		Deactivated: regression.ShouldDeactivate,
	}, nil
}

// ChangeStatus moves a use case between lifecycle statuses. Moves
// into an activation status must clear the built-in gates and, when
// an activation policy overlay is configured, that policy too.
func (s *GovernanceService) ChangeStatus(ctx context.Context, input StatusChangeInput) (StatusChangeResult, error) {
	if err := requireRequestID(input.RequestID); err != nil {
		return StatusChangeResult{}, err
	}
	current, err := s.UseCases.Get(ctx, input.UseCaseID)
	if err != nil {
		return StatusChangeResult{}, err
	}

	decision := governance.CheckActivationAllowed(current, input.Target)
	result := StatusChangeResult{Check: decision.Check, Snapshot: current}
	if decision.Blocked {
		result.Blocked = true
		s.appendEvent(ctx, input.UseCaseID, usecases.EventActivationBlocked, input.Actor, input.RequestID, map[string]any{
			"target_status":  string(input.Target),
			"missing_fields": decision.Check.MissingFields,
		})
		return result, nil
	}

	if s.Policy != nil && governance.IsActivationStatus(input.Target) && decision.Check != nil {
		policyDecision, err := s.Policy.EvaluateActivation(ctx, current, input.Target, *decision.Check)
		if err != nil {
			return StatusChangeResult{}, err
		}
		if !policyDecision.Allow {
			result.Blocked = true
			result.PolicyReasons = policyDecision.Reasons
			s.appendEvent(ctx, input.UseCaseID, usecases.EventActivationBlocked, input.Actor, input.RequestID, map[string]any{
				"target_status":  string(input.Target),
				"policy_reasons": policyDecision.Reasons,
			})
			return result, nil
		}
	}

	if err := s.UseCases.SetStatus(ctx, input.UseCaseID, input.Target); err != nil {
		return StatusChangeResult{}, err
	}
	s.appendEvent(ctx, input.UseCaseID, usecases.EventStatusChanged, input.Actor, input.RequestID, map[string]any{
		"from_status": string(current.Status),
		"to_status":   string(input.Target),
	})
	current.Status = input.Target
	result.Snapshot = current
	return result, nil
}

// ValidatePhaseTransition checks an operating model phase move and
// records it when allowed.
func (s *GovernanceService) ValidatePhaseTransition(ctx context.Context, input PhaseTransitionInput) (governance.PhaseTransitionCheck, error) {
	if err := requireRequestID(input.RequestID); err != nil {
		return governance.PhaseTransitionCheck{}, err
	}
	snapshot, err := s.UseCases.Get(ctx, input.UseCaseID)
	if err != nil {
		return governance.PhaseTransitionCheck{}, err
	}
	gates := governance.PerformFullGovernanceCheck(snapshot)
	check, err := governance.CheckPhaseTransitionRequirements(snapshot, input.FromPhaseID, input.ToPhaseID, s.Phases, input.Justification, &gates)
	if err != nil {
		return governance.PhaseTransitionCheck{}, err
	}
	if check.Allowed {
		payload := map[string]any{
			"from_phase": check.CurrentPhase,
			"to_phase":   check.TargetPhase,
		}
		if check.RequiresJustification {
			payload["justification"] = input.Justification
		}
		s.appendEvent(ctx, input.UseCaseID, usecases.EventPhaseTransitioned, input.Actor, input.RequestID, payload)
	}
	return check, nil
}
