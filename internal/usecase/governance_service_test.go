package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/domain/governance"
	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/domain/usecases"
)

var testActor = Actor{Type: "user", ID: "tester"}

func newTestGovernanceService(repo *memUseCaseRepo, events *memEventRepo) *GovernanceService {
	svc := NewGovernanceService(repo, events, nil, governance.DefaultPhaseConfig())
	svc.Clock = func() time.Time { return time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestCreateDefaultsToDiscovery(t *testing.T) {
	repo := newMemUseCaseRepo()
	events := &memEventRepo{}
	svc := newTestGovernanceService(repo, events)

	created, err := svc.Create(context.Background(), CreateInput{
		Snapshot:  usecases.Snapshot{OwnerName: "Jane Rivera"},
		RequestID: "req-1",
		Actor:     testActor,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Status != usecases.StatusDiscovery {
		t.Errorf("status = %q, want Discovery", created.Status)
	}
	if created.ID == "" {
		t.Error("expected an assigned id")
	}
	if got := events.typesFor(created.ID); len(got) != 1 || got[0] != usecases.EventCreated {
		t.Errorf("events = %v, want [usecase.created]", got)
	}
}

func TestCreateRejectsActiveInitialStatus(t *testing.T) {
	svc := newTestGovernanceService(newMemUseCaseRepo(), &memEventRepo{})
	for _, status := range governance.ActivationStatuses() {
		_, err := svc.Create(context.Background(), CreateInput{
			Snapshot:  compliantSnapshot("", status),
			RequestID: "req-1",
			Actor:     testActor,
		})
		if !errors.Is(err, usecases.ErrInvalidArgument) {
			t.Errorf("Create with initial status %q: err = %v, want invalid argument", status, err)
		}
	}
}

func TestRequestIDRequired(t *testing.T) {
	repo := newMemUseCaseRepo(compliantSnapshot("uc-1", usecases.StatusBacklog))
	svc := newTestGovernanceService(repo, &memEventRepo{})
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateInput{Snapshot: usecases.Snapshot{}}); !errors.Is(err, usecases.ErrInvalidArgument) {
		t.Errorf("Create without request id: err = %v", err)
	}
	if _, err := svc.Update(ctx, UpdateInput{UseCaseID: "uc-1"}); !errors.Is(err, usecases.ErrInvalidArgument) {
		t.Errorf("Update without request id: err = %v", err)
	}
	if _, err := svc.ChangeStatus(ctx, StatusChangeInput{UseCaseID: "uc-1", Target: usecases.StatusInFlight}); !errors.Is(err, usecases.ErrInvalidArgument) {
		t.Errorf("ChangeStatus without request id: err = %v", err)
	}
}

func TestUpdateRejectsStatusPatch(t *testing.T) {
	repo := newMemUseCaseRepo(compliantSnapshot("uc-1", usecases.StatusBacklog))
	svc := newTestGovernanceService(repo, &memEventRepo{})

	status := usecases.StatusInFlight
	_, err := svc.Update(context.Background(), UpdateInput{
		UseCaseID: "uc-1",
		Patch:     usecases.Patch{Status: &status},
		RequestID: "req-1",
		Actor:     testActor,
	})
	if !errors.Is(err, usecases.ErrInvalidArgument) {
		t.Fatalf("err = %v, want invalid argument", err)
	}
}

func TestUpdateRegressionDeactivatesToBacklog(t *testing.T) {
	repo := newMemUseCaseRepo(compliantSnapshot("uc-1", usecases.StatusInFlight))
	events := &memEventRepo{}
	svc := newTestGovernanceService(repo, events)

	// Blanking the owner breaks the operating model gate on an active,
	// post-enforcement record.
	result, err := svc.Update(context.Background(), UpdateInput{
		UseCaseID: "uc-1",
		Patch:     usecases.Patch{OwnerName: strPtr("")},
		RequestID: "req-1",
		Actor:     testActor,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !result.Deactivated {
		t.Fatal("expected deactivation")
	}
	if result.Regression.RegressedGate != governance.GateOperatingModel {
		t.Errorf("regressed gate = %q", result.Regression.RegressedGate)
	}
	stored, _ := repo.Get(context.Background(), "uc-1")
	if stored.Status != usecases.StatusBacklog {
		t.Errorf("stored status = %q, want Backlog", stored.Status)
	}
	if stored.OwnerName != "" {
		t.Error("patch must still land after deactivation")
	}

	want := []usecases.EventType{
		usecases.EventGovernanceRegressed,
		usecases.EventDeactivated,
		usecases.EventUpdated,
	}
	got := events.typesFor("uc-1")
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestUpdateLegacyRecordStaysActive(t *testing.T) {
	legacy := compliantSnapshot("uc-1", usecases.StatusImplemented)
	legacy.CreatedAt = time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	repo := newMemUseCaseRepo(legacy)
	events := &memEventRepo{}
	svc := newTestGovernanceService(repo, events)

	result, err := svc.Update(context.Background(), UpdateInput{
		UseCaseID: "uc-1",
		Patch:     usecases.Patch{OwnerName: strPtr("")},
		RequestID: "req-1",
		Actor:     testActor,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if result.Deactivated {
		t.Error("legacy records are never deactivated retroactively")
	}
	if !result.Regression.IsLegacyUseCase {
		t.Error("expected the legacy flag on the regression result")
	}
	stored, _ := repo.Get(context.Background(), "uc-1")
	if stored.Status != usecases.StatusImplemented {
		t.Errorf("stored status = %q, want Implemented", stored.Status)
	}

	got := events.typesFor("uc-1")
	if len(got) != 2 || got[0] != usecases.EventGovernanceRegressed || got[1] != usecases.EventUpdated {
		t.Errorf("events = %v, want regression warning then update", got)
	}
}

func TestUpdateInactiveRecordSkipsRegressionCheck(t *testing.T) {
	repo := newMemUseCaseRepo(compliantSnapshot("uc-1", usecases.StatusBacklog))
	events := &memEventRepo{}
	svc := newTestGovernanceService(repo, events)

	result, err := svc.Update(context.Background(), UpdateInput{
		UseCaseID: "uc-1",
		Patch:     usecases.Patch{OwnerName: strPtr("")},
		RequestID: "req-1",
		Actor:     testActor,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if result.Deactivated || result.Regression.ShouldDeactivate {
		t.Error("inactive records cannot regress")
	}
	if got := events.typesFor("uc-1"); len(got) != 1 || got[0] != usecases.EventUpdated {
		t.Errorf("events = %v, want [usecase.updated]", got)
	}
}

func TestChangeStatusBlockedByGates(t *testing.T) {
	incomplete := usecases.Snapshot{
		ID:        "uc-1",
		OwnerName: "Jane Rivera",
		Status:    usecases.StatusBacklog,
	}
	repo := newMemUseCaseRepo(incomplete)
	events := &memEventRepo{}
	svc := newTestGovernanceService(repo, events)

	result, err := svc.ChangeStatus(context.Background(), StatusChangeInput{
		UseCaseID: "uc-1",
		Target:    usecases.StatusInFlight,
		RequestID: "req-1",
		Actor:     testActor,
	})
	if err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}
	if !result.Blocked {
		t.Fatal("expected a blocked activation")
	}
	if result.Check == nil || result.Check.CanActivate {
		t.Errorf("check = %+v", result.Check)
	}
	stored, _ := repo.Get(context.Background(), "uc-1")
	if stored.Status != usecases.StatusBacklog {
		t.Errorf("stored status = %q, blocked activation must not change it", stored.Status)
	}
	if got := events.typesFor("uc-1"); len(got) != 1 || got[0] != usecases.EventActivationBlocked {
		t.Errorf("events = %v, want [usecase.activation_blocked]", got)
	}
}

func TestChangeStatusAllowedWhenCompliant(t *testing.T) {
	repo := newMemUseCaseRepo(compliantSnapshot("uc-1", usecases.StatusPrioritized))
	events := &memEventRepo{}
	svc := newTestGovernanceService(repo, events)

	result, err := svc.ChangeStatus(context.Background(), StatusChangeInput{
		UseCaseID: "uc-1",
		Target:    usecases.StatusInFlight,
		RequestID: "req-1",
		Actor:     testActor,
	})
	if err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}
	if result.Blocked {
		t.Fatalf("blocked with check %+v", result.Check)
	}
	if result.Snapshot.Status != usecases.StatusInFlight {
		t.Errorf("returned status = %q", result.Snapshot.Status)
	}
	stored, _ := repo.Get(context.Background(), "uc-1")
	if stored.Status != usecases.StatusInFlight {
		t.Errorf("stored status = %q", stored.Status)
	}
	if got := events.typesFor("uc-1"); len(got) != 1 || got[0] != usecases.EventStatusChanged {
		t.Errorf("events = %v, want [usecase.status_changed]", got)
	}
}

func TestChangeStatusPolicyOverlayDenies(t *testing.T) {
	repo := newMemUseCaseRepo(compliantSnapshot("uc-1", usecases.StatusPrioritized))
	events := &memEventRepo{}
	svc := newTestGovernanceService(repo, events)
	policy := &stubPolicy{decision: PolicyDecision{Allow: false, Reasons: []string{"HIGH_HARM_TIER"}}}
	svc.Policy = policy

	result, err := svc.ChangeStatus(context.Background(), StatusChangeInput{
		UseCaseID: "uc-1",
		Target:    usecases.StatusImplemented,
		RequestID: "req-1",
		Actor:     testActor,
	})
	if err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}
	if !result.Blocked {
		t.Fatal("policy deny must block even when the gates pass")
	}
	if len(result.PolicyReasons) != 1 || result.PolicyReasons[0] != "HIGH_HARM_TIER" {
		t.Errorf("policy reasons = %v", result.PolicyReasons)
	}
	stored, _ := repo.Get(context.Background(), "uc-1")
	if stored.Status != usecases.StatusPrioritized {
		t.Errorf("stored status = %q", stored.Status)
	}
}

func TestChangeStatusPolicySkippedForNonActivation(t *testing.T) {
	repo := newMemUseCaseRepo(compliantSnapshot("uc-1", usecases.StatusImplemented))
	svc := newTestGovernanceService(repo, &memEventRepo{})
	policy := &stubPolicy{decision: PolicyDecision{Allow: false}}
	svc.Policy = policy

	result, err := svc.ChangeStatus(context.Background(), StatusChangeInput{
		UseCaseID: "uc-1",
		Target:    usecases.StatusRetired,
		RequestID: "req-1",
		Actor:     testActor,
	})
	if err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}
	if result.Blocked {
		t.Error("retiring a record is not an activation")
	}
	if policy.calls != 0 {
		t.Errorf("policy evaluated %d times for a non-activation move", policy.calls)
	}
}

func TestValidatePhaseTransitionRecordsEvent(t *testing.T) {
	s := compliantSnapshot("uc-1", usecases.StatusPrioritized)
	s.ImpactScore = floatPtr(4)
	s.EffortScore = floatPtr(2)
	repo := newMemUseCaseRepo(s)
	events := &memEventRepo{}
	svc := newTestGovernanceService(repo, events)

	check, err := svc.ValidatePhaseTransition(context.Background(), PhaseTransitionInput{
		UseCaseID:   "uc-1",
		FromPhaseID: "foundation",
		ToPhaseID:   "strategic",
		RequestID:   "req-1",
		Actor:       testActor,
	})
	if err != nil {
		t.Fatalf("ValidatePhaseTransition: %v", err)
	}
	if !check.Allowed || check.RequiresJustification {
		t.Fatalf("check = %+v", check)
	}
	if check.Governance == nil || !check.Governance.CanActivate {
		t.Errorf("governance context = %+v", check.Governance)
	}
	if got := events.typesFor("uc-1"); len(got) != 1 || got[0] != usecases.EventPhaseTransitioned {
		t.Errorf("events = %v, want [usecase.phase_transitioned]", got)
	}
}
