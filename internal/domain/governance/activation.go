package governance

import (
	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/domain/usecases"
)

// activationStatuses are the lifecycle states that represent
// committed, resourced work. Moving into one is gated; everything
// else (backlog shuffling, retirement) is free.
var activationStatuses = map[usecases.LifecycleStatus]struct{}{
	usecases.StatusInFlight:    {},
	usecases.StatusImplemented: {},
}

func IsActivationStatus(status usecases.LifecycleStatus) bool {
	_, ok := activationStatuses[status]
	return ok
}

// ActivationStatuses returns the activation set in a stable order for
// callers that surface it (API responses, error messages).
func ActivationStatuses() []usecases.LifecycleStatus {
	return []usecases.LifecycleStatus{usecases.StatusInFlight, usecases.StatusImplemented}
}

type ActivationDecision struct {
	Blocked bool
	Check   *CheckResult
}

// CheckActivationAllowed decides whether a status change may proceed.
// Non-activating targets are never gated. Activating targets run the
// full governance check; the check is returned whenever it ran so the
// caller can report exactly which fields are missing.
func CheckActivationAllowed(s usecases.Snapshot, target usecases.LifecycleStatus) ActivationDecision {
	if !IsActivationStatus(target) {
		return ActivationDecision{Blocked: false}
	}
	check := PerformFullGovernanceCheck(s)
	return ActivationDecision{
		Blocked: !check.CanActivate,
		Check:   &check,
	}
}
