package governance

import (
	"time"

	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/domain/usecases"
)

// DefaultEnforcementDate is when governance enforcement began. Use
// cases created before it are grandfathered: a regression on them is
// reported but never forces deactivation.
var DefaultEnforcementDate = time.Date(2026, time.January, 24, 0, 0, 0, 0, time.UTC)

type RegressionResult struct {
	ShouldDeactivate bool
	RegressedGate    GateID
	IsLegacyUseCase  bool
	Reason           string
}

// RegressionDetector checks whether an edit to an already-active use
// case would break the operating-model gate that justified its
// activation. The enforcement date is injected so tests can place a
// record on either side of the cutoff.
type RegressionDetector struct {
	EnforcementDate time.Time
}

func NewRegressionDetector(enforcementDate time.Time) *RegressionDetector {
	if enforcementDate.IsZero() {
		enforcementDate = DefaultEnforcementDate
	}
	return &RegressionDetector{EnforcementDate: enforcementDate}
}

// CheckGovernanceRegression evaluates a proposed update against the
// current snapshot. Only Gate 1 is re-checked: administrative edits
// (clearing an owner, unsetting a function) are what break live
// records in practice, and intake scores or attestations are not
// editable into invalidity without an explicit re-vetting flow.
// The detector only decides; flipping the status is the caller's job.
func (d *RegressionDetector) CheckGovernanceRegression(current usecases.Snapshot, updates usecases.Patch) RegressionResult {
	if !IsActivationStatus(current.Status) {
		return RegressionResult{ShouldDeactivate: false}
	}
	merged := current.Apply(updates)
	if EvaluateOperatingModelGate(merged).Passed {
		return RegressionResult{ShouldDeactivate: false}
	}
	if current.CreatedAt.Before(d.EnforcementDate) {
		return RegressionResult{
			ShouldDeactivate: false,
			IsLegacyUseCase:  true,
			Reason:           "Legacy use case — governance enforcement not retroactive",
		}
	}
	return RegressionResult{
		ShouldDeactivate: true,
		RegressedGate:    GateOperatingModel,
		Reason:           "operating model gate no longer satisfied",
	}
}
