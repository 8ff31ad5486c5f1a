package governance

import (
	"testing"

	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/domain/usecases"
)

func TestNonActivatingTargetNeverBlocked(t *testing.T) {
	// Even a completely empty record moves freely into non-activation
	// statuses.
	targets := []usecases.LifecycleStatus{
		usecases.StatusDiscovery,
		usecases.StatusBacklog,
		usecases.StatusPrioritized,
		usecases.StatusRetired,
	}
	for _, target := range targets {
		decision := CheckActivationAllowed(usecases.Snapshot{}, target)
		if decision.Blocked {
			t.Errorf("move to %q blocked", target)
		}
		if decision.Check != nil {
			t.Errorf("move to %q ran a governance check", target)
		}
	}
}

func TestActivationBlockedIffGovernanceFails(t *testing.T) {
	tests := []struct {
		name     string
		snapshot usecases.Snapshot
		blocked  bool
	}{
		{"empty record", usecases.Snapshot{}, true},
		{"compliant record", compliantSnapshot(), false},
		{
			"missing attestation",
			func() usecases.Snapshot {
				s := compliantSnapshot()
				s.ThirdPartyModel = nil
				return s
			}(),
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, target := range ActivationStatuses() {
				decision := CheckActivationAllowed(tt.snapshot, target)
				if decision.Blocked != tt.blocked {
					t.Errorf("target %q: blocked = %v, want %v", target, decision.Blocked, tt.blocked)
				}
				if decision.Check == nil {
					t.Fatalf("target %q: activation decision missing governance check", target)
				}
				if decision.Check.CanActivate == decision.Blocked {
					t.Errorf("target %q: blocked must mirror canActivate", target)
				}
			}
		})
	}
}
