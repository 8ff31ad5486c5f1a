package governance

import (
	"testing"
	"time"

	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/domain/usecases"
)

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }

func strPtr(v string) *string { return &v }

func compliantSnapshot() usecases.Snapshot {
	return usecases.Snapshot{
		ID:                        "uc-1",
		OwnerName:                 "Jane",
		BusinessFunction:          "Claims",
		Status:                    usecases.StatusBacklog,
		BusinessValueScore:        intPtr(4),
		StrategicAlignmentScore:   intPtr(4),
		FeasibilityScore:          intPtr(4),
		DataReadinessScore:        intPtr(4),
		RiskScore:                 intPtr(4),
		ExplainabilityRequirement: "required",
		CustomerHarmRiskTier:      "low",
		HumanAccountability:       boolPtr(true),
		CrossBorderData:           boolPtr(false),
		ThirdPartyModel:           boolPtr(false),
		CreatedAt:                 time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestOperatingModelGateReportsEachMissingField(t *testing.T) {
	got := EvaluateOperatingModelGate(usecases.Snapshot{Status: usecases.StatusDiscovery})
	if got.Passed {
		t.Fatal("expected gate 1 to fail")
	}
	want := []string{"owner_name", "business_function", "lifecycle_status"}
	if len(got.MissingFields) != len(want) {
		t.Fatalf("missing fields = %v, want %v", got.MissingFields, want)
	}
	for i, field := range want {
		if got.MissingFields[i] != field {
			t.Errorf("missing field[%d] = %q, want %q", i, got.MissingFields[i], field)
		}
	}
}

func TestIntakeGateRequiresOperatingModelFirst(t *testing.T) {
	// Scores are complete but ownership is not: Gate 2 must not pass.
	s := compliantSnapshot()
	s.OwnerName = ""
	if got := EvaluateIntakeGate(s); got.Passed {
		t.Fatal("gate 2 passed while gate 1 fails")
	}
}

func TestIntakeGateScoreValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*usecases.Snapshot)
		want   bool
	}{
		{"all scores valid", func(s *usecases.Snapshot) {}, true},
		{"missing score", func(s *usecases.Snapshot) { s.RiskScore = nil }, false},
		{"score below range", func(s *usecases.Snapshot) { s.FeasibilityScore = intPtr(0) }, false},
		{"score above range", func(s *usecases.Snapshot) { s.BusinessValueScore = intPtr(6) }, false},
		{"boundary low", func(s *usecases.Snapshot) { s.DataReadinessScore = intPtr(1) }, true},
		{"boundary high", func(s *usecases.Snapshot) { s.StrategicAlignmentScore = intPtr(5) }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := compliantSnapshot()
			tt.mutate(&s)
			if got := EvaluateIntakeGate(s); got.Passed != tt.want {
				t.Errorf("passed = %v, want %v (missing %v)", got.Passed, tt.want, got.MissingFields)
			}
		})
	}
}

func TestResponsibleAIPresenceSemantics(t *testing.T) {
	// A recorded "false" answers the attestation; nil does not.
	s := compliantSnapshot()
	s.HumanAccountability = boolPtr(false)
	if got := EvaluateResponsibleAIGate(s); !got.Passed {
		t.Fatalf("recorded false should satisfy the attestation, missing %v", got.MissingFields)
	}
	s.HumanAccountability = nil
	if got := EvaluateResponsibleAIGate(s); got.Passed {
		t.Fatal("nil attestation should not pass")
	}
}

func TestGateMonotonicity(t *testing.T) {
	snapshots := []usecases.Snapshot{
		{},
		{OwnerName: "Jane"},
		compliantSnapshot(),
		func() usecases.Snapshot {
			s := compliantSnapshot()
			s.RiskScore = nil
			return s
		}(),
		func() usecases.Snapshot {
			s := compliantSnapshot()
			s.CustomerHarmRiskTier = ""
			return s
		}(),
	}
	for i, s := range snapshots {
		gate1 := EvaluateOperatingModelGate(s)
		gate2 := EvaluateIntakeGate(s)
		gate3 := EvaluateResponsibleAIGate(s)
		if gate2.Passed && !gate1.Passed {
			t.Errorf("snapshot %d: gate 2 passed without gate 1", i)
		}
		if gate3.Passed && !gate2.Passed {
			t.Errorf("snapshot %d: gate 3 passed without gate 2", i)
		}
	}
}

func TestFullGovernanceCheckShortCircuitsReporting(t *testing.T) {
	// A gate 1 failure reports gate 1 fields only; gates 2 and 3 are
	// reported as not passed without their own field lists.
	check := PerformFullGovernanceCheck(usecases.Snapshot{Status: usecases.StatusDiscovery})
	if check.CanActivate {
		t.Fatal("expected canActivate=false")
	}
	if len(check.Gate2.MissingFields) != 0 || len(check.Gate3.MissingFields) != 0 {
		t.Errorf("later gates reported fields: gate2=%v gate3=%v", check.Gate2.MissingFields, check.Gate3.MissingFields)
	}
	if len(check.MissingFields) != 3 {
		t.Errorf("aggregate missing = %v, want the 3 gate-1 fields", check.MissingFields)
	}
}

func TestFullGovernanceCheckCompliant(t *testing.T) {
	check := PerformFullGovernanceCheck(compliantSnapshot())
	if !check.CanActivate {
		t.Fatalf("expected canActivate=true, missing %v", check.MissingFields)
	}
	if !check.Gate1.Passed || !check.Gate2.Passed || !check.Gate3.Passed {
		t.Error("all three gates should pass")
	}
	if len(check.MissingFields) != 0 {
		t.Errorf("missing fields = %v, want none", check.MissingFields)
	}
}
