package governance

import (
	"strings"

	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/domain/usecases"
)

type GateID string

const (
	GateOperatingModel GateID = "gate1_operating_model"
	GateIntake         GateID = "gate2_intake_prioritization"
	GateResponsibleAI  GateID = "gate3_responsible_ai"
)

type GateResult struct {
	GateID        GateID
	Passed        bool
	MissingFields []string
}

// CheckResult aggregates the three gate evaluations for one snapshot.
// It is produced fresh on every call and never cached.
type CheckResult struct {
	Gate1         GateResult
	Gate2         GateResult
	Gate3         GateResult
	MissingFields []string
	CanActivate   bool
}

var scoreFields = []struct {
	name  string
	value func(usecases.Snapshot) *int
}{
	{"business_value_score", func(s usecases.Snapshot) *int { return s.BusinessValueScore }},
	{"strategic_alignment_score", func(s usecases.Snapshot) *int { return s.StrategicAlignmentScore }},
	{"feasibility_score", func(s usecases.Snapshot) *int { return s.FeasibilityScore }},
	{"data_readiness_score", func(s usecases.Snapshot) *int { return s.DataReadinessScore }},
	{"risk_score", func(s usecases.Snapshot) *int { return s.RiskScore }},
}

// EvaluateOperatingModelGate checks that ownership is established:
// named owner, named business function, and a status past Discovery.
func EvaluateOperatingModelGate(s usecases.Snapshot) GateResult {
	var missing []string
	if strings.TrimSpace(s.OwnerName) == "" {
		missing = append(missing, "owner_name")
	}
	if strings.TrimSpace(s.BusinessFunction) == "" {
		missing = append(missing, "business_function")
	}
	if s.Status == "" || s.Status == usecases.StatusDiscovery {
		missing = append(missing, "lifecycle_status")
	}
	return GateResult{
		GateID:        GateOperatingModel,
		Passed:        len(missing) == 0,
		MissingFields: missing,
	}
}

// EvaluateIntakeGate checks the five prioritization scores. Gate 2
// cannot pass while Gate 1 fails: ownership comes before scoring.
func EvaluateIntakeGate(s usecases.Snapshot) GateResult {
	if !EvaluateOperatingModelGate(s).Passed {
		return GateResult{GateID: GateIntake}
	}
	var missing []string
	for _, field := range scoreFields {
		value := field.value(s)
		if value == nil || *value < 1 || *value > 5 {
			missing = append(missing, field.name)
		}
	}
	return GateResult{
		GateID:        GateIntake,
		Passed:        len(missing) == 0,
		MissingFields: missing,
	}
}

// EvaluateResponsibleAIGate checks that every attestation has been
// answered. Presence is what counts: a recorded "false" is a decision.
func EvaluateResponsibleAIGate(s usecases.Snapshot) GateResult {
	if !EvaluateIntakeGate(s).Passed {
		return GateResult{GateID: GateResponsibleAI}
	}
	var missing []string
	if strings.TrimSpace(s.ExplainabilityRequirement) == "" {
		missing = append(missing, "explainability_requirement")
	}
	if strings.TrimSpace(s.CustomerHarmRiskTier) == "" {
		missing = append(missing, "customer_harm_risk_tier")
	}
	if s.HumanAccountability == nil {
		missing = append(missing, "human_accountability")
	}
	if s.CrossBorderData == nil {
		missing = append(missing, "cross_border_data")
	}
	if s.ThirdPartyModel == nil {
		missing = append(missing, "third_party_model")
	}
	return GateResult{
		GateID:        GateResponsibleAI,
		Passed:        len(missing) == 0,
		MissingFields: missing,
	}
}

// PerformFullGovernanceCheck evaluates all three gates in order. A
// failing earlier gate reports its own missing fields only; later
// gates are reported as not passed without redundant detail.
func PerformFullGovernanceCheck(s usecases.Snapshot) CheckResult {
	gate1 := EvaluateOperatingModelGate(s)
	gate2 := GateResult{GateID: GateIntake}
	gate3 := GateResult{GateID: GateResponsibleAI}

	missing := append([]string(nil), gate1.MissingFields...)
	if gate1.Passed {
		gate2 = EvaluateIntakeGate(s)
		missing = append(missing, gate2.MissingFields...)
	}
	if gate2.Passed {
		gate3 = EvaluateResponsibleAIGate(s)
		missing = append(missing, gate3.MissingFields...)
	}

	return CheckResult{
		Gate1:         gate1,
		Gate2:         gate2,
		Gate3:         gate3,
		MissingFields: missing,
		CanActivate:   gate1.Passed && gate2.Passed && gate3.Passed,
	}
}
