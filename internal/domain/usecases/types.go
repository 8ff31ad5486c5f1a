package usecases

import (
	"errors"
	"strings"
	"time"
)

type LifecycleStatus string

const (
	StatusDiscovery   LifecycleStatus = "Discovery"
	StatusBacklog     LifecycleStatus = "Backlog"
	StatusPrioritized LifecycleStatus = "Prioritized"
	StatusInFlight    LifecycleStatus = "In-flight"
	StatusImplemented LifecycleStatus = "Implemented"
	StatusRetired     LifecycleStatus = "Retired"
)

type EventType string

const (
	EventCreated             EventType = "usecase.created"
	EventUpdated             EventType = "usecase.updated"
	EventStatusChanged       EventType = "usecase.status_changed"
	EventActivationBlocked   EventType = "usecase.activation_blocked"
	EventGovernanceRegressed EventType = "usecase.governance_regressed"
	EventDeactivated         EventType = "usecase.deactivated"
	EventPhaseTransitioned   EventType = "usecase.phase_transitioned"
	EventCapabilityDerived   EventType = "capability.derived"
	EventCapabilityOverride  EventType = "capability.override_set"
)

// Snapshot is the read-only view of a use case that governance and
// derivation evaluate. Pointer fields distinguish "never answered"
// from a recorded zero or false.
type Snapshot struct {
	ID               string
	OwnerName        string
	BusinessFunction string
	Status           LifecycleStatus

	// Intake scores, each 1..5 when present.
	BusinessValueScore      *int
	StrategicAlignmentScore *int
	FeasibilityScore        *int
	DataReadinessScore      *int
	RiskScore               *int

	// Prioritization axes on a 1..5 scale, used for quadrant fallback.
	ImpactScore *float64
	EffortScore *float64

	// Responsible AI attestations. Presence is what gates check.
	ExplainabilityRequirement string
	CustomerHarmRiskTier      string
	HumanAccountability       *bool
	CrossBorderData           *bool
	ThirdPartyModel           *bool

	// Capability attributes consumed by derivation.
	TOMPhase         string
	TOMPhaseOverride bool
	OperatingModel   string
	Quadrant         string
	TShirtSize       string
	DeploymentStatus string
	AnnualInvestment *float64

	CreatedAt time.Time
}

// Patch carries a proposed field update. Nil means "leave unchanged".
type Patch struct {
	OwnerName        *string
	BusinessFunction *string
	Status           *LifecycleStatus

	BusinessValueScore      *int
	StrategicAlignmentScore *int
	FeasibilityScore        *int
	DataReadinessScore      *int
	RiskScore               *int

	ImpactScore *float64
	EffortScore *float64

	ExplainabilityRequirement *string
	CustomerHarmRiskTier      *string
	HumanAccountability       *bool
	CrossBorderData           *bool
	ThirdPartyModel           *bool

	TOMPhase         *string
	OperatingModel   *string
	Quadrant         *string
	TShirtSize       *string
	DeploymentStatus *string
	AnnualInvestment *float64
}

type Event struct {
	ID        string
	UseCaseID string
	EventType EventType
	ActorType string
	ActorID   string
	RequestID string
	CreatedAt time.Time
	Payload   map[string]any
}

type Principal struct {
	Subject string
	Scopes  []string
	Roles   []string
}

type Authorizer interface {
	Require(principal Principal, permission string) error
}

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInternal        = errors.New("internal error")
)

// Apply merges a patch onto a snapshot and returns the hypothetical
// post-update view. The receiver is never mutated.
func (s Snapshot) Apply(p Patch) Snapshot {
	out := s
	if p.OwnerName != nil {
		out.OwnerName = *p.OwnerName
	}
	if p.BusinessFunction != nil {
		out.BusinessFunction = *p.BusinessFunction
	}
	if p.Status != nil {
		out.Status = *p.Status
	}
	if p.BusinessValueScore != nil {
		out.BusinessValueScore = p.BusinessValueScore
	}
	if p.StrategicAlignmentScore != nil {
		out.StrategicAlignmentScore = p.StrategicAlignmentScore
	}
	if p.FeasibilityScore != nil {
		out.FeasibilityScore = p.FeasibilityScore
	}
	if p.DataReadinessScore != nil {
		out.DataReadinessScore = p.DataReadinessScore
	}
	if p.RiskScore != nil {
		out.RiskScore = p.RiskScore
	}
	if p.ImpactScore != nil {
		out.ImpactScore = p.ImpactScore
	}
	if p.EffortScore != nil {
		out.EffortScore = p.EffortScore
	}
	if p.ExplainabilityRequirement != nil {
		out.ExplainabilityRequirement = *p.ExplainabilityRequirement
	}
	if p.CustomerHarmRiskTier != nil {
		out.CustomerHarmRiskTier = *p.CustomerHarmRiskTier
	}
	if p.HumanAccountability != nil {
		out.HumanAccountability = p.HumanAccountability
	}
	if p.CrossBorderData != nil {
		out.CrossBorderData = p.CrossBorderData
	}
	if p.ThirdPartyModel != nil {
		out.ThirdPartyModel = p.ThirdPartyModel
	}
	if p.TOMPhase != nil {
		out.TOMPhase = *p.TOMPhase
		out.TOMPhaseOverride = true
	}
	if p.OperatingModel != nil {
		out.OperatingModel = *p.OperatingModel
	}
	if p.Quadrant != nil {
		out.Quadrant = *p.Quadrant
	}
	if p.TShirtSize != nil {
		out.TShirtSize = *p.TShirtSize
	}
	if p.DeploymentStatus != nil {
		out.DeploymentStatus = *p.DeploymentStatus
	}
	if p.AnnualInvestment != nil {
		out.AnnualInvestment = p.AnnualInvestment
	}
	return out
}

// FieldPresent reports whether the named snapshot field carries a
// value. Phase data requirements reference fields by these names.
func (s Snapshot) FieldPresent(field string) bool {
	switch field {
	case "owner_name":
		return strings.TrimSpace(s.OwnerName) != ""
	case "business_function":
		return strings.TrimSpace(s.BusinessFunction) != ""
	case "lifecycle_status":
		return s.Status != "" && s.Status != StatusDiscovery
	case "business_value_score":
		return s.BusinessValueScore != nil
	case "strategic_alignment_score":
		return s.StrategicAlignmentScore != nil
	case "feasibility_score":
		return s.FeasibilityScore != nil
	case "data_readiness_score":
		return s.DataReadinessScore != nil
	case "risk_score":
		return s.RiskScore != nil
	case "impact_score":
		return s.ImpactScore != nil
	case "effort_score":
		return s.EffortScore != nil
	case "explainability_requirement":
		return strings.TrimSpace(s.ExplainabilityRequirement) != ""
	case "customer_harm_risk_tier":
		return strings.TrimSpace(s.CustomerHarmRiskTier) != ""
	case "human_accountability":
		return s.HumanAccountability != nil
	case "cross_border_data":
		return s.CrossBorderData != nil
	case "third_party_model":
		return s.ThirdPartyModel != nil
	case "tom_phase":
		return strings.TrimSpace(s.TOMPhase) != ""
	case "operating_model":
		return strings.TrimSpace(s.OperatingModel) != ""
	case "quadrant":
		return strings.TrimSpace(s.Quadrant) != ""
	case "tshirt_size":
		return strings.TrimSpace(s.TShirtSize) != ""
	case "deployment_status":
		return strings.TrimSpace(s.DeploymentStatus) != ""
	case "annual_investment":
		return s.AnnualInvestment != nil
	default:
		return false
	}
}
