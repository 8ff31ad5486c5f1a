package db

import "time"

// UseCaseModel keeps the source data model's string-typed flags
// ("true"/"false"/empty); the repo coerces them to real booleans at
// the engine boundary.
type UseCaseModel struct {
	ID               string `gorm:"type:uuid;primaryKey"`
	OwnerName        string
	BusinessFunction string
	Status           string `gorm:"index;not null"`

	BusinessValueScore      *int
	StrategicAlignmentScore *int
	FeasibilityScore        *int
	DataReadinessScore      *int
	RiskScore               *int

	ImpactScore *float64
	EffortScore *float64

	ExplainabilityRequirement string
	CustomerHarmRiskTier      string
	HumanAccountability       string
	CrossBorderData           string
	ThirdPartyModel           string

	TOMPhase         string `gorm:"column:tom_phase"`
	TOMPhaseOverride bool   `gorm:"column:tom_phase_override"`
	OperatingModel   string
	Quadrant         string
	TShirtSize       string `gorm:"column:tshirt_size"`
	DeploymentStatus string
	AnnualInvestment *float64

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (UseCaseModel) TableName() string { return "use_cases" }

type CapabilityTransitionModel struct {
	UseCaseID              string `gorm:"type:uuid;primaryKey"`
	IndependencePercentage int    `gorm:"not null"`
	Derived                bool   `gorm:"index;not null"`
	DerivedAt              time.Time
	TransitionJSON         []byte    `gorm:"type:jsonb;not null"`
	UpdatedAt              time.Time `gorm:"not null"`
}

func (CapabilityTransitionModel) TableName() string { return "capability_transitions" }

type GovernanceEventModel struct {
	ID          string `gorm:"type:uuid;primaryKey"`
	UseCaseID   string `gorm:"type:uuid;index;not null"`
	EventType   string `gorm:"index;not null"`
	ActorType   string
	ActorID     string
	RequestID   string
	CreatedAt   time.Time `gorm:"index;not null"`
	PayloadJSON []byte    `gorm:"type:jsonb"`
}

func (GovernanceEventModel) TableName() string { return "governance_events" }
