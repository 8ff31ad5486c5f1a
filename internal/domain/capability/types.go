package capability

import "time"

type FtePair struct {
	Vendor float64
	Client float64
}

type Staffing struct {
	Current FtePair
	Planned PlannedStaffing
}

type PlannedStaffing struct {
	Month6  FtePair
	Month12 FtePair
	Month18 FtePair
}

type MilestoneState string

const (
	MilestoneCompleted  MilestoneState = "completed"
	MilestoneInProgress MilestoneState = "in_progress"
	MilestonePending    MilestoneState = "pending"
)

type Milestone struct {
	ID    string
	Name  string
	State MilestoneState
}

type KnowledgeTransfer struct {
	Milestones   []Milestone
	CompletedIDs []string
	InProgressID string
}

type Training struct {
	TotalHoursCompleted float64
	TotalHoursPlanned   float64
}

type SelfSufficiencyTarget struct {
	TargetDate         time.Time
	TargetIndependence int
	AdvisoryRetainer   bool
}

type IndependenceEntry struct {
	RecordedAt time.Time
	Percentage int
	Source     string
	Note       string
}

type Provenance struct {
	Derived     bool
	DerivedAt   time.Time
	DerivedFrom DerivationInputs
}

type DerivationInputs struct {
	TOMPhase   string
	Quadrant   string
	TShirtSize string
}

// Transition is the capability-transition forecast for one use case.
// When Provenance.Derived is false a human has taken over the record
// and the engine must never silently overwrite it.
type Transition struct {
	UseCaseID              string
	IndependencePercentage int
	IndependenceHistory    []IndependenceEntry
	Staffing               Staffing
	KnowledgeTransfer      KnowledgeTransfer
	Training               Training
	SelfSufficiency        SelfSufficiencyTarget
	Provenance             Provenance
}

// ShouldRecalculate implements override protection: absent or derived
// records recompute; hand-edited records are skipped unless an admin
// batch run forces it.
func ShouldRecalculate(existing *Transition, force bool) bool {
	if existing == nil || force {
		return true
	}
	return existing.Provenance.Derived
}
