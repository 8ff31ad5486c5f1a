package capability

import (
	"math"
	"strings"
	"time"

	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/domain/usecases"
)

const (
	defaultTShirtSize   = "M"
	trainingHoursPerFte = 20
	targetIndependence  = 90
	advisoryThreshold   = 75
	month18VendorFloor  = 0.5
)

// KnowledgeTransferMilestones is the fixed hand-off ladder, in order.
var KnowledgeTransferMilestones = []struct {
	ID   string
	Name string
}{
	{"kt1_shadowing", "Vendor-led delivery with client shadowing"},
	{"kt2_guided_execution", "Client execution under vendor guidance"},
	{"kt3_documentation_handoff", "Runbook and documentation hand-off"},
	{"kt4_independent_operation", "Independent operation with vendor backup"},
	{"kt5_client_led_enhancement", "Client-led enhancement delivery"},
	{"kt6_full_ownership", "Full client ownership"},
}

// Attributes is the normalized input to derivation. Every default is
// filled here, once, so no downstream rule needs its own fallback.
type Attributes struct {
	TOMPhase         string
	OperatingModel   string
	Quadrant         string
	TShirtSize       string
	DeploymentStatus string
}

// NormalizeAttributes fills defaults: t-shirt size M, quadrant from
// impact/effort scores when not set explicitly.
func NormalizeAttributes(s usecases.Snapshot) Attributes {
	attrs := Attributes{
		TOMPhase:         strings.TrimSpace(s.TOMPhase),
		OperatingModel:   strings.TrimSpace(s.OperatingModel),
		Quadrant:         strings.TrimSpace(s.Quadrant),
		TShirtSize:       strings.TrimSpace(s.TShirtSize),
		DeploymentStatus: strings.TrimSpace(s.DeploymentStatus),
	}
	if attrs.TShirtSize == "" {
		attrs.TShirtSize = defaultTShirtSize
	}
	if attrs.Quadrant == "" {
		attrs.Quadrant = quadrantFromScores(s.ImpactScore, s.EffortScore)
	}
	return attrs
}

func quadrantFromScores(impact, effort *float64) string {
	var i, e float64
	if impact != nil {
		i = *impact
	}
	if effort != nil {
		e = *effort
	}
	switch {
	case i >= 2.5 && e < 2.5:
		return QuadrantQuickWin
	case i >= 2.5:
		return QuadrantStrategicBet
	case e < 2.5:
		return QuadrantExperimental
	default:
		return QuadrantWatchlist
	}
}

// SelectArchetype maps the TOM phase and delivery model onto one of
// the eight benchmark archetypes by substring match. An unknown phase
// lands on foundation_coe.
func SelectArchetype(tomPhase, operatingModel string) ArchetypeKey {
	phase := strings.ToLower(tomPhase)
	centralized := strings.Contains(strings.ToLower(operatingModel), "centralized")
	switch {
	case strings.Contains(phase, "steady"):
		if centralized {
			return ArchetypeSteadyStateCentralized
		}
		return ArchetypeSteadyStateFederated
	case strings.Contains(phase, "transition"):
		if centralized {
			return ArchetypeTransitionCentralized
		}
		return ArchetypeTransitionFederated
	case strings.Contains(phase, "strategic"):
		if centralized {
			return ArchetypeStrategicCentralized
		}
		return ArchetypeStrategicHybrid
	case strings.Contains(phase, "foundation"):
		if centralized {
			return ArchetypeFoundationCentralized
		}
		return ArchetypeFoundationCoE
	default:
		return ArchetypeFoundationCoE
	}
}

// DeriveTOMPhase infers an operating model phase from lifecycle
// status for records where no phase has been set by hand.
func DeriveTOMPhase(status usecases.LifecycleStatus) string {
	switch status {
	case usecases.StatusImplemented:
		return "steady-state"
	case usecases.StatusInFlight:
		return "transition"
	case usecases.StatusPrioritized:
		return "strategic"
	default:
		return "foundation"
	}
}

func independenceBaseline(deploymentStatus string) int {
	switch strings.ToLower(deploymentStatus) {
	case "production":
		return 65
	case "pilot":
		return 40
	case "poc":
		return 20
	default:
		return 10
	}
}

func completedMilestoneCount(deploymentStatus string) int {
	switch strings.ToLower(deploymentStatus) {
	case "production":
		return 4
	case "pilot":
		return 2
	case "poc":
		return 1
	default:
		return 0
	}
}

func clampIndependence(value int, r IndependenceRange) int {
	if value < r.Min {
		return r.Min
	}
	if value > r.Max {
		return r.Max
	}
	return value
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// vendorDrawdownFractions are how much of the original vendor FTE has
// been handed off at 6, 12 and 18 months at nominal pace.
var vendorDrawdownFractions = [3]float64{0.25, 0.6, 0.85}

func staffingCurve(baseFte, vendorMultiplier, paceModifier float64) Staffing {
	vendor := round1(baseFte * vendorMultiplier)
	client := round1(baseFte - vendor)
	total := vendor + client

	rate := 1.0
	if paceModifier > 0 {
		rate = 1 / paceModifier
	}
	plan := func(fraction, floor float64) FtePair {
		v := vendor * (1 - fraction*rate)
		if v < floor {
			v = floor
		}
		v = round1(v)
		return FtePair{Vendor: v, Client: round1(total - v)}
	}
	return Staffing{
		Current: FtePair{Vendor: vendor, Client: client},
		Planned: PlannedStaffing{
			Month6:  plan(vendorDrawdownFractions[0], 0),
			Month12: plan(vendorDrawdownFractions[1], 0),
			Month18: plan(vendorDrawdownFractions[2], month18VendorFloor),
		},
	}
}

func knowledgeTransferPlan(deploymentStatus string) KnowledgeTransfer {
	completed := completedMilestoneCount(deploymentStatus)
	kt := KnowledgeTransfer{
		Milestones: make([]Milestone, 0, len(KnowledgeTransferMilestones)),
	}
	for i, m := range KnowledgeTransferMilestones {
		state := MilestonePending
		switch {
		case i < completed:
			state = MilestoneCompleted
			kt.CompletedIDs = append(kt.CompletedIDs, m.ID)
		case i == completed:
			state = MilestoneInProgress
			kt.InProgressID = m.ID
		}
		kt.Milestones = append(kt.Milestones, Milestone{ID: m.ID, Name: m.Name, State: state})
	}
	return kt
}

// DeriveDefaults computes a full capability-transition forecast from a
// use case's categorical attributes and the benchmark table. Pure: the
// snapshot and config are never mutated, and a fixed now gives a fixed
// output.
func DeriveDefaults(s usecases.Snapshot, cfg BenchmarkConfig, now time.Time) Transition {
	attrs := NormalizeAttributes(s)

	key := SelectArchetype(attrs.TOMPhase, attrs.OperatingModel)
	archetype := cfg.Archetypes[key]

	pace, ok := cfg.PaceModifiers[attrs.Quadrant]
	if !ok || pace <= 0 {
		pace = 1.0
	}
	baseFte, ok := cfg.TShirtBaseFte[attrs.TShirtSize]
	if !ok {
		baseFte = cfg.TShirtBaseFte[defaultTShirtSize]
	}

	staffing := staffingCurve(baseFte, archetype.VendorFteMultiplier, pace)
	independence := clampIndependence(independenceBaseline(attrs.DeploymentStatus), archetype.IndependenceRange)
	transitionMonths := int(math.Round(float64(archetype.TransitionMonths) * pace))

	return Transition{
		UseCaseID:              s.ID,
		IndependencePercentage: independence,
		IndependenceHistory: []IndependenceEntry{{
			RecordedAt: now,
			Percentage: independence,
			Source:     "derived",
			Note:       "benchmark derivation (" + string(key) + ")",
		}},
		Staffing:          staffing,
		KnowledgeTransfer: knowledgeTransferPlan(attrs.DeploymentStatus),
		Training: Training{
			TotalHoursCompleted: 0,
			TotalHoursPlanned:   baseFte * trainingHoursPerFte,
		},
		SelfSufficiency: SelfSufficiencyTarget{
			TargetDate:         now.AddDate(0, transitionMonths, 0),
			TargetIndependence: targetIndependence,
			AdvisoryRetainer:   independence >= advisoryThreshold,
		},
		Provenance: Provenance{
			Derived:   true,
			DerivedAt: now,
			DerivedFrom: DerivationInputs{
				TOMPhase:   attrs.TOMPhase,
				Quadrant:   attrs.Quadrant,
				TShirtSize: attrs.TShirtSize,
			},
		},
	}
}
