package governance

import (
	"strings"

	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/domain/usecases"
)

// PhaseConfig is supplied by the caller: an ordered list of operating
// model phases with per-phase entry/exit data requirements and the
// transitions the process map defines.
type PhaseConfig struct {
	Phases []Phase
}

type Phase struct {
	ID                 string
	Name               string
	DataRequirements   PhaseDataRequirements
	AllowedTransitions []string
}

type PhaseDataRequirements struct {
	Entry []string
	Exit  []string
}

type PhaseTransitionCheck struct {
	Allowed               bool
	RequiresJustification bool
	CurrentPhase          string
	TargetPhase           string
	MissingExitFields     []string
	Governance            *CheckResult
}

func (c PhaseConfig) phaseByID(id string) (Phase, bool) {
	for _, p := range c.Phases {
		if p.ID == id {
			return p, true
		}
	}
	return Phase{}, false
}

func (p Phase) allowsTransitionTo(id string) bool {
	for _, t := range p.AllowedTransitions {
		if t == id {
			return true
		}
	}
	return false
}

// CheckPhaseTransitionRequirements validates a phase move. Unlike
// activation, phase movement is process tracking, not a hard gate: an
// unmet exit requirement does not block the move outright, it demands
// a documented justification. A move the process map does not define
// is treated the same way.
func CheckPhaseTransitionRequirements(s usecases.Snapshot, fromPhaseID, toPhaseID string, config PhaseConfig, justification string, gates *CheckResult) (PhaseTransitionCheck, error) {
	from, ok := config.phaseByID(fromPhaseID)
	if !ok {
		return PhaseTransitionCheck{}, usecases.ErrInvalidArgument
	}
	to, ok := config.phaseByID(toPhaseID)
	if !ok {
		return PhaseTransitionCheck{}, usecases.ErrInvalidArgument
	}

	var missing []string
	for _, field := range from.DataRequirements.Exit {
		if !s.FieldPresent(field) {
			missing = append(missing, field)
		}
	}

	check := PhaseTransitionCheck{
		CurrentPhase:      from.Name,
		TargetPhase:       to.Name,
		MissingExitFields: missing,
		Governance:        gates,
	}
	needsOverride := len(missing) > 0 || !from.allowsTransitionTo(toPhaseID)
	if !needsOverride {
		check.Allowed = true
		return check, nil
	}
	check.RequiresJustification = true
	check.Allowed = strings.TrimSpace(justification) != ""
	return check, nil
}
