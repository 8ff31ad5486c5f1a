package capability

// ArchetypeKey names a staffing/independence profile. Keys pair an
// operating model phase with a delivery model.
type ArchetypeKey string

const (
	ArchetypeFoundationCentralized  ArchetypeKey = "foundation_centralized"
	ArchetypeFoundationCoE          ArchetypeKey = "foundation_coe"
	ArchetypeStrategicCentralized   ArchetypeKey = "strategic_centralized"
	ArchetypeStrategicHybrid        ArchetypeKey = "strategic_hybrid"
	ArchetypeTransitionCentralized  ArchetypeKey = "transition_centralized"
	ArchetypeTransitionFederated    ArchetypeKey = "transition_federated"
	ArchetypeSteadyStateCentralized ArchetypeKey = "steady_state_centralized"
	ArchetypeSteadyStateFederated   ArchetypeKey = "steady_state_federated"
)

type IndependenceRange struct {
	Min int
	Max int
}

type Archetype struct {
	IndependenceRange   IndependenceRange
	VendorFteMultiplier float64
	ClientFteMultiplier float64
	TransitionMonths    int
}

// BenchmarkConfig is the static lookup table behind every derivation.
// It is loaded once and shared read-only; derivations never write to it.
type BenchmarkConfig struct {
	Archetypes    map[ArchetypeKey]Archetype
	PaceModifiers map[string]float64
	TShirtBaseFte map[string]float64
}

const (
	QuadrantQuickWin     = "Quick Win"
	QuadrantStrategicBet = "Strategic Bet"
	QuadrantExperimental = "Experimental"
	QuadrantWatchlist    = "Watchlist"
)

// DefaultBenchmarkConfig returns the benchmark table in its current
// calibration. Vendor and client multipliers sum to 1 per archetype so
// total FTE is fixed by t-shirt size alone.
func DefaultBenchmarkConfig() BenchmarkConfig {
	return BenchmarkConfig{
		Archetypes: map[ArchetypeKey]Archetype{
			ArchetypeFoundationCentralized: {
				IndependenceRange:   IndependenceRange{Min: 5, Max: 25},
				VendorFteMultiplier: 0.8,
				ClientFteMultiplier: 0.2,
				TransitionMonths:    24,
			},
			ArchetypeFoundationCoE: {
				IndependenceRange:   IndependenceRange{Min: 10, Max: 30},
				VendorFteMultiplier: 0.75,
				ClientFteMultiplier: 0.25,
				TransitionMonths:    22,
			},
			ArchetypeStrategicCentralized: {
				IndependenceRange:   IndependenceRange{Min: 20, Max: 45},
				VendorFteMultiplier: 0.65,
				ClientFteMultiplier: 0.35,
				TransitionMonths:    18,
			},
			ArchetypeStrategicHybrid: {
				IndependenceRange:   IndependenceRange{Min: 25, Max: 50},
				VendorFteMultiplier: 0.6,
				ClientFteMultiplier: 0.4,
				TransitionMonths:    16,
			},
			ArchetypeTransitionCentralized: {
				IndependenceRange:   IndependenceRange{Min: 40, Max: 65},
				VendorFteMultiplier: 0.5,
				ClientFteMultiplier: 0.5,
				TransitionMonths:    12,
			},
			ArchetypeTransitionFederated: {
				IndependenceRange:   IndependenceRange{Min: 45, Max: 70},
				VendorFteMultiplier: 0.45,
				ClientFteMultiplier: 0.55,
				TransitionMonths:    10,
			},
			ArchetypeSteadyStateCentralized: {
				IndependenceRange:   IndependenceRange{Min: 60, Max: 85},
				VendorFteMultiplier: 0.3,
				ClientFteMultiplier: 0.7,
				TransitionMonths:    8,
			},
			ArchetypeSteadyStateFederated: {
				IndependenceRange:   IndependenceRange{Min: 65, Max: 90},
				VendorFteMultiplier: 0.25,
				ClientFteMultiplier: 0.75,
				TransitionMonths:    6,
			},
		},
		PaceModifiers: map[string]float64{
			QuadrantQuickWin:     0.75,
			QuadrantStrategicBet: 1.0,
			QuadrantExperimental: 1.15,
			QuadrantWatchlist:    1.3,
		},
		TShirtBaseFte: map[string]float64{
			"S":  2,
			"M":  4,
			"L":  6,
			"XL": 9,
		},
	}
}
