package governance

// DefaultPhaseConfig is the operating model phase map shipped with
// the service. Deployments replace it via their own configuration;
// the validator treats whatever it is handed as authoritative.
func DefaultPhaseConfig() PhaseConfig {
	return PhaseConfig{
		Phases: []Phase{
			{
				ID:   "foundation",
				Name: "Foundation",
				DataRequirements: PhaseDataRequirements{
					Entry: []string{"owner_name"},
					Exit:  []string{"owner_name", "business_function", "lifecycle_status"},
				},
				AllowedTransitions: []string{"strategic"},
			},
			{
				ID:   "strategic",
				Name: "Strategic Scaling",
				DataRequirements: PhaseDataRequirements{
					Entry: []string{"owner_name", "business_function"},
					Exit: []string{
						"business_value_score",
						"strategic_alignment_score",
						"feasibility_score",
						"data_readiness_score",
						"risk_score",
					},
				},
				AllowedTransitions: []string{"foundation", "transition"},
			},
			{
				ID:   "transition",
				Name: "Capability Transition",
				DataRequirements: PhaseDataRequirements{
					Entry: []string{"operating_model"},
					Exit:  []string{"operating_model", "deployment_status", "tshirt_size"},
				},
				AllowedTransitions: []string{"strategic", "steady_state"},
			},
			{
				ID:   "steady_state",
				Name: "Steady State",
				DataRequirements: PhaseDataRequirements{
					Entry: []string{"deployment_status"},
					Exit:  []string{},
				},
				AllowedTransitions: []string{"transition"},
			},
		},
	}
}
