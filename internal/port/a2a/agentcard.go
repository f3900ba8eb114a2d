package a2a

// BuildAgentCard returns the AgentCard for the SkyDeck assistant. The skills
// mirror the sub-agents that tool calls are attributed to in the activity log.
func BuildAgentCard(baseURL string) AgentCard {
	return AgentCard{
		Name:        "SkyDeck",
		Description: "Conversational flight information assistant for Vietnamese domestic routes",
		URL:         baseURL,
		Version:     "0.1.0",
		Skills: []Skill{
			{
				ID:          "flight",
				Name:        "Flight Status",
				Description: "Look up flights by code or route, including gate, terminal, and delay details",
				InputModes:  []string{"text"},
				OutputModes: []string{"text"},
			},
			{
				ID:          "weather",
				Name:        "Airport Weather",
				Description: "Report current conditions at a served airport",
				InputModes:  []string{"text"},
				OutputModes: []string{"text"},
			},
			{
				ID:          "info",
				Name:        "Airport Information",
				Description: "Airport details including name, city, and available lounges",
				InputModes:  []string{"text"},
				OutputModes: []string{"text"},
			},
			{
				ID:          "support",
				Name:        "Disruption Support",
				Description: "Find alternative flights and calculate delay or cancellation compensation",
				InputModes:  []string{"text"},
				OutputModes: []string{"text"},
			},
		},
		Capabilities: struct {
			Streaming bool `json:"streaming"`
		}{Streaming: true},
	}
}
