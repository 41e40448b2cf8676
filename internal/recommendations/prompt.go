package recommendations

import (
	"fmt"

	"stackadvisor-backend/internal/llm"
)

const (
	untitledProject      = "Untitled Project"
	noDescription        = "No description provided"
	promptTemperature    = 0.7
	promptMaxTokens      = 2048
	learningEasierCutoff = 30
	learningPowerCutoff  = 70
)

// Categories lists the six categories the model is asked to cover, in request order.
var Categories = []string{
	"Frontend Framework",
	"Backend Framework",
	"Database",
	"State Management",
	"Styling Solution",
	"Deployment & Hosting",
}

const systemPrompt = `You are a technology stack advisor. You provide recommendations for technologies based on project requirements.
Always provide recommendations in the following JSON format:
[
  {
    "category": "Frontend Framework",
    "primary": "React",
    "alternatives": ["Vue.js", "Svelte"],
    "reasoning": "Explanation for recommendation based on inputs..."
  },
  ...more categories...
]
Include recommendations for: Frontend Framework, Backend Framework, Database, State Management, Styling Solution, and Deployment & Hosting.`

const promptTemplate = `Please recommend technology stack options for a project with the following requirements:

Project Name: %s
Project Type: %s
Description: %s

Team Size: %s
Budget: %s
Time Frame: %s

Additional Preferences:
- Scalability Importance: %d%%
- Learning Curve Preference: %s
- Community Support: %s
- Enterprise/Paid Support: %s
- Open Source: %s

Provide a comprehensive technology stack recommendation that includes frontend framework, backend framework, database, state management, styling solution, and deployment options. For each category, provide a primary recommendation and alternatives with reasoning that directly relates to the project requirements above.`

// SystemPrompt returns the fixed instruction describing the required output shape.
func SystemPrompt() string {
	return systemPrompt
}

// BuildPrompt renders the requirements into the user turn. The output is deterministic.
func BuildPrompt(params ProjectRequirements) string {
	return fmt.Sprintf(promptTemplate,
		orDefault(params.ProjectName, untitledProject),
		params.ProjectType,
		orDefault(params.ProjectDescription, noDescription),
		params.TeamSize,
		params.Budget,
		params.TimeFrame,
		params.ScalabilityImportance,
		LearningCurveLabel(params.LearningCurve),
		pick(params.CommunitySupport, "Important", "Not a priority"),
		pick(params.EnterpriseSupport, "Required", "Not required"),
		pick(params.OpenSource, "Preferred", "Not a requirement"),
	)
}

// BuildChatRequest wraps the prompt with the system instruction and sampling parameters.
func BuildChatRequest(params ProjectRequirements) llm.ChatRequest {
	return llm.ChatRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: systemPrompt},
			{Role: llm.RoleUser, Content: BuildPrompt(params)},
		},
		Temperature: promptTemperature,
		MaxTokens:   promptMaxTokens,
	}
}

// LearningCurveLabel maps the 0-100 preference to its prompt phrase. 30 and 70 are Balanced.
func LearningCurveLabel(v int) string {
	switch {
	case v < learningEasierCutoff:
		return "Easier to learn"
	case v > learningPowerCutoff:
		return "Advanced/Powerful"
	default:
		return "Balanced"
	}
}

func orDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

func pick(flag bool, yes, no string) string {
	if flag {
		return yes
	}
	return no
}
