package recommendations

import (
	"strings"
	"testing"

	"stackadvisor-backend/internal/llm"
)

func TestBuildPromptSubstitutesEmptyFields(t *testing.T) {
	params := DefaultRequirements()
	prompt := BuildPrompt(params)

	if !strings.Contains(prompt, "Project Name: Untitled Project\n") {
		t.Fatalf("expected name substitute in prompt:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Description: No description provided\n") {
		t.Fatalf("expected description substitute in prompt:\n%s", prompt)
	}
	for _, line := range strings.Split(prompt, "\n") {
		if idx := strings.Index(line, ": "); idx >= 0 && strings.TrimSpace(line[idx+2:]) == "" {
			t.Fatalf("found empty field in line %q", line)
		}
	}
}

func TestBuildPromptRendersFields(t *testing.T) {
	params := ProjectRequirements{
		ProjectName:           "Ledger",
		ProjectType:           ProjectTypeFullstack,
		ProjectDescription:    "Bookkeeping for small shops",
		TeamSize:              TeamSizeMedium,
		Budget:                BudgetHigh,
		TimeFrame:             TimeFrameUrgent,
		ScalabilityImportance: 85,
		LearningCurve:         10,
		CommunitySupport:      false,
		EnterpriseSupport:     true,
		OpenSource:            false,
	}
	prompt := BuildPrompt(params)

	want := []string{
		"Project Name: Ledger\n",
		"Project Type: fullstack\n",
		"Description: Bookkeeping for small shops\n",
		"Team Size: medium\n",
		"Budget: high\n",
		"Time Frame: urgent\n",
		"- Scalability Importance: 85%\n",
		"- Learning Curve Preference: Easier to learn\n",
		"- Community Support: Not a priority\n",
		"- Enterprise/Paid Support: Required\n",
		"- Open Source: Not a requirement\n",
	}
	for _, w := range want {
		if !strings.Contains(prompt, w) {
			t.Fatalf("prompt missing %q:\n%s", w, prompt)
		}
	}
	if BuildPrompt(params) != prompt {
		t.Fatalf("expected deterministic prompt")
	}
}

func TestBuildPromptPositiveFlags(t *testing.T) {
	params := DefaultRequirements()
	params.EnterpriseSupport = true
	prompt := BuildPrompt(params)
	for _, w := range []string{"Community Support: Important", "Enterprise/Paid Support: Required", "Open Source: Preferred"} {
		if !strings.Contains(prompt, w) {
			t.Fatalf("prompt missing %q", w)
		}
	}
}

func TestLearningCurveLabel(t *testing.T) {
	tests := []struct {
		value int
		want  string
	}{
		{0, "Easier to learn"},
		{29, "Easier to learn"},
		{30, "Balanced"},
		{50, "Balanced"},
		{70, "Balanced"},
		{71, "Advanced/Powerful"},
		{100, "Advanced/Powerful"},
	}
	for _, tt := range tests {
		if got := LearningCurveLabel(tt.value); got != tt.want {
			t.Fatalf("LearningCurveLabel(%d) = %q, want %q", tt.value, got, tt.want)
		}
	}

	for v := 0; v <= 100; v++ {
		params := DefaultRequirements()
		params.LearningCurve = v
		want := "- Learning Curve Preference: " + LearningCurveLabel(v) + "\n"
		if !strings.Contains(BuildPrompt(params), want) {
			t.Fatalf("prompt for %d missing %q", v, want)
		}
	}
}

func TestBuildChatRequest(t *testing.T) {
	req := BuildChatRequest(DefaultRequirements())
	if len(req.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(req.Messages))
	}
	if req.Messages[0].Role != llm.RoleSystem || req.Messages[0].Content != SystemPrompt() {
		t.Fatalf("unexpected system message %+v", req.Messages[0])
	}
	if req.Messages[1].Role != llm.RoleUser {
		t.Fatalf("unexpected user role %q", req.Messages[1].Role)
	}
	if req.Temperature != 0.7 || req.MaxTokens != 2048 {
		t.Fatalf("unexpected sampling parameters %v/%d", req.Temperature, req.MaxTokens)
	}
	for _, cat := range Categories {
		if !strings.Contains(SystemPrompt(), cat) {
			t.Fatalf("system prompt missing category %q", cat)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultRequirements().Validate(); err != nil {
		t.Fatalf("defaults should be valid: %v", err)
	}
	bad := []func(p *ProjectRequirements){
		func(p *ProjectRequirements) { p.ProjectType = "game" },
		func(p *ProjectRequirements) { p.TeamSize = "" },
		func(p *ProjectRequirements) { p.Budget = "free" },
		func(p *ProjectRequirements) { p.TimeFrame = "never" },
		func(p *ProjectRequirements) { p.ScalabilityImportance = 101 },
		func(p *ProjectRequirements) { p.LearningCurve = -1 },
	}
	for i, mutate := range bad {
		p := DefaultRequirements()
		mutate(&p)
		if err := p.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
}
