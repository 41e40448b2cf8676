package recommendations

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

type ProjectType string

const (
	ProjectTypeWeb       ProjectType = "web"
	ProjectTypeMobile    ProjectType = "mobile"
	ProjectTypeDesktop   ProjectType = "desktop"
	ProjectTypeBackend   ProjectType = "backend"
	ProjectTypeFullstack ProjectType = "fullstack"
)

type TeamSize string

const (
	TeamSizeSolo       TeamSize = "solo"
	TeamSizeSmall      TeamSize = "small"
	TeamSizeMedium     TeamSize = "medium"
	TeamSizeLarge      TeamSize = "large"
	TeamSizeEnterprise TeamSize = "enterprise"
)

type Budget string

const (
	BudgetLow        Budget = "low"
	BudgetMedium     Budget = "medium"
	BudgetHigh       Budget = "high"
	BudgetEnterprise Budget = "enterprise"
)

type TimeFrame string

const (
	TimeFrameUrgent   TimeFrame = "urgent"
	TimeFrameNormal   TimeFrame = "normal"
	TimeFrameRelaxed  TimeFrame = "relaxed"
	TimeFrameLongterm TimeFrame = "longterm"
)

// ProjectRequirements describes one submission. It is built per request and discarded after use.
type ProjectRequirements struct {
	ProjectName           string      `json:"projectName"`
	ProjectType           ProjectType `json:"projectType"`
	ProjectDescription    string      `json:"projectDescription"`
	TeamSize              TeamSize    `json:"teamSize"`
	Budget                Budget      `json:"budget"`
	TimeFrame             TimeFrame   `json:"timeFrame"`
	ScalabilityImportance int         `json:"scalabilityImportance"`
	LearningCurve         int         `json:"learningCurve"`
	CommunitySupport      bool        `json:"communitySupport"`
	EnterpriseSupport     bool        `json:"enterpriseSupport"`
	OpenSource            bool        `json:"openSource"`
}

// DefaultRequirements returns the values a fresh submission form starts with.
func DefaultRequirements() ProjectRequirements {
	return ProjectRequirements{
		ProjectType:           ProjectTypeWeb,
		TeamSize:              TeamSizeSmall,
		Budget:                BudgetMedium,
		TimeFrame:             TimeFrameNormal,
		ScalabilityImportance: 50,
		LearningCurve:         50,
		CommunitySupport:      true,
		EnterpriseSupport:     false,
		OpenSource:            true,
	}
}

// Validate checks enum membership and the 0-100 slider ranges. The pipeline itself never
// validates; callers outside HTTP binding use this before submitting.
func (p ProjectRequirements) Validate() error {
	switch p.ProjectType {
	case ProjectTypeWeb, ProjectTypeMobile, ProjectTypeDesktop, ProjectTypeBackend, ProjectTypeFullstack:
	default:
		return fmt.Errorf("invalid project type %q", p.ProjectType)
	}
	switch p.TeamSize {
	case TeamSizeSolo, TeamSizeSmall, TeamSizeMedium, TeamSizeLarge, TeamSizeEnterprise:
	default:
		return fmt.Errorf("invalid team size %q", p.TeamSize)
	}
	switch p.Budget {
	case BudgetLow, BudgetMedium, BudgetHigh, BudgetEnterprise:
	default:
		return fmt.Errorf("invalid budget %q", p.Budget)
	}
	switch p.TimeFrame {
	case TimeFrameUrgent, TimeFrameNormal, TimeFrameRelaxed, TimeFrameLongterm:
	default:
		return fmt.Errorf("invalid time frame %q", p.TimeFrame)
	}
	if p.ScalabilityImportance < 0 || p.ScalabilityImportance > 100 {
		return fmt.Errorf("scalability importance %d out of range 0-100", p.ScalabilityImportance)
	}
	if p.LearningCurve < 0 || p.LearningCurve > 100 {
		return fmt.Errorf("learning curve %d out of range 0-100", p.LearningCurve)
	}
	return nil
}

// Recommendation is one category entry produced by the model or the fallback set.
// Fields are not validated; any of them may be empty.
type Recommendation struct {
	Category     string       `json:"category"`
	Primary      string       `json:"primary"`
	Alternatives Alternatives `json:"alternatives"`
	Reasoning    string       `json:"reasoning"`
}

// UnmarshalJSON reads an entry without enforcing field types. Strings are kept, other values are
// rendered as text, and elements that are not objects decode to an empty entry.
func (r *Recommendation) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		*r = Recommendation{}
		return nil
	}
	*r = Recommendation{
		Category:     looseString(fields["category"]),
		Primary:      looseString(fields["primary"]),
		Alternatives: looseAlternatives(fields["alternatives"]),
		Reasoning:    looseString(fields["reasoning"]),
	}
	return nil
}

// Alternatives accepts a JSON array of names, a single string, or null.
// Non-string array items are skipped.
type Alternatives []string

func (a *Alternatives) UnmarshalJSON(data []byte) error {
	*a = looseAlternatives(data)
	return nil
}

func looseString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var parts []string
	if err := json.Unmarshal(raw, &parts); err == nil {
		return strings.Join(parts, ", ")
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return ""
	}
	return buf.String()
}

func looseAlternatives(raw json.RawMessage) Alternatives {
	if len(raw) == 0 {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err == nil {
		if items == nil {
			return nil
		}
		out := make(Alternatives, 0, len(items))
		for _, item := range items {
			var name string
			if err := json.Unmarshal(item, &name); err == nil {
				out = append(out, name)
			}
		}
		return out
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		if single == "" {
			return Alternatives{}
		}
		return Alternatives{single}
	}
	return nil
}

func (a Alternatives) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(a))
}

// Outcome is what callers receive after the fallback policy has been applied.
type Outcome struct {
	ID              string           `json:"id"`
	Source          string           `json:"source"`
	Warning         string           `json:"warning,omitempty"`
	Recommendations []Recommendation `json:"recommendations"`
}

const (
	SourceAI       = "ai"
	SourceFallback = "fallback"
)
