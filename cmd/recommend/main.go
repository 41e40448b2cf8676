package main

// Request recommendations once from the command line:
//   OPENAI_API_KEY=sk-... go run ./cmd/recommend -name Shop -type fullstack -team medium

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"stackadvisor-backend/internal/bootstrap"
	"stackadvisor-backend/internal/recommendations"
	"stackadvisor-backend/internal/shared/config"
	"stackadvisor-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	defaults := recommendations.DefaultRequirements()

	name := flag.String("name", "", "Project name")
	description := flag.String("description", "", "Project description")
	projectType := flag.String("type", string(defaults.ProjectType), "Project type: web, mobile, desktop, backend, fullstack")
	teamSize := flag.String("team", string(defaults.TeamSize), "Team size: solo, small, medium, large, enterprise")
	budget := flag.String("budget", string(defaults.Budget), "Budget: low, medium, high, enterprise")
	timeFrame := flag.String("timeframe", string(defaults.TimeFrame), "Time frame: urgent, normal, relaxed, longterm")
	scalability := flag.Int("scalability", defaults.ScalabilityImportance, "Scalability importance 0-100")
	learning := flag.Int("learning", defaults.LearningCurve, "Learning curve preference 0-100")
	community := flag.Bool("community", defaults.CommunitySupport, "Community support is important")
	enterprise := flag.Bool("enterprise", defaults.EnterpriseSupport, "Enterprise support is required")
	openSource := flag.Bool("opensource", defaults.OpenSource, "Prefer open source")
	apiKey := flag.String("api-key", "", "Completion API key (defaults to OPENAI_API_KEY)")
	model := flag.String("model", cfg.LLMModel, "LLM model")
	showPrompt := flag.Bool("show-prompt", false, "Print the prompt and exit without calling the API")
	strict := flag.Bool("strict", false, "Exit non-zero instead of printing the fallback set")
	outPath := flag.String("out", "", "Path to write JSON output (optional)")
	flag.Parse()

	params := recommendations.ProjectRequirements{
		ProjectName:           *name,
		ProjectType:           recommendations.ProjectType(strings.ToLower(*projectType)),
		ProjectDescription:    *description,
		TeamSize:              recommendations.TeamSize(strings.ToLower(*teamSize)),
		Budget:                recommendations.Budget(strings.ToLower(*budget)),
		TimeFrame:             recommendations.TimeFrame(strings.ToLower(*timeFrame)),
		ScalabilityImportance: *scalability,
		LearningCurve:         *learning,
		CommunitySupport:      *community,
		EnterpriseSupport:     *enterprise,
		OpenSource:            *openSource,
	}
	if err := params.Validate(); err != nil {
		exitErr(err.Error())
	}

	if *showPrompt {
		fmt.Println(recommendations.SystemPrompt())
		fmt.Println()
		fmt.Println(recommendations.BuildPrompt(params))
		return
	}

	// Keep stdout for the JSON result.
	telemetry.SetOutput(os.Stderr)

	cfg.LLMModel = *model
	svc := recommendations.NewService(recommendations.NewPipeline(bootstrap.BuildLLMClient(cfg)), nil, cfg.DefaultCredential)
	outcome, err := svc.Recommend(context.Background(), "cli", params, *apiKey)
	switch {
	case errors.Is(err, recommendations.ErrCredentialRequired):
		exitErr("an API key is required: pass -api-key or set OPENAI_API_KEY")
	case err != nil:
		exitErr(fmt.Sprintf("request recommendations: %v", err))
	case *strict && outcome.Source == recommendations.SourceFallback:
		exitErr("request recommendations failed; see the recommendations.fallback log line above")
	}

	pretty, err := prettyJSON(outcome)
	if err != nil {
		exitErr(fmt.Sprintf("format json: %v", err))
	}
	if *outPath != "" {
		if err := os.WriteFile(*outPath, pretty, 0o644); err != nil {
			exitErr(fmt.Sprintf("write output: %v", err))
		}
	}
	if _, err := os.Stdout.Write(pretty); err != nil {
		exitErr(fmt.Sprintf("write stdout: %v", err))
	}
}

func prettyJSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
