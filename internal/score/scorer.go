// Package score assigns each contractor a 0-10 quality score via a second,
// cheaper model call. Scoring is best-effort by design: any failure along
// the way degrades to the neutral default instead of surfacing an error.
package score

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/santo-labs/santoscore/internal/model"
	"github.com/santo-labs/santoscore/pkg/xai"
)

const (
	scoringTemperature = 0.2
	scoringMaxTokens   = 1500
)

const scoringSystemPrompt = "You are a professional contractor evaluation expert. Provide objective scores based on the information provided."

// Scorer evaluates parsed contractors with the scoring model.
type Scorer struct {
	client xai.Client
	model  string
}

// NewScorer creates a Scorer. An empty modelName selects the default
// scoring model.
func NewScorer(client xai.Client, modelName string) *Scorer {
	if modelName == "" {
		modelName = xai.ScoringModel
	}
	return &Scorer{client: client, model: modelName}
}

// contractorPayload is the JSON shape embedded in the scoring prompt.
type contractorPayload struct {
	Name          string          `json:"name"`
	Rating        string          `json:"rating"`
	Services      string          `json:"services"`
	Description   string          `json:"description"`
	LicenseStatus string          `json:"license_status"`
	Reviews       []reviewPayload `json:"reviews"`
}

type reviewPayload struct {
	Reviewer string `json:"reviewer"`
	Rating   string `json:"rating"`
	Text     string `json:"text"`
}

// Score assigns a quality score to every contractor in place. Scores are
// matched to contractors by position in the response, not by the name label
// the model echoes back; contractors past the last extracted score keep the
// neutral default. On any failure every contractor gets the default and the
// error is logged, never returned.
func (s *Scorer) Score(ctx context.Context, contractors []model.Contractor, serviceType string) {
	if len(contractors) == 0 {
		return
	}

	prompt, err := buildScoringPrompt(contractors, serviceType)
	if err != nil {
		assignDefaults(contractors)
		zap.L().Error("score: build prompt", zap.Error(err))
		return
	}

	temp := scoringTemperature
	maxTokens := scoringMaxTokens
	resp, err := s.client.ChatCompletion(ctx, xai.ChatCompletionRequest{
		Model: s.model,
		Messages: []xai.Message{
			{Role: "system", Content: scoringSystemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: &temp,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		assignDefaults(contractors)
		zap.L().Error("score: scoring call failed", zap.Error(err))
		return
	}

	scores := ExtractScores(resp.Content())
	for i := range contractors {
		if i < len(scores) {
			contractors[i].QualityScore = scores[i]
		} else {
			contractors[i].QualityScore = model.DefaultQualityScore
		}
	}

	zap.L().Info("score: scoring complete",
		zap.Int("contractors", len(contractors)),
		zap.Int("scores_extracted", len(scores)),
	)
}

// buildScoringPrompt serializes the contractor data and wraps it in the
// evaluation instructions.
func buildScoringPrompt(contractors []model.Contractor, serviceType string) (string, error) {
	payload := make([]contractorPayload, 0, len(contractors))
	for _, c := range contractors {
		p := contractorPayload{
			Name:          c.Name,
			Rating:        c.Rating,
			Services:      c.Services,
			Description:   c.Description,
			LicenseStatus: c.LicenseStatus,
			Reviews:       make([]reviewPayload, 0, len(c.Reviews)),
		}
		for _, r := range c.Reviews {
			p.Reviews = append(p.Reviews, reviewPayload{
				Reviewer: r.ReviewerName,
				Rating:   r.Rating,
				Text:     r.ReviewText,
			})
		}
		payload = append(payload, p)
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`You are an expert evaluator of %s contractors. Based on the provided contractor information, rate each contractor on a scale of 0-10 (where 10 is the best and 0 is the worst).

Consider these factors when scoring:
1. Overall rating/reputation
2. Quality of services offered
3. Customer review sentiment and ratings
4. Completeness of contact information
5. Professional description and experience

Here are the contractors to evaluate:
%s

For each contractor, provide a score from 0-10 and a brief explanation (1-2 sentences max). Format your response as:

CONTRACTOR: [Name]
SCORE: [0-10 score]
EXPLANATION: [Brief explanation of why this score was given, 1-2 sentences max]

Continue for all contractors.`, serviceType, string(data)), nil
}

var numericRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

// ExtractScores scans a scoring response for SCORE: lines. Each line yields
// the first numeric token clamped to [0,10]; a SCORE: line with no parsable
// number yields the neutral default rather than aborting the scan.
func ExtractScores(content string) []float64 {
	var scores []float64
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "SCORE:") {
			continue
		}
		rest := strings.TrimSpace(line[len("SCORE:"):])
		m := numericRe.FindString(rest)
		if m == "" {
			scores = append(scores, model.DefaultQualityScore)
			continue
		}
		v, err := strconv.ParseFloat(m, 64)
		if err != nil {
			scores = append(scores, model.DefaultQualityScore)
			continue
		}
		scores = append(scores, clamp(v, 0, 10))
	}
	return scores
}

func assignDefaults(contractors []model.Contractor) {
	for i := range contractors {
		contractors[i].QualityScore = model.DefaultQualityScore
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
