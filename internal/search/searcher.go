// Package search composes the contractor lookup: one web-search model call,
// the response parser, the website safety scrub, and the quality scorer.
// The pipeline is deliberately sequential and degrades to empty or
// default-scored results instead of failing.
package search

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/santo-labs/santoscore/internal/model"
	"github.com/santo-labs/santoscore/internal/parse"
	"github.com/santo-labs/santoscore/internal/score"
	"github.com/santo-labs/santoscore/internal/validate"
	"github.com/santo-labs/santoscore/pkg/xai"
)

const (
	searchTemperature = 0.3
	searchMaxTokens   = 4000
)

// Request describes one contractor search.
type Request struct {
	ServiceType string `json:"service_type"`
	Location    string `json:"location,omitempty"`
	MaxResults  int    `json:"max_results,omitempty"`
	SkipReviews bool   `json:"skip_reviews,omitempty"`
}

// Searcher runs contractor searches against the x.ai API.
type Searcher struct {
	client  xai.Client
	scorer  *score.Scorer
	persona string
	model   string
}

// New creates a Searcher. An empty modelName selects the default search
// model; persona is the system instruction for the search call.
func New(client xai.Client, scorer *score.Scorer, persona, modelName string) *Searcher {
	if modelName == "" {
		modelName = xai.SearchModel
	}
	return &Searcher{
		client:  client,
		scorer:  scorer,
		persona: persona,
		model:   modelName,
	}
}

// Search performs the two-call search pipeline and returns scored
// contractors sorted by quality score, capped at req.MaxResults. The
// progress callback, when non-nil, is invoked at fixed checkpoints and has
// no effect on control flow. A failed search call yields an empty list;
// this is the sole top-level error boundary.
func (s *Searcher) Search(ctx context.Context, req Request, progress model.ProgressFunc) []model.Contractor {
	report := func(stage model.Stage, note string) {
		if progress != nil {
			progress(stage, note)
		}
	}

	report(model.StageSearching, fmt.Sprintf("searching for %s contractors", req.ServiceType))

	temp := searchTemperature
	maxTokens := searchMaxTokens
	resp, err := s.client.ChatCompletion(ctx, xai.ChatCompletionRequest{
		Model: s.model,
		Messages: []xai.Message{
			{Role: "system", Content: s.persona},
			{Role: "user", Content: buildSearchPrompt(req.ServiceType, req.Location, req.MaxResults, req.SkipReviews)},
		},
		Temperature: &temp,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		zap.L().Error("search: contractor search failed",
			zap.String("service_type", req.ServiceType),
			zap.String("location", req.Location),
			zap.Error(err),
		)
		return []model.Contractor{}
	}

	report(model.StageParsing, "parsing search results")
	contractors := parse.Contractors(resp.Content())

	if req.SkipReviews {
		report(model.StageFastPath, "review extraction skipped")
	} else {
		report(model.StageReviews, "extracting customer reviews")
	}

	report(model.StageValidating, "validating contact data")
	scrubUnsafeWebsites(contractors)

	report(model.StageScoring, "computing quality scores")
	s.scorer.Score(ctx, contractors, req.ServiceType)

	sort.SliceStable(contractors, func(i, j int) bool {
		return contractors[i].QualityScore > contractors[j].QualityScore
	})

	if req.MaxResults > 0 && len(contractors) > req.MaxResults {
		contractors = contractors[:req.MaxResults]
	}

	report(model.StageComplete, fmt.Sprintf("found %d contractors", len(contractors)))
	zap.L().Info("search: complete",
		zap.String("service_type", req.ServiceType),
		zap.String("location", req.Location),
		zap.Int("results", len(contractors)),
	)

	return contractors
}

// scrubUnsafeWebsites clears the website field of any contractor whose URL
// fails safety validation. The contractor itself is kept.
func scrubUnsafeWebsites(contractors []model.Contractor) {
	for i := range contractors {
		if contractors[i].Website == "" {
			continue
		}
		if ok, reason := validate.ValidateWebsiteSafety(contractors[i].Website); !ok {
			zap.L().Debug("search: website cleared",
				zap.String("contractor", contractors[i].Name),
				zap.String("reason", reason),
			)
			contractors[i].Website = ""
		}
	}
}
