package search

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santo-labs/santoscore/internal/model"
	"github.com/santo-labs/santoscore/internal/score"
	"github.com/santo-labs/santoscore/pkg/xai"
)

const searchResponse = `CONTRACTOR 1:
Name: Acme Plumbing LLC
Phone: (512) 555-0142
Website: https://acmeplumbing.com
Rating: 4.8/5
License Status: Active
Reviews:
- Reviewer: John S. | Rating: 5/5 | Review: "Excellent service, very professional" | Date: 2026-01-15
- Reviewer: Sarah M. | Rating: 4/5 | Review: "Good work, arrived on time" | Date: 2026-01-10
- Reviewer: Mike D. | Rating: 5/5 | Review: "Outstanding quality and fair pricing" | Date: 2026-01-08
- Reviewer: Lisa R. | Rating: 4/5 | Review: "Professional team, clean work" | Date: 2026-01-12
- Reviewer: David K. | Rating: 5/5 | Review: "Highly recommend, great results" | Date: 2026-01-05

CONTRACTOR 2:
Name: Hill Country Drains
Phone: 512-555-0177
Website: https://hillcountrydrains.com
Rating: 4.6/5
License Status: Active
Reviews:
- Reviewer: Emma W. | Rating: 5/5 | Review: "Fixed our main line the same day" | Date: 2026-02-01
- Reviewer: Carlos G. | Rating: 4/5 | Review: "Fair price and honest advice" | Date: 2026-01-28
- Reviewer: Dana P. | Rating: 5/5 | Review: "Very tidy and respectful crew" | Date: 2026-01-20
- Reviewer: Ben T. | Rating: 4/5 | Review: "Quick scheduling, solid work" | Date: 2026-01-17
- Reviewer: Amy L. | Rating: 5/5 | Review: "Best plumber we have used in years" | Date: 2026-01-11
`

const scoringResponse = `CONTRACTOR: Acme Plumbing LLC
SCORE: 7.5
EXPLANATION: Solid reviews.

CONTRACTOR: Hill Country Drains
SCORE: 9.0
EXPLANATION: Excellent and consistent feedback.`

// sequenceClient answers the search call with searchBody and every later
// call with scoreBody.
type sequenceClient struct {
	searchBody string
	scoreBody  string
	searchErr  error
	scoreErr   error
	calls      int
	searchReq  xai.ChatCompletionRequest
}

func (f *sequenceClient) ChatCompletion(_ context.Context, req xai.ChatCompletionRequest) (*xai.ChatCompletionResponse, error) {
	f.calls++
	if f.calls == 1 {
		f.searchReq = req
		if f.searchErr != nil {
			return nil, f.searchErr
		}
		return response(f.searchBody), nil
	}
	if f.scoreErr != nil {
		return nil, f.scoreErr
	}
	return response(f.scoreBody), nil
}

func response(content string) *xai.ChatCompletionResponse {
	return &xai.ChatCompletionResponse{
		Choices: []xai.Choice{{Message: xai.Message{Role: "assistant", Content: content}}},
	}
}

func newTestSearcher(client xai.Client) *Searcher {
	return New(client, score.NewScorer(client, ""), "test persona", "")
}

func TestSearch_EndToEnd(t *testing.T) {
	fc := &sequenceClient{searchBody: searchResponse, scoreBody: scoringResponse}
	s := newTestSearcher(fc)

	var stages []model.Stage
	got := s.Search(context.Background(), Request{
		ServiceType: "plumber",
		Location:    "Austin, TX",
		MaxResults:  5,
	}, func(stage model.Stage, _ string) {
		stages = append(stages, stage)
	})

	require.Len(t, got, 2)
	assert.Equal(t, 2, fc.calls, "one search call plus one scoring call")

	// Hill Country scored higher, so it sorts first.
	assert.Equal(t, "Hill Country Drains", got[0].Name)
	assert.Equal(t, 9.0, got[0].QualityScore)
	assert.Equal(t, "Acme Plumbing LLC", got[1].Name)
	assert.Equal(t, 7.5, got[1].QualityScore)

	for _, c := range got {
		assert.Len(t, c.Reviews, 5)
		assert.NotEmpty(t, c.Website)
		assert.GreaterOrEqual(t, c.QualityScore, 0.0)
		assert.LessOrEqual(t, c.QualityScore, 10.0)
	}

	assert.Equal(t, []model.Stage{
		model.StageSearching,
		model.StageParsing,
		model.StageReviews,
		model.StageValidating,
		model.StageScoring,
		model.StageComplete,
	}, stages)
}

func TestSearch_FastPathStage(t *testing.T) {
	fc := &sequenceClient{searchBody: searchResponse, scoreBody: scoringResponse}
	s := newTestSearcher(fc)

	var stages []model.Stage
	s.Search(context.Background(), Request{
		ServiceType: "plumber",
		MaxResults:  5,
		SkipReviews: true,
	}, func(stage model.Stage, _ string) {
		stages = append(stages, stage)
	})

	assert.Contains(t, stages, model.StageFastPath)
	assert.NotContains(t, stages, model.StageReviews)
}

func TestSearch_MaxResultsCap(t *testing.T) {
	fc := &sequenceClient{searchBody: searchResponse, scoreBody: scoringResponse}
	s := newTestSearcher(fc)

	got := s.Search(context.Background(), Request{ServiceType: "plumber", MaxResults: 1}, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "Hill Country Drains", got[0].Name)
}

func TestSearch_SearchCallFailureReturnsEmpty(t *testing.T) {
	fc := &sequenceClient{searchErr: eris.New("api unreachable")}
	s := newTestSearcher(fc)

	got := s.Search(context.Background(), Request{ServiceType: "plumber", MaxResults: 5}, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, 1, fc.calls, "no scoring call after a failed search")
}

func TestSearch_ScoringFailureDegradesToDefaults(t *testing.T) {
	fc := &sequenceClient{searchBody: searchResponse, scoreErr: eris.New("scoring down")}
	s := newTestSearcher(fc)

	got := s.Search(context.Background(), Request{ServiceType: "plumber", MaxResults: 5}, nil)
	require.Len(t, got, 2)
	for _, c := range got {
		assert.Equal(t, model.DefaultQualityScore, c.QualityScore)
	}
}

func TestSearch_UnsafeWebsiteScrubbed(t *testing.T) {
	raw := `CONTRACTOR 1:
Name: Shady Siding
Phone: 123-456-7890
Website: https://bit.ly/shady
`
	fc := &sequenceClient{searchBody: raw, scoreBody: "SCORE: 5"}
	s := newTestSearcher(fc)

	got := s.Search(context.Background(), Request{ServiceType: "siding", MaxResults: 5}, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "Shady Siding", got[0].Name)
	assert.Empty(t, got[0].Website)
}

func TestSearch_SendsPersonaAndPrompt(t *testing.T) {
	fc := &sequenceClient{searchBody: searchResponse, scoreBody: scoringResponse}
	s := New(fc, score.NewScorer(fc, ""), "You are a careful researcher.", "")

	s.Search(context.Background(), Request{ServiceType: "roofer", Location: "Dallas, TX", MaxResults: 10}, nil)

	require.Len(t, fc.searchReq.Messages, 2)
	assert.Equal(t, "system", fc.searchReq.Messages[0].Role)
	assert.Equal(t, "You are a careful researcher.", fc.searchReq.Messages[0].Content)
	assert.Contains(t, fc.searchReq.Messages[1].Content, "10 roofer contractors in Dallas, TX")
	assert.Equal(t, xai.SearchModel, fc.searchReq.Model)
}

func TestBuildSearchPrompt_Variants(t *testing.T) {
	full := buildSearchPrompt("plumber", "Austin, TX", 5, false)
	assert.Contains(t, full, "exactly 5 real customer reviews")
	assert.Contains(t, full, "Reviews:")

	fast := buildSearchPrompt("plumber", "Austin, TX", 5, true)
	assert.Contains(t, fast, "Do NOT include customer reviews")
	assert.Contains(t, fast, "HTTPS")
	assert.NotContains(t, fast, "exactly 5 real customer reviews")

	noLocation := buildSearchPrompt("plumber", "", 5, false)
	assert.Contains(t, noLocation, "5 plumber contractors.")
}
