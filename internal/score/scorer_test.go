package score

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santo-labs/santoscore/internal/model"
	"github.com/santo-labs/santoscore/pkg/xai"
)

// fakeClient returns a canned completion or error.
type fakeClient struct {
	content string
	err     error
	lastReq xai.ChatCompletionRequest
}

func (f *fakeClient) ChatCompletion(_ context.Context, req xai.ChatCompletionRequest) (*xai.ChatCompletionResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &xai.ChatCompletionResponse{
		Choices: []xai.Choice{{Message: xai.Message{Role: "assistant", Content: f.content}}},
	}, nil
}

func contractors(names ...string) []model.Contractor {
	out := make([]model.Contractor, 0, len(names))
	for _, n := range names {
		out = append(out, model.NewContractor(n))
	}
	return out
}

func TestExtractScores(t *testing.T) {
	content := `CONTRACTOR: Acme Plumbing LLC
SCORE: 8.5
EXPLANATION: Strong reviews and an active license.

CONTRACTOR: Hill Country Drains
SCORE: not a number
EXPLANATION: Could not evaluate.

CONTRACTOR: Shady Siding
SCORE: 6
EXPLANATION: Sparse information.`

	scores := ExtractScores(content)
	assert.Equal(t, []float64{8.5, 5.0, 6.0}, scores)
}

func TestExtractScores_Clamping(t *testing.T) {
	content := "SCORE: 15\nSCORE: -3\nSCORE: 9.75"
	assert.Equal(t, []float64{10, 0, 9.75}, ExtractScores(content))
}

func TestExtractScores_Empty(t *testing.T) {
	assert.Empty(t, ExtractScores(""))
	assert.Empty(t, ExtractScores("no score lines here"))
}

func TestScore_PositionalAssignment(t *testing.T) {
	fc := &fakeClient{content: `CONTRACTOR: B Company
SCORE: 9
EXPLANATION: ok

CONTRACTOR: A Company
SCORE: 4
EXPLANATION: ok`}

	// The model reordered the name labels; assignment must stay positional.
	cs := contractors("A Company", "B Company")
	NewScorer(fc, "").Score(context.Background(), cs, "plumber")

	assert.Equal(t, 9.0, cs[0].QualityScore)
	assert.Equal(t, 4.0, cs[1].QualityScore)
}

func TestScore_MissingTailGetsDefault(t *testing.T) {
	fc := &fakeClient{content: "SCORE: 7.5"}

	cs := contractors("First Co", "Second Co", "Third Co")
	NewScorer(fc, "").Score(context.Background(), cs, "roofer")

	assert.Equal(t, 7.5, cs[0].QualityScore)
	assert.Equal(t, model.DefaultQualityScore, cs[1].QualityScore)
	assert.Equal(t, model.DefaultQualityScore, cs[2].QualityScore)
}

func TestScore_CallFailureAssignsDefaults(t *testing.T) {
	fc := &fakeClient{err: eris.New("boom")}

	cs := contractors("First Co", "Second Co")
	cs[0].QualityScore = 0 // pre-set junk; failure must overwrite it

	NewScorer(fc, "").Score(context.Background(), cs, "electrician")

	for _, c := range cs {
		assert.Equal(t, model.DefaultQualityScore, c.QualityScore)
	}
}

func TestScore_EmptyInputMakesNoCall(t *testing.T) {
	fc := &fakeClient{content: "SCORE: 9"}
	NewScorer(fc, "").Score(context.Background(), nil, "plumber")
	assert.Empty(t, fc.lastReq.Messages)
}

func TestScore_PromptIncludesContractorData(t *testing.T) {
	fc := &fakeClient{content: "SCORE: 8"}

	cs := contractors("Acme Plumbing LLC")
	cs[0].Rating = "4.8/5"
	cs[0].LicenseStatus = "Active"
	rev, ok := model.NewReview("John S.", "5/5", "Excellent service", "")
	require.True(t, ok)
	cs[0].Reviews = append(cs[0].Reviews, rev)

	NewScorer(fc, "").Score(context.Background(), cs, "plumber")

	require.Len(t, fc.lastReq.Messages, 2)
	assert.Equal(t, xai.ScoringModel, fc.lastReq.Model)
	assert.Equal(t, "system", fc.lastReq.Messages[0].Role)

	user := fc.lastReq.Messages[1].Content
	assert.Contains(t, user, "expert evaluator of plumber contractors")
	assert.Contains(t, user, `"Acme Plumbing LLC"`)
	assert.Contains(t, user, `"4.8/5"`)
	assert.Contains(t, user, `"John S."`)
	assert.Contains(t, user, "SCORE:")
	require.NotNil(t, fc.lastReq.Temperature)
	assert.InDelta(t, 0.2, *fc.lastReq.Temperature, 0.001)

	assert.Equal(t, 8.0, cs[0].QualityScore)
}
