package domain

import (
	"context"
	"strings"
	"time"
)

// RequiredAnswerCount is the fixed quiz length of the statistical/ML track.
const RequiredAnswerCount = 48

// ProcessingMode selects the scoring engine configured on a quiz version.
type ProcessingMode string

const (
	ProcessingModeML  ProcessingMode = "ML"
	ProcessingModeLLM ProcessingMode = "LLM"
)

// NormalizeProcessingMode uppercases and trims a mode value read from storage or a request.
func NormalizeProcessingMode(raw string) ProcessingMode {
	return ProcessingMode(strings.ToUpper(strings.TrimSpace(raw)))
}

// Trait is one axis of a psychometric model, e.g. a RIASEC letter.
type Trait struct {
	ID              int64  `json:"id"`
	Code            string `json:"code"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	BipolarPairCode string `json:"bipolar_pair_code,omitempty"`
}

// TraitScore pairs a trait with its score.
type TraitScore struct {
	Trait Trait   `json:"trait"`
	Score float64 `json:"score"`
}

// TraitScores maps an uppercase trait code to its score.
type TraitScores map[string]TraitScore

// Recommendation is a scored profession suggestion.
// ProfessionID is nil when the classifier or model referenced a profession
// that does not exist in the catalog.
type Recommendation struct {
	ProfessionID *int64  `json:"profession_id"`
	Score        float64 `json:"score"`
	Explanation  string  `json:"explanation"`
}

// ScoringResult is the output of one evaluation.
type ScoringResult struct {
	TraitScores     TraitScores      `json:"trait_scores"`
	Recommendations []Recommendation `json:"recommendations"`
}

// NewScoringResult builds a result with non-nil collections.
func NewScoringResult(traits TraitScores, recommendations []Recommendation) *ScoringResult {
	if traits == nil {
		traits = TraitScores{}
	}
	if recommendations == nil {
		recommendations = []Recommendation{}
	}
	return &ScoringResult{TraitScores: traits, Recommendations: recommendations}
}

// ScoringEngine converts an attempt's answers into trait scores and recommendations.
type ScoringEngine interface {
	// Evaluate scores a persisted attempt.
	Evaluate(ctx context.Context, attemptID int64) (*ScoringResult, error)

	// EvaluateRaw scores a list of raw Likert values without a persisted attempt.
	EvaluateRaw(ctx context.Context, answers []int) (*ScoringResult, error)

	// Name identifies the engine in logs and metrics.
	Name() string
}

// MLPrediction is one ranked class from the external classifier.
type MLPrediction struct {
	Major       string  `json:"major"`
	Probability float64 `json:"probability"`
}

// MLResultResponse is the classifier's /predict response body.
type MLResultResponse struct {
	PredictedMajor string         `json:"predicted_major"`
	TopPredictions []MLPrediction `json:"top_5_predictions"`
}

// MLClassifier sends a feature vector to the external classification service.
type MLClassifier interface {
	Predict(ctx context.Context, features []float64) (*MLResultResponse, error)
}

// LLMTransport is a prompt-in/text-out chat completion call.
type LLMTransport interface {
	SendPrompt(ctx context.Context, prompt string) (string, error)
}

// EvaluationResult is a finished evaluation as stored in the result cache and
// returned to API clients.
type EvaluationResult struct {
	ResultID    string         `json:"result_id,omitempty"`
	AttemptID   *int64         `json:"attempt_id,omitempty"`
	Mode        ProcessingMode `json:"mode"`
	Engine      string         `json:"engine"`
	Result      *ScoringResult `json:"result"`
	EvaluatedAt time.Time      `json:"evaluated_at"`
}
