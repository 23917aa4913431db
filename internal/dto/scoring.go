package dto

import (
	"sort"
	"time"

	"career-quiz/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims defines the claims expected in access tokens issued by the platform.
type AuthClaims struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// RawEvaluationRequest is the body of a stateless evaluation.
// @Description Raw Likert answers scored without a persisted attempt
type RawEvaluationRequest struct {
	Mode    string `json:"mode" example:"ML"`
	Answers []int  `json:"answers"`
}

// TraitScoreResponse is one trait in an evaluation response.
type TraitScoreResponse struct {
	Code  string  `json:"code"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// RecommendationResponse is one recommended profession.
type RecommendationResponse struct {
	ProfessionID *int64  `json:"profession_id"`
	Score        float64 `json:"score"`
	Explanation  string  `json:"explanation"`
}

// EvaluationResponse is returned by every scoring endpoint.
// @Description Trait scores and ranked profession recommendations
type EvaluationResponse struct {
	ResultID        string                   `json:"result_id,omitempty"`
	AttemptID       *int64                   `json:"attempt_id,omitempty"`
	Mode            string                   `json:"mode"`
	Engine          string                   `json:"engine"`
	TraitScores     []TraitScoreResponse     `json:"trait_scores"`
	Recommendations []RecommendationResponse `json:"recommendations"`
	EvaluatedAt     time.Time                `json:"evaluated_at"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// NewEvaluationResponse flattens an evaluation for the API. Trait scores are
// ordered by code; recommendations keep the engine's order.
func NewEvaluationResponse(r *domain.EvaluationResult) EvaluationResponse {
	resp := EvaluationResponse{
		ResultID:        r.ResultID,
		AttemptID:       r.AttemptID,
		Mode:            string(r.Mode),
		Engine:          r.Engine,
		TraitScores:     []TraitScoreResponse{},
		Recommendations: []RecommendationResponse{},
		EvaluatedAt:     r.EvaluatedAt,
	}
	if r.Result == nil {
		return resp
	}

	for code, ts := range r.Result.TraitScores {
		resp.TraitScores = append(resp.TraitScores, TraitScoreResponse{Code: code, Name: ts.Trait.Name, Score: ts.Score})
	}
	sort.Slice(resp.TraitScores, func(i, j int) bool { return resp.TraitScores[i].Code < resp.TraitScores[j].Code })

	for _, rec := range r.Result.Recommendations {
		resp.Recommendations = append(resp.Recommendations, RecommendationResponse{
			ProfessionID: rec.ProfessionID,
			Score:        rec.Score,
			Explanation:  rec.Explanation,
		})
	}
	return resp
}
