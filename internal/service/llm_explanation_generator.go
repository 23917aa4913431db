package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"career-quiz/internal/domain"
	"career-quiz/internal/logger"

	"go.uber.org/zap"
)

// LLMExplanationGenerator asks the chat model for one short paragraph per profession.
type LLMExplanationGenerator struct {
	transport domain.LLMTransport
}

// NewLLMExplanationGenerator creates a new LLMExplanationGenerator.
func NewLLMExplanationGenerator(transport domain.LLMTransport) *LLMExplanationGenerator {
	return &LLMExplanationGenerator{transport: transport}
}

func buildExplanationPrompt(professions []domain.Profession) string {
	var sb strings.Builder
	sb.WriteString("You are a career counselor. A classifier matched a student's interest quiz to the professions below.\n")
	sb.WriteString("For each profession write two or three sentences explaining why it could suit the student.\n\n")
	sb.WriteString("Professions:\n")
	for _, p := range professions {
		fmt.Fprintf(&sb, "- id=%d code=%s title=%s\n", p.ID, p.Code, p.Title)
	}
	sb.WriteString("\nRespond with ONLY a JSON object whose keys are the profession ids as strings and whose values are the explanations, for example:\n")
	sb.WriteString(`{"10": "explanation", "20": "explanation"}`)
	return sb.String()
}

// GenerateExplanations returns explanations keyed by profession id. Ids the
// model skipped or returned blank are absent from the map.
func (g *LLMExplanationGenerator) GenerateExplanations(ctx context.Context, professions []domain.Profession) (map[int64]string, error) {
	if len(professions) == 0 {
		return map[int64]string{}, nil
	}

	raw, err := g.transport.SendPrompt(ctx, buildExplanationPrompt(professions))
	if err != nil {
		return nil, domain.NewLLMServiceError(err)
	}

	var byKey map[string]string
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &byKey); err != nil {
		return nil, domain.NewLLMParseError(raw, err)
	}

	explanations := make(map[int64]string, len(byKey))
	for key, text := range byKey {
		id, err := strconv.ParseInt(strings.TrimSpace(key), 10, 64)
		if err != nil {
			logger.Get().Debug("Ignoring explanation with non-numeric profession key", zap.String("key", key))
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			explanations[id] = text
		}
	}
	return explanations, nil
}
