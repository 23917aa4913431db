package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"career-quiz/internal/domain"
	"career-quiz/internal/logger"

	"go.uber.org/zap"
)

// EngineNameLLM identifies the language-model engine in logs and metrics.
const EngineNameLLM = "llm"

// riasecTraits is the fixed trait schema used by the raw-answer prompt.
var riasecTraits = []struct{ Code, Name string }{
	{"R", "Realistic"},
	{"I", "Investigative"},
	{"A", "Artistic"},
	{"S", "Social"},
	{"E", "Enterprising"},
	{"C", "Conventional"},
}

// LLMScoringEngine scores an attempt with a single chat-completion call that
// returns both trait scores and recommendations as JSON.
type LLMScoringEngine struct {
	answers     domain.AnswerRepository
	traits      domain.TraitRepository
	professions domain.ProfessionRepository
	transport   domain.LLMTransport
	recorder    ScoringRecorder
}

// NewLLMScoringEngine creates a new LLMScoringEngine.
func NewLLMScoringEngine(
	answers domain.AnswerRepository,
	traits domain.TraitRepository,
	professions domain.ProfessionRepository,
	transport domain.LLMTransport,
	recorder ScoringRecorder,
) *LLMScoringEngine {
	return &LLMScoringEngine{
		answers:     answers,
		traits:      traits,
		professions: professions,
		transport:   transport,
		recorder:    recorderOrNoop(recorder),
	}
}

var _ domain.ScoringEngine = (*LLMScoringEngine)(nil)

func (e *LLMScoringEngine) Name() string { return EngineNameLLM }

// Evaluate builds the prompt from the attempt's answers and the full catalog.
func (e *LLMScoringEngine) Evaluate(ctx context.Context, attemptID int64) (*domain.ScoringResult, error) {
	answers, err := e.answers.FindByAttemptID(ctx, attemptID)
	if err != nil {
		return nil, domain.NewInternalError(fmt.Sprintf("failed to load answers for attempt %d", attemptID), err)
	}
	traits, err := e.traits.FindAll(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to load traits", err)
	}
	professions, err := e.professions.FindAll(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to load professions", err)
	}

	result, err := e.run(ctx, buildAttemptPrompt(answers, traits, professions))
	if err != nil {
		return nil, err
	}
	logger.Get().Info("LLM evaluation finished",
		zap.Int64("attemptID", attemptID),
		zap.Int("traits", len(result.TraitScores)),
		zap.Int("recommendations", len(result.Recommendations)))
	return result, nil
}

// EvaluateRaw uses the six-trait RIASEC schema and a flat numbered answer list.
func (e *LLMScoringEngine) EvaluateRaw(ctx context.Context, answers []int) (*domain.ScoringResult, error) {
	if len(answers) != domain.RequiredAnswerCount {
		return nil, domain.NewInvalidAnswerCountError(len(answers))
	}
	professions, err := e.professions.FindAll(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to load professions", err)
	}
	return e.run(ctx, buildRawPrompt(answers, professions))
}

func (e *LLMScoringEngine) run(ctx context.Context, prompt string) (*domain.ScoringResult, error) {
	raw, err := e.transport.SendPrompt(ctx, prompt)
	if err != nil {
		return nil, domain.NewLLMServiceError(err)
	}
	logger.Get().Debug("Raw LLM scoring response received", zap.String("raw_response", raw))

	root, err := e.parseJSON(raw)
	if err != nil {
		return nil, err
	}
	traits, err := e.parseTraits(ctx, root, raw)
	if err != nil {
		return nil, err
	}
	recommendations, err := e.parseRecommendations(ctx, root, raw)
	if err != nil {
		return nil, err
	}
	return domain.NewScoringResult(traits, recommendations), nil
}

// parseJSON strips Markdown fences and decodes the top-level JSON object.
// Anything that is not a JSON object is a parse failure carrying raw.
func (e *LLMScoringEngine) parseJSON(raw string) (map[string]json.RawMessage, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &root); err != nil {
		return nil, e.parseFailure(raw, err)
	}
	if root == nil {
		return nil, e.parseFailure(raw, errors.New("response is not a JSON object"))
	}
	return root, nil
}

// parseTraits maps uppercased trait codes to scores. Codes that are not in
// the trait catalog are dropped. Scores are kept as returned, without clamping.
// A missing or null traits key yields no scores; any other non-object value
// is a parse failure.
func (e *LLMScoringEngine) parseTraits(ctx context.Context, root map[string]json.RawMessage, raw string) (domain.TraitScores, error) {
	scores := domain.TraitScores{}

	body, ok := root["traits"]
	if !ok {
		return scores, nil
	}
	var values map[string]json.RawMessage
	if err := json.Unmarshal(body, &values); err != nil {
		return nil, e.parseFailure(raw, fmt.Errorf("traits is not an object: %s", string(body)))
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		code := strings.ToUpper(strings.TrimSpace(key))
		trait, err := e.traits.FindByCode(ctx, code)
		if err != nil {
			return nil, domain.NewInternalError(fmt.Sprintf("failed to look up trait %s", code), err)
		}
		if trait == nil {
			logger.Get().Debug("Dropping unknown trait code from LLM response", zap.String("code", key))
			continue
		}
		score, err := decodeNumber(values[key])
		if err != nil {
			return nil, e.parseFailure(raw, fmt.Errorf("trait %s: %w", code, err))
		}
		scores[trait.Code] = domain.TraitScore{Trait: *trait, Score: score}
	}
	return scores, nil
}

// parseRecommendations reads the recommendations array. A missing key or a
// non-array value yields an empty list; an element without professionId,
// score or explanation fails the whole call.
func (e *LLMScoringEngine) parseRecommendations(ctx context.Context, root map[string]json.RawMessage, raw string) ([]domain.Recommendation, error) {
	recommendations := []domain.Recommendation{}

	var items []json.RawMessage
	if body, ok := root["recommendations"]; !ok || json.Unmarshal(body, &items) != nil {
		return recommendations, nil
	}

	for i, item := range items {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
			return nil, e.parseFailure(raw, fmt.Errorf("recommendation %d is not an object", i))
		}

		professionID, err := requiredInt(fields, "professionId")
		if err != nil {
			return nil, e.parseFailure(raw, fmt.Errorf("recommendation %d: %w", i, err))
		}
		score, err := requiredNumber(fields, "score")
		if err != nil {
			return nil, e.parseFailure(raw, fmt.Errorf("recommendation %d: %w", i, err))
		}
		explanation, err := requiredString(fields, "explanation")
		if err != nil {
			return nil, e.parseFailure(raw, fmt.Errorf("recommendation %d: %w", i, err))
		}

		rec := domain.Recommendation{Score: score, Explanation: explanation}
		profession, err := e.professions.FindByID(ctx, professionID)
		if err != nil {
			return nil, domain.NewInternalError(fmt.Sprintf("failed to look up profession %d", professionID), err)
		}
		if profession != nil {
			id := profession.ID
			rec.ProfessionID = &id
		} else {
			e.recorder.IncUnresolvedProfession("llm")
			logger.Get().Debug("LLM recommended an unknown profession", zap.Int64("professionId", professionID))
		}
		recommendations = append(recommendations, rec)
	}
	return recommendations, nil
}

func (e *LLMScoringEngine) parseFailure(raw string, err error) error {
	e.recorder.IncLLMParseFailure()
	return domain.NewLLMParseError(raw, err)
}

func decodeNumber(body json.RawMessage) (float64, error) {
	var n float64
	if err := json.Unmarshal(body, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return n, nil
		}
	}
	return 0, fmt.Errorf("value %s is not a number", string(body))
}

func requiredNumber(fields map[string]json.RawMessage, key string) (float64, error) {
	body, ok := fields[key]
	if !ok {
		return 0, fmt.Errorf("missing field %q", key)
	}
	n, err := decodeNumber(body)
	if err != nil {
		return 0, fmt.Errorf("field %q: %w", key, err)
	}
	return n, nil
}

// requiredInt accepts only whole numbers that fit in an int64.
func requiredInt(fields map[string]json.RawMessage, key string) (int64, error) {
	n, err := requiredNumber(fields, key)
	if err != nil {
		return 0, err
	}
	if n != math.Trunc(n) || n < math.MinInt64 || n >= math.MaxInt64 {
		return 0, fmt.Errorf("field %q: %v is not an integer id", key, n)
	}
	return int64(n), nil
}

func requiredString(fields map[string]json.RawMessage, key string) (string, error) {
	body, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("missing field %q", key)
	}
	var s string
	if err := json.Unmarshal(body, &s); err != nil {
		return "", fmt.Errorf("field %q is not a string", key)
	}
	return s, nil
}

const responseContract = `Respond with ONLY a JSON object in the following format, without any other text:
{
  "traits": {"<TRAIT_CODE>": 0.0},
  "recommendations": [
    {"professionId": 0, "score": 0.0, "explanation": "one or two sentences"}
  ]
}

Rules:
1. Trait scores must be between 0 and 1.
2. Recommend up to 5 professions, best match first, using only the ids listed above.
3. Scores of recommendations must be between 0 and 1.`

func writeProfessionCatalog(sb *strings.Builder, professions []domain.Profession) {
	sb.WriteString("Professions (id: code):\n")
	for _, p := range professions {
		fmt.Fprintf(sb, "- %d: %s\n", p.ID, p.Code)
	}
}

// buildAttemptPrompt groups the selected options under their question, in question order.
func buildAttemptPrompt(answers []domain.AnswerDetail, traits []domain.Trait, professions []domain.Profession) string {
	var sb strings.Builder
	sb.WriteString("You are a career guidance assistant. Evaluate the student's quiz answers below.\n\n")

	if len(traits) > 0 {
		sb.WriteString("Traits (code: name):\n")
		for _, t := range traits {
			fmt.Fprintf(&sb, "- %s: %s\n", t.Code, t.Name)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Answers:\n")
	lastQuestion := int64(-1)
	number := 0
	for _, a := range answers {
		if a.QuestionID != lastQuestion {
			lastQuestion = a.QuestionID
			number++
			fmt.Fprintf(&sb, "%d. %s\n", number, a.QuestionText)
		}
		fmt.Fprintf(&sb, "   - %s\n", a.OptionLabel)
	}
	sb.WriteString("\n")

	writeProfessionCatalog(&sb, professions)
	sb.WriteString("\n")
	sb.WriteString(responseContract)
	return sb.String()
}

// buildRawPrompt lists the Likert values by position against the RIASEC schema.
func buildRawPrompt(answers []int, professions []domain.Profession) string {
	var sb strings.Builder
	sb.WriteString("You are a career guidance assistant. A student answered a 48-question RIASEC interest quiz ")
	sb.WriteString("on a scale from 1 (strongly disagree) to 5 (strongly agree).\n\n")

	sb.WriteString("Traits (code: name):\n")
	for _, t := range riasecTraits {
		fmt.Fprintf(&sb, "- %s: %s\n", t.Code, t.Name)
	}
	sb.WriteString("\nAnswers:\n")
	for i, a := range answers {
		fmt.Fprintf(&sb, "%d. %d\n", i+1, a)
	}
	sb.WriteString("\n")

	writeProfessionCatalog(&sb, professions)
	sb.WriteString("\n")
	sb.WriteString(responseContract)
	return sb.String()
}
