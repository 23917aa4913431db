package service

import "time"

// ScoringRecorder receives scoring telemetry. *metrics.Manager implements it.
type ScoringRecorder interface {
	ObserveEvaluation(engine string, err error, elapsed time.Duration)
	IncLLMParseFailure()
	IncUnresolvedProfession(source string)
	IncExplanationFallback()
	IncResultCache(operation, outcome string)
}

type noopRecorder struct{}

func (noopRecorder) ObserveEvaluation(string, error, time.Duration) {}
func (noopRecorder) IncLLMParseFailure()                            {}
func (noopRecorder) IncUnresolvedProfession(string)                 {}
func (noopRecorder) IncExplanationFallback()                        {}
func (noopRecorder) IncResultCache(string, string)                  {}

func recorderOrNoop(r ScoringRecorder) ScoringRecorder {
	if r == nil {
		return noopRecorder{}
	}
	return r
}
