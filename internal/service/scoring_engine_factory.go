package service

import "career-quiz/internal/domain"

// ScoringEngineFactory selects the engine for a quiz version's processing mode.
type ScoringEngineFactory struct {
	mlMode domain.ProcessingMode
	ml     domain.ScoringEngine
	llm    domain.ScoringEngine
}

// NewScoringEngineFactory creates a factory where mlMode selects ml. An empty
// mlMode means domain.ProcessingModeML.
func NewScoringEngineFactory(mlMode domain.ProcessingMode, ml, llm domain.ScoringEngine) *ScoringEngineFactory {
	mlMode = domain.NormalizeProcessingMode(string(mlMode))
	if mlMode == "" {
		mlMode = domain.ProcessingModeML
	}
	return &ScoringEngineFactory{mlMode: mlMode, ml: ml, llm: llm}
}

// GetEngine returns the ML engine for the ML mode. Every other mode, including
// unknown and empty ones, gets the LLM engine.
func (f *ScoringEngineFactory) GetEngine(mode domain.ProcessingMode) domain.ScoringEngine {
	if domain.NormalizeProcessingMode(string(mode)) == f.mlMode {
		return f.ml
	}
	return f.llm
}
