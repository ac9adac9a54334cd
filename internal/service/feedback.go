package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/nzambu/coachsim/internal/domain"
	"github.com/nzambu/coachsim/internal/llm"
)

// FeedbackPlaceholder is returned whenever evaluation fails. The pipeline
// always hands some feedback value to the exporter and to the student.
const FeedbackPlaceholder = "Évaluation indisponible pour cette session. Vos échanges ont bien été enregistrés ; rapprochez-vous de votre enseignant pour un retour détaillé."

// FeedbackService evaluates completed transcripts against the
// instructor's reference document.
type FeedbackService struct {
	gen  Generator
	refs domain.ReferenceStore
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(gen Generator, refs domain.ReferenceStore) *FeedbackService {
	return &FeedbackService{gen: gen, refs: refs}
}

// Evaluate produces a natural-language evaluation of the transcript,
// grounded in the reference document. It never fails outward: any
// backend failure degrades to the fixed placeholder.
func (s *FeedbackService) Evaluate(ctx context.Context, transcript []domain.Turn) string {
	prompt := llm.BuildFeedbackPrompt(transcript, s.refs.Current())

	feedback, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		log.Warn().Err(err).Msg("Feedback generation failed, returning placeholder")
		return FeedbackPlaceholder
	}
	if feedback == "" {
		return FeedbackPlaceholder
	}
	return feedback
}
