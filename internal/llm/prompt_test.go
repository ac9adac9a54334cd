package llm_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nzambu/coachsim/internal/domain"
	"github.com/nzambu/coachsim/internal/llm"
)

func TestBuildOpeningPrompt(t *testing.T) {
	prompt := llm.BuildOpeningPrompt("Entrepreneur local (Lubumbashi)")

	mustContain := []string{
		"Entrepreneur local (Lubumbashi)",
		"prénom",
		"problème",
	}
	for _, s := range mustContain {
		if !strings.Contains(prompt, s) {
			t.Errorf("prompt should contain %q", s)
		}
	}
}

func TestBuildReplyPrompt_IncludesFullTranscript(t *testing.T) {
	transcript := []domain.Turn{
		{Speaker: domain.SpeakerClient, Text: "Je m'appelle Patrice et je suis débordé."},
		{Speaker: domain.SpeakerCoach, Text: "Depuis quand vous sentez-vous ainsi ?"},
		{Speaker: domain.SpeakerClient, Text: "Depuis la saison des pluies."},
	}

	prompt := llm.BuildReplyPrompt("Entrepreneur (Goma) - Conflit d'associés", transcript, "Qu'avez-vous déjà essayé ?")

	mustContain := []string{
		"Entrepreneur (Goma) - Conflit d'associés",
		"Client: Je m'appelle Patrice et je suis débordé.",
		"Coach: Depuis quand vous sentez-vous ainsi ?",
		"Client: Depuis la saison des pluies.",
		"Coach: Qu'avez-vous déjà essayé ?",
	}
	for _, s := range mustContain {
		if !strings.Contains(prompt, s) {
			t.Errorf("prompt should contain %q", s)
		}
	}

	// Every prior turn travels with the request: without it the persona's
	// invented name would not survive across calls.
	assert.Greater(t, strings.Index(prompt, "Coach: Qu'avez-vous déjà essayé ?"),
		strings.Index(prompt, "Client: Depuis la saison des pluies."))
}

func TestBuildFeedbackPrompt(t *testing.T) {
	transcript := []domain.Turn{
		{Speaker: domain.SpeakerClient, Text: "Je suis débordé."},
		{Speaker: domain.SpeakerCoach, Text: "Parlez-moi de votre situation."},
	}

	prompt := llm.BuildFeedbackPrompt(transcript, "Chapitre 3 : l'écoute active.")

	mustContain := []string{
		"Chapitre 3 : l'écoute active.",
		"Client: Je suis débordé.",
		"Coach: Parlez-moi de votre situation.",
		"deux points forts",
	}
	for _, s := range mustContain {
		if !strings.Contains(prompt, s) {
			t.Errorf("prompt should contain %q", s)
		}
	}
}

func TestFlattenTranscript(t *testing.T) {
	transcript := []domain.Turn{
		{Speaker: domain.SpeakerClient, Text: "Bonjour coach."},
		{Speaker: domain.SpeakerCoach, Text: "Bonjour, parlez-moi de votre situation"},
		{Speaker: domain.SpeakerClient, Text: "Je suis débordé."},
	}

	flat := llm.FlattenTranscript(transcript)

	expected := "Client: Bonjour coach.\nCoach: Bonjour, parlez-moi de votre situation\nClient: Je suis débordé."
	assert.Equal(t, expected, flat)
}

func TestFlattenTranscript_Empty(t *testing.T) {
	assert.Equal(t, "", llm.FlattenTranscript(nil))
	assert.Nil(t, llm.ParseTranscript(""))
}

func TestParseTranscript_RoundTrip(t *testing.T) {
	transcript := []domain.Turn{
		{Speaker: domain.SpeakerClient, Text: "Je m'appelle Patrice.\nJ'ai un atelier à Lubumbashi."},
		{Speaker: domain.SpeakerCoach, Text: "Bonjour, parlez-moi de votre situation"},
		{Speaker: domain.SpeakerClient, Text: "Je suis débordé."},
	}

	parsed := llm.ParseTranscript(llm.FlattenTranscript(transcript))

	assert.Equal(t, transcript, parsed)
}
