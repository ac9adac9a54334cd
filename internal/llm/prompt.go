package llm

import (
	"fmt"
	"strings"

	"github.com/nzambu/coachsim/internal/domain"
)

const (
	coachLabel  = "Coach: "
	clientLabel = "Client: "
)

// BuildOpeningPrompt creates the instruction for the persona's first turn.
// The persona speaks first: it invents a name and backstory, sets the
// register, and states a problem before any coach input exists.
func BuildOpeningPrompt(persona string) string {
	return fmt.Sprintf(`Tu joues le rôle d'un client en séance de coaching, de type : %s, en République Démocratique du Congo.

Consignes :
1. Invente-toi un prénom et une situation personnelle cohérente avec ce profil
2. Présente-toi brièvement au coach, dans un registre naturel et un contexte culturel congolais
3. Expose un problème concret qui t'amène en séance
4. Réponds en 3 à 5 phrases maximum, à la première personne
5. Ne sors jamais de ton rôle de client

Commence la séance maintenant.`, persona)
}

// BuildReplyPrompt creates the instruction for a client reply. The full
// transcript is included on every call: the backend holds no session
// memory, so the name and backstory invented in the opening turn only
// survive if the whole conversation travels with each request.
func BuildReplyPrompt(persona string, transcript []domain.Turn, coachInput string) string {
	var history strings.Builder
	history.WriteString(FlattenTranscript(transcript))
	if history.Len() > 0 {
		history.WriteString("\n")
	}
	history.WriteString(coachLabel + coachInput)

	return fmt.Sprintf(`Tu joues le rôle d'un client en séance de coaching, de type : %s, en République Démocratique du Congo.

Voici la conversation jusqu'ici. Garde exactement le prénom, l'histoire et la situation que tu as inventés dans ta première réplique.

%s

Consignes :
1. Réponds uniquement à la dernière intervention du coach, en restant dans ton rôle
2. Réponds brièvement, en 2 à 4 phrases, à la première personne
3. Ne donne jamais de conseils : c'est toi le client, pas le coach

Ta réponse :`, persona, history.String())
}

// BuildFeedbackPrompt creates the evaluation instruction for a completed
// transcript, grounded strictly in the instructor's reference document.
func BuildFeedbackPrompt(transcript []domain.Turn, referenceDoc string) string {
	return fmt.Sprintf(`Tu es un enseignant en coaching positif. Évalue la prestation du coach dans la conversation ci-dessous, en te fondant strictement sur le support de cours fourni.

Support de cours :
%s

Conversation :
%s

Consignes :
1. Adresse-toi directement à l'étudiant (le coach)
2. Donne deux points forts de sa pratique
3. Donne au plus deux axes d'amélioration, chacun relié à une notion du support de cours
4. Reste concis : 6 à 8 phrases au total`, referenceDoc, FlattenTranscript(transcript))
}

// FlattenTranscript serializes turns as alternating "Coach:"/"Client:"
// lines. ParseTranscript inverts it exactly.
func FlattenTranscript(transcript []domain.Turn) string {
	var b strings.Builder
	for i, turn := range transcript {
		if i > 0 {
			b.WriteString("\n")
		}
		if turn.Speaker == domain.SpeakerCoach {
			b.WriteString(coachLabel)
		} else {
			b.WriteString(clientLabel)
		}
		b.WriteString(turn.Text)
	}
	return b.String()
}

// ParseTranscript reconstructs the speaker/text sequence from a flattened
// transcript. Lines without a speaker label continue the previous turn.
func ParseTranscript(flat string) []domain.Turn {
	if flat == "" {
		return nil
	}

	var turns []domain.Turn
	for _, line := range strings.Split(flat, "\n") {
		switch {
		case strings.HasPrefix(line, coachLabel):
			turns = append(turns, domain.Turn{Speaker: domain.SpeakerCoach, Text: strings.TrimPrefix(line, coachLabel)})
		case strings.HasPrefix(line, clientLabel):
			turns = append(turns, domain.Turn{Speaker: domain.SpeakerClient, Text: strings.TrimPrefix(line, clientLabel)})
		case len(turns) > 0:
			turns[len(turns)-1].Text += "\n" + line
		}
	}
	return turns
}
