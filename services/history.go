package services

import (
	"strings"

	"github.com/K-naman-T/techex-ai/models"
)

// DefaultHistoryWindow bounds how many turns of prior conversation are sent
// to the model.
const DefaultHistoryWindow = 6

// resolveRole coerces the duck-typed role marker into a canonical role. The
// role may arrive under "role" or "type"; anything not recognizably a user
// turn is treated as the assistant speaking.
func resolveRole(item models.HistoryItem) string {
	role := item.Role
	if role == "" {
		role = item.Type
	}
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "user", "human", "visitor":
		return models.RoleUser
	default:
		return models.RoleAssistant
	}
}

// resolveText picks the first non-empty text field among the accepted names.
func resolveText(item models.HistoryItem) string {
	for _, candidate := range []string{item.Content, item.Message, item.Text} {
		if trimmed := strings.TrimSpace(candidate); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// NormalizeHistory turns heterogeneous client-supplied history into the
// canonical ordered turn sequence the generation API accepts: the result is
// either empty or starts with a user turn, and holds at most window turns.
// Deterministic, no I/O; normalizing an already-normalized sequence is a
// no-op.
func NormalizeHistory(items []models.HistoryItem, window int) []models.Turn {
	if window <= 0 {
		window = DefaultHistoryWindow
	}

	turns := make([]models.Turn, 0, len(items))
	for _, item := range items {
		text := resolveText(item)
		if text == "" {
			continue
		}
		turns = append(turns, models.Turn{Role: resolveRole(item), Text: text})
	}

	// The generation API requires the sequence to open with a user turn.
	firstUser := -1
	for i, turn := range turns {
		if turn.Role == models.RoleUser {
			firstUser = i
			break
		}
	}
	if firstUser < 0 {
		return nil
	}
	turns = turns[firstUser:]

	if len(turns) > window {
		turns = turns[len(turns)-window:]
	}

	// Windowing can reintroduce leading assistant turns.
	for len(turns) > 0 && turns[0].Role == models.RoleAssistant {
		turns = turns[1:]
	}
	if len(turns) == 0 {
		return nil
	}
	return turns
}
