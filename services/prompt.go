package services

import (
	"fmt"
	"strings"

	"github.com/K-naman-T/techex-ai/models"
)

// NoKnowledgeContext is used when retrieval produced nothing. The model is
// told explicitly rather than being handed an empty section.
const NoKnowledgeContext = "No matching project data was found for this question."

// Supported response languages.
const (
	LanguageEnglish = "en"
	LanguageHindi   = "hi"
)

// BuildKnowledgeContext joins retrieved projects into the context block of the
// system instruction. Returns NoKnowledgeContext when nothing was retrieved.
func BuildKnowledgeContext(projects []models.Project) string {
	if len(projects) == 0 {
		return NoKnowledgeContext
	}
	lines := make([]string, len(projects))
	for i, p := range projects {
		lines[i] = fmt.Sprintf("- Stall %s [%s]: %q by %s.\n  Details: %s",
			p.StallNumber, p.Category, p.Title, p.TeamName, p.Description)
	}
	return strings.Join(lines, "\n")
}

func orPlaceholder(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}

func languageDirective(language string) string {
	switch language {
	case LanguageHindi:
		return "Respond in Hindi using Devanagari script. Keep stall numbers and other numerals in English digits."
	default:
		return "Respond in English."
	}
}

// BuildSystemInstruction assembles the per-request system instruction from
// event metadata, the retrieved knowledge context, and the language directive.
// Pure with respect to its inputs; rebuilt every request because the context
// and language vary per request.
func BuildSystemInstruction(event models.Event, knowledgeContext, language string) string {
	var sb strings.Builder

	sb.WriteString("You are an intelligent 3D Avatar Assistant for TechEx AI.\n")
	sb.WriteString("**Core Identity:**\n")
	sb.WriteString("- Name: TechEx Avatar\n")
	sb.WriteString("- Purpose: Assist visitors with information about the event and its projects.\n")
	sb.WriteString("- Personality: Professional, knowledgeable, futuristic, polite.\n\n")

	sb.WriteString("**Event:**\n")
	sb.WriteString("- Name: " + orPlaceholder(event.Name, "the exhibition") + "\n")
	sb.WriteString("- Date: " + orPlaceholder(event.Date, "to be announced") + "\n")
	sb.WriteString("- Location: " + orPlaceholder(event.Location, "the venue") + "\n")
	sb.WriteString("- Overview: " + orPlaceholder(event.Description, "details unavailable") + "\n")
	if strings.TrimSpace(event.LayoutInfo) != "" {
		sb.WriteString("- Layout: " + event.LayoutInfo + "\n")
	}
	sb.WriteString("\n")

	sb.WriteString("**Response Rules:**\n")
	sb.WriteString("- Keep answers short, at most three sentences, optimized for spoken delivery.\n")
	sb.WriteString("- Use plain sentences with normal punctuation; never use markdown, lists, or markup.\n")
	sb.WriteString("- When the visitor asks where a stall or project is, append the directive [SHOW_MAP: <stall_number>] at the end of your answer.\n")
	sb.WriteString("- " + languageDirective(language) + "\n\n")

	sb.WriteString("**Relevant Projects:**\n")
	sb.WriteString(knowledgeContext)
	sb.WriteString("\n")

	return sb.String()
}
