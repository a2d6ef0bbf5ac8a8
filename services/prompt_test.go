package services

import (
	"strings"
	"testing"

	"github.com/K-naman-T/techex-ai/models"
)

func testEvent() models.Event {
	return models.Event{
		Name:        "Tata Steel TechEx 2026",
		Date:        "March 3-5, 2026",
		Description: "The 18th Technical Exhibition showcasing student innovations.",
		Location:    "SNTI, Jamshedpur",
		LayoutInfo:  "Zones A through D around the central hall.",
	}
}

func TestBuildKnowledgeContextJoinsProjects(t *testing.T) {
	projects := []models.Project{
		{Title: "Snake Robot", Category: "Industrial Automation", StallNumber: "D-402", TeamName: "Robotics COE", Description: "Pipe inspection robot."},
		{Title: "Smart Blind Stick", Category: "Safety & Mankind", StallNumber: "B-12", TeamName: "Visionary", Description: "Obstacle narration."},
	}
	got := BuildKnowledgeContext(projects)

	for _, want := range []string{"Stall D-402", "Snake Robot", "Robotics COE", "Stall B-12", "Pipe inspection robot."} {
		if !strings.Contains(got, want) {
			t.Errorf("knowledge context missing %q:\n%s", want, got)
		}
	}
}

func TestBuildKnowledgeContextEmpty(t *testing.T) {
	if got := BuildKnowledgeContext(nil); got != NoKnowledgeContext {
		t.Fatalf("empty retrieval context = %q, want fallback", got)
	}
}

func TestBuildSystemInstructionIncludesEventAndContext(t *testing.T) {
	got := BuildSystemInstruction(testEvent(), "- Stall D-402: snake robot", LanguageEnglish)

	for _, want := range []string{
		"Tata Steel TechEx 2026",
		"March 3-5, 2026",
		"SNTI, Jamshedpur",
		"Zones A through D",
		"- Stall D-402: snake robot",
		"[SHOW_MAP: <stall_number>]",
		"Respond in English.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("instruction missing %q", want)
		}
	}
}

func TestBuildSystemInstructionPlaceholders(t *testing.T) {
	got := BuildSystemInstruction(models.Event{}, NoKnowledgeContext, LanguageEnglish)

	for _, want := range []string{"the exhibition", "to be announced", "the venue", "details unavailable", NoKnowledgeContext} {
		if !strings.Contains(got, want) {
			t.Errorf("instruction missing placeholder %q", want)
		}
	}
	if strings.Contains(got, "- Layout:") {
		t.Errorf("instruction should omit the layout line when layout info is absent")
	}
}

func TestBuildSystemInstructionHindiDirective(t *testing.T) {
	got := BuildSystemInstruction(testEvent(), NoKnowledgeContext, LanguageHindi)
	if !strings.Contains(got, "Hindi") || !strings.Contains(got, "Devanagari") {
		t.Fatalf("instruction missing Hindi directive:\n%s", got)
	}
	if !strings.Contains(got, "English digits") {
		t.Fatalf("instruction missing numeral convention")
	}
}

func TestBuildSystemInstructionDeterministic(t *testing.T) {
	a := BuildSystemInstruction(testEvent(), "ctx", LanguageEnglish)
	b := BuildSystemInstruction(testEvent(), "ctx", LanguageEnglish)
	if a != b {
		t.Fatal("instruction assembly is not deterministic")
	}
}
